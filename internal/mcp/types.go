package mcp

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorInfo describes one monitor as reported by list_monitors.
type MonitorInfo struct {
	Index   int    `json:"index"`
	Rect    string `json:"rect"`
	Tag     string `json:"tag"`
	Name    string `json:"name,omitempty"`
	Focused bool   `json:"focused"`
	Locked  bool   `json:"locked"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// RunCommandInput is the input for the run_command tool.
type RunCommandInput struct {
	Args []string `json:"args" jsonschema:"required,Command name followed by its arguments, e.g. [\"use\", \"3\"]"`
}

// RunCommandOutput is the output for the run_command tool.
type RunCommandOutput struct {
	Status int    `json:"status"`
	Output string `json:"output"`
}

// FocusMonitorInput is the input for the focus_monitor tool.
type FocusMonitorInput struct {
	Monitor string `json:"monitor" jsonschema:"required,Monitor index, name, or relative offset such as +1 or -1"`
}

// UseTagInput is the input for the use_tag tool.
type UseTagInput struct {
	Tag     string `json:"tag" jsonschema:"required,Name of the tag to show"`
	Monitor string `json:"monitor,omitempty" jsonschema:"Monitor to show the tag on (default: the focused monitor)"`
}

// TagStatusInput is the input for the tag_status tool.
type TagStatusInput struct {
	Monitor string `json:"monitor,omitempty" jsonschema:"Monitor to report for (default: the focused monitor)"`
}

// TagInfo describes the state of one tag relative to a monitor.
type TagInfo struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// TagStatusOutput is the output for the tag_status tool.
type TagStatusOutput struct {
	Tags []TagInfo `json:"tags"`
}

// DisjoinRectsInput is the input for the disjoin_rects tool.
type DisjoinRectsInput struct {
	Rects []string `json:"rects" jsonschema:"required,Rectangles in WxH+X+Y form"`
}

// DisjoinRectsOutput is the output for the disjoin_rects tool.
type DisjoinRectsOutput struct {
	Rects []string `json:"rects"`
}
