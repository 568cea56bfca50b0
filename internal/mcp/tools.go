package mcp

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/montile/internal/geom"
)

// run calls the daemon and turns a failed command into an error.
func (s *Server) run(args ...string) (string, error) {
	resp, err := s.daemon.Call(args...)
	if err != nil {
		return "", err
	}
	if resp.Status != 0 {
		msg := strings.TrimSpace(resp.Output)
		if msg == "" {
			msg = fmt.Sprintf("%s failed with status %d", args[0], resp.Status)
		}
		return "", fmt.Errorf("%s", msg)
	}
	return resp.Output, nil
}

func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
	}
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	out, err := s.run("list_monitors")
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	monitors, err := parseMonitorList(out)
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	return textResult(out), ListMonitorsOutput{Monitors: monitors}, nil
}

func (s *Server) handleRunCommand(_ context.Context, _ *mcpsdk.CallToolRequest, args RunCommandInput) (*mcpsdk.CallToolResult, RunCommandOutput, error) {
	if len(args.Args) == 0 {
		return nil, RunCommandOutput{}, fmt.Errorf("args must name a command")
	}
	resp, err := s.daemon.Call(args.Args...)
	if err != nil {
		return nil, RunCommandOutput{}, err
	}
	s.logger.Debug("mcp command", "args", strings.Join(args.Args, " "), "status", resp.Status)

	result := textResult(resp.Output)
	result.IsError = resp.Status != 0
	return result, RunCommandOutput{Status: resp.Status, Output: resp.Output}, nil
}

func (s *Server) handleFocusMonitor(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusMonitorInput) (*mcpsdk.CallToolResult, any, error) {
	if args.Monitor == "" {
		return nil, nil, fmt.Errorf("monitor is required")
	}
	if _, err := s.run("monitor_focus", args.Monitor); err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("Focused monitor %s", args.Monitor)), nil, nil
}

func (s *Server) handleUseTag(_ context.Context, _ *mcpsdk.CallToolRequest, args UseTagInput) (*mcpsdk.CallToolResult, any, error) {
	if args.Tag == "" {
		return nil, nil, fmt.Errorf("tag is required")
	}
	if args.Monitor != "" {
		if _, err := s.run("monitor_focus", args.Monitor); err != nil {
			return nil, nil, err
		}
	}
	if _, err := s.run("use", args.Tag); err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("Using tag %s", args.Tag)), nil, nil
}

func (s *Server) handleTagStatus(_ context.Context, _ *mcpsdk.CallToolRequest, args TagStatusInput) (*mcpsdk.CallToolResult, TagStatusOutput, error) {
	cmd := []string{"tag_status"}
	if args.Monitor != "" {
		cmd = append(cmd, args.Monitor)
	}
	out, err := s.run(cmd...)
	if err != nil {
		return nil, TagStatusOutput{}, err
	}
	return textResult(out), TagStatusOutput{Tags: parseTagStatus(out)}, nil
}

func (s *Server) handleDisjoinRects(_ context.Context, _ *mcpsdk.CallToolRequest, args DisjoinRectsInput) (*mcpsdk.CallToolResult, DisjoinRectsOutput, error) {
	if len(args.Rects) == 0 {
		return nil, DisjoinRectsOutput{}, fmt.Errorf("rects must not be empty")
	}
	rects, err := geom.ParseAll(args.Rects)
	if err != nil {
		return nil, DisjoinRectsOutput{}, err
	}
	parts := geom.Disjoin(rects)
	out := DisjoinRectsOutput{Rects: make([]string, 0, len(parts))}
	for _, r := range parts {
		out.Rects = append(out.Rects, r.String())
	}
	return textResult(strings.Join(out.Rects, "\n")), out, nil
}

var monitorLine = regexp.MustCompile(`^(\d+): (\S+) with tag "(.*?)"(?:, named "(.*?)")?( \[FOCUS\])?( \[LOCKED\])?$`)

// parseMonitorList reads the output of list_monitors.
func parseMonitorList(out string) ([]MonitorInfo, error) {
	var monitors []MonitorInfo
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		m := monitorLine.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("unexpected list_monitors line %q", line)
		}
		index, _ := strconv.Atoi(m[1])
		monitors = append(monitors, MonitorInfo{
			Index:   index,
			Rect:    m[2],
			Tag:     m[3],
			Name:    m[4],
			Focused: m[5] != "",
			Locked:  m[6] != "",
		})
	}
	return monitors, nil
}

var tagStates = map[byte]string{
	'#': "focused",
	'+': "shown_here",
	'%': "shown_on_focused_monitor",
	'-': "shown_elsewhere",
	':': "hidden_with_clients",
	'.': "empty",
}

// parseTagStatus reads the tab-separated markers printed by tag_status.
func parseTagStatus(out string) []TagInfo {
	var tags []TagInfo
	for _, field := range strings.Split(out, "\t") {
		if len(field) < 2 {
			continue
		}
		state, ok := tagStates[field[0]]
		if !ok {
			continue
		}
		tags = append(tags, TagInfo{Name: field[1:], State: state})
	}
	return tags
}
