package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/montile/internal/ipc"
)

type fakeDaemon struct {
	calls     [][]string
	responses map[string]*ipc.Response
	err       error
}

func (f *fakeDaemon) Call(args ...string) (*ipc.Response, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return nil, f.err
	}
	if resp, ok := f.responses[args[0]]; ok {
		return resp, nil
	}
	return &ipc.Response{}, nil
}

func TestParseMonitorList(t *testing.T) {
	out := "0: 1920x1080+0+0 with tag \"web\", named \"main\" [FOCUS]\n" +
		"1: 1280x1024+1920+0 with tag \"2\" [LOCKED]\n" +
		"2: 800x600+0+1080 with tag \"3\"\n"
	got, err := parseMonitorList(out)
	if err != nil {
		t.Fatalf("parseMonitorList: %v", err)
	}
	want := []MonitorInfo{
		{Index: 0, Rect: "1920x1080+0+0", Tag: "web", Name: "main", Focused: true},
		{Index: 1, Rect: "1280x1024+1920+0", Tag: "2", Locked: true},
		{Index: 2, Rect: "800x600+0+1080", Tag: "3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("monitors mismatch (-want +got):\n%s", diff)
	}

	if _, err := parseMonitorList("garbage\n"); err == nil {
		t.Fatal("expected error for unexpected output")
	}
}

func TestParseTagStatus(t *testing.T) {
	got := parseTagStatus("\t#1\t-2\t:3\t.4\t+5\t%6\t")
	want := []TagInfo{
		{Name: "1", State: "focused"},
		{Name: "2", State: "shown_elsewhere"},
		{Name: "3", State: "hidden_with_clients"},
		{Name: "4", State: "empty"},
		{Name: "5", State: "shown_here"},
		{Name: "6", State: "shown_on_focused_monitor"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleListMonitors(t *testing.T) {
	daemon := &fakeDaemon{responses: map[string]*ipc.Response{
		"list_monitors": {Output: "0: 800x600+0+0 with tag \"1\" [FOCUS]\n"},
	}}
	s := NewServer(daemon, nil)

	_, out, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if err != nil {
		t.Fatalf("handleListMonitors: %v", err)
	}
	want := []MonitorInfo{{Index: 0, Rect: "800x600+0+0", Tag: "1", Focused: true}}
	if diff := cmp.Diff(want, out.Monitors); diff != "" {
		t.Fatalf("monitors mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleRunCommandReportsStatus(t *testing.T) {
	daemon := &fakeDaemon{responses: map[string]*ipc.Response{
		"remove_monitor": {Status: 6, Output: "remove_monitor: Can't remove the last monitor\n"},
	}}
	s := NewServer(daemon, nil)

	res, out, err := s.handleRunCommand(context.Background(), nil, RunCommandInput{Args: []string{"remove_monitor", "0"}})
	if err != nil {
		t.Fatalf("handleRunCommand: %v", err)
	}
	if !res.IsError || out.Status != 6 {
		t.Fatalf("result = %+v, output = %+v", res, out)
	}

	if _, _, err := s.handleRunCommand(context.Background(), nil, RunCommandInput{}); err == nil {
		t.Fatal("expected error for empty args")
	}
}

func TestHandleFocusMonitor(t *testing.T) {
	daemon := &fakeDaemon{responses: map[string]*ipc.Response{
		"monitor_focus": {Status: 3, Output: "monitor_focus: Monitor \"9\" not found!\n"},
	}}
	s := NewServer(daemon, nil)

	_, _, err := s.handleFocusMonitor(context.Background(), nil, FocusMonitorInput{Monitor: "9"})
	if err == nil || err.Error() != "monitor_focus: Monitor \"9\" not found!" {
		t.Fatalf("error = %v", err)
	}
	if _, _, err := s.handleFocusMonitor(context.Background(), nil, FocusMonitorInput{}); err == nil {
		t.Fatal("expected error for missing monitor")
	}
}

func TestHandleUseTagFocusesFirst(t *testing.T) {
	daemon := &fakeDaemon{}
	s := NewServer(daemon, nil)

	if _, _, err := s.handleUseTag(context.Background(), nil, UseTagInput{Tag: "3", Monitor: "1"}); err != nil {
		t.Fatalf("handleUseTag: %v", err)
	}
	want := [][]string{{"monitor_focus", "1"}, {"use", "3"}}
	if diff := cmp.Diff(want, daemon.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleDisjoinRectsWorksOffline(t *testing.T) {
	daemon := &fakeDaemon{err: errors.New("daemon not running")}
	s := NewServer(daemon, nil)

	_, out, err := s.handleDisjoinRects(context.Background(), nil, DisjoinRectsInput{Rects: []string{"10x10+0+0", "10x10+0+0"}})
	if err != nil {
		t.Fatalf("handleDisjoinRects: %v", err)
	}
	if diff := cmp.Diff([]string{"10x10+0+0"}, out.Rects); diff != "" {
		t.Fatalf("rects mismatch (-want +got):\n%s", diff)
	}
	if len(daemon.calls) != 0 {
		t.Fatalf("daemon called: %v", daemon.calls)
	}

	if _, _, err := s.handleDisjoinRects(context.Background(), nil, DisjoinRectsInput{Rects: []string{"bogus"}}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDaemonErrorsPropagate(t *testing.T) {
	s := NewServer(&fakeDaemon{err: errors.New("failed to connect")}, nil)
	if _, _, err := s.handleTagStatus(context.Background(), nil, TagStatusInput{}); err == nil {
		t.Fatal("expected connection error")
	}
}
