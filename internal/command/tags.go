package command

import (
	"errors"
	"strings"

	"github.com/1broseidon/montile/internal/monitor"
	"github.com/1broseidon/montile/internal/tags"
)

func (d *Dispatcher) use(args []string, out *strings.Builder) Status {
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	m := d.monitors.Current()
	t := d.tags.Find(args[1])
	if m == nil || t == nil {
		return fail(out, args[0], StatusInvalidArgument, "Invalid monitor or tag")
	}
	return d.assign(out, args[0], m, t)
}

func (d *Dispatcher) useIndex(args []string, out *strings.Builder) Status {
	// use_index INDEX [--skip-visible]
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	skipVisible := len(args) > 2 && args[2] == "--skip-visible"
	m := d.monitors.Current()
	if m == nil {
		return fail(out, args[0], StatusInvalidArgument, "Invalid monitor or tag")
	}
	t, err := d.tags.ByIndex(args[1], m.Tag(), skipVisible, d.monitors.IsVisible)
	if err != nil {
		return fail(out, args[0], StatusInvalidArgument, "Invalid index \"%s\"", args[1])
	}
	return d.assign(out, args[0], m, t)
}

// assign binds t to m. A tag shown elsewhere while swapping is disabled is
// left where it is without reporting a failure.
func (d *Dispatcher) assign(out *strings.Builder, cmd string, m *monitor.Monitor, t *tags.Tag) Status {
	err := d.monitors.AssignTag(m, t)
	if errors.Is(err, monitor.ErrCollision) {
		d.logger.Debug("tag stays on its monitor", "tag", t.Name)
		return StatusOK
	}
	return d.monitorError(out, cmd, err)
}

func (d *Dispatcher) addTag(args []string, out *strings.Builder) Status {
	if len(args) < 2 {
		return StatusNeedMoreArgs
	}
	_, err := d.tags.Add(args[1])
	switch {
	case err == nil, errors.Is(err, tags.ErrExists):
		return StatusOK
	case errors.Is(err, tags.ErrInvalidName):
		return fail(out, args[0], StatusInvalidArgument, "An empty tag name is not permitted")
	default:
		return fail(out, args[0], StatusUnknownError, "%v", err)
	}
}

// tagStatus prints one marker per tag for the given monitor:
// '#' shown here and focused, '+' shown here, '%' shown on the focused
// monitor elsewhere, '-' shown elsewhere, ':' hidden with clients and
// '.' hidden and empty.
func (d *Dispatcher) tagStatus(args []string, out *strings.Builder) Status {
	m, ok := d.optionalMonitor(args)
	if !ok {
		return notFound(out, args[0], args[1])
	}
	current := d.monitors.Current()
	for _, t := range d.tags.All() {
		marker := '.'
		switch shownOn := d.monitors.ByTag(t); {
		case shownOn == m && m == current:
			marker = '#'
		case shownOn == m:
			marker = '+'
		case shownOn != nil && shownOn == current:
			marker = '%'
		case shownOn != nil:
			marker = '-'
		case len(t.Frame.Clients) > 0:
			marker = ':'
		}
		out.WriteByte('\t')
		out.WriteRune(marker)
		out.WriteString(t.Name)
	}
	out.WriteByte('\t')
	return StatusOK
}
