package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (

	// Attribute key carrying the nesting depth of a progress line.
	DepthKey = "depth"

	// Timestamp layout of each progress line.
	timeLayout = "2006-01-02 15:04:05.000000"
)

// Returns the attribute that sets the nesting depth of a progress line.
func Depth(n int) slog.Attr {
	return slog.Int(DepthKey, n)
}

// Configures a [Handler].
type Options struct {
	Level   slog.Leveler     // Minimum level. Defaults to [slog.LevelInfo].
	Verbose bool             // Append attributes to every line.
	Color   bool             // Style output with lipgloss.
	Now     func() time.Time // Clock for records without a timestamp. Defaults to [time.Now].
}

// Shared, reconfigurable output state. All handlers derived from one
// [NewHandler] call write through the same sink.
type sink struct {
	mu      sync.Mutex
	w       io.Writer
	level   slog.LevelVar
	verbose bool
	now     func() time.Time
	styles  *styles
}

// Lipgloss styles for the line prefix and level tags.
type styles struct {
	arrow lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

// Writes progress lines. Safe for concurrent use.
type Handler struct {
	sink   *sink
	attrs  []slog.Attr
	groups []string
}

// Creates a [Handler] writing to w.
func NewHandler(w io.Writer, opts *Options) *Handler {
	if opts == nil {
		opts = &Options{}
	}

	s := &sink{
		w:       w,
		verbose: opts.Verbose,
		now:     opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.Level != nil {
		s.level.Set(opts.Level.Level())
	}
	if opts.Color {
		s.styles = newStyles(w)
	}

	return &Handler{sink: s}
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	return &styles{
		arrow: r.NewStyle().Faint(true),
		warn:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		err:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// Sets the minimum level for this handler and every handler derived from it.
func (h *Handler) SetLevel(level slog.Level) {
	h.sink.level.Set(level)
}

// Enables or disables attribute output on every line.
func (h *Handler) SetVerbose(verbose bool) {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.verbose = verbose
}

// Redirects output to w, optionally styled.
func (h *Handler) SetOutput(w io.Writer, color bool) {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.w = w
	h.sink.styles = nil
	if color {
		h.sink.styles = newStyles(w)
	}
}

// Implements [slog.Handler].
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.sink.level.Level()
}

// Implements [slog.Handler].
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	qualified := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	qualified = append(qualified, h.attrs...)
	for _, a := range attrs {
		qualified = append(qualified, h.qualify(a))
	}
	return &Handler{sink: h.sink, attrs: qualified, groups: h.groups}
}

// Implements [slog.Handler].
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := append(append([]string{}, h.groups...), name)
	return &Handler{sink: h.sink, attrs: h.attrs, groups: groups}
}

// Prefixes the attribute key with the open groups. The depth attribute is
// never qualified.
func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if a.Key == DepthKey || len(h.groups) == 0 {
		return a
	}
	a.Key = strings.Join(h.groups, ".") + "." + a.Key
	return a
}

// Implements [slog.Handler].
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	depth := 0
	var fields []string

	add := func(a slog.Attr) {
		a.Value = a.Value.Resolve()
		if a.Key == DepthKey {
			if a.Value.Kind() == slog.KindInt64 {
				depth = max(int(a.Value.Int64()), 0)
			}
			return
		}
		if a.Equal(slog.Attr{}) {
			return
		}
		fields = append(fields, a.Key+"="+formatValue(a.Value))
	}

	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(h.qualify(a))
		return true
	})

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()

	ts := r.Time
	if ts.IsZero() {
		ts = h.sink.now()
	}

	arrow := strings.Repeat("--", depth) + ">"
	msg := r.Message
	if st := h.sink.styles; st != nil {
		arrow = st.arrow.Render(arrow)
	}
	if tag := h.levelTag(r.Level); tag != "" {
		msg = tag + " " + msg
	}

	line := fmt.Sprintf("%s | %s %s", ts.Format(timeLayout), arrow, msg)
	if len(fields) > 0 && (h.sink.verbose || r.Level >= slog.LevelWarn) {
		line += " " + strings.Join(fields, " ")
	}

	_, err := io.WriteString(h.sink.w, line+"\n")
	return err
}

// Returns the tag printed before warning and error messages, or "" for
// lower levels. Must be called with the sink lock held.
func (h *Handler) levelTag(level slog.Level) string {
	var tag string
	switch {
	case level >= slog.LevelError:
		tag = "ERROR"
	case level >= slog.LevelWarn:
		tag = "WARN"
	default:
		return ""
	}

	st := h.sink.styles
	if st == nil {
		return tag
	}
	if level >= slog.LevelError {
		return st.err.Render(tag)
	}
	return st.warn.Render(tag)
}

// Formats an attribute value, quoting strings that would be ambiguous on a
// space-separated line.
func formatValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindTime {
		s = v.Time().Format(time.RFC3339)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
