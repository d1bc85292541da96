package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	DefaultPrompt   = "Select AWS Profile:"
	DefaultPageSize = 10

	fallbackWidth  = 80
	fallbackHeight = 24

	// prompt line and status line
	chromeRows = 2
)

// Frame is everything needed to draw one state of the selector.
type Frame struct {
	Query    string
	Items    []string
	Selected int
	Total    int
	Width    int
	Height   int
}

// Renderer draws frames inline below the cursor, erasing the previous frame
// before each redraw so nothing above the selector is touched.
type Renderer struct {
	w        io.Writer
	prompt   string
	pageSize int
	keymap   KeyMap
	help     help.Model
	view     Viewport

	// rows written by the last frame; the cursor sits on the last of them
	drawn int
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, prompt string, pageSize int, keymap KeyMap) *Renderer {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	h := help.New()
	h.Styles.ShortKey = MutedStyle.Bold(true)
	h.Styles.ShortDesc = MutedStyle
	h.Styles.ShortSeparator = MutedStyle

	return &Renderer{
		w:        w,
		prompt:   prompt,
		pageSize: pageSize,
		keymap:   keymap,
		help:     h,
	}
}

// Begin hides the cursor for the duration of the session.
func (r *Renderer) Begin() error {
	_, err := io.WriteString(r.w, "\r"+ansi.HideCursor)
	return err
}

// Draw replaces the previous frame with f in a single write.
func (r *Renderer) Draw(f Frame) error {
	width, height := f.Width, f.Height
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}

	r.view.Height = max(1, min(r.pageSize, height-chromeRows))
	r.view.Follow(f.Selected, len(f.Items))

	lines := r.lines(f, width-1)

	var b strings.Builder
	r.erase(&b)
	b.WriteString(strings.Join(lines, "\r\n"))

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	r.drawn = len(lines)
	return nil
}

// End erases the last frame and restores the cursor.
func (r *Renderer) End() error {
	var b strings.Builder
	r.erase(&b)
	b.WriteString(ansi.ShowCursor)
	r.drawn = 0

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Viewport returns the window used by the last Draw.
func (r *Renderer) Viewport() Viewport {
	return r.view
}

func (r *Renderer) erase(b *strings.Builder) {
	for i := 0; i < r.drawn; i++ {
		b.WriteString("\r")
		b.WriteString(ansi.EraseEntireLine)
		if i < r.drawn-1 {
			b.WriteString(ansi.CursorUp(1))
		}
	}
}

// lines renders the prompt line, the visible rows and the status line. Text
// is cut to width so no row wraps.
func (r *Renderer) lines(f Frame, width int) []string {
	width = max(width, 1)
	lines := make([]string, 0, r.view.Height+chromeRows)

	prompt := runewidth.Truncate(r.prompt, width, "…")
	line := PromptStyle.Render(prompt)
	if room := width - runewidth.StringWidth(prompt) - 1; room > 0 {
		if f.Query == "" {
			line += " " + MutedStyle.Render(runewidth.Truncate("type to filter", room, "…"))
		} else {
			line += " " + QueryStyle.Render(truncateLeft(f.Query, room))
		}
	}
	lines = append(lines, line)

	if len(f.Items) == 0 {
		lines = append(lines, MutedStyle.Render(runewidth.Truncate("  (no matches)", width, "…")))
	} else {
		start, end := r.view.Window(len(f.Items))
		for i := start; i < end; i++ {
			if i == f.Selected {
				row := runewidth.Truncate("> "+f.Items[i], width, "…")
				lines = append(lines, SelectedStyle.Render(row))
			} else {
				lines = append(lines, runewidth.Truncate("  "+f.Items[i], width, "…"))
			}
		}
	}

	lines = append(lines, r.status(f, width))
	return lines
}

func (r *Renderer) status(f Frame, width int) string {
	count := fmt.Sprintf("[%d/%d]", len(f.Items), f.Total)
	if runewidth.StringWidth(count) >= width {
		return MutedStyle.Render(runewidth.Truncate(count, width, ""))
	}

	line := MutedStyle.Render(count)
	r.help.Width = width - runewidth.StringWidth(count) - 2
	if r.help.Width > 0 {
		if h := r.help.View(r.keymap); h != "" {
			line += "  " + h
		}
	}
	return line
}

// truncateLeft keeps the tail of s, which is where the user is typing.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	rs := []rune(s)
	w := runewidth.StringWidth("…")
	i := len(rs)
	for i > 0 {
		rw := runewidth.RuneWidth(rs[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return "…" + string(rs[i:])
}
