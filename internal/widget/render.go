package widget

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/i474232898/weather-lookup/internal/weather"
)

const (
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
	ansiGray  = "\x1b[90m"
	ansiReset = "\x1b[0m"
)

var icons = map[weather.IconCategory]string{
	weather.IconClear:  "☀",
	weather.IconRain:   "🌧",
	weather.IconCloudy: "☁",
}

// Renderer draws views as text panels.
type Renderer struct {
	out   io.Writer
	color bool
	width int
}

// NewRenderer writes plain text to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, width: 34}
}

// NewTerminalRenderer writes to stdout, with colors when stdout is a terminal.
func NewTerminalRenderer() *Renderer {
	fd := os.Stdout.Fd()
	r := NewRenderer(colorable.NewColorableStdout())
	r.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return r
}

// line is one row of a panel. Color is applied only when the row is written,
// so widths are always measured on the plain text.
type line struct {
	text  string
	color string
}

// Render writes one frame.
func (r *Renderer) Render(v View) error {
	var lines []line

	switch v.Kind {
	case KindSkeleton:
		lines = []line{
			{text: strings.Repeat("░", r.width/2)},
			{text: strings.Repeat("░", r.width*3/4)},
			{text: strings.Repeat("░", r.width*2/3)},
		}
	case KindError:
		lines = []line{{text: "⚠ " + v.Error, color: ansiRed}}
	case KindCard:
		c := v.Card
		lines = []line{
			{text: c.Location + "  " + icons[c.Icon]},
			{text: c.Date, color: ansiGray},
			{},
			{text: fmt.Sprintf("🌡 %s   [%s]", c.Temperature, c.ToggleLabel)},
			{text: "💧 Humidity   " + c.Humidity},
			{text: "🌬 Wind Speed " + c.Wind},
			{text: "📝 " + c.Description},
		}
	default:
		lines = []line{{text: v.Empty, color: ansiGray}}
	}

	var b strings.Builder
	if v.Hint != "" {
		b.WriteString(r.paint(ansiBlue, v.Hint+" ↓") + "\n")
	}
	if !v.SearchEnabled {
		b.WriteString(r.paint(ansiGray, "⟳ Searching…") + "\n")
	}
	b.WriteString(r.box(lines))
	if v.LastUpdated != "" {
		b.WriteString(r.paint(ansiGray, v.LastUpdated) + "\n")
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Renderer) box(lines []line) string {
	width := r.width
	for _, l := range lines {
		if w := runewidth.StringWidth(l.text); w > width {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", width+2) + "┐\n")
	for _, l := range lines {
		pad := width - runewidth.StringWidth(l.text)
		b.WriteString("│ " + r.paint(l.color, l.text) + strings.Repeat(" ", pad) + " │\n")
	}
	b.WriteString("└" + strings.Repeat("─", width+2) + "┘\n")
	return b.String()
}

func (r *Renderer) paint(code, s string) string {
	if !r.color || code == "" || s == "" {
		return s
	}
	return code + s + ansiReset
}
