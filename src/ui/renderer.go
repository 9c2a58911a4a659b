package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/ansi"
	"golang.org/x/term"
)

const (
	// DefaultWidth is used when the output is not a terminal.
	DefaultWidth = 120
	// DefaultMaxColumnWidth caps free-text columns before they wrap.
	DefaultMaxColumnWidth = 30
)

// Palette holds the configurable colours. Entries accept anything lipgloss.Color
// does, except MoodLow and MoodHigh which must be hex since they are blended.
type Palette struct {
	Border   string
	Title    string
	MoodLow  string
	MoodHigh string
	Error    string
	Warn     string
	Success  string
}

func DefaultPalette() Palette {
	return Palette{
		Border:   "#874BFD",
		Title:    "#FFF7DB",
		MoodLow:  "#F25D94",
		MoodHigh: "#73F59F",
		Error:    "#FF5F87",
		Warn:     "#EDFF82",
		Success:  "#43BF6D",
	}
}

// Options configure a Renderer. Zero values fall back to the defaults.
type Options struct {
	Width          int
	MaxColumnWidth int
	Palette        Palette
}

// Renderer turns plain rows of strings into styled terminal text. It holds no
// journal logic.
type Renderer struct {
	width   int
	maxCell int

	border    lipgloss.Style
	title     lipgloss.Style
	header    lipgloss.Style
	errStyle  lipgloss.Style
	warnStyle lipgloss.Style
	okStyle   lipgloss.Style

	moodColors []lipgloss.Color // index 0 is the lowest mood
}

// New builds a renderer, failing only if the mood colours are not valid hex.
func New(opts Options) (*Renderer, error) {
	p := opts.Palette
	def := DefaultPalette()
	if p.Border == "" {
		p.Border = def.Border
	}
	if p.Title == "" {
		p.Title = def.Title
	}
	if p.MoodLow == "" {
		p.MoodLow = def.MoodLow
	}
	if p.MoodHigh == "" {
		p.MoodHigh = def.MoodHigh
	}
	if p.Error == "" {
		p.Error = def.Error
	}
	if p.Warn == "" {
		p.Warn = def.Warn
	}
	if p.Success == "" {
		p.Success = def.Success
	}

	moods, err := moodScale(p.MoodLow, p.MoodHigh, moodSteps)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		width:      opts.Width,
		maxCell:    opts.MaxColumnWidth,
		border:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Border)),
		title:      lipgloss.NewStyle().Italic(true).Bold(true).Foreground(lipgloss.Color(p.Title)),
		header:     lipgloss.NewStyle().Bold(true),
		errStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		warnStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)),
		okStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success)),
		moodColors: moods,
	}
	if r.width <= 0 {
		r.width = DefaultWidth
	}
	if r.maxCell <= 0 {
		r.maxCell = DefaultMaxColumnWidth
	}
	return r, nil
}

// Width is the total width tables try to fit in.
func (r *Renderer) Width() int {
	return r.width
}

const moodSteps = 5

// moodScale blends low into high in Luv space, one colour per mood.
func moodScale(low, high string, steps int) ([]lipgloss.Color, error) {
	from, err := colorful.Hex(low)
	if err != nil {
		return nil, fmt.Errorf("mood colour %q: %w", low, err)
	}
	to, err := colorful.Hex(high)
	if err != nil {
		return nil, fmt.Errorf("mood colour %q: %w", high, err)
	}

	colors := make([]lipgloss.Color, steps)
	for i := range colors {
		t := 0.0
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		colors[i] = lipgloss.Color(from.BlendLuv(to, t).Hex())
	}
	return colors, nil
}

// MoodColor returns the colour for a 1..5 mood and false for anything else.
func (r *Renderer) MoodColor(mood int) (lipgloss.Color, bool) {
	if mood < 1 || mood > len(r.moodColors) {
		return "", false
	}
	return r.moodColors[mood-1], true
}

// MoodStyle styles text in the colour of mood, or leaves it plain.
func (r *Renderer) MoodStyle(mood int) lipgloss.Style {
	c, ok := r.MoodColor(mood)
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

func (r *Renderer) Error(msg string) string {
	return r.errStyle.Render(msg)
}

func (r *Renderer) Warn(msg string) string {
	return r.warnStyle.Render(msg)
}

func (r *Renderer) Success(msg string) string {
	return r.okStyle.Render(msg)
}

// Menu renders a title followed by numbered options, one per line.
func (r *Renderer) Menu(title string, options []string) string {
	lines := make([]string, 0, len(options)+1)
	lines = append(lines, r.header.Render(title))
	for i, opt := range options {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, opt))
	}
	return strings.Join(lines, "\n")
}

// Panel draws body in a rounded box with title set into the top border.
func (r *Renderer) Panel(title string, body string, bodyStyle lipgloss.Style) string {
	lines, inner := getLines(body)
	label := " " + title + " "
	labelWidth := ansi.PrintableRuneWidth(label)

	span := inner + 2
	if labelWidth > span {
		span = labelWidth
	}
	left := (span - labelWidth) / 2
	right := span - labelWidth - left

	b := lipgloss.RoundedBorder()
	out := make([]string, 0, len(lines)+2)
	out = append(out, r.border.Render(b.TopLeft+strings.Repeat(b.Top, left))+
		r.title.Render(label)+
		r.border.Render(strings.Repeat(b.Top, right)+b.TopRight))
	for _, line := range lines {
		pad := strings.Repeat(" ", span-2-ansi.PrintableRuneWidth(line))
		out = append(out, r.border.Render(b.Left)+" "+bodyStyle.Render(line)+pad+" "+r.border.Render(b.Right))
	}
	out = append(out, r.border.Render(b.BottomLeft+strings.Repeat(b.Bottom, span)+b.BottomRight))
	return strings.Join(out, "\n")
}

// TerminalWidth reports the width of f when it is a terminal, else fallback.
func TerminalWidth(f *os.File, fallback int) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
