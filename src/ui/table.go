package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Column describes one table column. Width pins the column; zero means fit the
// content up to the renderer's cell limit. Style picks the style of a cell from
// its text and may be nil.
type Column struct {
	Header string
	Width  int
	Style  func(cell string) lipgloss.Style
}

// columns never shrink below this when fitting the terminal
const minColumnWidth = 4

// EntryHeaders is the column order of journal tables.
var EntryHeaders = []string{"No.", "Date", "Title", "Events", "Feelings", "Mood", "Forget", "Notes"}

// EntryColumns are the journal table columns with their styles.
func (r *Renderer) EntryColumns() []Column {
	fixed := func(s lipgloss.Style) func(string) lipgloss.Style {
		return func(string) lipgloss.Style { return s }
	}
	plain := lipgloss.NewStyle()
	return []Column{
		{Header: EntryHeaders[0], Width: 4, Style: fixed(lipgloss.NewStyle().Foreground(lipgloss.Color("6")))},
		{Header: EntryHeaders[1], Style: fixed(lipgloss.NewStyle().Foreground(lipgloss.Color("5")))},
		{Header: EntryHeaders[2], Style: fixed(lipgloss.NewStyle().Foreground(lipgloss.Color("3")))},
		{Header: EntryHeaders[3], Style: fixed(plain)},
		{Header: EntryHeaders[4], Style: fixed(plain)},
		{Header: EntryHeaders[5], Style: func(cell string) lipgloss.Style {
			mood, err := strconv.Atoi(cell)
			if err != nil {
				return lipgloss.NewStyle().Bold(true)
			}
			return r.MoodStyle(mood)
		}},
		{Header: EntryHeaders[6], Style: fixed(lipgloss.NewStyle().Foreground(lipgloss.Color("1")))},
		{Header: EntryHeaders[7], Style: fixed(plain)},
	}
}

// Table renders rows as a bordered grid with a rule between every row and the
// title centred on top. Rows shorter than cols are padded with empty cells.
func (r *Renderer) Table(title string, cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}
	widths := r.columnWidths(cols, rows)

	blocks := make([]string, 0, 2*len(rows)+3)
	blocks = append(blocks, r.rule("┌", "┬", "┐", widths))

	headers := make([]string, len(cols))
	headerStyles := make([]lipgloss.Style, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
		headerStyles[i] = r.header
	}
	blocks = append(blocks, r.row(headers, widths, headerStyles))

	for _, cells := range rows {
		cells = padCells(cells, len(cols))
		styles := make([]lipgloss.Style, len(cols))
		for i, c := range cols {
			if c.Style != nil {
				styles[i] = c.Style(cells[i])
			} else {
				styles[i] = lipgloss.NewStyle()
			}
		}
		blocks = append(blocks, r.rule("├", "┼", "┤", widths), r.row(cells, widths, styles))
	}
	blocks = append(blocks, r.rule("└", "┴", "┘", widths))

	grid := strings.Join(blocks, "\n")
	if title == "" {
		return grid
	}

	total := tableWidth(widths)
	heading := r.title.Render(truncate.StringWithTail(title, uint(total), "…"))
	return lipgloss.PlaceHorizontal(total, lipgloss.Center, heading) + "\n" + grid
}

func padCells(cells []string, n int) []string {
	if len(cells) >= n {
		return cells[:n]
	}
	out := make([]string, n)
	copy(out, cells)
	return out
}

// tableWidth counts the outer borders, the separators and one space of
// padding on each side of every cell.
func tableWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w + 3
	}
	return total
}

func (r *Renderer) columnWidths(cols []Column, rows [][]string) []int {
	widths := make([]int, len(cols))
	floors := make([]int, len(cols))
	for i, c := range cols {
		_, hw := getLines(c.Header)
		floors[i] = max(hw, minColumnWidth)
		if c.Width > 0 {
			widths[i] = max(c.Width, hw)
			floors[i] = widths[i]
			continue
		}
		natural := hw
		for _, cells := range rows {
			if i >= len(cells) {
				continue
			}
			if _, w := getLines(cells[i]); w > natural {
				natural = w
			}
		}
		widths[i] = max(min(natural, r.maxCell), hw)
	}

	// give back width from the widest flexible column until the table fits
	for tableWidth(widths) > r.width {
		widest := -1
		for i := range widths {
			if cols[i].Width > 0 || widths[i] <= floors[i] {
				continue
			}
			if widest < 0 || widths[i] > widths[widest] {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		widths[widest]--
	}
	return widths
}

func (r *Renderer) rule(left, mid, right string, widths []int) string {
	segments := make([]string, len(widths))
	for i, w := range widths {
		segments[i] = strings.Repeat("─", w+2)
	}
	return r.border.Render(left + strings.Join(segments, mid) + right)
}

// row lays the wrapped cells out side by side between vertical separators that
// run the full height of the row.
func (r *Renderer) row(cells []string, widths []int, styles []lipgloss.Style) string {
	wrapped := make([][]string, len(cells))
	height := 1
	for i, cell := range cells {
		wrapped[i] = wrapCell(cell, widths[i])
		if len(wrapped[i]) > height {
			height = len(wrapped[i])
		}
	}

	sep := r.border.Render("│")
	sepBlock := strings.TrimSuffix(strings.Repeat(sep+"\n", height), "\n")

	blocks := make([]string, 0, 2*len(cells)+1)
	blocks = append(blocks, sepBlock)
	for i, lines := range wrapped {
		out := make([]string, len(lines))
		for j, line := range lines {
			pad := strings.Repeat(" ", max(0, widths[i]-ansi.PrintableRuneWidth(line)))
			out[j] = " " + styles[i].Render(line) + pad + " "
		}
		blocks = append(blocks, strings.Join(out, "\n"), sepBlock)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// getLines splits s and reports the printable width of its widest line.
func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		if w := ansi.PrintableRuneWidth(l); w > widest {
			widest = w
		}
	}
	return lines, widest
}

// wrapCell breaks text on words first and then hard-wraps anything still too long.
func wrapCell(text string, width int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	wrapped := wrap.String(wordwrap.String(text, width), width)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}
