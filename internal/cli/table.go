package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/ui"
)

// DefaultTableWindow is the largest table rendered in full; longer
// sequences show their top-left corner.
const DefaultTableWindow = 40

type tableStyles struct {
	header lipgloss.Style
	pair   lipgloss.Style
	path   lipgloss.Style
	cell   lipgloss.Style
	empty  lipgloss.Style
}

func newTableStyles(p ui.Palette) tableStyles {
	return tableStyles{
		header: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		pair:   lipgloss.NewStyle().Foreground(p.Pair).Bold(true),
		path:   lipgloss.NewStyle().Foreground(p.Path),
		cell:   lipgloss.NewStyle().Foreground(p.Text),
		empty:  lipgloss.NewStyle().Foreground(p.Dim),
	}
}

// RenderTable draws the upper triangle of the score table with the
// sequence along both axes. Cells of chosen pairs and the remaining
// traceback path are highlighted. window caps the rendered size; 0 means
// DefaultTableWindow.
func RenderTable(seq nussinov.Sequence, table *nussinov.Table, st *nussinov.Structure, window int) string {
	n := table.Size()
	if n == 0 {
		return "(empty table)\n"
	}
	if window <= 0 {
		window = DefaultTableWindow
	}
	shown := min(n, window)

	onPath := make(map[nussinov.Cell]bool)
	var pairs nussinov.Pairing
	if st != nil {
		for _, c := range st.Path {
			onPath[c] = true
		}
		pairs = st.Pairs
	}

	width := max(len(strconv.Itoa(table.Score())), 1) + 1
	styles := newTableStyles(ui.CurrentPalette())
	pad := func(s string) string { return fmt.Sprintf("%*s", width, s) }

	var b strings.Builder
	b.WriteString("  ")
	for j := range shown {
		b.WriteString(styles.header.Render(pad(string(seq[j]))))
	}
	b.WriteByte('\n')

	for i := range shown {
		b.WriteString(styles.header.Render(string(seq[i])))
		b.WriteByte(' ')
		for j := range shown {
			if j < i {
				b.WriteString(styles.empty.Render(pad("·")))
				continue
			}
			v := pad(strconv.Itoa(table.At(i, j)))
			switch {
			case pairs.Contains(i, j):
				b.WriteString(styles.pair.Render(v))
			case onPath[nussinov.Cell{I: i, J: j}]:
				b.WriteString(styles.path.Render(v))
			default:
				b.WriteString(styles.cell.Render(v))
			}
		}
		b.WriteByte('\n')
	}
	if shown < n {
		fmt.Fprintf(&b, "(showing %d of %d rows and columns)\n", shown, n)
	}
	return b.String()
}
