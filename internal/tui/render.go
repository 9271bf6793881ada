package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/studiowebux/blueline/internal/editor"
	"github.com/studiowebux/blueline/internal/render"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
	colorBar    = lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}
)

// Style definitions
var (
	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#add8e6", Dark: "#264f78"})

	styleCursorBlock = lipgloss.NewStyle().Reverse(true)

	styleCursorBar = lipgloss.NewStyle().Underline(true).Bold(true)

	styleGutter = lipgloss.NewStyle().Foreground(colorGray)

	styleGutterActive = lipgloss.NewStyle().Foreground(colorCyan)

	styleFiller = lipgloss.NewStyle().Foreground(colorGray)

	styleStatusBar = lipgloss.NewStyle().Background(colorBar)

	styleMode = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#000000"))

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	styleError = lipgloss.NewStyle().Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleExecuting = lipgloss.NewStyle().Foreground(colorCyan)
)

var modeColors = map[string]lipgloss.AdaptiveColor{
	editor.Normal.String():  {Light: "#008b8b", Dark: "#00afaf"},
	editor.Insert.String():  {Light: "#006400", Dark: "#5fd75f"},
	editor.Visual.String():  {Light: "#b8860b", Dark: "#d7af00"},
	editor.Command.String(): {Light: "#555555", Dark: "#a8a8a8"},
}

// mark paints cells [from, to) of a row. Later marks win.
type mark struct {
	from, to int
	style    lipgloss.Style
}

// paint renders a whole frame: content rows, then the status bar.
func paint(f *render.Frame, spin string) string {
	lines := make([]string, 0, len(f.Rows)+1)
	for i, row := range f.Rows {
		lines = append(lines, paintRow(row, i, f))
	}
	lines = append(lines, paintStatus(f.Status, f.Width, spin))
	return strings.Join(lines, "\n")
}

func paintRow(row render.Row, index int, f *render.Frame) string {
	gw := ansi.StringWidth(row.Gutter)
	textW := max(0, f.Width-gw)

	gutter := styleGutter
	if row.Active {
		gutter = styleGutterActive
	}

	if row.Filler {
		return gutter.Render(row.Gutter) + styleFiller.Render(row.Text)
	}

	var marks []mark
	if row.Selection != nil {
		marks = append(marks, mark{row.Selection.From, row.Selection.To, styleSelected})
	}
	if index == f.Cursor.Row && row.Active && f.Cursor.Style != render.CursorHidden {
		col := f.Cursor.Col - gw
		marks = append(marks, mark{col, col + 1, cursorStyle(f.Cursor.Style)})
	}
	return gutter.Render(row.Gutter) + paintCells(row.Text, textW, marks)
}

func cursorStyle(s render.CursorStyle) lipgloss.Style {
	if s == render.CursorBar {
		return styleCursorBar
	}
	return styleCursorBlock
}

// paintCells styles text cell ranges. Text is padded with spaces so marks
// past the end of the line, like a cursor at end of line, stay visible.
func paintCells(text string, width int, marks []mark) string {
	if len(marks) == 0 {
		return text
	}
	end := ansi.StringWidth(text)
	for _, m := range marks {
		end = max(end, min(m.to, width))
	}
	if pad := end - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}

	cuts := []int{0, end}
	for _, m := range marks {
		cuts = append(cuts, max(0, min(m.from, end)), max(0, min(m.to, end)))
	}
	sort.Ints(cuts)

	var sb strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]
		if a == b {
			continue
		}
		part := ansi.Cut(text, a, b)
		if st, ok := styleAt(marks, a); ok {
			part = st.Render(part)
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func styleAt(marks []mark, cell int) (lipgloss.Style, bool) {
	for i := len(marks) - 1; i >= 0; i-- {
		if cell >= marks[i].from && cell < marks[i].to {
			return marks[i].style, true
		}
	}
	return lipgloss.Style{}, false
}

// paintStatus renders the bottom bar: mode badge and message on the left,
// the last response summary (or the executing spinner) on the right. In
// Command mode the bar is the command line.
func paintStatus(st render.Status, width int, spin string) string {
	bar := styleStatusBar.Width(width).MaxWidth(width)

	if st.Command {
		text := ":" + st.CommandText
		marks := []mark{{1 + st.CommandCursor, 2 + st.CommandCursor, styleCursorBlock}}
		return bar.Render(paintCells(ansi.Truncate(text, max(0, width-1), ""), width, marks))
	}

	right := statusRight(st.Right, spin)
	rw := ansi.StringWidth(right)

	left := styleMode.Background(modeColors[st.Mode]).Render(st.Mode)
	if st.Left != "" {
		msg := st.Left
		if st.IsError {
			msg = styleError.Render(msg)
		}
		left += " " + msg
	}
	left = ansi.Truncate(left, max(0, width-rw-1), "…")

	gap := max(1, width-ansi.StringWidth(left)-rw)
	return bar.Render(left + strings.Repeat(" ", gap) + right)
}

func statusRight(right, spin string) string {
	switch {
	case right == "":
		return ""
	case right == editor.ExecutingIndicator:
		return spin + " " + styleExecuting.Render(right)
	case strings.HasPrefix(right, "Error"):
		return styleError.Render(right)
	case strings.HasPrefix(right, "2"):
		return styleSuccess.Render(right)
	default:
		return styleWarning.Render(right)
	}
}
