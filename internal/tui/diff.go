package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffDelChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Strikethrough(true)
	diffAddChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
)

// renderTextChange shows how replacing watermark text before with after
// changed it, character by character. Without colour, deletions are written
// as [-x-] and insertions as {+y+}.
func renderTextChange(before, after string, noColor bool) string {
	if before == after {
		return after
	}
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	d.DiffCleanupSemantic(diffs)
	var sb strings.Builder
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			if noColor {
				sb.WriteString("[-" + df.Text + "-]")
			} else {
				sb.WriteString(diffDelChar.Render(df.Text))
			}
		case dmp.DiffInsert:
			if noColor {
				sb.WriteString("{+" + df.Text + "+}")
			} else {
				sb.WriteString(diffAddChar.Render(df.Text))
			}
		case dmp.DiffEqual:
			sb.WriteString(df.Text)
		}
	}
	return sb.String()
}
