package helpoverlay

import (
	"fmt"
	"strings"

	"wmark/internal/editor"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped key help. Keys the session does not currently allow
// are marked "(off)".
func (HelpOverlay) View(s editor.Session) string {
	type entry struct {
		key, what string
		on        bool
	}
	sections := []struct {
		title string
		keys  []entry
	}{
		{"Image", []entry{
			{"o", "select image", editor.CanSelect(s)},
			{"m", "watermark every image in a folder", true},
		}},
		{"Watermark", []entry{
			{"t", "add or replace text", editor.CanAddText(s)},
			{"c", "clear text", editor.CanClear(s)},
			{"s", "save as watermark_<name>", editor.CanSave(s)},
			{"y", "copy saved path", s.SavedTo != ""},
		}},
		{"Dialogs", []entry{
			{"enter", "confirm / open", true},
			{".", "choose current folder", true},
			{"esc", "cancel", true},
		}},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (%s)\n", s.Phase())
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, k := range sec.keys {
			off := ""
			if !k.on {
				off = " (off)"
			}
			fmt.Fprintf(&b, "  %-6s %s%s\n", k.key, k.what, off)
		}
	}
	b.WriteString("\n?/esc: close\n")
	return b.String()
}
