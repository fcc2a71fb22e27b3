package statusbar

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wmark/internal/editor"
	"wmark/internal/tui/util"
)

type StatusBar struct {
	palette util.Palette
	noColor bool
}

func NewStatusBar() StatusBar {
	return StatusBar{palette: util.DefaultPalette(), noColor: util.NoColor(false)}
}

// WithNoColor returns a copy that renders plain text.
func (s StatusBar) WithNoColor(v bool) StatusBar {
	s.noColor = v
	return s
}

// View composes a one-line summary of the session: phase, file, text, save
// state, preview geometry and the last notice.
func (s StatusBar) View(sess editor.Session, previewInfo string) string {
	phase := "[" + strings.ToUpper(sess.Phase().String()) + "]"
	parts := []string{s.paint(phase, s.palette.Phase)}
	if sess.Path != "" {
		parts = append(parts, filepath.Base(sess.Path))
	}
	if sess.Text != "" {
		parts = append(parts, fmt.Sprintf("text: %q", sess.Text))
	}
	switch {
	case editor.CanSave(sess):
		parts = append(parts, s.paint("unsaved", s.palette.Unsaved))
	case sess.SavedTo != "":
		parts = append(parts, s.paint("saved → "+sess.SavedTo, s.palette.Saved))
	}
	if previewInfo != "" {
		parts = append(parts, s.paint(previewInfo, s.palette.Muted))
	}
	if sess.Notice != "" {
		parts = append(parts, sess.Notice)
	}
	return strings.Join(parts, "  ")
}

func (s StatusBar) paint(text string, c lipgloss.Color) string {
	if s.noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(c).Render(text)
}
