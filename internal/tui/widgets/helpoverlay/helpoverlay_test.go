package helpoverlay

import (
	"image"
	"strings"
	"testing"

	"wmark/internal/editor"
)

func TestHelpOverlayMarksDisabledKeys(t *testing.T) {
	got := NewHelpOverlay().View(editor.Session{})
	if !strings.HasPrefix(got, "Help (empty)") {
		t.Fatalf("unexpected header: %q", got)
	}
	for _, want := range []string{"add or replace text (off)", "save as watermark_<name> (off)", "select image\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestHelpOverlayWatermarked(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	got := NewHelpOverlay().View(editor.Session{Path: "a.png", Source: img, Working: img, Text: "x", Unsaved: true})
	if strings.Contains(got, "clear text (off)") || strings.Contains(got, "save as watermark_<name> (off)") {
		t.Fatalf("watermarked session should enable clear and save:\n%s", got)
	}
	if !strings.Contains(got, "copy saved path (off)") {
		t.Fatalf("copy should stay off until saved:\n%s", got)
	}
}
