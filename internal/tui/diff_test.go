package tui

import (
	"strings"
	"testing"
)

func TestRenderTextChangeNoColor(t *testing.T) {
	got := renderTextChange("Hello", "Hallo", true)
	if !strings.Contains(got, "[-e-]") || !strings.Contains(got, "{+a+}") {
		t.Fatalf("missing change markers: %q", got)
	}
	if !strings.HasPrefix(got, "H") || !strings.HasSuffix(got, "llo") {
		t.Fatalf("unchanged text should be kept: %q", got)
	}
}

func TestRenderTextChangeIdentical(t *testing.T) {
	if got := renderTextChange("same", "same", true); got != "same" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderTextChangeFromEmpty(t *testing.T) {
	if got := renderTextChange("", "new", true); got != "{+new+}" {
		t.Fatalf("got %q", got)
	}
}
