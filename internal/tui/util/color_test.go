package util

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	if got := Hex(color.NRGBA{R: 0x12, G: 0xab, B: 0xff, A: 0x80}); got != "#12abff" {
		t.Fatalf("got %s", got)
	}
}

func TestLuminance(t *testing.T) {
	cases := []struct {
		c    color.Color
		want int
	}{
		{color.Black, 0},
		{color.White, 255},
		{color.NRGBA{R: 255, A: 255}, 76},
		{color.NRGBA{G: 255, A: 255}, 149},
		{color.Gray{Y: 200}, 200},
	}
	for _, c := range cases {
		if got := Luminance(c.c); got != c.want {
			t.Fatalf("Luminance(%v) = %d, want %d", c.c, got, c.want)
		}
	}
}

func TestRampChar(t *testing.T) {
	if RampChar(0) != ' ' || RampChar(255) != '@' {
		t.Fatalf("ramp ends wrong: %q %q", RampChar(0), RampChar(255))
	}
	if RampChar(-5) != ' ' || RampChar(999) != '@' {
		t.Fatalf("out of range values should clamp")
	}
	prev := -1
	for l := 0; l <= 255; l++ {
		i := indexOf(RampChar(l))
		if i < prev {
			t.Fatalf("ramp not monotonic at %d", l)
		}
		prev = i
	}
}

func indexOf(c byte) int {
	for i := 0; i < len(ramp); i++ {
		if ramp[i] == c {
			return i
		}
	}
	return -1
}

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if NoColor(false) {
		t.Fatalf("color should be on by default")
	}
	if !NoColor(true) {
		t.Fatalf("explicit flag should disable color")
	}
	t.Setenv("NO_COLOR", "1")
	if !NoColor(false) {
		t.Fatalf("NO_COLOR should disable color")
	}
}
