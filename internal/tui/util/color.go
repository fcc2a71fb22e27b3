package util

import (
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette is the small set of colors shared by the status bar and help.
type Palette struct {
	Phase   lipgloss.Color
	Unsaved lipgloss.Color
	Saved   lipgloss.Color
	Muted   lipgloss.Color
}

func DefaultPalette() Palette {
	return Palette{
		Phase:   lipgloss.Color("#3D6DFF"),
		Unsaved: lipgloss.Color("#F0AD4E"),
		Saved:   lipgloss.Color("#2AA876"),
		Muted:   lipgloss.Color("#6C757D"),
	}
}

// Hex converts any color to a lipgloss #rrggbb color, dropping alpha.
func Hex(c color.Color) lipgloss.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B))
}

// Luminance is the Rec. 601 luma of c in 0..255.
func Luminance(c color.Color) int {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return (299*int(n.R) + 587*int(n.G) + 114*int(n.B)) / 1000
}

const ramp = " .:-=+*#%@"

// RampChar maps a 0..255 luminance to an ASCII shade, dark to light.
func RampChar(l int) byte {
	if l < 0 {
		l = 0
	}
	if l > 255 {
		l = 255
	}
	return ramp[l*(len(ramp)-1)/255]
}
