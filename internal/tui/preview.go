package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wmark/internal/tui/util"
)

// renderHalfBlocks draws img with one terminal cell per pixel column and two
// pixel rows: the upper pixel is the foreground of "▀", the lower one the
// background. With noColor each cell is a luminance character instead.
func renderHalfBlocks(img image.Image, noColor bool) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.At(x, y)
			if noColor {
				l := util.Luminance(top)
				if y+1 < b.Max.Y {
					l = (l + util.Luminance(img.At(x, y+1))) / 2
				}
				sb.WriteByte(util.RampChar(l))
				continue
			}
			st := lipgloss.NewStyle().Foreground(util.Hex(top))
			if y+1 < b.Max.Y {
				st = st.Background(util.Hex(img.At(x, y+1)))
			}
			sb.WriteString(st.Render("▀"))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
