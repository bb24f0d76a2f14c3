// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/colornames"

	"trellisui.org/config"
	"trellisui.org/widget"
)

// paletteFrom resolves the configured color names into concrete
// styles. Unknown names fall back to a monochrome scheme.
func paletteFrom(th config.Theme) widget.Palette {
	fg := themeColor(th.Foreground, tcell.ColorWhite)
	bg := themeColor(th.Background, tcell.ColorBlack)
	accent := themeColor(th.Accent, tcell.ColorBlue)
	base := tcell.StyleDefault.Foreground(fg).Background(bg)
	return widget.Palette{
		Base:     base,
		Accent:   base.Foreground(accent),
		Disabled: base.Dim(true),
	}
}

// themeColor resolves an SVG 1.1 color name.
func themeColor(name string, fallback tcell.Color) tcell.Color {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return fallback
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
