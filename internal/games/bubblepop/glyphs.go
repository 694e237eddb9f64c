package bubblepop

import (
	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// Color assist shapes. Each palette color gets a distinct shape so bubbles
// can be told apart without relying on hue.
var colorGlyphs = map[core.BubbleColor]rune{
	core.ColorBlue:   '■',
	core.ColorGreen:  '●',
	core.ColorYellow: '◆',
	core.ColorPink:   '♥',
	core.ColorRed:    '▲',
	core.ColorPurple: '★',
}

var contentGlyphs = map[string]rune{
	"flower":    '✿',
	"carrot":    'v',
	"apple":     'a',
	"shell":     '@',
	"starfish":  '*',
	"pail":      'u',
	"lollipop":  'o',
	"jellybean": '0',
	"cupcake":   'c',
	"star":      '☆',
	"planet":    'O',
	"comet":     '~',
	"rainbow":   '≈',
	"disco":     '✦',
	"giggle":    '☺',
	"freeze":    '❄',
	"mud":       '!',
	"thorns":    '#',
	"slime":     '%',
	"ice":       '□',
}

var kindGlyphs = map[core.Kind]rune{
	core.KindColor:   '●',
	core.KindItem:    '+',
	core.KindSpecial: '✦',
	core.KindAvoider: '!',
}

// Glyph returns the color assist shape drawn at the center of a bubble.
func Glyph(b core.Bubble) rune {
	if b.Kind == core.KindColor {
		if r, ok := colorGlyphs[b.Color]; ok {
			return r
		}
	} else if r, ok := contentGlyphs[b.ContentKey]; ok {
		return r
	}
	return kindGlyphs[b.Kind]
}

var contentColors = map[string]platformcore.Color{
	"flower":    platformcore.ColorPink,
	"carrot":    platformcore.ColorOrange,
	"apple":     platformcore.ColorRed,
	"shell":     platformcore.ColorWhite,
	"starfish":  platformcore.ColorOrange,
	"pail":      platformcore.ColorBlue,
	"lollipop":  platformcore.ColorPink,
	"jellybean": platformcore.ColorGreen,
	"cupcake":   platformcore.ColorYellow,
	"star":      platformcore.ColorYellow,
	"planet":    platformcore.ColorOrange,
	"comet":     platformcore.ColorCyan,
	"mud":       platformcore.ColorBrown,
	"thorns":    platformcore.ColorGreen,
	"slime":     platformcore.ColorGreen,
	"ice":       platformcore.ColorCyan,
}

// BubbleColor returns the screen color of a bubble.
// Specials always render white so they stand out.
func BubbleColor(b core.Bubble) platformcore.Color {
	switch b.Kind {
	case core.KindColor:
		return platformcore.ParseColor(string(b.Color))
	case core.KindSpecial:
		return platformcore.ColorWhite
	}
	if c, ok := contentColors[b.ContentKey]; ok {
		return c
	}
	return platformcore.ColorGray
}
