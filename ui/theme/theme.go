// Package theme defines the visual style model shared by the rendering
// targets. Colors are 0xRRGGBBAA values; node props carry color names
// or hex strings, which the renderers resolve through ParseColor.
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Named colors.
const (
	Black     uint32 = 0x000000FF
	White     uint32 = 0xFFFFFFFF
	Red       uint32 = 0xFF0000FF
	Green     uint32 = 0x00FF00FF
	Blue      uint32 = 0x0000FFFF
	Cyan      uint32 = 0x00FFFFFF
	Magenta   uint32 = 0xFF00FFFF
	Yellow    uint32 = 0xFFFF00FF
	Orange    uint32 = 0xFFA500FF
	SteelBlue uint32 = 0x4682B4FF
	PaleBlue  uint32 = 0x0000BBFF
	GreyBlue  uint32 = 0x005DBBFF

	AcmeYellow uint32 = 0xFFFFEAFF // warm cream body background
	AcmeText   uint32 = 0x333333FF // soft black for text
	AcmeDim    uint32 = 0x999999FF // dimmed text
	AcmeFocus  uint32 = 0x4488CCFF // calm blue for focus
)

var named = map[string]uint32{
	"black":      Black,
	"white":      White,
	"red":        Red,
	"green":      Green,
	"blue":       Blue,
	"cyan":       Cyan,
	"magenta":    Magenta,
	"yellow":     Yellow,
	"orange":     Orange,
	"steelblue":  SteelBlue,
	"paleblue":   PaleBlue,
	"greyblue":   GreyBlue,
	"acmeyellow": AcmeYellow,
	"acmetext":   AcmeText,
	"acmedim":    AcmeDim,
	"acmefocus":  AcmeFocus,
}

// Theme holds the style defaults for rendering.
type Theme struct {
	Background uint32
	Foreground uint32
	Dim        uint32
	FocusRing  uint32

	// Pad is the horizontal padding, in cells, around labels.
	Pad int
}

// Default returns the default Acme-inspired theme.
func Default() *Theme {
	return &Theme{
		Background: AcmeYellow,
		Foreground: AcmeText,
		Dim:        AcmeDim,
		FocusRing:  AcmeFocus,
		Pad:        1,
	}
}

// ParseColor parses a color string. Supports:
//   - Named colors: "red", "steelblue", "orange", ...
//   - CSS hex: "#f80", "#ff8800"
//   - Plan 9 hex: "0xFF8800FF"
//
// Names are case-insensitive.
func ParseColor(s string) (uint32, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, true
	}
	switch {
	case strings.HasPrefix(s, "#"):
		h := s[1:]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if len(h) != 6 {
			return 0, false
		}
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v)<<8 | 0xFF, true
	case strings.HasPrefix(s, "0x"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil || len(s) != 10 {
			return 0, false
		}
		return uint32(v), true
	}
	return 0, false
}

// Hex formats c as a CSS "#rrggbb" string. Alpha is dropped.
func Hex(c uint32) string {
	return fmt.Sprintf("#%06x", c>>8)
}

// Contrast returns Black or White, whichever reads better on bg.
func Contrast(bg uint32) uint32 {
	r := float64(bg>>24&0xFF) / 255
	g := float64(bg>>16&0xFF) / 255
	b := float64(bg>>8&0xFF) / 255
	// Rec. 601 luma
	if 0.299*r+0.587*g+0.114*b > 0.55 {
		return Black
	}
	return White
}

// Resolve parses s and falls back to def when s is not a color.
func Resolve(s string, def uint32) uint32 {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return def
}
