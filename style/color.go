// Package style holds the user-selectable look of a QR code: the two fill
// colors and the drawing primitives used for eyes and body modules.
package style

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrInvalidColor is returned when a color string is not of the form #rrggbb.
var ErrInvalidColor = errors.New("invalid hex color")

// Color is an RGB triple. The zero value is black.
type Color struct {
	R, G, B uint8
}

var (
	// Black is the default foreground.
	Black = Color{0, 0, 0}
	// White is the default background.
	White = Color{255, 255, 255}
)

// ParseHex converts "#rrggbb" (the leading "#" is optional, digits are
// case-insensitive) into a Color. Surrounding whitespace is not accepted.
func ParseHex(s string) (Color, error) {
	v := strings.TrimPrefix(s, "#")
	if len(v) != 6 {
		return Color{}, fmt.Errorf("%w: %q: want 6 hex digits, got %d", ErrInvalidColor, s, len(v))
	}
	b, err := hex.DecodeString(v)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

// Hex returns the lowercase "#rrggbb" form of c.
func (c Color) Hex() string {
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B})
}

// RGBA returns c as an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c Color) String() string {
	return c.Hex()
}
