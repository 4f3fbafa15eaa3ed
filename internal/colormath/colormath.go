// Package colormath holds the color conversions used to theme charts:
// hex/rgb parsing, HSL shifts, channel adjustment, blending and contrast.
//
// Every function is total. Input that cannot be parsed as a color is handed
// back unchanged, so callers can chain transforms without error plumbing.
package colormath

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B int
}

// HSL holds hue in degrees [0,360) and saturation/lightness in [0,1].
type HSL struct {
	H, S, L float64
}

// HSLShift is an additive delta applied by Shift. H is in degrees.
type HSLShift struct {
	H, S, L float64
}

const (
	DarkText  = "#0f172a"
	LightText = "#f8fafc"
)

var (
	hexPattern = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{4}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	rgbPattern = regexp.MustCompile(`^rgba?\(\s*([-+]?[\d.]+)\s*,\s*([-+]?[\d.]+)\s*,\s*([-+]?[\d.]+)\s*(?:,\s*[-+]?[\d.]+%?\s*)?\)$`)
)

// Normalize converts 3/4/6/8-digit hex and rgb()/rgba() notations to
// lowercase "#rrggbb". Alpha is discarded. ok is false when color is not
// recognised.
func Normalize(color string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(color))
	if v == "" {
		return "", false
	}

	if m := hexPattern.FindStringSubmatch(v); m != nil {
		digits := m[1]
		switch len(digits) {
		case 3, 4:
			return "#" + strings.Repeat(digits[0:1], 2) + strings.Repeat(digits[1:2], 2) + strings.Repeat(digits[2:3], 2), true
		default:
			return "#" + digits[:6], true
		}
	}

	if m := rgbPattern.FindStringSubmatch(v); m != nil {
		var ch [3]float64
		for i := 0; i < 3; i++ {
			f, err := strconv.ParseFloat(m[i+1], 64)
			if err != nil {
				return "", false
			}
			ch[i] = f
		}
		return RGBToHex(ch[0], ch[1], ch[2]), true
	}

	return "", false
}

// HexToRGB parses any notation Normalize accepts.
func HexToRGB(color string) (RGB, bool) {
	hex, ok := Normalize(color)
	if !ok {
		return RGB{}, false
	}
	n, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, true
}

// RGBToHex clamps each channel to [0,255], rounds, and formats "#rrggbb".
func RGBToHex(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b))
}

func channel(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(clamp(v, 0, 255)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func parse(color string) (colorful.Color, bool) {
	hex, ok := Normalize(color)
	if !ok {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// HexToHSL converts a color to HSL.
func HexToHSL(color string) (HSL, bool) {
	c, ok := parse(color)
	if !ok {
		return HSL{}, false
	}
	h, s, l := c.Hsl()
	return HSL{H: h, S: s, L: l}, true
}

// HSLToHex wraps the hue into [0,360) and clamps s and l before converting.
func HSLToHex(v HSL) string {
	h := math.Mod(v.H, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, clamp(v.S, 0, 1), clamp(v.L, 0, 1))
	return c.Clamped().Hex()
}

// Shift moves a color in HSL space. Hue wraps; saturation and lightness clamp.
func Shift(color string, d HSLShift) string {
	hsl, ok := HexToHSL(color)
	if !ok {
		return color
	}
	return HSLToHex(HSL{H: hsl.H + d.H, S: hsl.S + d.S, L: hsl.L + d.L})
}

// Adjust adds round(255*factor) to every channel. Positive factors lighten.
func Adjust(color string, factor float64) string {
	rgb, ok := HexToRGB(color)
	if !ok {
		return color
	}
	delta := math.Round(255 * factor)
	return RGBToHex(float64(rgb.R)+delta, float64(rgb.G)+delta, float64(rgb.B)+delta)
}

// Mix linearly interpolates from a (t=0) to b (t=1) in RGB. t is clamped.
// When either side is unparseable a is returned as given.
func Mix(a, b string, t float64) string {
	ca, okA := parse(a)
	cb, okB := parse(b)
	if !okA || !okB {
		return a
	}
	if math.IsNaN(t) {
		t = 0
	}
	return ca.BlendRgb(cb, clamp(t, 0, 1)).Clamped().Hex()
}

// ToRGBA renders "rgba(r, g, b, alpha)" with alpha clamped to [0,1].
func ToRGBA(color string, alpha float64) string {
	rgb, ok := HexToRGB(color)
	if !ok {
		return color
	}
	a := strconv.FormatFloat(clamp(alpha, 0, 1), 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb.R, rgb.G, rgb.B, a)
}

// Luminance is the perceived brightness of color in [0,1].
func Luminance(color string) (float64, bool) {
	rgb, ok := HexToRGB(color)
	if !ok {
		return 0, false
	}
	return (0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B)) / 255, true
}

// ReadableText picks dark text for light backgrounds and light text
// otherwise. Unparseable backgrounds get light text.
func ReadableText(background string) string {
	if lum, ok := Luminance(background); ok && lum > 0.6 {
		return DarkText
	}
	return LightText
}
