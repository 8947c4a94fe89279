package value

import (
	"fmt"
	"math"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Color is an RGBA value, with the original hex/keyword spelling kept
// around so output prefers the form the author wrote (spec §3: "Color
// (RGBA, with optional original hex/keyword form preserved for
// output)"). R/G/B/A are all in [0, 1], matching csscolorparser's
// range so lifting and re-serializing never needs a rescale.
type Color struct {
	R, G, B, A float64
	Orig       string
	HasOrig    bool
}

func (Color) Kind() Kind { return KindColor }

func (c Color) CSS() string {
	if c.HasOrig {
		return c.Orig
	}
	return c.hexOrRGBA()
}

func (c Color) hexOrRGBA() string {
	if c.A >= 0.999999 {
		r, g, b := c.byte(c.R), c.byte(c.G), c.byte(c.B)
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.byte(c.R), c.byte(c.G), c.byte(c.B), formatFloat(c.A))
}

func (c Color) byte(f float64) int {
	v := int(math.Round(clamp01(f) * 255))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ParseColor lifts CSS color syntax (#hex, rgb(), hsl(), named colors)
// to a Color, via csscolorparser — the battle-tested parser the
// teacher already reaches for in its documentColor handler.
func ParseColor(text string) (Color, error) {
	parsed, err := csscolorparser.Parse(strings.TrimSpace(text))
	if err != nil {
		return Color{}, err
	}
	return Color{R: parsed.R, G: parsed.G, B: parsed.B, A: parsed.A, Orig: text, HasOrig: true}, nil
}

// NewColorRGBA builds a Color with no preserved original spelling —
// used by functions that construct colors from components (rgb(),
// hsl(), mix(), ...).
func NewColorRGBA(r, g, b, a float64) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: clamp01(a)}
}

// ToHSLA converts the color to hue (degrees, 0-360), saturation,
// lightness, and alpha (all 0-1 except hue).
func (c Color) ToHSLA() (h, s, l, a float64) {
	r, g, b := c.R, c.G, c.B
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l, c.A
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l, c.A
}

// ColorFromHSLA builds a Color from hue (degrees), saturation,
// lightness, and alpha.
func ColorFromHSLA(h, s, l, a float64) Color {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}
	return NewColorRGBA(r, g, b, a)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
