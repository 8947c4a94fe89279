package funclib

import (
	"math"

	"lessc.dev/lessc/internal/value"
)

func registerColor(l *Library) {
	l.Register("rgb", "NNN", func(args []value.Value) (value.Value, error) {
		return rgbFrom(args[0], args[1], args[2], value.Number{N: 1}), nil
	})
	l.Register("rgba", "NNNN", func(args []value.Value) (value.Value, error) {
		return rgbFrom(args[0], args[1], args[2], args[3]), nil
	})
	l.Register("rgba", "CN", func(args []value.Value) (value.Value, error) {
		c := args[0].(value.Color)
		a, _, _ := numericParts(args[1])
		return value.NewColorRGBA(c.R, c.G, c.B, alphaScalar(a, args[1])), nil
	})

	l.Register("hsl", "NNN", func(args []value.Value) (value.Value, error) {
		h, s, lgt := hslArgs(args[0], args[1], args[2])
		return value.ColorFromHSLA(h, s, lgt, 1), nil
	})
	l.Register("hsla", "NNNN", func(args []value.Value) (value.Value, error) {
		h, s, lgt := hslArgs(args[0], args[1], args[2])
		a, _, _ := numericParts(args[3])
		return value.ColorFromHSLA(h, s, lgt, alphaScalar(a, args[3])), nil
	})

	l.Register("hue", "C", colorAccessor(func(c value.Color) float64 { h, _, _, _ := c.ToHSLA(); return h }))
	l.Register("saturation", "C", colorAccessorPct(func(c value.Color) float64 { _, s, _, _ := c.ToHSLA(); return s }))
	l.Register("lightness", "C", colorAccessorPct(func(c value.Color) float64 { _, _, lgt, _ := c.ToHSLA(); return lgt }))
	l.Register("red", "C", colorAccessor(func(c value.Color) float64 { return math.Round(c.R * 255) }))
	l.Register("green", "C", colorAccessor(func(c value.Color) float64 { return math.Round(c.G * 255) }))
	l.Register("blue", "C", colorAccessor(func(c value.Color) float64 { return math.Round(c.B * 255) }))
	l.Register("alpha", "C", func(args []value.Value) (value.Value, error) {
		return value.Number{N: args[0].(value.Color).A}, nil
	})

	l.Register("lighten", "CN", hslAdjust(func(h, s, lgt, amt float64) (float64, float64, float64) { return h, s, clampUnit(lgt + amt) }))
	l.Register("darken", "CN", hslAdjust(func(h, s, lgt, amt float64) (float64, float64, float64) { return h, s, clampUnit(lgt - amt) }))
	l.Register("saturate", "CN", hslAdjust(func(h, s, lgt, amt float64) (float64, float64, float64) { return h, clampUnit(s + amt), lgt }))
	l.Register("desaturate", "CN", hslAdjust(func(h, s, lgt, amt float64) (float64, float64, float64) { return h, clampUnit(s - amt), lgt }))
	l.Register("fadein", "CN", alphaAdjust(func(a, amt float64) float64 { return clampUnit(a + amt) }))
	l.Register("fadeout", "CN", alphaAdjust(func(a, amt float64) float64 { return clampUnit(a - amt) }))

	l.Register("mix", "CCN", func(args []value.Value) (value.Value, error) {
		return mixColors(args[0].(value.Color), args[1].(value.Color), pctArg(args[2])), nil
	})
	l.Register("mix", "CC", func(args []value.Value) (value.Value, error) {
		return mixColors(args[0].(value.Color), args[1].(value.Color), 0.5), nil
	})

	l.Register("contrast", "C", func(args []value.Value) (value.Value, error) {
		return contrastOf(args[0].(value.Color), value.NewColorRGBA(0, 0, 0, 1), value.NewColorRGBA(1, 1, 1, 1)), nil
	})
	l.Register("contrast", "CCC", func(args []value.Value) (value.Value, error) {
		return contrastOf(args[0].(value.Color), args[1].(value.Color), args[2].(value.Color)), nil
	})
}

// alphaScalar interprets a numeric alpha argument as [0,1] directly,
// unless it was written as a Percentage (rgba(r,g,b,50%)).
func alphaScalar(n float64, v value.Value) float64 {
	if _, ok := v.(value.Percentage); ok {
		return n / 100
	}
	return n
}

func rgbFrom(r, g, b, a value.Value) value.Color {
	rn, _, _ := numericParts(r)
	gn, _, _ := numericParts(g)
	bn, _, _ := numericParts(b)
	an, _, _ := numericParts(a)
	return value.NewColorRGBA(rn/255, gn/255, bn/255, alphaScalar(an, a))
}

// hslArgs normalizes hsl()'s three arguments: hue in degrees,
// saturation/lightness as 0-1 fractions regardless of whether they
// were written as bare numbers or percentages.
func hslArgs(h, s, lgt value.Value) (hue, sat, light float64) {
	hn, _, _ := numericParts(h)
	sn, _, _ := numericParts(s)
	ln, _, _ := numericParts(lgt)
	return hn, fraction(sn, s), fraction(ln, lgt)
}

func fraction(n float64, v value.Value) float64 {
	if _, ok := v.(value.Percentage); ok {
		return n / 100
	}
	return n
}

// pctArg reads an amount argument (e.g. lighten()'s second argument)
// as a 0-1 fraction: both `10%` and bare `10` mean a tenth.
func pctArg(v value.Value) float64 {
	n, _, _ := numericParts(v)
	return n / 100
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func colorAccessor(get func(value.Color) float64) Handler {
	return func(args []value.Value) (value.Value, error) {
		return value.Number{N: get(args[0].(value.Color))}, nil
	}
}

func colorAccessorPct(get func(value.Color) float64) Handler {
	return func(args []value.Value) (value.Value, error) {
		return value.Percentage{N: get(args[0].(value.Color)) * 100}, nil
	}
}

func hslAdjust(fn func(h, s, lgt, amt float64) (float64, float64, float64)) Handler {
	return func(args []value.Value) (value.Value, error) {
		c := args[0].(value.Color)
		h, s, lgt, a := c.ToHSLA()
		amt := pctArg(args[1])
		h2, s2, l2 := fn(h, s, lgt, amt)
		return value.ColorFromHSLA(h2, s2, l2, a), nil
	}
}

func alphaAdjust(fn func(a, amt float64) float64) Handler {
	return func(args []value.Value) (value.Value, error) {
		c := args[0].(value.Color)
		amt := pctArg(args[1])
		return value.NewColorRGBA(c.R, c.G, c.B, fn(c.A, amt)), nil
	}
}

// mixColors blends a over b by weight (a's share, 0-1): a plain linear
// blend of each channel, alpha included, with the same weight.
func mixColors(a, b value.Color, weight float64) value.Color {
	w := weight
	return value.NewColorRGBA(
		a.R*w+b.R*(1-w),
		a.G*w+b.G*(1-w),
		a.B*w+b.B*(1-w),
		a.A*w+b.A*(1-w),
	)
}

// contrastOf returns dark when color's luminance
// (0.2126R + 0.7152G + 0.0722B) is above 0.5, and light otherwise; the
// luminance of dark and light themselves is not compared.
func contrastOf(color, dark, light value.Color) value.Color {
	lum := 0.2126*color.R + 0.7152*color.G + 0.0722*color.B
	if lum > 0.5 {
		return dark
	}
	return light
}
