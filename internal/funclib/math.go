package funclib

import (
	"math"

	"lessc.dev/lessc/internal/value"
)

// numericParts extracts (value, unit, kind) from a Number, Dimension,
// or Percentage Value.
func numericParts(v value.Value) (n float64, unit string, kind value.Kind) {
	switch t := v.(type) {
	case value.Number:
		return t.N, "", value.KindNumber
	case value.Dimension:
		return t.N, t.Unit, value.KindDimension
	case value.Percentage:
		return t.N, "%", value.KindPercentage
	}
	return 0, "", value.KindNumber
}

func rewrap(n float64, unit string, kind value.Kind) value.Value {
	switch kind {
	case value.KindDimension:
		return value.Dimension{N: n, Unit: unit}
	case value.KindPercentage:
		return value.Percentage{N: n}
	default:
		return value.Number{N: n}
	}
}

func registerMath(l *Library) {
	l.Register("ceil", "N", func(args []value.Value) (value.Value, error) {
		n, unit, kind := numericParts(args[0])
		return rewrap(math.Ceil(n), unit, kind), nil
	})
	l.Register("floor", "N", func(args []value.Value) (value.Value, error) {
		n, unit, kind := numericParts(args[0])
		return rewrap(math.Floor(n), unit, kind), nil
	})
	l.Register("sqrt", "N", func(args []value.Value) (value.Value, error) {
		n, unit, kind := numericParts(args[0])
		if n < 0 {
			return nil, argError("sqrt of a negative number")
		}
		return rewrap(math.Sqrt(n), unit, kind), nil
	})
	l.Register("abs", "N", func(args []value.Value) (value.Value, error) {
		n, unit, kind := numericParts(args[0])
		return rewrap(math.Abs(n), unit, kind), nil
	})
	l.Register("round", "N", func(args []value.Value) (value.Value, error) {
		n, unit, kind := numericParts(args[0])
		return rewrap(roundHalfUp(n, 0), unit, kind), nil
	})
	l.Register("round", "NN", func(args []value.Value) (value.Value, error) {
		n, unit, kind := numericParts(args[0])
		d, _, _ := numericParts(args[1])
		return rewrap(roundHalfUp(n, int(d)), unit, kind), nil
	})
	l.Register("percentage", "N", func(args []value.Value) (value.Value, error) {
		n, _, _ := numericParts(args[0])
		return value.Percentage{N: n * 100}, nil
	})
	l.Register("pi", "", func(args []value.Value) (value.Value, error) {
		return value.Number{N: math.Pi}, nil
	})
	l.Register("pow", "NN", func(args []value.Value) (value.Value, error) {
		n, unit, kind := numericParts(args[0])
		e, _, _ := numericParts(args[1])
		return rewrap(math.Pow(n, e), unit, kind), nil
	})
	l.Register("mod", "NN", func(args []value.Value) (value.Value, error) {
		n, unit, kind := numericParts(args[0])
		m, _, _ := numericParts(args[1])
		if m == 0 {
			return nil, argError("mod by zero")
		}
		return rewrap(math.Mod(n, m), unit, kind), nil
	})
	l.Register("min", "N+", minmax(func(a, b float64) bool { return a < b }))
	l.Register("max", "N+", minmax(func(a, b float64) bool { return a > b }))

	l.Register("sin", "N", trigIn(math.Sin))
	l.Register("cos", "N", trigIn(math.Cos))
	l.Register("tan", "N", trigIn(math.Tan))
	l.Register("asin", "N", trigOut(math.Asin))
	l.Register("acos", "N", trigOut(math.Acos))
	l.Register("atan", "N", trigOut(math.Atan))

	l.Register("unit", "N", func(args []value.Value) (value.Value, error) {
		n, _, _ := numericParts(args[0])
		return value.Number{N: n}, nil
	})
	l.Register("unit", "N.", func(args []value.Value) (value.Value, error) {
		n, _, _ := numericParts(args[0])
		return value.Dimension{N: n, Unit: unitText(args[1])}, nil
	})
	l.Register("get-unit", "N", func(args []value.Value) (value.Value, error) {
		_, unit, _ := numericParts(args[0])
		return value.Unit{Name: unit}, nil
	})
	l.Register("isunit", "N.", func(args []value.Value) (value.Value, error) {
		_, unit, _ := numericParts(args[0])
		return value.Bool{B: unit == unitText(args[1])}, nil
	})
	l.Register("convert", "N.", func(args []value.Value) (value.Value, error) {
		n, unit, kind := numericParts(args[0])
		target := unitText(args[1])
		if !value.SameGroup(unit, target) {
			// spec §4.2/§9: cross-group convert() returns the input
			// unchanged, not an error.
			return args[0], nil
		}
		return rewrap(value.ConvertUnit(n, unit, target), target, kind), nil
	})
}

func unitText(v value.Value) string {
	switch t := v.(type) {
	case value.Unit:
		return t.Name
	case value.Keyword:
		return t.Name
	case value.Str:
		return t.Text
	default:
		return v.CSS()
	}
}

func roundHalfUp(x float64, d int) float64 {
	scale := math.Pow(10, float64(d))
	return math.Floor(x*scale+0.5) / scale
}

// trigIn normalizes a Dimension operand to radians before calling fn,
// so sin(90deg) and sin(1.5708) both evaluate the same underlying
// function; the result is always a bare Number (spec §4.2: "output of
// sin/cos/tan is Number (unit stripped)").
func trigIn(fn func(float64) float64) Handler {
	return func(args []value.Value) (value.Value, error) {
		n, unit, _ := numericParts(args[0])
		rad := n
		if unit != "" {
			if !value.SameGroup(unit, "rad") {
				return nil, argError("expected an angle unit, got %q", unit)
			}
			rad = value.ConvertUnit(n, unit, "rad")
		}
		return value.Number{N: fn(rad)}, nil
	}
}

// trigOut produces a Dimension in rad (spec §4.2: "asin/acos/atan
// produce Dimension in rad").
func trigOut(fn func(float64) float64) Handler {
	return func(args []value.Value) (value.Value, error) {
		n, _, _ := numericParts(args[0])
		return value.Dimension{N: fn(n), Unit: "rad"}, nil
	}
}

func minmax(better func(a, b float64) bool) Handler {
	return func(args []value.Value) (value.Value, error) {
		best := args[0]
		bestN, bestUnit, _ := numericParts(best)
		for _, a := range args[1:] {
			n, unit, _ := numericParts(a)
			cmp := n
			if unit != bestUnit && value.SameGroup(unit, bestUnit) {
				cmp = value.ConvertUnit(n, unit, bestUnit)
			}
			if better(cmp, bestN) {
				best, bestN, bestUnit = a, cmp, bestUnit
			}
		}
		return best, nil
	}
}
