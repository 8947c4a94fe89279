package funclib

import "lessc.dev/lessc/internal/value"

func registerTypeTests(l *Library) {
	l.Register("isnumber", ".", kindTest(value.KindNumber, value.KindDimension, value.KindPercentage))
	l.Register("isstring", ".", kindTest(value.KindString))
	l.Register("iscolor", ".", kindTest(value.KindColor))
	l.Register("iskeyword", ".", kindTest(value.KindKeyword))
	l.Register("isurl", ".", kindTest(value.KindURL))
	l.Register("ispercentage", ".", kindTest(value.KindPercentage))
	l.Register("ispixel", ".", unitTest("px"))
	l.Register("isem", ".", unitTest("em"))
}

func kindTest(kinds ...value.Kind) Handler {
	return func(args []value.Value) (value.Value, error) {
		k := args[0].Kind()
		for _, want := range kinds {
			if k == want {
				return value.Bool{B: true}, nil
			}
		}
		return value.Bool{B: false}, nil
	}
}

func unitTest(unit string) Handler {
	return func(args []value.Value) (value.Value, error) {
		d, ok := args[0].(value.Dimension)
		return value.Bool{B: ok && d.Unit == unit}, nil
	}
}
