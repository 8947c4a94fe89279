package funclib

import "lessc.dev/lessc/internal/value"

// registerList implements the list accessors spec §4.2 names (length,
// extract). LESS has no dedicated list Value kind (spec §3's Value
// variant has none) — a "list" is just the comma-separated argument
// sequence at the call site, so these operate directly on args.
func registerList(l *Library) {
	l.Register("length", ".+", func(args []value.Value) (value.Value, error) {
		return value.Number{N: float64(len(args))}, nil
	})
	l.Register("extract", ".+", func(args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return nil, argError("extract() requires a list and an index")
		}
		idxVal := args[len(args)-1]
		n, _, _ := numericParts(idxVal)
		idx := int(n)
		items := args[:len(args)-1]
		if idx < 1 || idx > len(items) {
			return nil, argError("extract() index %d out of range for a %d-element list", idx, len(items))
		}
		return items[idx-1], nil
	})
}
