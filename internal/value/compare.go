package value

import "fmt"

// CompareOp identifies a comparison operator used by guard conditions
// (spec §4.1 "Comparison").
type CompareOp string

const (
	CmpEq CompareOp = "="
	CmpLt CompareOp = "<"
	CmpGt CompareOp = ">"
	CmpGe CompareOp = ">="
	CmpLe CompareOp = "<="
	// CmpLe2 is the alternate LESS spelling `=<` for <=.
	CmpLe2 CompareOp = "=<"
)

// Compare evaluates left OP right. Numeric comparisons coerce units
// first (spec: "compare after unit coercion"); `=` between any two
// values falls back to comparing stringified form, so e.g. a Keyword
// can be compared against a Str for equality.
func Compare(op CompareOp, left, right Value) (bool, error) {
	if op == CmpEq {
		if ln, lok := numericView(left); lok {
			if rn, rok := numericView(right); rok {
				n, err := coerceNumeric(ln, rn)
				if err != nil {
					return false, err
				}
				return n.l == n.r, nil
			}
		}
		return left.CSS() == right.CSS(), nil
	}

	if lb, lok := left.(Bool); lok {
		rb, rok := right.(Bool)
		if !lok || !rok {
			return false, fmt.Errorf("boolean comparisons require both operands to be boolean")
		}
		switch op {
		case CmpLt:
			return boolLess(lb.B, rb.B), nil
		default:
			return false, fmt.Errorf("booleans only support = and < comparisons")
		}
	}

	ln, lok := numericView(left)
	rn, rok := numericView(right)
	if !lok || !rok {
		return false, fmt.Errorf("%s comparison requires numeric operands", op)
	}
	n, err := coerceNumeric(ln, rn)
	if err != nil {
		return false, err
	}
	switch op {
	case CmpLt:
		return n.l < n.r, nil
	case CmpGt:
		return n.l > n.r, nil
	case CmpGe:
		return n.l >= n.r, nil
	case CmpLe, CmpLe2:
		return n.l <= n.r, nil
	default:
		return false, fmt.Errorf("unknown comparison operator %q", op)
	}
}

func boolLess(a, b bool) bool {
	return !a && b
}

type numericOperand struct {
	n    float64
	unit string
}

func numericView(v Value) (numericOperand, bool) {
	switch t := v.(type) {
	case Number:
		return numericOperand{n: t.N}, true
	case Dimension:
		return numericOperand{n: t.N, unit: t.Unit}, true
	case Percentage:
		return numericOperand{n: t.N, unit: "%"}, true
	default:
		return numericOperand{}, false
	}
}

type coercedPair struct{ l, r float64 }

func coerceNumeric(l, r numericOperand) (coercedPair, error) {
	if l.unit == r.unit || l.unit == "" || r.unit == "" {
		return coercedPair{l: l.n, r: r.n}, nil
	}
	if l.unit == "%" || r.unit == "%" {
		return coercedPair{}, &UnitMismatchError{Left: l.unit, Right: r.unit}
	}
	if !SameGroup(l.unit, r.unit) {
		return coercedPair{}, &UnitMismatchError{Left: l.unit, Right: r.unit}
	}
	return coercedPair{l: l.n, r: ConvertUnit(r.n, r.unit, l.unit)}, nil
}
