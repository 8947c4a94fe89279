package funclib

import "lessc.dev/lessc/internal/value"

// Signature is the character-code argument signature spec §4.1
// defines: `.` = any value, `N` = number-like (Number/Dimension/
// Percentage), `S` = string, `C` = color, `U` = unit; a trailing `?`
// makes the preceding parameter optional; a trailing `+` makes it
// variadic (matches zero or more trailing actuals, and must be the
// signature's last parameter).
type Signature string

type sigParam struct {
	code     byte
	optional bool
	variadic bool
}

func (s Signature) params() []sigParam {
	var out []sigParam
	runes := []byte(s)
	for i := 0; i < len(runes); i++ {
		p := sigParam{code: runes[i]}
		if i+1 < len(runes) && (runes[i+1] == '?' || runes[i+1] == '+') {
			if runes[i+1] == '?' {
				p.optional = true
			} else {
				p.variadic = true
			}
			i++
		}
		out = append(out, p)
	}
	return out
}

// Accepts reports whether args satisfies the signature.
func (s Signature) Accepts(args []value.Value) bool {
	params := s.params()
	ai := 0
	for pi := 0; pi < len(params); pi++ {
		p := params[pi]
		if p.variadic {
			for ; ai < len(args); ai++ {
				if !matchesCode(p.code, args[ai]) {
					return false
				}
			}
			continue
		}
		if ai >= len(args) {
			if p.optional {
				continue
			}
			return false
		}
		if !matchesCode(p.code, args[ai]) {
			if p.optional {
				continue
			}
			return false
		}
		ai++
	}
	return ai == len(args)
}

func matchesCode(code byte, v value.Value) bool {
	switch code {
	case '.':
		return true
	case 'N':
		switch v.Kind() {
		case value.KindNumber, value.KindDimension, value.KindPercentage:
			return true
		}
		return false
	case 'S':
		return v.Kind() == value.KindString
	case 'C':
		return v.Kind() == value.KindColor
	case 'U':
		return v.Kind() == value.KindUnit
	default:
		return false
	}
}
