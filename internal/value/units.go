package value

// unitGroup identifies one of the three interconvertible unit families
// spec §4.1 names (LENGTH, TIME, ANGLE). Units in different groups (e.g.
// `px` vs `deg`), or outside any group, never coerce into each other
// (spec §4.1 "UnitMismatch").
type unitGroup int

const (
	groupNone unitGroup = iota
	groupLength
	groupTime
	groupAngle
)

// toCanonical converts a value expressed in unit to the group's
// canonical unit (px for length, ms for time, rad for angle).
var toCanonical = map[string]float64{
	// length -> px
	"px": 1,
	"cm":  96.0 / 2.54,
	"mm":  96.0 / 25.4,
	"in":  96,
	"pt":  96.0 / 72,
	"pc":  16, // 1pc = 12pt = 16px

	// time -> ms
	"s":  1000,
	"ms": 1,

	// angle -> rad
	"rad":  1,
	"deg":  pi / 180,
	"grad": pi / 200,
	"turn": 2 * pi,
}

const pi = 3.14159265358979323846

var unitGroups = map[string]unitGroup{
	"px": groupLength, "cm": groupLength, "mm": groupLength,
	"in": groupLength, "pt": groupLength, "pc": groupLength,
	"s": groupTime, "ms": groupTime,
	"rad": groupAngle, "deg": groupAngle, "grad": groupAngle, "turn": groupAngle,
}

func groupOf(unit string) unitGroup {
	return unitGroups[unit]
}

// SameGroup reports whether two units belong to the same coercion
// group (and neither is the empty/unknown group).
func SameGroup(a, b string) bool {
	ga, gb := groupOf(a), groupOf(b)
	return ga != groupNone && ga == gb
}

// ConvertUnit converts a value expressed in fromUnit to toUnit, both of
// which must belong to the same group; the caller is responsible for
// checking SameGroup first (ConvertUnit returns the input value
// unchanged for unrelated units, matching convert()'s documented
// cross-group passthrough behavior, spec §4.2 and §9).
func ConvertUnit(v float64, fromUnit, toUnit string) float64 {
	if fromUnit == toUnit {
		return v
	}
	if !SameGroup(fromUnit, toUnit) {
		return v
	}
	canonical := v * toCanonical[fromUnit]
	return canonical / toCanonical[toUnit]
}

// CanonicalUnit returns the canonical unit for a unit's group (px, ms
// or rad); a unit outside every group is returned unchanged.
func CanonicalUnit(unit string) string {
	switch groupOf(unit) {
	case groupLength:
		return "px"
	case groupTime:
		return "ms"
	case groupAngle:
		return "rad"
	default:
		return unit
	}
}
