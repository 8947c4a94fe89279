package ast

// Extension is a single `:extend(...)` relationship collected during
// processing (spec §3 "Extension — target selector, replacement
// selector, and an `all` flag").
type Extension struct {
	// Target is the selector the extend clause names, e.g. `.a` in
	// `.b:extend(.a)`.
	Target *Selector
	// Source is the selector that should inherit Target's rules — the
	// selector of the ruleset the `:extend(...)` clause appeared in.
	Source *Selector
	// All, when set, matches Target as a substring of any compound
	// selector rather than requiring a whole-component match.
	All bool
}
