package types

// SubtypeResult ranks how well one type fits another. Lower is better.
type SubtypeResult int

const (
	Self SubtypeResult = iota
	Inherit
	Mismatch
)

func (r SubtypeResult) String() string {
	switch r {
	case Self:
		return "self"
	case Inherit:
		return "inherit"
	default:
		return "mismatch"
	}
}

// Matched reports whether the result is not a mismatch
func (r SubtypeResult) Matched() bool {
	return r != Mismatch
}

// Better reports whether r ranks strictly better than other
func (r SubtypeResult) Better(other SubtypeResult) bool {
	return r < other
}

// Higher returns the worse of two rankings
func Higher(a, b SubtypeResult) SubtypeResult {
	if a > b {
		return a
	}
	return b
}

// Context gives the lattice access to members and symbol types. A nil
// Context disables caster lookup.
type Context interface {
	MembersOf(t Type) []Symbol
	TypeOf(sym Symbol) Type
}

// SubtypeOf ranks t against other:
//   - Self when the types are equal
//   - Inherit when other is any, t is any, a constituent of intersection t
//     matches, other is a super class of t, or t has an `as` operator whose
//     result matches other
//   - Mismatch otherwise
func SubtypeOf(t, other Type, ctx Context) SubtypeResult {
	t, other = OrAny(t), OrAny(other)
	if t.Equal(other) {
		return Self
	}
	if IsAny(other) || IsAny(t) {
		return Inherit
	}

	switch tt := t.(type) {
	case *IntersectionType:
		for _, c := range tt.Types {
			if SubtypeOf(c, other, ctx).Matched() {
				return Inherit
			}
		}
	case *ClassType:
		if inheritsFrom(tt, other, map[string]bool{}) {
			return Inherit
		}
	}

	if ctx != nil && hasCaster(t, other, ctx) {
		return Inherit
	}
	return Mismatch
}

// IsAssignableTo reports whether t can be used where other is expected
func IsAssignableTo(t, other Type, ctx Context) bool {
	return SubtypeOf(t, other, ctx).Matched()
}

func inheritsFrom(c *ClassType, other Type, visited map[string]bool) bool {
	if visited[c.Name] {
		return false
	}
	visited[c.Name] = true
	for _, super := range c.Supers() {
		if super.Equal(other) || inheritsFrom(super, other, visited) {
			return true
		}
	}
	return false
}

// hasCaster looks for an `as` operator on t whose result matches other.
// The nested check runs without a context so casters never chain.
func hasCaster(t, other Type, ctx Context) bool {
	for _, m := range ctx.MembersOf(t) {
		op, ok := m.(OperatorSymbol)
		if !ok || op.Operator() != As {
			continue
		}
		fn, ok := ctx.TypeOf(m).(*FunctionType)
		if !ok {
			continue
		}
		if SubtypeOf(fn.Return, other, nil).Matched() {
			return true
		}
	}
	return false
}
