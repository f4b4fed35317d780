package model

import "github.com/lhaig/zentype/internal/types"

// MembersOf lists the members visible on t, in discovery order and
// without de-duplication:
//   - own members (builtin members, a class's members followed by those
//     of its super classes, or the merged members of an intersection)
//   - every expand function whose target t matches, checked without caster
//     lookup
//   - for non-class types, the members of workspace classes whose simple
//     name equals the printed name of t
//
// Any exposes nothing: it would otherwise match every expand target.
func (r *resolver) MembersOf(t types.Type) []types.Symbol {
	t = types.OrAny(t)
	if types.IsAny(t) {
		return nil
	}

	members := r.ownMembers(t)
	_, isClass := t.(*types.ClassType)

	for _, exp := range r.env.expandFunctions() {
		if types.SubtypeOf(t, r.expandTarget(exp), nil).Matched() {
			members = append(members, exp)
		}
	}

	if !isClass {
		name := t.String()
		for _, dump := range r.env.classList() {
			if dump.SimpleName() == name {
				members = append(members, dump.Members()...)
			}
		}
	}
	return members
}

// ownMembers lists the members t declares itself. Class types include
// their super classes; intersections merge their constituents.
func (r *resolver) ownMembers(t types.Type) []types.Symbol {
	switch t := t.(type) {
	case *types.ClassType:
		return appendClassMembers(nil, t, map[string]bool{})
	case *types.IntersectionType:
		groups := make([][]types.Symbol, 0, len(t.Types))
		for _, c := range t.Types {
			groups = append(groups, r.ownMembers(types.OrAny(c)))
		}
		return types.MergeMembers(groups, r.symbolType)
	case types.MemberProvider:
		return t.Members()
	}
	return nil
}

func appendClassMembers(members []types.Symbol, ct *types.ClassType, visited map[string]bool) []types.Symbol {
	if visited[ct.Name] {
		return members
	}
	visited[ct.Name] = true
	members = append(members, ct.Members()...)
	for _, super := range ct.Supers() {
		members = appendClassMembers(members, super, visited)
	}
	return members
}

func (r *resolver) expandTarget(exp types.ExpandSymbol) types.Type {
	if es, ok := exp.(*expandSymbol); ok {
		return r.typeOf(es.unit, es.target)
	}
	return types.OrAny(exp.Target())
}

// memberNamed returns the first non-operator member of t called name
func (r *resolver) memberNamed(t types.Type, name string) types.Symbol {
	if name == "" {
		return nil
	}
	for _, m := range r.MembersOf(t) {
		if m.Kind() != types.OperatorSymbolKind && m.Name() == name {
			return m
		}
	}
	return nil
}

// memberCandidates returns every non-operator member of t called name
func (r *resolver) memberCandidates(t types.Type, name string) []types.Symbol {
	if name == "" {
		return nil
	}
	var out []types.Symbol
	for _, m := range r.MembersOf(t) {
		if m.Kind() != types.OperatorSymbolKind && m.Name() == name {
			out = append(out, m)
		}
	}
	return out
}
