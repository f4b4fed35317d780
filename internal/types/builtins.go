package types

import "strings"

// Members returns the builtin members of a primitive type. Any and void
// have none.
func (b *Basic) Members() []Symbol {
	switch {
	case b.IsNumeric():
		return numericMembers(b)
	case b.Kind == KindBool:
		return []Symbol{
			NewOperator(Not, Bool),
			NewOperator(And, Bool, Bool),
			NewOperator(Or, Bool, Bool),
			NewOperator(Xor, Bool, Bool),
			NewOperator(Equals, Bool, Bool),
		}
	case b.Kind == KindString:
		return []Symbol{
			NewOperator(Add, String, Any),
			NewOperator(Concat, String, Any),
			NewOperator(Compare, Int, String),
			NewOperator(Equals, Bool, String),
			NewOperator(Has, Bool, String),
			NewOperator(IndexGet, String, Int),
			NewField("length", Int, ModVal),
			NewFunction("toUpperCase", String),
			NewFunction("toLowerCase", String),
			NewFunction("trim", String),
			NewFunction("contains", Bool, String),
			NewFunction("startsWith", Bool, String),
			NewFunction("endsWith", Bool, String),
			NewFunction("split", &ArrayType{Elem: String}, String),
			NewFunction("replace", String, String, String),
			NewFunction("substring", String, Int, Int),
		}
	case b.Kind == KindIntRange:
		return []Symbol{
			NewOperator(Iterator, &ListType{Elem: Int}),
			NewField("from", Int, ModVal),
			NewField("to", Int, ModVal),
		}
	}
	return nil
}

func numericMembers(t *Basic) []Symbol {
	members := []Symbol{
		NewOperator(Add, t, t),
		NewOperator(Sub, t, t),
		NewOperator(Mul, t, t),
		NewOperator(Div, t, t),
		NewOperator(Mod, t, t),
		NewOperator(Neg, t),
		NewOperator(Compare, Int, t),
		NewOperator(Equals, Bool, t),
	}
	if t.Kind == KindInt {
		members = append(members, NewOperator(Range, IntRange, Int))
	}
	return members
}

// Members of an array: indexing, iteration as a list, append and length
func (a *ArrayType) Members() []Symbol {
	elem := OrAny(a.Elem)
	return []Symbol{
		NewOperator(IndexGet, elem, Int),
		NewOperator(IndexSet, Void, Int, elem),
		NewOperator(Iterator, &ListType{Elem: elem}),
		NewOperator(Add, a, elem),
		NewOperator(Has, Bool, elem),
		NewField("length", Int, ModVal),
	}
}

// Members of a list
func (l *ListType) Members() []Symbol {
	elem := OrAny(l.Elem)
	return []Symbol{
		NewOperator(IndexGet, elem, Int),
		NewOperator(IndexSet, Void, Int, elem),
		NewOperator(Iterator, l),
		NewOperator(Has, Bool, elem),
		NewField("length", Int, ModVal),
		NewFunction("add", Void, elem),
		NewFunction("remove", Void, Int),
	}
}

// Members of a map. Iteration yields the map itself as carrier.
func (m *MapType) Members() []Symbol {
	key, value := OrAny(m.Key), OrAny(m.Value)
	return []Symbol{
		NewOperator(IndexGet, value, key),
		NewOperator(IndexSet, Void, key, value),
		NewOperator(MemberGet, value, String),
		NewOperator(Iterator, m),
		NewOperator(Has, Bool, key),
		NewField("length", Int, ModVal),
		NewField("keys", &ArrayType{Elem: key}, ModVal),
		NewField("values", &ArrayType{Elem: value}, ModVal),
		NewField("entrySet", &ArrayType{Elem: &MapEntryType{Key: key, Value: value}}, ModVal),
	}
}

// Members of a map entry: key and value
func (m *MapEntryType) Members() []Symbol {
	return []Symbol{
		NewField("key", OrAny(m.Key), ModVal),
		NewField("value", OrAny(m.Value), ModVal),
	}
}

// Members merges the own members of every constituent. See MergeMembers.
func (i *IntersectionType) Members() []Symbol {
	groups := make([][]Symbol, 0, len(i.Types))
	for _, t := range i.Types {
		if provider, ok := t.(MemberProvider); ok {
			groups = append(groups, provider.Members())
		}
	}
	return MergeMembers(groups, Symbol.Type)
}

// MergeMembers joins the member lists of intersection constituents in
// order. When two lists declare the same field name, or the same function
// name with the same parameter types, the first declared wins. typeOf is
// only called for executables.
func MergeMembers(groups [][]Symbol, typeOf func(Symbol) Type) []Symbol {
	var merged []Symbol
	seen := make(map[string]bool)
	for _, group := range groups {
		for _, m := range group {
			key := conflictKey(m, typeOf)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, m)
		}
	}
	return merged
}

func conflictKey(m Symbol, typeOf func(Symbol) Type) string {
	if !IsExecutable(m.Kind()) {
		return m.Name()
	}
	fn, ok := typeOf(m).(*FunctionType)
	if !ok {
		return m.Name()
	}
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = OrAny(p).String()
	}
	return m.Name() + "(" + strings.Join(params, ",") + ")"
}
