package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClass struct {
	members []Symbol
	supers  []*ClassType
}

func (f *fakeClass) Members() []Symbol { return f.members }
func (f *fakeClass) Supers() []*ClassType { return f.supers }

type fakeContext struct{}

func (fakeContext) MembersOf(t Type) []Symbol {
	if p, ok := t.(MemberProvider); ok {
		return p.Members()
	}
	return nil
}

func (fakeContext) TypeOf(sym Symbol) Type { return sym.Type() }

func sampleTypes() []Type {
	base := &ClassType{Name: "scripts.Base", Decl: &fakeClass{}}
	return []Type{
		Any, Void, Bool, Byte, Short, Int, Long, Float, Double, String, IntRange,
		&ArrayType{Elem: Int},
		&ListType{Elem: String},
		&MapType{Key: String, Value: Int},
		&MapEntryType{Key: String, Value: Int},
		&FunctionType{Params: []Type{Int, String}, Return: Bool},
		&IntersectionType{Types: []Type{Int, String}},
		base,
	}
}

func TestSubtypeReflexivity(t *testing.T) {
	for _, typ := range sampleTypes() {
		assert.Equal(t, Self, SubtypeOf(typ, typ, nil), "type %s", typ)
		assert.Equal(t, Self, SubtypeOf(typ, typ, fakeContext{}), "type %s", typ)
	}
}

func TestSubtypeAnyAbsorption(t *testing.T) {
	for _, typ := range sampleTypes() {
		if IsAny(typ) {
			continue
		}
		assert.Equal(t, Inherit, SubtypeOf(typ, Any, nil), "type %s", typ)
	}
}

func TestSubtypeStructuralEquality(t *testing.T) {
	a := &FunctionType{Params: []Type{Int}, Return: &ListType{Elem: String}}
	b := &FunctionType{Params: []Type{Int}, Return: &ListType{Elem: String}}
	assert.Equal(t, Self, SubtypeOf(a, b, nil))
	assert.True(t, (&MapEntryType{Key: Int, Value: Bool}).Equal(&MapEntryType{Key: Int, Value: Bool}))
	assert.False(t, (&ArrayType{Elem: Int}).Equal(&ListType{Elem: Int}))
}

func TestSubtypeNumericsAreUnrelated(t *testing.T) {
	assert.Equal(t, Mismatch, SubtypeOf(Int, Long, nil))
	assert.Equal(t, Mismatch, SubtypeOf(Float, Double, fakeContext{}))
	assert.Equal(t, Mismatch, SubtypeOf(Int, String, fakeContext{}))
}

func TestSubtypeClassInheritance(t *testing.T) {
	root := &ClassType{Name: "scripts.Root", Decl: &fakeClass{}}
	mid := &ClassType{Name: "scripts.Mid", Decl: &fakeClass{supers: []*ClassType{root}}}
	leaf := &ClassType{Name: "scripts.Leaf", Decl: &fakeClass{supers: []*ClassType{mid}}}

	assert.Equal(t, Inherit, SubtypeOf(leaf, mid, nil))
	assert.Equal(t, Inherit, SubtypeOf(leaf, root, nil))
	assert.Equal(t, Mismatch, SubtypeOf(root, leaf, nil))
}

func TestSubtypeClassCycleTerminates(t *testing.T) {
	a := &ClassType{Name: "scripts.A"}
	b := &ClassType{Name: "scripts.B"}
	a.Decl = &fakeClass{supers: []*ClassType{b}}
	b.Decl = &fakeClass{supers: []*ClassType{a}}
	other := &ClassType{Name: "scripts.C", Decl: &fakeClass{}}

	assert.Equal(t, Mismatch, SubtypeOf(a, other, nil))
	assert.Equal(t, Inherit, SubtypeOf(a, b, nil))
}

func TestSubtypeIntersection(t *testing.T) {
	inter := &IntersectionType{Types: []Type{Int, String}}
	assert.Equal(t, Inherit, SubtypeOf(inter, String, nil))
	assert.Equal(t, Inherit, SubtypeOf(inter, Int, nil))
	assert.Equal(t, Mismatch, SubtypeOf(inter, Bool, nil))
}

func TestSubtypeCaster(t *testing.T) {
	castable := &ClassType{Name: "scripts.Item", Decl: &fakeClass{members: []Symbol{
		NewOperator(As, String),
	}}}
	assert.Equal(t, Inherit, SubtypeOf(castable, String, fakeContext{}))
	assert.Equal(t, Mismatch, SubtypeOf(castable, String, nil), "no caster lookup without context")
	assert.Equal(t, Mismatch, SubtypeOf(castable, Int, fakeContext{}))
}

func TestHigherIsMonotonic(t *testing.T) {
	ranks := []SubtypeResult{Self, Inherit, Mismatch}
	for _, a := range ranks {
		for _, b := range ranks {
			h := Higher(a, b)
			assert.False(t, h.Better(a), "Higher(%s, %s) better than %s", a, b, a)
			assert.False(t, h.Better(b), "Higher(%s, %s) better than %s", a, b, b)
			assert.Equal(t, h, Higher(b, a))
		}
	}
	assert.Equal(t, Mismatch, Higher(Self, Mismatch))
	assert.Equal(t, Inherit, Higher(Inherit, Self))
}

func TestTypeStrings(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Int, "int"},
		{&ArrayType{Elem: String}, "string[]"},
		{&ListType{Elem: Int}, "[int]"},
		{&MapType{Key: String, Value: Int}, "int[string]"},
		{&MapEntryType{Key: String, Value: Int}, "Map.Entry<string,int>"},
		{&FunctionType{Params: []Type{Int, String}, Return: Void}, "function(int,string)void"},
		{&IntersectionType{Types: []Type{Int, String}}, "int & string"},
		{&ClassType{Name: "scripts.lib.Vec"}, "scripts.lib.Vec"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
	assert.Equal(t, "Vec", (&ClassType{Name: "scripts.lib.Vec"}).SimpleName())
}

func TestLookupOperator(t *testing.T) {
	tests := []struct {
		literal string
		arity   Arity
		want    Operator
	}{
		{"-", Unary, Neg},
		{"-", Binary, Sub},
		{"for", Unary, Iterator},
		{"as", Unary, As},
		{"<", Binary, Compare},
		{"==", Binary, Equals},
		{"[]", Binary, IndexGet},
		{"[]=", Trinary, IndexSet},
		{".=", Trinary, MemberSet},
		{"in", Binary, Has},
		{"..", Binary, Range},
		{"+", Unary, OpError},
		{"[]=", Binary, OpError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LookupOperator(tt.literal, tt.arity), "%s/%d", tt.literal, tt.arity)
	}
}

func TestIntersectionMembersFirstDeclaredWins(t *testing.T) {
	first := NewField("name", String, ModVal)
	second := NewField("name", Int, ModVal)
	overload := NewFunction("get", Int, String)
	sameSig := NewFunction("get", Bool, Int)
	otherSig := NewFunction("get", Bool, String)

	a := &ClassType{Name: "scripts.A", Decl: &fakeClass{members: []Symbol{first, sameSig}}}
	b := &ClassType{Name: "scripts.B", Decl: &fakeClass{members: []Symbol{second, overload, otherSig}}}
	inter := &IntersectionType{Types: []Type{a, b}}

	members := inter.Members()
	require.Len(t, members, 3)
	assert.Same(t, first, members[0])
	assert.Same(t, sameSig, members[1])
	assert.Same(t, overload, members[2])

	again := inter.Members()
	require.Len(t, again, 3)
	for i := range members {
		assert.Same(t, members[i], again[i])
	}
}

func TestBuiltinMembers(t *testing.T) {
	names := func(ms []Symbol) []string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.Name()
		}
		return out
	}

	assert.Contains(t, names(String.Members()), "length")
	assert.Contains(t, names((&MapType{Key: String, Value: Int}).Members()), "entrySet")
	assert.Empty(t, Any.Members())
	assert.Empty(t, Void.Members())

	entry := (&MapEntryType{Key: String, Value: Int}).Members()
	require.Len(t, entry, 2)
	assert.Equal(t, "key", entry[0].Name())
	assert.True(t, entry[1].Type().Equal(Int))
}
