// Package types defines the closed set of script types, the subtype lattice
// used to rank overload candidates, and the symbols that types expose as
// members.
package types

import "strings"

// Type is a script type. Types are immutable values compared with Equal;
// two structurally equal types are interchangeable.
type Type interface {
	String() string
	Equal(other Type) bool
	aType()
}

// MemberProvider is implemented by types that expose members of their own
type MemberProvider interface {
	Type
	Members() []Symbol
}

// BasicKind enumerates the non-composite types
type BasicKind int

const (
	KindAny BasicKind = iota
	KindVoid
	KindBool
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindIntRange
)

var basicNames = [...]string{
	KindAny:      "any",
	KindVoid:     "void",
	KindBool:     "bool",
	KindByte:     "byte",
	KindShort:    "short",
	KindInt:      "int",
	KindLong:     "long",
	KindFloat:    "float",
	KindDouble:   "double",
	KindString:   "string",
	KindIntRange: "IntRange",
}

// Basic is a primitive type, `any`, `void` or the int range type
type Basic struct {
	Kind BasicKind
}

var (
	Any      = &Basic{Kind: KindAny}
	Void     = &Basic{Kind: KindVoid}
	Bool     = &Basic{Kind: KindBool}
	Byte     = &Basic{Kind: KindByte}
	Short    = &Basic{Kind: KindShort}
	Int      = &Basic{Kind: KindInt}
	Long     = &Basic{Kind: KindLong}
	Float    = &Basic{Kind: KindFloat}
	Double   = &Basic{Kind: KindDouble}
	String   = &Basic{Kind: KindString}
	IntRange = &Basic{Kind: KindIntRange}
)

func (b *Basic) aType() {}

func (b *Basic) String() string {
	if int(b.Kind) < len(basicNames) {
		return basicNames[b.Kind]
	}
	return "any"
}

func (b *Basic) Equal(other Type) bool {
	o, ok := other.(*Basic)
	return ok && o.Kind == b.Kind
}

// IsNumeric reports whether the type is one of the six number types
func (b *Basic) IsNumeric() bool {
	return b.Kind >= KindByte && b.Kind <= KindDouble
}

// IsAny reports whether t is the `any` type. A nil type counts as `any`.
func IsAny(t Type) bool {
	if t == nil {
		return true
	}
	b, ok := t.(*Basic)
	return ok && b.Kind == KindAny
}

// OrAny returns t, or Any when t is nil
func OrAny(t Type) Type {
	if t == nil {
		return Any
	}
	return t
}

// ArrayType is `T[]`
type ArrayType struct {
	Elem Type
}

func (a *ArrayType) aType()         {}
func (a *ArrayType) String() string { return OrAny(a.Elem).String() + "[]" }

func (a *ArrayType) Equal(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && equal(a.Elem, o.Elem)
}

// ListType is `[T]`
type ListType struct {
	Elem Type
}

func (l *ListType) aType()         {}
func (l *ListType) String() string { return "[" + OrAny(l.Elem).String() + "]" }

func (l *ListType) Equal(other Type) bool {
	o, ok := other.(*ListType)
	return ok && equal(l.Elem, o.Elem)
}

// MapType is `V[K]`
type MapType struct {
	Key   Type
	Value Type
}

func (m *MapType) aType() {}
func (m *MapType) String() string {
	return OrAny(m.Value).String() + "[" + OrAny(m.Key).String() + "]"
}

func (m *MapType) Equal(other Type) bool {
	o, ok := other.(*MapType)
	return ok && equal(m.Key, o.Key) && equal(m.Value, o.Value)
}

// MapEntryType is the element of a map's entrySet, exposing key and value
type MapEntryType struct {
	Key   Type
	Value Type
}

func (m *MapEntryType) aType() {}
func (m *MapEntryType) String() string {
	return "Map.Entry<" + OrAny(m.Key).String() + "," + OrAny(m.Value).String() + ">"
}

// Equal compares by canonical text
func (m *MapEntryType) Equal(other Type) bool {
	o, ok := other.(*MapEntryType)
	return ok && m.String() == o.String()
}

// FunctionType is `function(P1,P2)R`
type FunctionType struct {
	Params []Type
	Return Type
}

func (f *FunctionType) aType() {}
func (f *FunctionType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = OrAny(p).String()
	}
	return "function(" + strings.Join(params, ",") + ")" + OrAny(f.Return).String()
}

// Equal compares by canonical text
func (f *FunctionType) Equal(other Type) bool {
	o, ok := other.(*FunctionType)
	return ok && f.String() == o.String()
}

// IntersectionType is `A & B`; it has the merged members of its constituents
type IntersectionType struct {
	Types []Type
}

func (i *IntersectionType) aType() {}
func (i *IntersectionType) String() string {
	parts := make([]string, len(i.Types))
	for idx, t := range i.Types {
		parts[idx] = OrAny(t).String()
	}
	return strings.Join(parts, " & ")
}

func (i *IntersectionType) Equal(other Type) bool {
	o, ok := other.(*IntersectionType)
	if !ok || len(o.Types) != len(i.Types) {
		return false
	}
	for idx := range i.Types {
		if !equal(i.Types[idx], o.Types[idx]) {
			return false
		}
	}
	return true
}

// ClassDecl is the view of a declared class that its type needs. Member
// lists never include expand functions.
type ClassDecl interface {
	Members() []Symbol
	Supers() []*ClassType
}

// ClassType is a user-declared zenClass, identified by its qualified name
type ClassType struct {
	Name string // qualified, e.g. "scripts.lib.Vec"
	Decl ClassDecl
}

func (c *ClassType) aType()         {}
func (c *ClassType) String() string { return c.Name }

func (c *ClassType) Equal(other Type) bool {
	o, ok := other.(*ClassType)
	return ok && o.Name == c.Name
}

// SimpleName returns the last segment of the qualified name
func (c *ClassType) SimpleName() string {
	if idx := strings.LastIndexByte(c.Name, '.'); idx >= 0 {
		return c.Name[idx+1:]
	}
	return c.Name
}

// Members returns the class's own declared members in declaration order
func (c *ClassType) Members() []Symbol {
	if c.Decl == nil {
		return nil
	}
	return c.Decl.Members()
}

// Supers returns the direct super classes
func (c *ClassType) Supers() []*ClassType {
	if c.Decl == nil {
		return nil
	}
	return c.Decl.Supers()
}

func equal(a, b Type) bool {
	return OrAny(a).Equal(OrAny(b))
}
