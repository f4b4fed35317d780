package types

import "strings"

// SymbolKind classifies declarations
type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	ParameterSymbol
	ImportSymbol
	ClassSymbol
	ConstructorSymbol
	FunctionSymbol
	OperatorSymbolKind
	ExpandSymbolKind
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case ParameterSymbol:
		return "parameter"
	case ImportSymbol:
		return "import"
	case ClassSymbol:
		return "class"
	case ConstructorSymbol:
		return "constructor"
	case FunctionSymbol:
		return "function"
	case OperatorSymbolKind:
		return "operator"
	case ExpandSymbolKind:
		return "expand"
	default:
		return "unknown"
	}
}

// Modifier is a bit set of declaration modifiers
type Modifier int

const (
	ModGlobal Modifier = 1 << iota
	ModStatic
	ModVar
	ModVal
)

// Has reports whether all bits of m2 are set
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

func (m Modifier) String() string {
	var parts []string
	if m.Has(ModGlobal) {
		parts = append(parts, "global")
	}
	if m.Has(ModStatic) {
		parts = append(parts, "static")
	}
	if m.Has(ModVar) {
		parts = append(parts, "var")
	}
	if m.Has(ModVal) {
		parts = append(parts, "val")
	}
	return strings.Join(parts, " ")
}

// Symbol is a named, typed declaration
type Symbol interface {
	Name() string
	Kind() SymbolKind
	Type() Type
	Modifiers() Modifier
}

// OperatorSymbol is a symbol implementing a logical operator
type OperatorSymbol interface {
	Symbol
	Operator() Operator
}

// ExpandSymbol is an expand function together with the type it extends
type ExpandSymbol interface {
	Symbol
	Target() Type
}

// ParamDefaults is implemented by executables whose trailing parameters
// have default values and may be omitted at a call site
type ParamDefaults interface {
	RequiredParams() int
}

// IsExecutable reports whether a symbol kind is function-like
func IsExecutable(k SymbolKind) bool {
	switch k {
	case ConstructorSymbol, FunctionSymbol, OperatorSymbolKind, ExpandSymbolKind:
		return true
	}
	return false
}

// builtin is a member symbol of a primitive or collection type
type builtin struct {
	name string
	kind SymbolKind
	typ  Type
	mods Modifier
	op   Operator
}

func (b *builtin) Name() string        { return b.name }
func (b *builtin) Kind() SymbolKind    { return b.kind }
func (b *builtin) Type() Type          { return b.typ }
func (b *builtin) Modifiers() Modifier { return b.mods }

// builtinOperator adds the operator capability to a builtin
type builtinOperator struct {
	builtin
}

func (b *builtinOperator) Operator() Operator { return b.op }

// NewField creates a builtin field member
func NewField(name string, t Type, mods Modifier) Symbol {
	return &builtin{name: name, kind: VariableSymbol, typ: t, mods: mods}
}

// NewFunction creates a builtin function member
func NewFunction(name string, ret Type, params ...Type) Symbol {
	return &builtin{name: name, kind: FunctionSymbol, typ: &FunctionType{Params: params, Return: ret}}
}

// NewOperator creates a builtin operator member
func NewOperator(op Operator, ret Type, params ...Type) OperatorSymbol {
	return &builtinOperator{builtin{
		name: op.String(),
		kind: OperatorSymbolKind,
		typ:  &FunctionType{Params: params, Return: ret},
		op:   op,
	}}
}
