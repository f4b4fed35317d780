package types

// Operator is the logical operator an operator function implements.
// Surface literals map to operators by arity.
type Operator int

const (
	OpError Operator = iota
	IndexGet
	IndexSet
	Range
	Has
	Add
	Sub
	Mul
	Div
	Mod
	Concat
	Neg
	Not
	And
	Or
	Xor
	Compare
	Equals
	MemberGet
	MemberSet
	As
	Iterator
)

var operatorNames = [...]string{
	OpError:   "ERROR",
	IndexGet:  "INDEX_GET",
	IndexSet:  "INDEX_SET",
	Range:     "RANGE",
	Has:       "HAS",
	Add:       "ADD",
	Sub:       "SUB",
	Mul:       "MUL",
	Div:       "DIV",
	Mod:       "MOD",
	Concat:    "CONCAT",
	Neg:       "NEG",
	Not:       "NOT",
	And:       "AND",
	Or:        "OR",
	Xor:       "XOR",
	Compare:   "COMPARE",
	Equals:    "EQUALS",
	MemberGet: "MEMBER_GET",
	MemberSet: "MEMBER_SET",
	As:        "AS",
	Iterator:  "ITERATOR",
}

func (o Operator) String() string {
	if o >= 0 && int(o) < len(operatorNames) {
		return operatorNames[o]
	}
	return "ERROR"
}

// Arity counts operands besides the receiver
type Arity int

const (
	Unary   Arity = 0
	Binary  Arity = 1
	Trinary Arity = 2
)

var unaryLiterals = map[string]Operator{
	"-":   Neg,
	"!":   Not,
	"for": Iterator,
	"as":  As,
}

var binaryLiterals = map[string]Operator{
	"+":   Add,
	"-":   Sub,
	"*":   Mul,
	"/":   Div,
	"%":   Mod,
	"~":   Concat,
	"&":   And,
	"&&":  And,
	"|":   Or,
	"||":  Or,
	"^":   Xor,
	"<":   Compare,
	">":   Compare,
	"<=":  Compare,
	">=":  Compare,
	"==":  Equals,
	"!=":  Equals,
	"[]":  IndexGet,
	"..":  Range,
	"to":  Range,
	"has": Has,
	"in":  Has,
	".":   MemberGet,
}

var trinaryLiterals = map[string]Operator{
	"[]=": IndexSet,
	".=":  MemberSet,
}

// LookupOperator maps a surface literal to its logical operator for the
// given arity, or OpError when the combination is not an operator
func LookupOperator(literal string, arity Arity) Operator {
	var table map[string]Operator
	switch arity {
	case Unary:
		table = unaryLiterals
	case Binary:
		table = binaryLiterals
	case Trinary:
		table = trinaryLiterals
	default:
		return OpError
	}
	if op, ok := table[literal]; ok {
		return op
	}
	return OpError
}
