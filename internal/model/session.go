package model

import (
	"sync"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/types"
)

// Session is a read-locked view of an Environment. Every resolution entry
// point lives here; call Close when the batch of queries is done. Queries
// are safe to run concurrently within one session.
type Session struct {
	env  *Environment
	once sync.Once
}

// Close releases the read lock. It is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(s.env.mu.RUnlock)
}

func (s *Session) resolver() *resolver {
	return newResolver(s.env)
}

// TypeOf resolves the type of node in unit. It never fails; Any means the
// type could not be determined.
func (s *Session) TypeOf(u *Unit, node ast.Node) types.Type {
	return s.resolver().typeOf(u, node)
}

// SymbolType resolves the type of a symbol
func (s *Session) SymbolType(sym types.Symbol) types.Type {
	return s.resolver().symbolType(sym)
}

// MembersOf lists the members of t: own, then expands, then dump classes
func (s *Session) MembersOf(t types.Type) []types.Symbol {
	return s.resolver().MembersOf(t)
}

// MemberCandidates returns every non-operator member of t called name
func (s *Session) MemberCandidates(t types.Type, name string) []types.Symbol {
	return s.resolver().memberCandidates(t, name)
}

// OperatorCandidates returns the members of t implementing op
func (s *Session) OperatorCandidates(t types.Type, op types.Operator) []types.Symbol {
	return s.resolver().operatorCandidates(t, op)
}

// UnaryResult is the result type of a unary operator applied to t
func (s *Session) UnaryResult(t types.Type, op types.Operator) types.Type {
	return s.resolver().unaryResult(t, op)
}

// BinaryResult is the result type of `t op right`
func (s *Session) BinaryResult(t types.Type, op types.Operator, right types.Type) types.Type {
	return s.resolver().binaryResult(t, op, right)
}

// TrinaryResult is the result type of a two-operand operator such as
// index assignment
func (s *Session) TrinaryResult(t types.Type, op types.Operator, first, second types.Type) types.Type {
	return s.resolver().trinaryResult(t, op, first, second)
}

// SubtypeOf ranks t against other with caster lookup enabled
func (s *Session) SubtypeOf(t, other types.Type) types.SubtypeResult {
	return types.SubtypeOf(t, other, s.resolver())
}

// FindBestExecutable returns the candidate that best fits args, or nil
func (s *Session) FindBestExecutable(candidates []types.Symbol, args []types.Type) types.Symbol {
	return s.resolver().findBest(candidates, args)
}

// RankExecutable ranks a single candidate against args
func (s *Session) RankExecutable(sym types.Symbol, args []types.Type) types.SubtypeResult {
	return s.resolver().rankExecutable(sym, args)
}

// PredictNextArgumentType returns the type the next argument is expected
// to have given the known ones, or Any when candidates disagree
func (s *Session) PredictNextArgumentType(candidates []types.Symbol, known []types.Type) types.Type {
	return s.resolver().predictNext(candidates, known)
}

// FindLambdaForm returns the signature a lambda takes when passed where ct
// is expected, or nil when ct is not a functional class
func (s *Session) FindLambdaForm(ct *types.ClassType) *types.FunctionType {
	if ct == nil {
		return nil
	}
	return s.resolver().lambdaForm(ct)
}

// CallCandidates returns the overloads a call chooses from, or nil when
// the callee is resolved directly
func (s *Session) CallCandidates(u *Unit, call *ast.CallExpr) []types.Symbol {
	return s.resolver().callCandidates(u, call)
}

// ArgumentTypes resolves the types of call arguments
func (s *Session) ArgumentTypes(u *Unit, args []ast.Expr) []types.Type {
	return s.resolver().argTypes(u, args)
}

// Lookup finds name from the scope of node, then among globals
func (s *Session) Lookup(u *Unit, node ast.Node, name string) types.Symbol {
	return s.resolver().lookup(u, node, name)
}

// GlobalSymbols returns the global symbols in unit path order
func (s *Session) GlobalSymbols() []types.Symbol {
	return append([]types.Symbol(nil), s.env.globals...)
}

// ClassRegistry returns the classes of the workspace by qualified name
func (s *Session) ClassRegistry() map[string]*types.ClassType {
	out := make(map[string]*types.ClassType, len(s.env.classes))
	for name, ct := range s.env.classes {
		out[name] = ct
	}
	return out
}

// ExpandFunctions returns every expand function in unit path order
func (s *Session) ExpandFunctions() []types.ExpandSymbol {
	return append([]types.ExpandSymbol(nil), s.env.expands...)
}

// Unit returns the unit with the given path
func (s *Session) Unit(path string) (*Unit, bool) {
	u, ok := s.env.units[path]
	return u, ok
}

// Units returns all units sorted by path
func (s *Session) Units() []*Unit {
	return append([]*Unit(nil), s.env.order...)
}
