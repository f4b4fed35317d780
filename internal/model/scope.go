package model

import (
	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/types"
)

// ScopeID indexes a scope in its unit's arena
type ScopeID int

// NoScope is the parent of a file scope
const NoScope ScopeID = -1

// Scope is a lexical scope. Symbols keep declaration order; the first
// declaration of a name shadows later ones in the same scope.
type Scope struct {
	ID      ScopeID
	Parent  ScopeID
	Owner   ast.Node
	symbols []types.Symbol
	index   map[string]int
}

func newScope(id, parent ScopeID, owner ast.Node) *Scope {
	return &Scope{
		ID:     id,
		Parent: parent,
		Owner:  owner,
		index:  make(map[string]int),
	}
}

// define adds sym and reports whether the name was free in this scope.
// Overloads are kept in the symbol list even when the name is taken.
func (s *Scope) define(sym types.Symbol) bool {
	s.symbols = append(s.symbols, sym)
	if _, exists := s.index[sym.Name()]; exists {
		return false
	}
	s.index[sym.Name()] = len(s.symbols) - 1
	return true
}

// Symbols returns the scope's own symbols in declaration order
func (s *Scope) Symbols() []types.Symbol {
	return s.symbols
}

// LookupLocal finds name in this scope only
func (s *Scope) LookupLocal(name string) types.Symbol {
	if idx, ok := s.index[name]; ok {
		return s.symbols[idx]
	}
	return nil
}

// Named returns every symbol in this scope called name
func (s *Scope) Named(name string) []types.Symbol {
	var out []types.Symbol
	for _, sym := range s.symbols {
		if sym.Name() == name {
			out = append(out, sym)
		}
	}
	return out
}
