// Package model binds parsed units into scopes and symbols, keeps the
// project-wide environment and resolves types on demand.
package model

import (
	"path"
	"strings"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/diagnostic"
	"github.com/lhaig/zentype/internal/parser"
	"github.com/lhaig/zentype/internal/types"
)

// RootPackage prefixes every unit package
const RootPackage = "scripts"

// Unit is one parsed script with its scopes and declared symbols. A unit is
// immutable once built; reparsing produces a new unit.
type Unit struct {
	Path        string
	Package     string
	File        *ast.File
	Diagnostics *diagnostic.Diagnostics

	env       *Environment
	scopes    []*Scope
	parents   map[ast.Node]ast.Node
	nodeScope map[ast.Node]ScopeID
	symbols   map[ast.Node]types.Symbol
	classes   []*types.ClassType
	expands   []types.ExpandSymbol
}

// ParseUnit parses source and binds its declarations
func ParseUnit(path, pkg, source string) *Unit {
	file, diags := parser.ParseFile(source)
	u := &Unit{
		Path:        path,
		Package:     pkg,
		File:        file,
		Diagnostics: diagnostic.NewForFile(path),
		parents:     make(map[ast.Node]ast.Node),
		nodeScope:   make(map[ast.Node]ScopeID),
		symbols:     make(map[ast.Node]types.Symbol),
	}
	u.Diagnostics.Merge(diags)
	(&binder{unit: u}).bindFile(file)
	return u
}

// PackageFor derives the package of a unit from its slash-separated path
// relative to the workspace root: lib/vec.zs becomes scripts.lib.vec
func PackageFor(rel string) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return RootPackage
	}
	return RootPackage + "." + strings.ReplaceAll(rel, "/", ".")
}

// Qualify joins the unit package and a declared name
func (u *Unit) Qualify(name string) string {
	if u.Package == "" {
		return name
	}
	return u.Package + "." + name
}

// Scope returns the scope with the given id, or nil
func (u *Unit) Scope(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(u.scopes) {
		return nil
	}
	return u.scopes[id]
}

// RootScope returns the file scope
func (u *Unit) RootScope() *Scope {
	return u.Scope(0)
}

// ScopeAt returns the scope in effect where node appears. Nodes the binder
// never saw fall back to the file scope.
func (u *Unit) ScopeAt(node ast.Node) *Scope {
	if id, ok := u.nodeScope[node]; ok {
		return u.Scope(id)
	}
	return u.RootScope()
}

// Parent returns the syntactic parent of node, or nil for the file
func (u *Unit) Parent(node ast.Node) ast.Node {
	return u.parents[node]
}

// SymbolFor returns the symbol declared by a declaration node
func (u *Unit) SymbolFor(decl ast.Node) types.Symbol {
	return u.symbols[decl]
}

// TopLevelSymbols returns the file scope symbols in declaration order
func (u *Unit) TopLevelSymbols() []types.Symbol {
	if root := u.RootScope(); root != nil {
		return root.Symbols()
	}
	return nil
}

// Classes returns the class types declared at the top level of the unit
func (u *Unit) Classes() []*types.ClassType {
	return u.classes
}

// ExpandFunctions returns the unit's expand functions in declaration order
func (u *Unit) ExpandFunctions() []types.ExpandSymbol {
	return u.expands
}

// Lookup searches the scope chain from the scope of node
func (u *Unit) Lookup(node ast.Node, name string) types.Symbol {
	for s := u.ScopeAt(node); s != nil; s = u.Scope(s.Parent) {
		if sym := s.LookupLocal(name); sym != nil {
			return sym
		}
	}
	return nil
}

// LookupAll returns every symbol called name in the innermost scope of the
// chain that declares it. Used to gather overloads.
func (u *Unit) LookupAll(node ast.Node, name string) []types.Symbol {
	for s := u.ScopeAt(node); s != nil; s = u.Scope(s.Parent) {
		if found := s.Named(name); len(found) > 0 {
			return found
		}
	}
	return nil
}
