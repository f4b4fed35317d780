package model

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/lhaig/zentype/internal/types"
)

var (
	// ErrUnitNotFound is returned when removing a unit that was never added
	ErrUnitNotFound = errors.New("unit not found")
	// ErrDuplicateUnit is returned when adding a path that is already present
	ErrDuplicateUnit = errors.New("unit already exists")
)

// Environment is the project-wide set of units. Readers open a Session;
// mutations take the write lock and rebuild the global indexes.
type Environment struct {
	mu     sync.RWMutex
	root   string
	units  map[string]*Unit
	logger *slog.Logger

	// rebuilt on every mutation, read-only under a session
	order    []*Unit
	globals  []types.Symbol
	classes  map[string]*types.ClassType
	classSeq []*types.ClassType
	expands  []types.ExpandSymbol
}

// Option configures an Environment
type Option func(*Environment)

// WithLogger sets the environment's logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Environment) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEnvironment creates an empty environment for the workspace at root
func NewEnvironment(root string, opts ...Option) *Environment {
	e := &Environment{
		root:    root,
		units:   make(map[string]*Unit),
		classes: make(map[string]*types.ClassType),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "environment")
	return e
}

// Root returns the workspace root the environment was created for
func (e *Environment) Root() string {
	return e.root
}

// AddUnit adds a new unit
func (e *Environment) AddUnit(u *Unit) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.units[u.Path]; exists {
		return fmt.Errorf("add %s: %w", u.Path, ErrDuplicateUnit)
	}
	e.put(u)
	e.reindex()
	e.logger.Debug("unit added", slog.String("path", u.Path), slog.Int("units", len(e.units)))
	return nil
}

// AddUnits adds or replaces several units under one write lock
func (e *Environment) AddUnits(units ...*Unit) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, u := range units {
		e.put(u)
	}
	e.reindex()
	e.logger.Debug("units added", slog.Int("added", len(units)), slog.Int("units", len(e.units)))
}

// ReplaceUnit adds u, replacing any unit with the same path
func (e *Environment) ReplaceUnit(u *Unit) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if old, exists := e.units[u.Path]; exists {
		old.env = nil
	}
	e.put(u)
	e.reindex()
	e.logger.Debug("unit replaced", slog.String("path", u.Path))
}

// RemoveUnit drops the unit with the given path
func (e *Environment) RemoveUnit(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, exists := e.units[path]
	if !exists {
		return fmt.Errorf("remove %s: %w", path, ErrUnitNotFound)
	}
	delete(e.units, path)
	u.env = nil
	e.reindex()
	e.logger.Debug("unit removed", slog.String("path", path), slog.Int("units", len(e.units)))
	return nil
}

// Read opens a read session. The read lock is held until Close.
func (e *Environment) Read() *Session {
	e.mu.RLock()
	return &Session{env: e}
}

func (e *Environment) put(u *Unit) {
	u.env = e
	e.units[u.Path] = u
}

// reindex rebuilds the unit order, globals, class registry and expand list.
// Caller holds the write lock.
func (e *Environment) reindex() {
	e.order = make([]*Unit, 0, len(e.units))
	for _, u := range e.units {
		e.order = append(e.order, u)
	}
	sort.Slice(e.order, func(i, j int) bool { return e.order[i].Path < e.order[j].Path })

	e.globals = nil
	e.expands = nil
	e.classSeq = nil
	e.classes = make(map[string]*types.ClassType)
	for _, u := range e.order {
		for _, sym := range u.TopLevelSymbols() {
			if sym.Modifiers().Has(types.ModGlobal) {
				e.globals = append(e.globals, sym)
			}
		}
		e.expands = append(e.expands, u.expands...)
		for _, ct := range u.classes {
			e.classSeq = append(e.classSeq, ct)
			if _, taken := e.classes[ct.Name]; !taken {
				e.classes[ct.Name] = ct
			}
		}
	}
}

// The accessors below never lock and tolerate a nil environment, so a
// resolver can run over a standalone unit.

func (e *Environment) globalSymbols() []types.Symbol {
	if e == nil {
		return nil
	}
	return e.globals
}

func (e *Environment) lookupGlobal(name string) types.Symbol {
	for _, sym := range e.globalSymbols() {
		if sym.Name() == name {
			return sym
		}
	}
	return nil
}

func (e *Environment) classNamed(qualified string) *types.ClassType {
	if e == nil {
		return nil
	}
	return e.classes[qualified]
}

func (e *Environment) classList() []*types.ClassType {
	if e == nil {
		return nil
	}
	return e.classSeq
}

func (e *Environment) expandFunctions() []types.ExpandSymbol {
	if e == nil {
		return nil
	}
	return e.expands
}
