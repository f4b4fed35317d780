package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lhaig/zentype/internal/ast"
)

// newTestEnv parses every file into a fresh environment. Paths are
// relative to the workspace root.
func newTestEnv(t *testing.T, files map[string]string) *Environment {
	t.Helper()
	env := NewEnvironment("scripts")
	for path, src := range files {
		u := ParseUnit(path, PackageFor(path), src)
		require.False(t, u.Diagnostics.HasErrors(), "%s: %s", path, u.Diagnostics.Format())
		require.NoError(t, env.AddUnit(u))
	}
	return env
}

func openSession(t *testing.T, env *Environment) *Session {
	t.Helper()
	sess := env.Read()
	t.Cleanup(sess.Close)
	return sess
}

// single loads one main.zs unit and opens a session over it
func single(t *testing.T, src string) (*Session, *Unit) {
	t.Helper()
	env := newTestEnv(t, map[string]string{"main.zs": src})
	sess := openSession(t, env)
	u, ok := sess.Unit("main.zs")
	require.True(t, ok)
	return sess, u
}

func findVar(t *testing.T, u *Unit, name string) *ast.VarDecl {
	t.Helper()
	var found *ast.VarDecl
	ast.Inspect(u.File, func(n ast.Node) bool {
		if d, ok := n.(*ast.VarDecl); ok && found == nil && d.Name != nil && d.Name.Name == name {
			found = d
		}
		return found == nil
	})
	require.NotNil(t, found, "no var %s", name)
	return found
}

func findParam(t *testing.T, u *Unit, name string) *ast.Param {
	t.Helper()
	var found *ast.Param
	ast.Inspect(u.File, func(n ast.Node) bool {
		if p, ok := n.(*ast.Param); ok && found == nil && p.Name != nil && p.Name.Name == name {
			found = p
		}
		return found == nil
	})
	require.NotNil(t, found, "no param %s", name)
	return found
}

func varType(t *testing.T, sess *Session, u *Unit, name string) string {
	t.Helper()
	return sess.TypeOf(u, findVar(t, u, name)).String()
}
