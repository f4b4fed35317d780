package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/zentype/internal/model"
	"github.com/lhaig/zentype/internal/types"
)

func load(t *testing.T, src string) (*model.Session, *model.Unit) {
	t.Helper()
	env := model.NewEnvironment("scripts")
	u := model.ParseUnit("main.zs", model.PackageFor("main.zs"), src)
	require.NoError(t, env.AddUnit(u))
	sess := env.Read()
	t.Cleanup(sess.Close)
	return sess, u
}

const hoverSrc = `zenClass P { function get() as int; }
var p as P;
var n = p.get();
function twice(x as double) as double { return x * 2; }`

func TestHover(t *testing.T) {
	sess, u := load(t, hoverSrc)
	require.False(t, u.Diagnostics.HasErrors(), u.Diagnostics.Format())

	tests := []struct {
		name      string
		line, col int
		want      string
	}{
		{"declared var", 3, 5, "n: int"},
		{"receiver", 3, 9, "p: scripts.main.P"},
		{"call result", 3, 14, "int"},
		{"param name", 4, 16, "x: double"},
		{"param reference", 4, 48, "x: double"},
		{"binary", 4, 50, "double"},
		{"annotation", 2, 10, "scripts.main.P"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Hover(sess, u, tt.line, tt.col)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHoverNothing(t *testing.T) {
	sess, u := load(t, hoverSrc)
	_, ok := Hover(sess, u, 9, 1)
	assert.False(t, ok, "past the end of the file")
}

const completeSrc = `zenClass P { var name as string; function get() as int; function got() as int; }
$expand P$extra() as bool { return true; }
var p as P;
p.
var n = p.ge;`

func TestCompleteMembers(t *testing.T) {
	sess, u := load(t, completeSrc)

	members, ok := CompleteMembers(sess, u, 4, 3)
	require.True(t, ok)
	var names []string
	for _, m := range members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"name", "get", "got", "extra"}, names)
	assert.Equal(t, types.VariableSymbol, members[0].Kind)
	assert.Equal(t, "name: string", members[0].String())
	assert.Equal(t, types.ExpandSymbolKind, members[3].Kind)
}

func TestCompleteMembersFiltersByPrefix(t *testing.T) {
	sess, u := load(t, completeSrc)

	members, ok := CompleteMembers(sess, u, 5, 13)
	require.True(t, ok)
	require.Len(t, members, 1)
	assert.Equal(t, "get", members[0].Name)
}

func TestCompleteMembersOutsideAccess(t *testing.T) {
	sess, u := load(t, completeSrc)

	_, ok := CompleteMembers(sess, u, 3, 5)
	assert.False(t, ok)
	_, ok = CompleteMembers(sess, u, 5, 10)
	assert.False(t, ok, "cursor on the receiver")
}

func TestDeclarations(t *testing.T) {
	sess, u := load(t, `var total = 1;
function scale(by as double) as double { return by; }
for i, s in ["a"] {}`)
	require.False(t, u.Diagnostics.HasErrors(), u.Diagnostics.Format())

	var got []string
	for _, d := range Declarations(sess, u) {
		got = append(got, d.Name+": "+d.Type.String())
	}
	assert.Equal(t, []string{
		"total: int",
		"scale: function(double)double",
		"by: double",
		"i: int",
		"s: string",
	}, got)

	decls := Declarations(sess, u)
	assert.Equal(t, "1:1 variable total: int", decls[0].String())
}
