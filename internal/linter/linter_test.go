package linter

import (
	"strings"
	"testing"

	"github.com/lhaig/zentype/internal/diagnostic"
	"github.com/lhaig/zentype/internal/model"
)

func lintSource(t *testing.T, source string) []diagnostic.Diagnostic {
	t.Helper()
	u := model.ParseUnit("main.zs", model.PackageFor("main.zs"), source)
	if u.Diagnostics.HasErrors() {
		t.Fatalf("Parser errors: %s", u.Diagnostics.Format())
	}
	env := model.NewEnvironment("scripts")
	if err := env.AddUnit(u); err != nil {
		t.Fatal(err)
	}
	sess := env.Read()
	defer sess.Close()
	return Lint(sess, u).All()
}

func parseAndLint(t *testing.T, source string) []string {
	t.Helper()
	var warnings []string
	for _, d := range lintSource(t, source) {
		warnings = append(warnings, d.Message)
	}
	return warnings
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

// --- Unresolved names ---

func TestUnresolvedName(t *testing.T) {
	source := `var a = missing + 1;`
	warnings := parseAndLint(t, source)
	if !containsWarning(warnings, "cannot resolve name 'missing'") {
		t.Errorf("Expected unresolved name warning, got: %v", warnings)
	}
}

func TestResolvedNamesNoWarning(t *testing.T) {
	source := `import scripts.lib.Thing;
global g = 1;
zenClass Box {
    var size as int;
    function grow(by as int) as int { return size + by + g; }
}
var m = {name: 1};
function use(b as Box) {
    for k, v in m {
        print(k, v);
    }
}
var t as Thing;`
	warnings := parseAndLint(t, source)
	for _, w := range warnings {
		if strings.Contains(w, "cannot resolve") && !strings.Contains(w, "'print'") {
			t.Errorf("Did not expect unresolved name warning, got: %v", warnings)
		}
	}
	if !containsWarning(warnings, "'print'") {
		t.Errorf("Expected print to be unresolved without a native library, got: %v", warnings)
	}
}

func TestUnresolvedNameCode(t *testing.T) {
	diags := lintSource(t, `var x = nope;`)
	if len(diags) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(diags))
	}
	d := diags[0]
	if d.Code != RuleUnresolvedName || d.Severity != diagnostic.Warning {
		t.Errorf("Expected unresolved-name warning, got %s", d)
	}
	if d.Line != 1 || d.Column != 9 {
		t.Errorf("Expected finding at 1:9, got %d:%d", d.Line, d.Column)
	}
	if d.File != "main.zs" {
		t.Errorf("Expected finding in main.zs, got %s", d.File)
	}
}

// --- Unknown members ---

func TestUnknownMember(t *testing.T) {
	source := `zenClass P { var name as string; }
var p as P;
var x = p.nmae;`
	warnings := parseAndLint(t, source)
	if !containsWarning(warnings, "'scripts.main.P' has no member 'nmae'") {
		t.Errorf("Expected unknown member warning, got: %v", warnings)
	}
}

func TestKnownMembersNoWarning(t *testing.T) {
	source := `zenClass Base { function id() as int; }
zenClass P extends Base { var name as string; }
$expand P$extra() as bool { return true; }
var p as P;
var a = p.name;
var b = p.id();
var c = p.extra();
var s = "x";
var d = s.whatever;`
	warnings := parseAndLint(t, source)
	if containsWarning(warnings, "has no member") {
		t.Errorf("Did not expect unknown member warning, got: %v", warnings)
	}
}

func TestMemberGetOperatorSuppressesUnknownMember(t *testing.T) {
	source := `zenClass Bag { operator . (key as string) as int; }
var b as Bag;
var x = b.anything;`
	warnings := parseAndLint(t, source)
	if containsWarning(warnings, "has no member") {
		t.Errorf("Did not expect unknown member warning, got: %v", warnings)
	}
}

// --- Ambiguous overloads ---

func TestAmbiguousOverload(t *testing.T) {
	source := `zenClass P {
    function f(x as int) as int;
    function f(x as int) as string;
}
var p as P;
var r = p.f(1);`
	warnings := parseAndLint(t, source)
	if !containsWarning(warnings, "call to 'f' matches 2 overloads") {
		t.Errorf("Expected ambiguous overload warning, got: %v", warnings)
	}
}

func TestDistinctOverloadsNoWarning(t *testing.T) {
	source := `zenClass P {
    function f(x as int) as int;
    function f(x as string) as string;
}
var p as P;
var r = p.f("s");`
	warnings := parseAndLint(t, source)
	if containsWarning(warnings, "overloads") {
		t.Errorf("Did not expect ambiguous overload warning, got: %v", warnings)
	}
}

// --- Class naming ---

func TestClassNaming(t *testing.T) {
	warnings := parseAndLint(t, `zenClass my_thing {}`)
	if !containsWarning(warnings, "class 'my_thing' should use PascalCase naming") {
		t.Errorf("Expected class naming warning, got: %v", warnings)
	}
	warnings = parseAndLint(t, `zenClass MyThing {}`)
	if containsWarning(warnings, "PascalCase") {
		t.Errorf("Did not expect class naming warning, got: %v", warnings)
	}
}

// --- Empty function body ---

func TestEmptyFunctionBody(t *testing.T) {
	warnings := parseAndLint(t, `function noop() {}`)
	if !containsWarning(warnings, "empty body") {
		t.Errorf("Expected empty body warning, got: %v", warnings)
	}
}

func TestAbstractFunctionNoWarning(t *testing.T) {
	warnings := parseAndLint(t, `zenClass P { function get() as int; }`)
	if containsWarning(warnings, "empty body") {
		t.Errorf("Did not expect empty body warning, got: %v", warnings)
	}
}

// --- Unused parameters ---

func TestUnusedParameter(t *testing.T) {
	source := `function add(a as int, b as int) as int {
    return a;
}`
	warnings := parseAndLint(t, source)
	if !containsWarning(warnings, "parameter 'b' in 'add' is never used") {
		t.Errorf("Expected unused parameter warning, got: %v", warnings)
	}
	if containsWarning(warnings, "parameter 'a'") {
		t.Errorf("Did not expect warning for a, got: %v", warnings)
	}
}

func TestShadowedParameterIsUnused(t *testing.T) {
	source := `function f(a as int) as int {
    for a in [1, 2] {
        return a;
    }
    return 0;
}`
	warnings := parseAndLint(t, source)
	if !containsWarning(warnings, "parameter 'a' in 'f' is never used") {
		t.Errorf("Expected unused parameter warning, got: %v", warnings)
	}
}

func TestFindingsSortedByPosition(t *testing.T) {
	diags := lintSource(t, "var b = y;\nvar a = x;")
	if len(diags) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(diags))
	}
	if diags[0].Line != 1 || diags[1].Line != 2 {
		t.Errorf("Expected findings in line order, got %v", diags)
	}
}
