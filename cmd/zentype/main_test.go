package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScripts(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const mainScript = `zenClass P { var name as string; function get() as int; }
var p as P;
var n = p.get();
`

func TestTypesCommand(t *testing.T) {
	root := writeScripts(t, map[string]string{"main.zs": mainScript})

	out, err := run(t, "--root", root, "--log-level", "error", "types", "main.zs")
	if err != nil {
		t.Fatalf("types failed: %v", err)
	}
	for _, want := range []string{"class P: scripts.main.P", "variable p: scripts.main.P", "variable n: int"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHoverAndMembersCommands(t *testing.T) {
	root := writeScripts(t, map[string]string{"main.zs": mainScript + "p.\n"})

	out, err := run(t, "--root", root, "--log-level", "error", "hover", "main.zs", "3", "5")
	if err != nil {
		t.Fatalf("hover failed: %v", err)
	}
	if strings.TrimSpace(out) != "n: int" {
		t.Errorf("expected hover text n: int, got %q", out)
	}

	out, err = run(t, "--root", root, "--log-level", "error", "members", "main.zs", "4", "3")
	if err != nil {
		t.Fatalf("members failed: %v", err)
	}
	if !strings.Contains(out, "name: string") || !strings.Contains(out, "get: function()int") {
		t.Errorf("unexpected members output:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	root := writeScripts(t, map[string]string{
		"main.zs":   "var x = missing;\n",
		"lib/ok.zs": "var y = 1;\n",
		"broken.zs": "var = ;\n",
	})

	out, err := run(t, "--root", root, "--log-level", "error", "check")
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected check to fail on syntax errors, got %v", err)
	}
	if !strings.Contains(out, "unresolved-name") {
		t.Errorf("expected lint warning in output:\n%s", out)
	}
	if !strings.Contains(out, "3 scripts") {
		t.Errorf("expected summary in output:\n%s", out)
	}
}

func TestInvalidPosition(t *testing.T) {
	root := writeScripts(t, map[string]string{"main.zs": mainScript})
	if _, err := run(t, "--root", root, "hover", "main.zs", "x", "1"); err == nil {
		t.Error("expected an error for a non-numeric line")
	}
}

func TestUnknownScript(t *testing.T) {
	root := writeScripts(t, map[string]string{"main.zs": mainScript})
	if _, err := run(t, "--root", root, "--log-level", "error", "types", "nope.zs"); err == nil {
		t.Error("expected an error for a script outside the workspace")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	root := writeScripts(t, map[string]string{"main.zs": mainScript})
	if _, err := run(t, "--root", root, "--log-level", "loud", "check"); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}
