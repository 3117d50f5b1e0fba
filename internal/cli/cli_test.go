package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/nativedeps/pkg/errors"
	"github.com/matzehuels/nativedeps/pkg/resolve"
)

const testManifest = `
test_components = ["fixtures"]

[[compile]]
library = "m"

[[compile]]
group = "org.acme"
library = "zlib"
version = "1.3"
linkage = "static"

[[runtime]]
group = "org.acme"
library = "ssl"
version = "3.0"
linkage = "shared"

[[test_compile]]
group = "org.google"
library = "gtest"
version = "1.14"
linkage = "static"

[[binaries]]
name = "helloExecutable"
component = "hello"
platform = "linux_x86-64"
build_type = "debug"
os = "linux"

[[binaries]]
name = "helloTest"
component = "hello"
platform = "linux_x86-64"
build_type = "debug"
os = "linux"
test_suite = true
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nativedeps.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"resolve", "validate", "graph", "browse", "serve", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestResolveJSON(t *testing.T) {
	path := writeManifest(t, testManifest)
	out, err := execute(t, "resolve", path, "--format", "json")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	var got []resolve.Resolution
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(got) != 2 {
		t.Fatalf("got %d resolutions, want 2", len(got))
	}
	if got[0].Test || !got[1].Test {
		t.Errorf("test flags = %v, %v", got[0].Test, got[1].Test)
	}
	if len(got[0].Libraries) != 2 || len(got[1].Libraries) != 3 {
		t.Errorf("libraries = %d, %d; want 2, 3", len(got[0].Libraries), len(got[1].Libraries))
	}
	wantDir := filepath.Join(filepath.Dir(path), "build", "native-deps", "helloExecutable", "main", "lib")
	if got[0].LinkerArgs[0] != "-L"+wantDir {
		t.Errorf("LinkerArgs[0] = %q, want -L%s", got[0].LinkerArgs[0], wantDir)
	}
}

func TestResolveTable(t *testing.T) {
	path := writeManifest(t, testManifest)
	out, err := execute(t, "resolve", path, "--binary", "helloExecutable")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	for _, want := range []string{"helloExecutable", "libzlib.a", "libssl.so", "helloExecutableCompile", "-L"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "gtest") {
		t.Errorf("main binary should not list test libraries:\n%s", out)
	}
}

func TestResolveSubmit(t *testing.T) {
	path := writeManifest(t, testManifest)
	out, err := execute(t, "resolve", path, "--submit", "-f", "json")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	var got map[string][]map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	compile := got["helloExecutableCompile"]
	if len(compile) != 1 || compile[0]["classifier"] != "linux_x86-64-static-debug" {
		t.Errorf("helloExecutableCompile = %v", compile)
	}
	if len(got["helloTestTestRuntime"]) != 1 {
		t.Errorf("helloTestTestRuntime = %v, want the transitive gtest coordinate", got["helloTestTestRuntime"])
	}
}

func TestResolveErrors(t *testing.T) {
	path := writeManifest(t, testManifest)

	if _, err := execute(t, "resolve", path, "--binary", "nope"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown binary error = %v, want NOT_FOUND", err)
	}
	if _, err := execute(t, "resolve", path, "--format", "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v, want INVALID_FORMAT", err)
	}
	if _, err := execute(t, "resolve", filepath.Join(t.TempDir(), "nativedeps.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing manifest error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", writeManifest(t, testManifest))
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if !strings.Contains(out, "is valid") || !strings.Contains(out, "4 declarations, 2 binaries") {
		t.Errorf("output:\n%s", out)
	}

	bad := testManifest + "\n[[compile]]\ngroup = \"g\"\nlibrary = \"x\"\nversion = \"1\"\nlinkage = \"bogus\"\n"
	out, err = execute(t, "validate", writeManifest(t, bad))
	if !errors.Is(err, errors.ErrCodeUnsupportedLinkage) {
		t.Errorf("error = %v, want UNSUPPORTED_LINKAGE", err)
	}
	if strings.Contains(out, "bogus") {
		t.Errorf("failure should be reported once, by the caller; output:\n%s", out)
	}
}

func TestGraphDOT(t *testing.T) {
	path := writeManifest(t, testManifest)
	out, err := execute(t, "graph", path)
	if err != nil {
		t.Fatalf("graph error: %v", err)
	}
	if !strings.HasPrefix(out, "digraph G {") || !strings.Contains(out, `"helloTest" -> "dl:org.google:gtest";`) {
		t.Errorf("DOT output:\n%s", out)
	}

	file := filepath.Join(t.TempDir(), "deps.dot")
	if _, err := execute(t, "graph", path, "-o", file, "--detailed"); err != nil {
		t.Fatalf("graph -o error: %v", err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "label=") {
		t.Errorf("written DOT:\n%s", data)
	}
}

func TestGraphFormat(t *testing.T) {
	tests := []struct {
		opts graphOpts
		want string
		err  bool
	}{
		{graphOpts{}, formatDOT, false},
		{graphOpts{output: "out.svg"}, formatSVG, false},
		{graphOpts{output: "out.gv"}, formatDOT, false},
		{graphOpts{output: "out.svg", format: "dot"}, formatDOT, false},
		{graphOpts{output: "graph.json"}, formatJSON, false},
		{graphOpts{output: "out.png"}, "", true},
	}

	for _, tt := range tests {
		got, err := graphFormat(tt.opts)
		if (err != nil) != tt.err {
			t.Errorf("graphFormat(%+v) error = %v", tt.opts, err)
			continue
		}
		if got != tt.want {
			t.Errorf("graphFormat(%+v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "nativedeps") {
		t.Error("bash completion should mention the command name")
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestPrintErrorKeepsContext(t *testing.T) {
	bad := strings.Replace(testManifest, "version = \"1.3\"\n", "", 1)
	_, err := execute(t, "validate", writeManifest(t, bad))
	if !errors.Is(err, errors.ErrCodeMissingAttribute) {
		t.Fatalf("error = %v, want MISSING_ATTRIBUTE", err)
	}

	var buf bytes.Buffer
	PrintError(&buf, err)
	msg := buf.String()
	if !strings.Contains(msg, "compile[1]: ") || !strings.Contains(msg, "attribute version not specified") {
		t.Errorf("PrintError() = %q, want declaration context", msg)
	}
	if strings.Contains(msg, string(errors.ErrCodeMissingAttribute)) {
		t.Errorf("PrintError() = %q, should not show the error code", msg)
	}
}

func TestGraphFromJSON(t *testing.T) {
	path := writeManifest(t, testManifest)
	direct, err := execute(t, "graph", path)
	if err != nil {
		t.Fatalf("graph error: %v", err)
	}

	exported := filepath.Join(t.TempDir(), "deps.json")
	if _, err := execute(t, "graph", path, "-o", exported); err != nil {
		t.Fatalf("graph -o json error: %v", err)
	}
	out, err := execute(t, "graph", "--from", exported)
	if err != nil {
		t.Fatalf("graph --from error: %v", err)
	}
	for _, want := range []string{`"helloTest" -> "dl:org.google:gtest";`, `"helloExecutable" -> "local:m";`} {
		if !strings.Contains(direct, want) || !strings.Contains(out, want) {
			t.Errorf("missing %q in re-rendered graph:\n%s", want, out)
		}
	}

	if _, err := execute(t, "graph", "--from", filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing --from error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := execute(t, "graph", path, "--from", exported); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("--from with manifest error = %v, want INVALID_INPUT", err)
	}
}
