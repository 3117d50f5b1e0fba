package graph

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/nativedeps/pkg/deps"
	"github.com/matzehuels/nativedeps/pkg/platform"
	"github.com/matzehuels/nativedeps/pkg/resolve"
)

func resolveAll(t *testing.T) []*resolve.Resolution {
	t.Helper()
	reg := deps.NewRegistry(deps.DefaultPolicy())
	for _, attrs := range []deps.Attributes{
		{"library": "m"},
		{"group": "org.acme", "library": "zlib", "version": "1.3", "linkage": "static"},
	} {
		if err := reg.Compile(attrs); err != nil {
			t.Fatal(err)
		}
	}
	if err := reg.Runtime(deps.Attributes{"group": "org.acme", "library": "ssl", "version": "3", "linkage": "shared"}); err != nil {
		t.Fatal(err)
	}

	bin := func(name string) platform.Binary {
		return platform.Binary{Name: name, Platform: "linux", BuildType: "debug", OS: platform.Linux, Toolchain: platform.GCC}
	}
	out, err := resolve.NewEngine(reg, resolve.Layout{BuildDir: "build"}, nil).
		ResolveAll([]platform.Binary{bin("app"), bin("tool")})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestBuild(t *testing.T) {
	g, err := Build(resolveAll(t))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if g.NodeCount() != 5 {
		t.Errorf("NodeCount() = %d, want 5 (2 binaries, 3 libraries)", g.NodeCount())
	}
	if g.EdgeCount() != 6 {
		t.Errorf("EdgeCount() = %d, want 6", g.EdgeCount())
	}
	if got := g.Parents(DownloadedID("org.acme", "zlib")); len(got) != 2 {
		t.Errorf("zlib parents = %v, want both binaries", got)
	}
	if n, ok := g.Node(LocalID("m")); !ok || n.Kind != KindLocal || n.Row != RowLibraries {
		t.Errorf("local node = %+v", n)
	}
	children := g.Children("app")
	want := []string{LocalID("m"), DownloadedID("org.acme", "zlib"), DownloadedID("org.acme", "ssl")}
	for i := range want {
		if children[i] != want[i] {
			t.Errorf("Children(app) = %v, want %v", children, want)
			break
		}
	}
}

func TestBuildKeepsLocalAndDownloadedApart(t *testing.T) {
	reg := deps.NewRegistry(deps.DefaultPolicy())
	for _, attrs := range []deps.Attributes{
		{"library": "m"},
		{"group": "local", "library": "m", "version": "1", "linkage": "static"},
	} {
		if err := reg.Compile(attrs); err != nil {
			t.Fatal(err)
		}
	}
	bin := platform.Binary{Name: "app", Platform: "linux", BuildType: "debug", OS: platform.Linux, Toolchain: platform.GCC}
	out, err := resolve.NewEngine(reg, resolve.Layout{BuildDir: "build"}, nil).ResolveAll([]platform.Binary{bin})
	if err != nil {
		t.Fatal(err)
	}

	g, err := Build(out)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if n, ok := g.Node(LocalID("m")); !ok || n.Kind != KindLocal {
		t.Errorf("local node = %+v", n)
	}
	if n, ok := g.Node(DownloadedID("local", "m")); !ok || n.Kind != KindDownloaded {
		t.Errorf("downloaded node = %+v", n)
	}
}

func TestEnsureRejectsKindMismatch(t *testing.T) {
	g := New()
	if err := g.ensure(Node{ID: "x", Row: RowLibraries, Kind: KindLocal}); err != nil {
		t.Fatal(err)
	}
	if err := g.ensure(Node{ID: "x", Row: RowLibraries, Kind: KindLocal}); err != nil {
		t.Errorf("ensure(same kind) = %v", err)
	}
	if err := g.ensure(Node{ID: "x", Row: RowLibraries, Kind: KindDownloaded}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("ensure(other kind) = %v, want ErrDuplicateNodeID", err)
	}
}

func TestGraphErrors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); err != ErrInvalidNodeID {
		t.Errorf("AddNode(empty) = %v", err)
	}
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddNode(Node{ID: "a"}); err != ErrDuplicateNodeID {
		t.Errorf("AddNode(dup) = %v", err)
	}
	if err := g.AddEdge(Edge{From: "x", To: "a"}); err != ErrUnknownSourceNode {
		t.Errorf("AddEdge(unknown from) = %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); err != ErrUnknownTargetNode {
		t.Errorf("AddEdge(unknown to) = %v", err)
	}
	_ = g.AddNode(Node{ID: "b", Row: 2})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	if err := g.Validate(); err != ErrNonConsecutiveRows {
		t.Errorf("Validate() = %v, want ErrNonConsecutiveRows", err)
	}
}

func TestToDOT(t *testing.T) {
	g, err := Build(resolveAll(t))
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(g, Options{})
	for _, want := range []string{
		"digraph G {",
		`"app" -> "local:m";`,
		`"tool" -> "dl:org.acme:zlib";`,
		`{ rank=same; "app"; "tool"; }`,
		`style="rounded,filled,dashed"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	detailed := ToDOT(g, Options{Detailed: true})
	if !strings.Contains(detailed, `label="compile\nstatic"`) {
		t.Errorf("detailed DOT missing edge label:\n%s", detailed)
	}
	if !strings.Contains(detailed, `version: 1.3`) {
		t.Errorf("detailed DOT missing node metadata:\n%s", detailed)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g, err := Build(resolveAll(t))
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	back, err := ReadJSON(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if back.NodeCount() != g.NodeCount() || back.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip: %d/%d nodes, %d/%d edges", back.NodeCount(), g.NodeCount(), back.EdgeCount(), g.EdgeCount())
	}
	if n, _ := back.Node(DownloadedID("org.acme", "zlib")); n.Kind != KindDownloaded || n.Label != "zlib" {
		t.Errorf("zlib node = %+v", n)
	}

	if _, err := ReadJSON(strings.NewReader(`{"nodes":[{"id":"x","kind":"alien"}]}`)); err == nil {
		t.Error("expected error for unknown kind")
	}
}
