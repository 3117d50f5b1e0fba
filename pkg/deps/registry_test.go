package deps

import (
	"testing"

	"github.com/matzehuels/nativedeps/pkg/errors"
)

func TestDeclareRoutesByGroup(t *testing.T) {
	reg := NewRegistry(DefaultPolicy())

	local := Attributes{"library": "m"}
	downloaded := Attributes{"group": "org.acme", "library": "zlib", "version": "1.3", "linkage": "static"}

	for _, u := range Usages {
		if err := reg.Declare(u, local); err != nil {
			t.Fatalf("Declare(%s, local) error: %v", u, err)
		}
		if err := reg.Declare(u, downloaded); err != nil {
			t.Fatalf("Declare(%s, downloaded) error: %v", u, err)
		}
	}

	for _, u := range Usages {
		if got := reg.Local(u); len(got) != 1 || got[0].Name != "m" {
			t.Errorf("Local(%s) = %+v, want [m]", u, got)
		}
		if got := reg.Downloaded(u); len(got) != 1 || got[0].Name != "zlib" {
			t.Errorf("Downloaded(%s) = %+v, want [zlib]", u, got)
		}
	}
	if reg.Len() != 8 {
		t.Errorf("Len() = %d, want 8", reg.Len())
	}
}

func TestDeclarePreservesOrder(t *testing.T) {
	reg := NewRegistry(DefaultPolicy())
	names := []string{"c", "a", "b"}
	for _, n := range names {
		if err := reg.Compile(Attributes{"library": n}); err != nil {
			t.Fatal(err)
		}
	}

	got := reg.Local(Compile)
	for i, n := range names {
		if got[i].Name != n {
			t.Errorf("Local(Compile)[%d] = %s, want %s", i, got[i].Name, n)
		}
	}
}

func TestDeclareRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		code  errors.Code
	}{
		{"no library", Attributes{"group": "org.acme", "version": "1", "linkage": "static"}, errors.ErrCodeMissingAttribute},
		{"empty group", Attributes{"group": "", "library": "z", "version": "1", "linkage": "static"}, errors.ErrCodeMissingAttribute},
		{"no version", Attributes{"group": "org.acme", "library": "z", "linkage": "static"}, errors.ErrCodeMissingAttribute},
		{"bogus linkage", Attributes{"group": "org.acme", "library": "z", "version": "1", "linkage": "bogus"}, errors.ErrCodeUnsupportedLinkage},
		{"no linkage", Attributes{"group": "org.acme", "library": "z", "version": "1"}, errors.ErrCodeAmbiguousClassifier},
		{"api without classifier", Attributes{"group": "org.acme", "library": "z", "version": "1", "linkage": "api"}, errors.ErrCodeAmbiguousClassifier},
		{"classifier without linkage", Attributes{"group": "org.acme", "library": "z", "version": "1", "classifier": "x"}, errors.ErrCodeMissingAttribute},
		{"linkage and type disagree", Attributes{"group": "org.acme", "library": "z", "version": "1", "linkage": "static", "type": "shared"}, errors.ErrCodeInvalidDeclaration},
		{"unknown attribute", Attributes{"group": "org.acme", "library": "z", "version": "1", "linkage": "static", "flavor": "x"}, errors.ErrCodeInvalidDeclaration},
		{"local without name", Attributes{"project": ":core"}, errors.ErrCodeMissingAttribute},
		{"library with slash", Attributes{"library": "../evil"}, errors.ErrCodeInvalidDeclaration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(DefaultPolicy())
			err := reg.Compile(tt.attrs)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
			if reg.Len() != 0 {
				t.Errorf("rejected declaration was stored")
			}
		})
	}
}

func TestDeclareVersionOptional(t *testing.T) {
	p := DefaultPolicy()
	p.RequireVersion = false
	reg := NewRegistry(p)

	if err := reg.Compile(Attributes{"group": "org.acme", "library": "z", "linkage": "shared"}); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if got := reg.Downloaded(Compile)[0].Version; got != "" {
		t.Errorf("Version = %q, want empty", got)
	}
}

func TestCompactPolicyRejectsRuntime(t *testing.T) {
	reg := NewRegistry(CompactPolicy())

	if err := reg.Runtime(Attributes{"library": "m"}); !errors.Is(err, errors.ErrCodeInvalidUsage) {
		t.Errorf("Runtime() error = %v, want INVALID_USAGE", err)
	}
	if err := reg.TestRuntime(Attributes{"library": "m"}); !errors.Is(err, errors.ErrCodeInvalidUsage) {
		t.Errorf("TestRuntime() error = %v, want INVALID_USAGE", err)
	}
	if err := reg.TestCompile(Attributes{"library": "gtest"}); err != nil {
		t.Errorf("TestCompile() error = %v", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	reg := NewRegistry(DefaultPolicy())
	attrs := Attributes{"library": "m", "project": ":core"}
	if err := reg.Compile(attrs); err != nil {
		t.Fatal(err)
	}
	attrs["library"] = "changed"

	got := reg.Local(Compile)
	if got[0].Attrs["library"] != "m" {
		t.Error("registry should not observe caller mutation")
	}

	got[0].Attrs["project"] = ":other"
	got[0].Name = "other"
	again := reg.Local(Compile)
	if again[0].Attrs["project"] != ":core" || again[0].Name != "m" {
		t.Error("caller mutation leaked into registry")
	}
}

func TestAddTyped(t *testing.T) {
	reg := NewRegistry(DefaultPolicy())

	if err := reg.Add(Compile, DownloadedLibrary{Group: "g", Name: "x", Linkage: "bogus"}); err != nil {
		t.Fatalf("Add() should defer validation: %v", err)
	}
	if err := reg.Add(TestCompile, &LocalLibrary{Name: "fixture"}); err != nil {
		t.Fatalf("Add(pointer) error: %v", err)
	}
	if err := reg.Add(Compile, nil); !errors.Is(err, errors.ErrCodeInvalidDeclaration) {
		t.Errorf("Add(nil) error = %v, want INVALID_DECLARATION", err)
	}
	for _, d := range []Declaration{(*DownloadedLibrary)(nil), (*LocalLibrary)(nil)} {
		if err := reg.Add(Compile, d); !errors.Is(err, errors.ErrCodeInvalidDeclaration) {
			t.Errorf("Add(%T nil) error = %v, want INVALID_DECLARATION", d, err)
		}
	}
	if len(reg.Downloaded(Compile)) != 1 || len(reg.Local(TestCompile)) != 1 {
		t.Error("typed declarations not routed")
	}
}

func TestTestComponents(t *testing.T) {
	reg := NewRegistry(DefaultPolicy())
	reg.DeclareTestComponent("fixtures")
	reg.DeclareTestComponent("mocks")
	reg.DeclareTestComponent("fixtures")

	if !reg.IsTestComponent("fixtures") {
		t.Error("fixtures should be a test component")
	}
	if reg.IsTestComponent("hello") {
		t.Error("hello should not be a test component")
	}
	got := reg.TestComponents()
	if len(got) != 2 || got[0] != "fixtures" || got[1] != "mocks" {
		t.Errorf("TestComponents() = %v", got)
	}
}
