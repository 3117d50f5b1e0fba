package resolve_test

import (
	"fmt"

	"github.com/matzehuels/nativedeps/pkg/deps"
	"github.com/matzehuels/nativedeps/pkg/platform"
	"github.com/matzehuels/nativedeps/pkg/resolve"
)

func ExampleEngine_Resolve() {
	reg := deps.NewRegistry(deps.DefaultPolicy())
	_ = reg.Compile(deps.Attributes{
		"group":   "org.acme",
		"library": "zlib",
		"version": "1.3",
		"linkage": "static",
	})

	engine := resolve.NewEngine(reg, resolve.Layout{BuildDir: "build"}, nil)
	res, err := engine.Resolve(platform.Binary{
		Name:      "helloExecutable",
		Platform:  "linux_x86-64",
		BuildType: "debug",
		OS:        platform.Linux,
		Toolchain: platform.GCC,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, r := range res.Registrations {
		fmt.Println(r.Configuration, r.Coordinate)
	}
	fmt.Println(res.Libraries[0].LinkFile)
	fmt.Println(res.LinkerArgs[0])
	// Output:
	// helloExecutableCompile org.acme:zlib:1.3:linux_x86-64-static-debug@nar
	// helloExecutableRuntime org.acme:zlib:1.3 (linux_x86-64-static-debug, transitive)
	// build/native-deps/helloExecutable/main/lib/libzlib.a
	// -Lbuild/native-deps/helloExecutable/main/lib
}

func ExampleClassifiersFor() {
	c := resolve.ClassifiersFor(platform.Binary{Platform: "windows_x86", BuildType: "release"})
	fmt.Println(c.Shared)
	fmt.Println(c.Static)
	// Output:
	// windows_x86-shared-release
	// windows_x86-static-release
}
