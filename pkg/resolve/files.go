package resolve

import (
	"path/filepath"

	"github.com/matzehuels/nativedeps/pkg/deps"
	"github.com/matzehuels/nativedeps/pkg/platform"
)

// NativeLibrarySet is a downloaded library resolved to files under a
// binary's dependency directory. LinkFile and RuntimeFile are empty when the
// linkage has no such file (api has neither, static has no run-time file).
type NativeLibrarySet struct {
	Library     string       `json:"library"`
	Linkage     deps.Linkage `json:"linkage"`
	Usage       string       `json:"usage"`
	IncludeDir  string       `json:"includeDir"`
	LinkFile    string       `json:"linkFile,omitempty"`
	RuntimeFile string       `json:"runtimeFile,omitempty"`
}

// ResolveLibrarySet computes the include directory and library files of lib
// inside depsDir for a target of the given OS family. The files are assumed
// to have been fetched and unpacked already.
func ResolveLibrarySet(lib deps.DownloadedLibrary, os platform.OS, depsDir string) (NativeLibrarySet, error) {
	if lib.Name == "" {
		return NativeLibrarySet{}, deps.MissingAttribute(deps.AttrLibrary)
	}

	set := NativeLibrarySet{
		Library:    lib.Name,
		Linkage:    lib.Linkage,
		IncludeDir: filepath.Join(depsDir, "include"),
	}
	libDir := filepath.Join(depsDir, "lib")

	var files platform.LibraryFiles
	switch lib.Linkage {
	case deps.LinkageShared:
		files = platform.SharedLibraryFiles(os, lib.Name)
	case deps.LinkageStatic:
		files = platform.StaticLibraryFiles(os, lib.Name)
	case deps.LinkageAPI:
		return set, nil
	case "":
		return NativeLibrarySet{}, deps.MissingAttribute(deps.AttrLinkage)
	default:
		return NativeLibrarySet{}, deps.UnsupportedLinkage(lib.Linkage)
	}

	set.LinkFile = filepath.Join(libDir, files.Link)
	if files.Runtime != "" {
		set.RuntimeFile = filepath.Join(libDir, files.Runtime)
	}
	return set, nil
}

// Layout locates the per-binary dependency directories where the host's
// fetch step unpacks downloaded artifacts.
type Layout struct {
	BuildDir string // Build output root
}

// DepsDirName is the directory under the build root holding fetched artifacts.
const DepsDirName = "native-deps"

// DepsDir returns <buildDir>/native-deps/<binary>/<scope>.
func (l Layout) DepsDir(b platform.Binary, scope string) string {
	return filepath.Join(l.BuildDir, DepsDirName, b.Name, scope)
}

// LibDir returns the library directory of a dependency directory scope.
func (l Layout) LibDir(b platform.Binary, scope string) string {
	return filepath.Join(l.DepsDir(b, scope), "lib")
}
