package resolve

import (
	"github.com/matzehuels/nativedeps/pkg/deps"
	"github.com/matzehuels/nativedeps/pkg/platform"
)

// Classifiers are the two platform classifiers of a binary. Published
// native artifacts use them both as classifier and as configuration name.
type Classifiers struct {
	Shared string // "<platform>-shared-<buildType>"
	Static string // "<platform>-static-<buildType>"
}

// ClassifiersFor derives the shared and static classifiers of b.
func ClassifiersFor(b platform.Binary) Classifiers {
	return Classifiers{
		Shared: b.Platform + "-shared-" + b.BuildType,
		Static: b.Platform + "-static-" + b.BuildType,
	}
}

// SelectClassifier picks the classifier for lib. An explicit classifier is
// used verbatim; otherwise static and shared linkage select the matching
// platform classifier. Any other linkage is a configuration error.
func SelectClassifier(lib deps.DownloadedLibrary, c Classifiers) (string, error) {
	if lib.Classifier != "" {
		return lib.Classifier, nil
	}
	switch lib.Linkage {
	case deps.LinkageStatic:
		return c.Static, nil
	case deps.LinkageShared:
		return c.Shared, nil
	case "", deps.LinkageAPI:
		// Headers-only artifacts have no platform classifier to derive.
		return "", deps.AmbiguousClassifier(lib.Name)
	}
	return "", deps.UnsupportedLinkage(lib.Linkage)
}
