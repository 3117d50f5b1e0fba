package resolve

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/nativedeps/pkg/deps"
	"github.com/matzehuels/nativedeps/pkg/platform"
)

// Coordinate identifies an artifact for the host's dependency resolver.
// Transitive coordinates carry no classifier or extension: they pull in the
// runtime metadata of an artifact without re-declaring the artifact itself.
type Coordinate struct {
	Group         string `json:"group"`
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
	Classifier    string `json:"classifier,omitempty"`
	Configuration string `json:"configuration"`
	Ext           string `json:"ext,omitempty"`
	Transitive    bool   `json:"transitive,omitempty"`
}

// Notation returns the coordinate in the map form accepted by the host
// resolver. Empty fields are omitted.
func (c Coordinate) Notation() map[string]string {
	m := map[string]string{
		"group":         c.Group,
		"name":          c.Name,
		"configuration": c.Configuration,
	}
	if c.Version != "" {
		m["version"] = c.Version
	}
	if c.Classifier != "" {
		m["classifier"] = c.Classifier
	}
	if c.Ext != "" {
		m["ext"] = c.Ext
	}
	return m
}

// String formats the coordinate as group:name[:version][:classifier][@ext].
func (c Coordinate) String() string {
	parts := []string{c.Group, c.Name}
	if c.Version != "" {
		parts = append(parts, c.Version)
	}
	if c.Classifier != "" {
		parts = append(parts, c.Classifier)
	}
	s := strings.Join(parts, ":")
	if c.Ext != "" {
		s += "@" + c.Ext
	}
	if c.Transitive {
		s += " (" + c.Configuration + ", transitive)"
	}
	return s
}

// Registration pairs a coordinate with the host configuration it is added to.
type Registration struct {
	Configuration string     `json:"configuration"`
	Coordinate    Coordinate `json:"coordinate"`
}

// ConfigurationName returns the host configuration that holds the
// dependencies of b for usage u, e.g. "helloExecutableCompile".
func ConfigurationName(b platform.Binary, u deps.Usage) string {
	return b.Name + upperFirst(u.String())
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// PrimaryCoordinate builds the coordinate of the artifact itself.
func PrimaryCoordinate(lib deps.DownloadedLibrary, c Classifiers, requireVersion bool) (Coordinate, error) {
	if err := lib.Validate(requireVersion); err != nil {
		return Coordinate{}, err
	}
	classifier, err := SelectClassifier(lib, c)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{
		Group:         lib.Group,
		Name:          lib.Name,
		Version:       lib.Version,
		Classifier:    classifier,
		Configuration: classifier,
		Ext:           lib.Extension(),
	}, nil
}

// TransitiveCoordinate builds the runtime-only coordinate of lib: same
// group, name, version and configuration, no classifier or extension.
func TransitiveCoordinate(lib deps.DownloadedLibrary, c Classifiers, requireVersion bool) (Coordinate, error) {
	if err := lib.Validate(requireVersion); err != nil {
		return Coordinate{}, err
	}
	classifier, err := SelectClassifier(lib, c)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{
		Group:         lib.Group,
		Name:          lib.Name,
		Version:       lib.Version,
		Configuration: classifier,
		Transitive:    true,
	}, nil
}
