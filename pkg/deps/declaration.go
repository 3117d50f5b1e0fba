package deps

import (
	"maps"
	"slices"

	"github.com/matzehuels/nativedeps/pkg/errors"
)

// Attributes is the loosely typed form of a library declaration as written by
// a project author, e.g. {"group": "org.acme", "library": "zlib", ...}.
type Attributes map[string]string

// Recognized attribute keys.
const (
	AttrGroup      = "group"
	AttrLibrary    = "library"
	AttrName       = "name" // alias of library
	AttrVersion    = "version"
	AttrLinkage    = "linkage"
	AttrType       = "type" // alias of linkage
	AttrClassifier = "classifier"
	AttrExt        = "ext"
)

var downloadedKeys = []string{
	AttrGroup, AttrLibrary, AttrName, AttrVersion,
	AttrLinkage, AttrType, AttrClassifier, AttrExt,
}

// DefaultExt is the archive extension of published native artifacts.
const DefaultExt = "nar"

// Linkage is how a library is consumed by the linker.
type Linkage string

const (
	LinkageStatic Linkage = "static" // Archive linked into the binary
	LinkageShared Linkage = "shared" // Dynamic library with link-time and run-time files
	LinkageAPI    Linkage = "api"    // Headers only
)

// Valid reports whether l is one of the supported linkages.
func (l Linkage) Valid() bool {
	return l == LinkageStatic || l == LinkageShared || l == LinkageAPI
}

// Declaration is a library declared for some usage. It is either a
// [LocalLibrary] or a [DownloadedLibrary].
type Declaration interface {
	// LibraryName returns the base library name.
	LibraryName() string
	// Origin reports whether the library is local or downloaded.
	Origin() Origin
}

// LocalLibrary references a library that already exists on disk or in
// another project. Its attributes are handed to the host untouched.
type LocalLibrary struct {
	Name  string     // Base library name
	Attrs Attributes // Full attribute set as declared
}

func (l LocalLibrary) LibraryName() string { return l.Name }
func (l LocalLibrary) Origin() Origin      { return Local }

// Attr returns a declared attribute.
func (l LocalLibrary) Attr(key string) (string, bool) {
	v, ok := l.Attrs[key]
	return v, ok
}

func (l LocalLibrary) clone() LocalLibrary {
	l.Attrs = maps.Clone(l.Attrs)
	return l
}

// DownloadedLibrary is a library fetched from a repository by coordinates.
// Version, Classifier and Ext are optional; an empty Ext means [DefaultExt].
type DownloadedLibrary struct {
	Group      string
	Name       string
	Version    string
	Linkage    Linkage
	Classifier string
	Ext        string
}

func (d DownloadedLibrary) LibraryName() string { return d.Name }
func (d DownloadedLibrary) Origin() Origin      { return Downloaded }

// Extension returns the artifact extension, defaulting to [DefaultExt].
func (d DownloadedLibrary) Extension() string {
	if d.Ext == "" {
		return DefaultExt
	}
	return d.Ext
}

// Validate checks the platform-independent attributes of the declaration.
// The required group and library are always checked; version only when
// requireVersion is set. Linkage and classifier rules are checked by
// [DownloadedLibrary.ValidateLinkage].
func (d DownloadedLibrary) Validate(requireVersion bool) error {
	if d.Group == "" {
		return MissingAttribute(AttrGroup)
	}
	if d.Name == "" {
		return MissingAttribute(AttrLibrary)
	}
	if requireVersion && d.Version == "" {
		return MissingAttribute(AttrVersion)
	}
	return nil
}

// ValidateLinkage checks that the linkage can drive both classifier
// derivation and file resolution. An explicit classifier removes the need
// for a static/shared linkage, but file resolution still needs one.
func (d DownloadedLibrary) ValidateLinkage() error {
	if d.Linkage == "" {
		if d.Classifier == "" {
			return AmbiguousClassifier(d.Name)
		}
		return MissingAttribute(AttrLinkage)
	}
	if !d.Linkage.Valid() {
		return UnsupportedLinkage(d.Linkage)
	}
	if d.Linkage == LinkageAPI && d.Classifier == "" {
		return AmbiguousClassifier(d.Name)
	}
	return nil
}

// Attributes returns the declaration in attribute-map form.
func (d DownloadedLibrary) Attributes() Attributes {
	attrs := Attributes{AttrGroup: d.Group, AttrLibrary: d.Name}
	set := func(k, v string) {
		if v != "" {
			attrs[k] = v
		}
	}
	set(AttrVersion, d.Version)
	set(AttrLinkage, string(d.Linkage))
	set(AttrClassifier, d.Classifier)
	set(AttrExt, d.Ext)
	return attrs
}

// ParseDeclaration converts attributes into a typed declaration and validates
// it. Routing follows [OriginOf].
func ParseDeclaration(attrs Attributes, requireVersion bool) (Declaration, error) {
	name, err := libraryName(attrs)
	if err != nil {
		return nil, err
	}

	if OriginOf(attrs) == Local {
		return LocalLibrary{Name: name, Attrs: maps.Clone(attrs)}, nil
	}

	for k := range attrs {
		if !slices.Contains(downloadedKeys, k) {
			return nil, errors.New(errors.ErrCodeInvalidDeclaration,
				"unknown downloaded library attribute %q on %s", k, name)
		}
	}

	linkage, err := linkageOf(attrs)
	if err != nil {
		return nil, err
	}

	d := DownloadedLibrary{
		Group:      attrs[AttrGroup],
		Name:       name,
		Version:    attrs[AttrVersion],
		Linkage:    linkage,
		Classifier: attrs[AttrClassifier],
		Ext:        attrs[AttrExt],
	}
	if err := d.Validate(requireVersion); err != nil {
		return nil, err
	}
	if err := errors.ValidateGroup(d.Group); err != nil {
		return nil, err
	}
	if d.Classifier != "" {
		if err := errors.ValidateClassifier(d.Classifier); err != nil {
			return nil, err
		}
	}
	if err := d.ValidateLinkage(); err != nil {
		return nil, err
	}
	return d, nil
}

func libraryName(attrs Attributes) (string, error) {
	lib, hasLib := attrs[AttrLibrary]
	name, hasName := attrs[AttrName]
	switch {
	case hasLib && hasName && lib != name:
		return "", errors.New(errors.ErrCodeInvalidDeclaration,
			"conflicting library names %q and %q", lib, name)
	case !hasLib && hasName:
		lib = name
	case !hasLib && !hasName:
		if OriginOf(attrs) == Local {
			return "", errors.New(errors.ErrCodeMissingAttribute,
				"required local library attribute %s not specified", AttrLibrary)
		}
		return "", MissingAttribute(AttrLibrary)
	}
	if err := errors.ValidateLibraryName(lib); err != nil {
		return "", err
	}
	return lib, nil
}

func linkageOf(attrs Attributes) (Linkage, error) {
	linkage, hasLinkage := attrs[AttrLinkage]
	typ, hasType := attrs[AttrType]
	if hasLinkage && hasType && linkage != typ {
		return "", errors.New(errors.ErrCodeInvalidDeclaration,
			"conflicting linkage %q and type %q", linkage, typ)
	}
	if hasType {
		return Linkage(typ), nil
	}
	return Linkage(linkage), nil
}

// MissingAttribute reports a required attribute that was not declared.
func MissingAttribute(attr string) error {
	return errors.New(errors.ErrCodeMissingAttribute,
		"required downloaded library attribute %s not specified", attr)
}

// UnsupportedLinkage reports a linkage value outside static/shared/api.
func UnsupportedLinkage(l Linkage) error {
	return errors.New(errors.ErrCodeUnsupportedLinkage,
		"unsupported downloaded library linkage %q", string(l))
}

// AmbiguousClassifier reports a library with neither an explicit classifier
// nor a linkage from which one can be derived.
func AmbiguousClassifier(name string) error {
	return errors.New(errors.ErrCodeAmbiguousClassifier,
		"cannot derive classifier for %s: declare linkage static or shared, or an explicit classifier", name)
}
