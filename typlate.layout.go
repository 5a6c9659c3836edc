package typlate

import (
	"embed"
	"os"
	"path/filepath"
)

// Layout file name constants
const (
	LayoutFileMeta     = "meta.tmp.typ"
	LayoutFileHeader   = "header.typ"
	LayoutFileRefs     = "refs.tmp.typ"
	LayoutOutputMeta   = "meta.typ"
	LayoutOutputHeader = "header.typ"
	LayoutOutputRefs   = "refs.typ"
	LayoutsDirName     = "layouts"
)

// Builtin layout names
const (
	LayoutNameDefault = "default"
	LayoutNameMinimal = "minimal"
)

//go:embed builtin_layouts
var builtinLayoutsFS embed.FS

// Layout holds the template and static files of one generation theme.
// A file field left empty means the layout does not ship that file.
type Layout struct {
	// Name is the theme name (corresponds to a directory in layouts/)
	Name string

	// MetaTemplate is the meta.tmp.typ template content
	MetaTemplate string

	// HeaderStatic is the header.typ static content, copied verbatim
	HeaderStatic string

	// RefsTemplate is the refs.tmp.typ template content
	RefsTemplate string
}

// ResolveLayout resolves a layout by name.
//
// Resolution order:
//  1. User layout in <root>/layouts/<name>/
//  2. Builtin layout
func ResolveLayout(root, name string) (*Layout, error) {
	if root != "" {
		dir := filepath.Join(root, LayoutsDirName, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return loadLayoutFromDir(dir, name)
		}
	}
	return BuiltinLayout(name)
}

// BuiltinLayout returns an embedded builtin layout by name.
func BuiltinLayout(name string) (*Layout, error) {
	switch name {
	case LayoutNameDefault, LayoutNameMinimal:
		return loadLayoutFromFS(name)
	default:
		return nil, NewLayoutNotFoundError(name)
	}
}

// BuiltinLayoutNames returns the names of all embedded layouts.
func BuiltinLayoutNames() []string {
	return []string{LayoutNameDefault, LayoutNameMinimal}
}

func loadLayoutFromFS(name string) (*Layout, error) {
	layout := &Layout{Name: name}
	base := "builtin_layouts/" + name

	if data, err := builtinLayoutsFS.ReadFile(base + "/" + LayoutFileMeta); err == nil {
		layout.MetaTemplate = string(data)
	}
	if data, err := builtinLayoutsFS.ReadFile(base + "/" + LayoutFileHeader); err == nil {
		layout.HeaderStatic = string(data)
	}
	if data, err := builtinLayoutsFS.ReadFile(base + "/" + LayoutFileRefs); err == nil {
		layout.RefsTemplate = string(data)
	}
	return layout, nil
}

func loadLayoutFromDir(dir, name string) (*Layout, error) {
	layout := &Layout{Name: name}

	if data, err := os.ReadFile(filepath.Join(dir, LayoutFileMeta)); err == nil {
		layout.MetaTemplate = string(data)
	}
	if data, err := os.ReadFile(filepath.Join(dir, LayoutFileHeader)); err == nil {
		layout.HeaderStatic = string(data)
	}
	if data, err := os.ReadFile(filepath.Join(dir, LayoutFileRefs)); err == nil {
		layout.RefsTemplate = string(data)
	}
	return layout, nil
}
