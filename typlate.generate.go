package typlate

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// GeneratedDirName is the output directory written by WriteGenerated
const GeneratedDirName = "_generated"

// GenerateLayout renders a layout against the given context and
// returns the output file set keyed by file name:
//
//	meta.tmp.typ  → meta.typ   (rendered)
//	header.typ    → header.typ (copied verbatim)
//	refs.tmp.typ  → refs.typ   (rendered)
//
// The engine performs no file I/O here; pair with WriteGenerated to
// put the result on disk.
func GenerateLayout(engine *Engine, layout *Layout, ctx *TemplateContext) (map[string]string, error) {
	engine.logger.Debug(LogMsgGenerateStart, zap.String(LogFieldLayout, layout.Name))
	files := make(map[string]string)

	if layout.MetaTemplate != "" {
		rendered, err := engine.Render(layout.MetaTemplate, ctx)
		if err != nil {
			return nil, NewGenerateError(layout.Name, err)
		}
		files[LayoutOutputMeta] = rendered
	}

	if layout.HeaderStatic != "" {
		files[LayoutOutputHeader] = layout.HeaderStatic
	}

	if layout.RefsTemplate != "" {
		rendered, err := engine.Render(layout.RefsTemplate, ctx)
		if err != nil {
			return nil, NewGenerateError(layout.Name, err)
		}
		files[LayoutOutputRefs] = rendered
	}

	engine.logger.Debug(LogMsgGenerateEnd,
		zap.String(LogFieldLayout, layout.Name),
		zap.Int(LogFieldFiles, len(files)))
	return files, nil
}

// WriteGenerated writes a generated file set into <target>/_generated.
// The files are first written into a temp directory next to the target
// and moved into place with a rename, so readers never observe a
// half-written output directory.
func WriteGenerated(target string, files map[string]string) error {
	parent := filepath.Dir(filepath.Clean(target))
	if err := os.MkdirAll(parent, FilesystemDirPermissions); err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp(parent, GeneratedDirName+".tmp-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tempDir)

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte(content), FilesystemFilePermissions); err != nil {
			return err
		}
	}

	generated := filepath.Join(target, GeneratedDirName)
	if err := os.MkdirAll(target, FilesystemDirPermissions); err != nil {
		return err
	}
	if err := os.RemoveAll(generated); err != nil {
		return err
	}
	return os.Rename(tempDir, generated)
}
