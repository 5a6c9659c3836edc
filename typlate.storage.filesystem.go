package typlate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FilesystemStorage stores templates as files on the filesystem.
// Each template is stored as a JSON file with metadata; versioning is
// supported through separate files per version.
//
// Directory structure:
//
//	<root>/
//	  <template-name>/
//	    v1.json
//	    v2.json
//	    ...
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	logger *zap.Logger
	closed bool
}

// filesystemVersionPrefix and suffix form the per-version file names.
const (
	filesystemVersionPrefix = "v"
	filesystemVersionSuffix = ".json"
)

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a new FilesystemStorage instance.
// The connection string is the root directory path.
func (d *FilesystemStorageDriver) Open(connectionString string) (TemplateStorage, error) {
	return NewFilesystemStorage(connectionString, nil)
}

// NewFilesystemStorage creates a new filesystem-based template storage.
// The root directory will be created if it doesn't exist.
func NewFilesystemStorage(root string, logger *zap.Logger) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{Message: ErrMsgCreateStorageDir, Name: root, Cause: err}
	}

	return &FilesystemStorage{root: root, logger: logger}, nil
}

// Get retrieves the latest version of a template by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions, err := s.listVersions(name)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, NewStorageTemplateNotFoundError(name)
	}
	return s.readVersion(name, versions[len(versions)-1])
}

// GetVersion retrieves a specific version of a template.
func (s *FilesystemStorage) GetVersion(ctx context.Context, name string, version int) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	tmpl, err := s.readVersion(name, version)
	if err != nil {
		return nil, NewStorageVersionNotFoundError(name, version)
	}
	return tmpl, nil
}

// Save stores a template, creating a new version file if the name exists.
func (s *FilesystemStorage) Save(ctx context.Context, tmpl *StoredTemplate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tmpl.Name == "" {
		return &StorageError{Message: ErrMsgTemplateNameEmpty}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	dir := filepath.Join(s.root, tmpl.Name)
	if err := os.MkdirAll(dir, FilesystemDirPermissions); err != nil {
		return &StorageError{Message: ErrMsgCreateStorageDir, Name: dir, Cause: err}
	}

	versions, err := s.listVersions(tmpl.Name)
	if err != nil {
		return err
	}
	nextVersion := 1
	if len(versions) > 0 {
		nextVersion = versions[len(versions)-1] + 1
	}

	stored := copyStoredTemplate(tmpl)
	stored.ID = generateTemplateID()
	stored.Version = nextVersion
	stored.CreatedAt = nowUTC()
	stored.UpdatedAt = stored.CreatedAt

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return &StorageError{Message: ErrMsgStorageIO, Name: tmpl.Name, Cause: err}
	}

	path := filepath.Join(dir, versionFileName(nextVersion))
	if err := os.WriteFile(path, data, FilesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgStorageIO, Name: path, Cause: err}
	}

	tmpl.ID = stored.ID
	tmpl.Version = stored.Version
	tmpl.CreatedAt = stored.CreatedAt
	tmpl.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes all versions of a template by name.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	dir := filepath.Join(s.root, name)
	if _, err := os.Stat(dir); err != nil {
		return NewStorageTemplateNotFoundError(name)
	}
	return os.RemoveAll(dir)
}

// List returns the latest version of every stored template, sorted by name.
func (s *FilesystemStorage) List(ctx context.Context) ([]*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot, Name: s.root, Cause: err}
	}

	var result []*StoredTemplate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		versions, err := s.listVersions(entry.Name())
		if err != nil || len(versions) == 0 {
			continue
		}
		tmpl, err := s.readVersion(entry.Name(), versions[len(versions)-1])
		if err != nil {
			continue
		}
		result = append(result, tmpl)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Close marks the storage as closed.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}
	s.closed = true
	return nil
}

// Watch invokes fn with the template name whenever a stored version
// file changes on disk, until ctx is cancelled. External edits to
// template files (e.g. from an editor) are picked up without polling.
func (s *FilesystemStorage) Watch(ctx context.Context, fn func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.root); err != nil {
		return err
	}
	// Watch existing template directories; new ones are added as
	// their create events arrive.
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := watcher.Add(filepath.Join(s.root, entry.Name())); err != nil {
				return err
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(event.Name, filesystemVersionSuffix) {
				continue
			}
			name := filepath.Base(filepath.Dir(event.Name))
			s.logger.Debug(LogMsgStorageChanged, zap.String(LogFieldTemplate, name))
			fn(name)
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}

// listVersions returns the sorted version numbers present for a template
func (s *FilesystemStorage) listVersions(name string) ([]int, error) {
	dir := filepath.Join(s.root, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Message: ErrMsgStorageIO, Name: name, Cause: err}
	}

	var versions []int
	for _, entry := range entries {
		base := entry.Name()
		if !strings.HasPrefix(base, filesystemVersionPrefix) || !strings.HasSuffix(base, filesystemVersionSuffix) {
			continue
		}
		numStr := strings.TrimSuffix(strings.TrimPrefix(base, filesystemVersionPrefix), filesystemVersionSuffix)
		num, convErr := strconv.Atoi(numStr)
		if convErr != nil {
			continue
		}
		versions = append(versions, num)
	}
	sort.Ints(versions)
	return versions, nil
}

// readVersion loads and decodes one version file
func (s *FilesystemStorage) readVersion(name string, version int) (*StoredTemplate, error) {
	path := filepath.Join(s.root, name, versionFileName(version))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewStorageTemplateNotFoundError(name)
	}
	var tmpl StoredTemplate
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, &StorageError{Message: ErrMsgStorageIO, Name: name, Cause: err}
	}
	return &tmpl, nil
}

func versionFileName(version int) string {
	return filesystemVersionPrefix + strconv.Itoa(version) + filesystemVersionSuffix
}
