package typlate

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// TemplateID is a unique identifier for a stored template version.
// Uses a prefixed random format (e.g., "tmpl_6ByTSYmGzT2c").
type TemplateID string

// StoredTemplate represents a template with metadata stored in a
// storage backend. Typical entries are layout template files such as
// meta.tmp.typ kept per project or per team.
type StoredTemplate struct {
	// ID is the unique identifier for this template version.
	ID TemplateID `json:"id"`

	// Name is the template name used for lookups.
	Name string `json:"name"`

	// Source is the raw template source text.
	Source string `json:"source"`

	// Version is the version number (1, 2, 3, ...).
	// Higher versions are newer.
	Version int `json:"version"`

	// Metadata contains arbitrary key-value pairs for user-defined data.
	Metadata map[string]string `json:"metadata,omitempty"`

	// Tags for categorization and querying.
	Tags []string `json:"tags,omitempty"`

	// CreatedAt is when this version was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when this version was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateStorage is the interface for pluggable storage backends.
// Implementations must be safe for concurrent use.
//
// The interface follows patterns from database/sql for familiarity:
// context for cancellation and timeouts, explicit error returns, Close
// for resource cleanup.
type TemplateStorage interface {
	// Get retrieves the latest version of a template by name.
	Get(ctx context.Context, name string) (*StoredTemplate, error)

	// GetVersion retrieves a specific version of a template.
	GetVersion(ctx context.Context, name string, version int) (*StoredTemplate, error)

	// Save stores a template. If a template with the same name exists,
	// a new version is created. ID, Version, CreatedAt, and UpdatedAt
	// are set by the storage implementation.
	Save(ctx context.Context, tmpl *StoredTemplate) error

	// Delete removes all versions of a template by name.
	Delete(ctx context.Context, name string) error

	// List returns the latest version of every stored template,
	// sorted by name.
	List(ctx context.Context) ([]*StoredTemplate, error)

	// Close releases backend resources. Subsequent calls fail.
	Close() error
}

// StorageDriver creates storage instances from connection strings.
type StorageDriver interface {
	Open(connectionString string) (TemplateStorage, error)
}

var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// This is typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverExists + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage connection using the named driver.
// The connection string format is driver-specific.
//
// Example:
//
//	storage, err := typlate.OpenStorage("memory", "")
//	storage, err := typlate.OpenStorage("filesystem", "/path/to/templates")
func OpenStorage(driverName, connectionString string) (TemplateStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, &StorageError{Message: ErrMsgUnknownStorageDriver, Name: driverName}
	}
	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered storage drivers.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	return names
}

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Version int
	Cause   error
}

func (e *StorageError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg += ": " + e.Name
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageClosedError creates an error for operations on closed storage
func NewStorageClosedError() error {
	return &StorageError{Message: ErrMsgStorageClosed}
}

// NewStorageTemplateNotFoundError creates a not-found error for a template name
func NewStorageTemplateNotFoundError(name string) error {
	return &StorageError{Message: ErrMsgTemplateNotFound, Name: name}
}

// NewStorageVersionNotFoundError creates a not-found error for a template version
func NewStorageVersionNotFoundError(name string, version int) error {
	return &StorageError{Message: ErrMsgTemplateNotFound, Name: name, Version: version}
}

// IsTemplateNotFound reports whether err is a template-not-found failure
func IsTemplateNotFound(err error) bool {
	serr, ok := err.(*StorageError)
	return ok && serr.Message == ErrMsgTemplateNotFound
}

// nowUTC returns the current time in UTC for storage timestamps
func nowUTC() time.Time {
	return time.Now().UTC()
}

// generateTemplateID generates a unique template ID.
func generateTemplateID() TemplateID {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return TemplateID("tmpl_" + base64.RawURLEncoding.EncodeToString(b))
}

// copyStoredTemplate returns a deep copy so callers cannot mutate
// storage internals
func copyStoredTemplate(t *StoredTemplate) *StoredTemplate {
	copied := *t
	copied.Metadata = copyStringMap(t.Metadata)
	copied.Tags = copyStringSlice(t.Tags)
	return &copied
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	copied := make(map[string]string, len(m))
	for k, v := range m {
		copied[k] = v
	}
	return copied
}

func copyStringSlice(s []string) []string {
	if s == nil {
		return nil
	}
	copied := make([]string, len(s))
	copy(copied, s)
	return copied
}
