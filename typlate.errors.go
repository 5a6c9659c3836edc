package typlate

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/SotaTne/typlate/internal"
)

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// newTokenizeError converts an internal tokenizer failure into a typed
// error with position metadata. The internal message constants map 1:1
// onto the public taxonomy.
func newTokenizeError(err error) error {
	var terr *internal.TokenizeError
	if !errors.As(err, &terr) {
		return cuserr.WrapStdError(err, ErrCodeTokenize, ErrMsgTokenizeFailed)
	}
	cerr := cuserr.NewValidationError(ErrCodeTokenize, terr.Message).
		WithMetadata(MetaKeyLine, strconv.Itoa(terr.Position.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(terr.Position.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(terr.Position.Offset))
	if terr.Path != "" {
		cerr = cerr.WithMetadata(MetaKeyPath, terr.Path)
	}
	return cerr
}

// NewUnknownKeyError creates an error for a path segment absent from
// the context or any loop overlay
func NewUnknownKeyError(path string, pos Position) error {
	return cuserr.NewCustomError(cuserr.ErrNotFound, nil, ErrMsgUnknownKey).
		WithMetadata(MetaKeyPath, path).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column))
}

// NewTypeMismatchError creates an error for a value of the wrong kind:
// a composite in placeholder position, or a non-list in loop position.
// expected is a kind name or the word "Scalar".
func NewTypeMismatchError(path string, expected string, actual Kind, pos Position) error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgTypeMismatch).
		WithMetadata(MetaKeyPath, path).
		WithMetadata(MetaKeyExpected, expected).
		WithMetadata(MetaKeyActual, actual.String()).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column))
}

// NewTimeoutError creates an error for an exhausted step budget
func NewTimeoutError(budget int) error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgTimeout).
		WithMetadata(MetaKeySteps, strconv.Itoa(budget))
}

// NewDecodeError wraps a context-decoding failure
func NewDecodeError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeDecode, msg)
	}
	return cuserr.NewValidationError(ErrCodeDecode, msg)
}

// NewUnsupportedValueError creates an error for a decoded value the
// tagged variant model cannot represent
func NewUnsupportedValueError(typeName string) error {
	return cuserr.NewValidationError(ErrCodeDecode, ErrMsgUnsupportedValue).
		WithMetadata(MetaKeyValue, typeName)
}

// NewLayoutNotFoundError creates an error for an unresolvable layout name
func NewLayoutNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyLayout, ErrMsgLayoutNotFound).
		WithMetadata(MetaKeyLayout, name)
}

// NewGenerateError wraps a layout generation failure
func NewGenerateError(layout string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeLayout, ErrMsgGenerateFailed).
		WithMetadata(MetaKeyLayout, layout)
}

// IsUnknownKey reports whether err is an unknown-key resolution failure
func IsUnknownKey(err error) bool {
	return hasErrorMessage(err, ErrMsgUnknownKey)
}

// IsTypeMismatch reports whether err is a type mismatch failure
func IsTypeMismatch(err error) bool {
	return hasErrorMessage(err, ErrMsgTypeMismatch)
}

// IsTimeout reports whether err is a step budget exhaustion failure
func IsTimeout(err error) bool {
	return hasErrorMessage(err, ErrMsgTimeout)
}

// hasErrorMessage matches on the structured message field only, so a
// path or wrapped cause that happens to contain the same words cannot
// change the classification.
func hasErrorMessage(err error, msg string) bool {
	var cerr *cuserr.CustomError
	if !errors.As(err, &cerr) {
		return false
	}
	return cerr.Message == msg
}
