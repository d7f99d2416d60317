package asset

import "errors"

var (
	// ErrObjectNotFound signals that the object does not exist in its bucket.
	ErrObjectNotFound = errors.New("object not found")
	// errCorruptPointer marks a resume pointer whose stored value cannot be decoded.
	errCorruptPointer = errors.New("corrupt resume pointer")
)

const (
	msgNoFile     = "No file provided"
	msgNoFileName = "No filename provided"
)

// ValidationError rejects an upload before anything is written. Reason is
// shown to the client verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Storage operations reported in StorageError.Op.
const (
	OpPut    = "put"
	OpSign   = "sign"
	OpDelete = "delete"
)

// StorageError wraps a failure returned by the object store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
