// Package storage provides the durable key-value backends progression
// records are written to.
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written
// or has been deleted.
var ErrNotFound = errors.New("record not found")

// ErrQuotaExceeded is returned by Set when the backend has no room left.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Backend is an opaque blob store. Implementations must leave the previous
// blob intact when a Set fails.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Delete(key string) error
}

// Kind classifies a storage failure.
type Kind int

const (
	KindRead Kind = iota + 1
	KindWrite
	KindCorrupt
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindCorrupt:
		return "corrupt"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is the typed failure of a single record operation.
type Error struct {
	Kind Kind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap builds an *Error, or returns nil when err is nil.
func Wrap(kind Kind, key string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Key: key, Err: err}
}
