package jsonlike

import (
	"errors"
)

var (
	// Every error returned by a Mapper, Object or Array matches ErrSerialization with errors.Is.
	ErrSerialization = errors.New("jsonlike: serialization error")

	ErrNotObject        = errors.New("jsonlike: value is not a JSON object")
	ErrNotArray         = errors.New("jsonlike: value is not a JSON array")
	ErrIndexOutOfRange  = errors.New("jsonlike: index out of range")
	ErrUnsupportedValue = errors.New("jsonlike: unsupported value")
	ErrKeyNotFound      = errors.New("jsonlike: key not found")
)

// SerializationError is the single error kind of the facade.
// It carries the message of whatever the underlying library reported.
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return "jsonlike: " + e.Op + ": " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

func (m *Mapper) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	m.debug.Log(op, err)
	return &SerializationError{Op: op, Err: err}
}
