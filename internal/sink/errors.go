package sink

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindOther Kind = iota
	KindUniqueViolation
)

func (k Kind) String() string {
	switch k {
	case KindUniqueViolation:
		return "unique violation"
	default:
		return "other"
	}
}

// PersistenceError is returned by sinks when a write is rejected.
type PersistenceError struct {
	Kind     Kind
	Database string
	Table    string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s.%s (%s): %v", e.Database, e.Table, e.Kind, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsUniqueViolation reports whether err carries a unique-constraint failure.
func IsUniqueViolation(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.Kind == KindUniqueViolation
}
