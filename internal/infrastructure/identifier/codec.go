// Package identifier isolates the encoding between the string ids the
// domain layer exchanges and the native key type of the document store.
// Nothing outside this package assumes a particular encoding.
package identifier

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalid marks a string that is not a well-formed native key.
var ErrInvalid = errors.New("invalid identifier")

// Codec converts between domain-level string ids and native keys.
type Codec interface {
	Parse(s string) (uuid.UUID, error)
	Format(id uuid.UUID) string
}

// UUID is the codec for the UUID-keyed document store.
type UUID struct{}

func (UUID) Parse(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalid
	}
	return id, nil
}

func (UUID) Format(id uuid.UUID) string {
	return id.String()
}

// Valid reports whether s parses as a native key.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
