// Package id provides time-ordered identifiers for all records.
package id

import (
	"github.com/google/uuid"
)

// ID is the primary key type of every table.
type ID = uuid.UUID

// New returns a UUIDv7 so primary keys sort by creation time.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse panics on malformed input. Tests and fixtures only.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

func IsNil(v ID) bool {
	return v == uuid.Nil
}
