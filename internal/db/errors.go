package db

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors for database operations.
var (
	ErrRecordNotFound = errors.New("db: record not found")
	ErrDuplicateKey   = errors.New("db: duplicate key")
	ErrForeignKey     = errors.New("db: foreign key violation")
	ErrInvalidData    = errors.New("db: invalid data")
)

// Op names used for error context.
const (
	OpPing    = "PING"
	OpCount   = "COUNT"
	OpSelect  = "SELECT"
	OpInsert  = "INSERT"
	OpMigrate = "MIGRATE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Translate maps gorm errors onto the package sentinels and tags them with op.
// Unknown errors are wrapped unchanged.
func Translate(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		err = ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		err = ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		err = ErrInvalidData
	}
	return &Error{Op: op, Err: err}
}
