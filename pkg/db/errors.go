package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDuplicateKey       = errors.New("duplicate_key")
	ErrForeignKeyViolated = errors.New("foreign_key_violated")
	ErrInvalidField       = errors.New("invalid_field")
)

// Fixed mapping of Postgres SQLSTATE codes to the storage error set. Engine
// faults are classified by code, never by message text.
var pgErrorByCode = map[string]error{
	"23505": ErrDuplicateKey,       // unique_violation
	"23503": ErrForeignKeyViolated, // foreign_key_violation
	"22P02": ErrInvalidField,       // invalid_text_representation
}

// TranslateError collapses driver-specific constraint failures into the
// package's sentinel errors. Unclassified errors pass through unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrForeignKeyViolated
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgErrorByCode[pgErr.Code]; ok {
			return mapped
		}
	}

	return err
}
