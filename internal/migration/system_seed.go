package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type namedSeed struct {
	Code string
	Name string
}

func seedSystemImmutableData(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("system seed requires database handle")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin system seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := seedDiscountTypes(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit system seed transaction: %w", err)
	}
	return nil
}

func seedDiscountTypes(ctx context.Context, tx *sql.Tx) error {
	seeds := []namedSeed{
		{Code: "fixed", Name: "Fixed Amount"},
		{Code: "percentage", Name: "Percentage"},
	}

	const stmt = `
		INSERT INTO discount_types (code, name)
		VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name
	`

	for _, seed := range seeds {
		if _, err := tx.ExecContext(ctx, stmt, seed.Code, seed.Name); err != nil {
			return fmt.Errorf("seed discount type %s: %w", seed.Code, err)
		}
	}
	return nil
}
