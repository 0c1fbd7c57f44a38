package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventmanager/internal/domain"
)

type transactor struct {
	DB *sql.DB
}

// NewTransactor returns a Transactor that runs each unit of work in one database transaction.
func NewTransactor(db *sql.DB) domain.Transactor {
	return &transactor{DB: db}
}

// RunInTransaction begins a transaction, binds fresh repositories to it, calls fn, and commits on
// success or rolls back on error.
func (t *transactor) RunInTransaction(ctx context.Context, fn func(repos domain.Repositories) error) error {
	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(repositoriesFor(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
