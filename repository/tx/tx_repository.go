package tx

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type TxRepository interface {
	// WithinTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type txRepo struct {
	db *sqlx.DB
}

func NewTxRepository(db *sqlx.DB) TxRepository {
	return &txRepo{db: db}
}

func (r *txRepo) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
