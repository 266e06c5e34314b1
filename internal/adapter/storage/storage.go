// Package storage is the relational Store backend on PostgreSQL. It is the
// primary backend: multi-statement writes run in transactions and slug and
// email uniqueness is enforced by the schema.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ port.Store = (*Store)(nil)

type Store struct {
	sqldb sqldb
}

func New(sqldb sqldb) *Store {
	return &Store{sqldb}
}

// mapErr converts driver-level failures into the domain error taxonomy.
func mapErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// finishTx commits when *opErr is nil and rolls back otherwise. Meant for
// deferred use so every exit path releases the transaction.
func finishTx(op string, tx *sql.Tx, opErr *error) {
	if *opErr == nil {
		if err := tx.Commit(); err != nil {
			*opErr = fmt.Errorf("%s: failed to commit: %w", op, err)
		}
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("failed to rollback tx", "op", op, "err", err)
	}
}
