package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pingdesk/pingdesk/internal/console/store"
)

// txStore wraps an *sql.Tx so the same repo implementations work inside and
// outside transactions.
type txStore struct {
	tx   *sql.Tx
	done bool
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Flows() store.Flows { return &flowsRepo{q: t.tx} }
func (t *txStore) PendingRegistrations() store.PendingRegistrations {
	return &pendingRegistrationsRepo{q: t.tx}
}
func (t *txStore) Devices() store.Devices           { return &devicesRepo{q: t.tx} }
func (t *txStore) FeatureFlags() store.FeatureFlags { return &featureFlagsRepo{q: t.tx} }
func (t *txStore) DebugLogs() store.DebugLogs       { return &debugLogsRepo{q: t.tx} }

func (t *txStore) Commit() error {
	t.done = true
	return t.tx.Commit()
}

func (t *txStore) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// Nested transactions are not supported; these exist to satisfy store.Tx
// embedding store.Store.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errors.New("sqlite: nested transactions are not supported")
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errors.New("sqlite: nested transactions are not supported")
}

func (t *txStore) ApplyMigrations() error {
	return errors.New("sqlite: migrations cannot run inside a transaction")
}

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }
