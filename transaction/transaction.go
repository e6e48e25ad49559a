// Package transaction defines the thin factory contract the session layer
// uses to obtain transactions over bun connections, plus two basic
// implementations: one that opens and owns a database transaction, and a
// managed one that leaves demarcation to an external container.
package transaction

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// Properties carries factory-specific settings from configuration.
type Properties map[string]string

// Transaction wraps one unit of work over a connection.
type Transaction interface {
	// Connection returns the handle statements should execute against.
	Connection() bun.IDB

	// Commit makes the unit of work durable.
	Commit(ctx context.Context) error

	// Rollback discards the unit of work.
	Rollback(ctx context.Context) error
}

// Factory creates transactions. Implementations decide whether commit and
// rollback act on the connection or are deferred to an external manager.
type Factory interface {
	// SetProperties applies factory-specific configuration.
	SetProperties(props Properties)

	// NewTransaction opens a transaction on db with the requested
	// isolation level. With autoCommit set no database transaction is
	// opened and every statement commits individually.
	NewTransaction(ctx context.Context, db *bun.DB, level sql.IsolationLevel, autoCommit bool) (Transaction, error)

	// FromConnection wraps an existing connection whose lifecycle the
	// caller controls.
	FromConnection(conn bun.IDB) Transaction
}

// connTransaction owns an open bun transaction, or passes through in
// auto-commit mode.
type connTransaction struct {
	conn       bun.IDB
	tx         bun.Tx
	autoCommit bool
}

func (t *connTransaction) Connection() bun.IDB {
	return t.conn
}

func (t *connTransaction) Commit(context.Context) error {
	if t.autoCommit {
		return nil
	}
	return t.tx.Commit()
}

func (t *connTransaction) Rollback(context.Context) error {
	if t.autoCommit {
		return nil
	}
	return t.tx.Rollback()
}

// ConnFactory opens connection-owned transactions.
type ConnFactory struct{}

// SetProperties implements Factory; the connection factory has none.
func (*ConnFactory) SetProperties(Properties) {}

// NewTransaction implements Factory.
func (*ConnFactory) NewTransaction(ctx context.Context, db *bun.DB, level sql.IsolationLevel, autoCommit bool) (Transaction, error) {
	if autoCommit {
		return &connTransaction{conn: db, autoCommit: true}, nil
	}
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: level})
	if err != nil {
		return nil, err
	}
	return &connTransaction{conn: tx, tx: tx}, nil
}

// FromConnection implements Factory; the wrapped connection is treated as
// auto-commit since its demarcation is not ours.
func (*ConnFactory) FromConnection(conn bun.IDB) Transaction {
	return &connTransaction{conn: conn, autoCommit: true}
}

// managedTransaction defers demarcation entirely to an external manager:
// commit and rollback are no-ops.
type managedTransaction struct {
	conn bun.IDB
}

func (t *managedTransaction) Connection() bun.IDB            { return t.conn }
func (t *managedTransaction) Commit(context.Context) error   { return nil }
func (t *managedTransaction) Rollback(context.Context) error { return nil }

// ManagedFactory creates transactions whose demarcation belongs to an
// external container.
type ManagedFactory struct{}

// SetProperties implements Factory; the managed factory has none.
func (*ManagedFactory) SetProperties(Properties) {}

// NewTransaction implements Factory.
func (*ManagedFactory) NewTransaction(_ context.Context, db *bun.DB, _ sql.IsolationLevel, _ bool) (Transaction, error) {
	return &managedTransaction{conn: db}, nil
}

// FromConnection implements Factory.
func (*ManagedFactory) FromConnection(conn bun.IDB) Transaction {
	return &managedTransaction{conn: conn}
}
