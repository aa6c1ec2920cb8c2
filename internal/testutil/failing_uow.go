package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
)

// FailOnNthExecUoW behaves like the SQLite UnitOfWork except that the
// FailOn-th write of a transaction returns Err instead of executing. Writes
// are counted from 1 per transaction; reads pass through. Use it by pointer.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	writes atomic.Int32
}

// Writes reports how many writes the last transaction attempted, the
// injected failure included.
func (u *FailOnNthExecUoW) Writes() int {
	return int(u.writes.Load())
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.writes.Store(0)
	return db.NewUnitOfWork(u.DB, db.DialectSQLite).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &faultyTx{DBTX: tx, uow: u})
	})
}

type faultyTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.writes.Add(1) == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
