package basic

import (
	"context"
	"database/sql"
	stdErrors "errors"

	core "jpqlkit/data/db"
	"jpqlkit/data/db/dialect"
	"jpqlkit/errors"
)

// ErrNestedTx basic.Tx 不支持嵌套事务，调用方应在上层协调事务边界
var ErrNestedTx = errors.NewError(errors.ErrCodeDatabase, "basic.Tx: nested transactions are not supported")

// Tx 事务实现，委托给 *sql.Tx，同时实现 core.IDatabase，
// 因此可以直接交给 runner 在事务内执行 jpql 语句。
type Tx struct {
	db      *sql.DB
	tx      *sql.Tx
	dialect dialect.Dialect
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (core.IRows, error) {
	rows, err := t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) core.IRow {
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) Begin(ctx context.Context) (core.ITransaction, error) {
	return nil, ErrNestedTx
}

func (t *Tx) BeginTx(ctx context.Context, opts *sql.TxOptions) (core.ITransaction, error) {
	return nil, ErrNestedTx
}

func (t *Tx) Ping(ctx context.Context) error { return t.db.PingContext(ctx) }
func (t *Tx) Raw() any                       { return t.tx }

// Close 回滚尚未结束的事务；已提交或已回滚时返回 nil
func (t *Tx) Close() error {
	if err := t.tx.Rollback(); err != nil && !stdErrors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// GetDialectName 实现 core.IDialectNameProvider，便于在事务上下文中复用方言能力。
func (t *Tx) GetDialectName() string {
	return string(t.dialect.Name())
}
