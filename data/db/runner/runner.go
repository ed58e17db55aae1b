// Package runner 执行 jpql 构建出的语句。
//
// Runner 只负责把 (语句, 参数) 交给 core.IDatabase：
// 占位符的方言改写由 IDatabase 实现（如 basic.DB）完成，
// 构建失败（参数数量不匹配）时不会访问数据库。
package runner

import (
	"context"
	"database/sql"
	stdErrors "errors"

	core "jpqlkit/data/db"
	"jpqlkit/data/db/dialect"
	"jpqlkit/errors"
	"jpqlkit/jpql"
	"jpqlkit/logging"
)

// Statement 可构建为带位置参数的语句，*jpql.Builder 满足该接口
type Statement interface {
	Build() (string, error)
	Params() []jpql.Param
}

// Runner 在 IDatabase（或事务）上执行 Statement
type Runner struct {
	db      core.IDatabase
	dialect dialect.Name
	logger  logging.Logger
}

// Option 配置 Runner
type Option func(*Runner)

// WithLogger 设置日志器，默认使用 logging.GetLogger()
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New 创建 Runner
func New(db core.IDatabase, opts ...Option) *Runner {
	r := &Runner{
		db:      db,
		dialect: dialect.FromDatabase(db).Name(),
		logger:  logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DB 返回底层 IDatabase
func (r *Runner) DB() core.IDatabase {
	return r.db
}

func (r *Runner) prepare(ctx context.Context, op string, st Statement) (string, []any, error) {
	q, err := st.Build()
	if err != nil {
		return "", nil, err
	}
	params := st.Params()
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p.Any()
	}
	r.logger.Debug(ctx, "runner: 执行语句",
		logging.String("op", op),
		logging.String("dialect", string(r.dialect)),
		logging.String("query", q),
		logging.Any("params", params))
	return q, args, nil
}

// Query 执行查询，返回结果集；调用方负责关闭
func (r *Runner) Query(ctx context.Context, st Statement) (core.IRows, error) {
	q, args, err := r.prepare(ctx, "query", st)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.WrapDatabaseError(ctx, err, "query")
	}
	return rows, nil
}

// QueryRow 执行单行查询。
//
// 与 database/sql 不同，构建失败会直接以 error 返回，而不是延迟到 Scan。
func (r *Runner) QueryRow(ctx context.Context, st Statement) (core.IRow, error) {
	q, args, err := r.prepare(ctx, "query_row", st)
	if err != nil {
		return nil, err
	}
	return r.db.QueryRow(ctx, q, args...), nil
}

// Exec 执行写操作
func (r *Runner) Exec(ctx context.Context, st Statement) (sql.Result, error) {
	q, args, err := r.prepare(ctx, "exec", st)
	if err != nil {
		return nil, err
	}
	res, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return nil, errors.WrapDatabaseError(ctx, err, "exec")
	}
	return res, nil
}

// InTx 在事务中执行 fn：fn 返回 nil 时提交，否则回滚并返回 fn 的错误
func (r *Runner) InTx(ctx context.Context, fn func(tx *Runner) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errors.WrapDatabaseError(ctx, err, "begin")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Runner{db: tx, dialect: r.dialect, logger: r.logger}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !stdErrors.Is(rbErr, sql.ErrTxDone) {
			r.logger.Warn(ctx, "runner: 回滚失败", logging.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.WrapDatabaseError(ctx, err, "commit")
	}
	return nil
}
