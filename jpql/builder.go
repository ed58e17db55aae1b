package jpql

import (
	"context"
	"slices"

	"jpqlkit/logging"
)

// Option 配置 Builder
type Option func(*options)

type options struct {
	logger            logging.Logger
	legacyHavingGuard bool
}

// WithLogger 设置日志器，默认使用 logging.GetLogger()
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLegacyHavingGuard 未设置 GROUP BY 时丢弃 HAVING 片段。
//
// 旧版本的拼装逻辑以 GROUP BY 是否存在作为 HAVING 的输出条件，
// 仅在需要与旧输出逐字一致时开启；每次丢弃都会记录一条 WARN 日志。
func WithLegacyHavingGuard() Option {
	return func(o *options) {
		o.legacyHavingGuard = true
	}
}

// Builder 按类别累积查询片段并拼装为最终语句
type Builder struct {
	base   string
	store  fragmentStore
	opts   options
	params []Param
}

// New 以 base（如 "select e from Employee e "）为前缀创建 Builder
func New(base string, opts ...Option) *Builder {
	o := options{logger: logging.GetLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{base: base, opts: o}
}

// AddAnd 追加 AND 条件；params 为空或首个参数为 Null 时忽略
func (b *Builder) AddAnd(text string, params ...Param) *Builder {
	if accepts(params) {
		b.store.and = append(b.store.and, newFragment(text, params))
	}
	return b
}

// AddOr 追加 OR 条件，所有 OR 条件整体用括号包裹
func (b *Builder) AddOr(text string, params ...Param) *Builder {
	if accepts(params) {
		b.store.or = append(b.store.or, newFragment(text, params))
	}
	return b
}

// AddGroupOr 追加一组条件，每组单独用括号包裹，组之间以 and 连接
func (b *Builder) AddGroupOr(text string, params ...Param) *Builder {
	if accepts(params) {
		b.store.groupOr = append(b.store.groupOr, newFragment(text, params))
	}
	return b
}

// AddHaving 设置 HAVING 片段，后一次成功调用覆盖前一次
func (b *Builder) AddHaving(text string, params ...Param) *Builder {
	if accepts(params) {
		f := newFragment(text, params)
		b.store.having = &f
	}
	return b
}

// AddGroupBy 设置 GROUP BY 片段，"" 表示清除
func (b *Builder) AddGroupBy(text string) *Builder {
	b.store.groupBy = text
	return b
}

// AddSort 设置 ORDER BY 片段，"" 表示清除
func (b *Builder) AddSort(text string) *Builder {
	b.store.sort = text
	return b
}

// Build 拼装语句、编号占位符并校验参数数量。
//
// 成功后 Params 返回与占位符一一对应的参数列表；失败时 Params 保持上一次成功的结果。
// Build 不修改已累积的片段，可重复调用。
func (b *Builder) Build() (string, error) {
	ctx := context.Background()

	skipHaving := b.opts.legacyHavingGuard && b.store.groupBy == ""
	if skipHaving && b.store.having != nil {
		b.opts.logger.Warn(ctx, "jpql: 未设置 GROUP BY，HAVING 片段被丢弃",
			logging.String("having", b.store.having.text))
	}

	a := assemble(b.base, b.store, skipHaving)
	query, markers := Renumber(a.text)

	if err := validate(markers, len(a.params)); err != nil {
		b.opts.logger.Warn(ctx, "jpql: 构建失败",
			logging.Error(err),
			logging.String("query", query),
			logging.Int("markers", markers),
			logging.Int("params", len(a.params)))
		return "", err
	}

	if a.params == nil {
		a.params = []Param{}
	}
	b.params = a.params
	b.opts.logger.Debug(ctx, "jpql: 构建完成",
		logging.String("query", query),
		logging.Int("params", len(a.params)))
	return query, nil
}

// Params 返回最近一次成功 Build 收集的参数副本，尚未成功构建时为 nil
func (b *Builder) Params() []Param {
	return slices.Clone(b.params)
}

// Args 与 Params 相同，但转换为 []any，便于直接传给 database/sql
func (b *Builder) Args() []any {
	if b.params == nil {
		return nil
	}
	args := make([]any, len(b.params))
	for i, p := range b.params {
		args[i] = p.Any()
	}
	return args
}
