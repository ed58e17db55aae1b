package jpql

import (
	"bytes"
	stdErrors "errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpqlkit/errors"
	"jpqlkit/logging"
)

const base = "select e from E e "

func newTestBuilder(opts ...Option) *Builder {
	return New(base, append([]Option{WithLogger(logging.NewNoopLogger())}, opts...)...)
}

// TestBuild_AndOnly AND 条件以 where 开头、and 连接
func TestBuild_AndOnly(t *testing.T) {
	b := newTestBuilder().
		AddAnd("e.x = ?", Int(1)).
		AddAnd("e.y = ?", Int(2))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "select e from E e where e.x = ?0 and e.y = ?1", q)
	assert.Equal(t, []Param{Int(1), Int(2)}, b.Params())
}

// TestBuild_OrOnly 没有 AND 时 OR 段以 where ( 开头
func TestBuild_OrOnly(t *testing.T) {
	b := newTestBuilder().
		AddOr("e.x = ?", Int(1)).
		AddOr("e.y = ?", Int(2))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Contains(t, q, "where ( e.x = ?0 or e.y = ?1)")
	assert.Equal(t, []Param{Int(1), Int(2)}, b.Params())
}

// TestBuild_AndThenOr 同时存在 AND 与 OR 时 OR 段以 and ( 开头
func TestBuild_AndThenOr(t *testing.T) {
	b := newTestBuilder().
		AddAnd("e.dept = ?", Text("R&D")).
		AddOr("e.name like ?", Text("A%")).
		AddOr("e.name like ?", Text("B%"))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "select e from E e where e.dept = ?0 and ( e.name like ?1 or e.name like ?2)", q)
	assert.NotContains(t, q, "where (")
	assert.Equal(t, []Param{Text("R&D"), Text("A%"), Text("B%")}, b.Params())
}

// TestBuild_GroupOr 每个分组片段单独加括号，组间以 and 连接且无尾随连接词
func TestBuild_GroupOr(t *testing.T) {
	t.Run("单独使用", func(t *testing.T) {
		b := newTestBuilder().
			AddGroupOr("e.a = ? or e.b = ?", Int(1), Int(2)).
			AddGroupOr("e.c = ? or e.d = ?", Int(3), Int(4))

		q, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, "select e from E e where (e.a = ?0 or e.b = ?1) and (e.c = ?2 or e.d = ?3)", q)
		assert.Equal(t, Params(1, 2, 3, 4), b.Params())
	})

	t.Run("跟在 OR 之后", func(t *testing.T) {
		b := newTestBuilder().
			AddOr("e.x = ?", Int(1)).
			AddGroupOr("e.a = ? or e.b = ?", Int(2), Int(3))

		q, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, "select e from E e where ( e.x = ?0) and (e.a = ?1 or e.b = ?2)", q)
	})

	t.Run("跟在 AND 之后", func(t *testing.T) {
		b := newTestBuilder().
			AddAnd("e.x = ?", Int(1)).
			AddGroupOr("e.a = ? or e.b = ?", Int(2), Int(3))

		q, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, "select e from E e where e.x = ?0 and (e.a = ?1 or e.b = ?2)", q)
	})
}

// TestBuild_FullOrder 所有类别按固定顺序输出，编号跟随参数收集顺序
func TestBuild_FullOrder(t *testing.T) {
	b := New("select e.dept, count(e) from E e where e.tenant = ? ", WithLogger(logging.NewNoopLogger())).
		AddSort(" order by e.dept").
		AddHaving(" having count(e) > ?", Int(5)).
		AddGroupBy(" group by e.dept").
		AddGroupOr("e.a = ? or e.b = ?", Int(2), Int(3)).
		AddOr("e.x = ?", Int(1)).
		AddAnd("e.active = ?", Bool(true))

	_, err := b.Build()
	require.Error(t, err, "前缀中的占位符没有对应参数")

	b2 := New("select e.dept, count(e) from E e ", WithLogger(logging.NewNoopLogger())).
		AddSort(" order by e.dept").
		AddHaving(" having count(e) > ?", Int(5)).
		AddGroupBy(" group by e.dept").
		AddGroupOr("e.a = ? or e.b = ?", Int(2), Int(3)).
		AddOr("e.x = ?", Int(1)).
		AddAnd("e.active = ?", Bool(true))

	q, err := b2.Build()
	require.NoError(t, err)
	assert.Equal(t,
		"select e.dept, count(e) from E e where e.active = ?0 and ( e.x = ?1) and (e.a = ?2 or e.b = ?3)"+
			" group by e.dept having count(e) > ?4 order by e.dept", q)
	assert.Equal(t, []Param{Bool(true), Int(1), Int(2), Int(3), Int(5)}, b2.Params())
}

// TestBuild_NullSentinel 参数为空或首个参数为 Null 的片段被忽略
func TestBuild_NullSentinel(t *testing.T) {
	var missing *int64
	b := newTestBuilder().
		AddAnd("e.x = ?").
		AddAnd("e.y = ?", Null()).
		AddAnd("e.z = ?", Ptr(missing)).
		AddOr("e.o = ?").
		AddGroupOr("e.g = ?", Null(), Int(1)).
		AddHaving(" having count(e) > ?")

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, base, q)
	assert.Empty(t, b.Params())
	assert.NotNil(t, b.Params())
}

// TestBuild_NullAfterFirstIsBound 只有首个参数决定是否跳过，其后的 Null 照常绑定
func TestBuild_NullAfterFirstIsBound(t *testing.T) {
	b := newTestBuilder().AddAnd("e.x = ? and e.y is ?", Int(1), Null())

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "select e from E e where e.x = ?0 and e.y is ?1", q)
	assert.Equal(t, []any{int64(1), nil}, b.Args())
}

// TestBuild_IdempotentNoop 重复的无参 AddAnd 与完全不加 AND 的结果一致
func TestBuild_IdempotentNoop(t *testing.T) {
	withNoop := newTestBuilder().AddAnd("e.x = ?").AddAnd("e.x = ?").AddSort(" order by e.id")
	without := newTestBuilder().AddSort(" order by e.id")

	q1, err := withNoop.Build()
	require.NoError(t, err)
	q2, err := without.Build()
	require.NoError(t, err)
	assert.Equal(t, q2, q1)
	assert.Empty(t, withNoop.store.and)
}

// TestBuild_Mismatch 占位符多于参数时返回 ParameterCountMismatch
func TestBuild_Mismatch(t *testing.T) {
	b := newTestBuilder().AddAnd("e.x = ? and e.y = ?", Int(1))

	q, err := b.Build()
	require.Error(t, err)
	assert.Empty(t, q)
	assert.True(t, IsParameterCountMismatch(err))
	assert.True(t, stdErrors.Is(err, ErrParameterCountMismatch))
	assert.Nil(t, b.Params(), "失败的构建不应填充参数")

	var appErr errors.IError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, 2, appErr.Details()["markers"])
	assert.Equal(t, 1, appErr.Details()["params"])
}

// TestBuild_MismatchTooManyParams 参数多于占位符同样失败
func TestBuild_MismatchTooManyParams(t *testing.T) {
	b := newTestBuilder().AddAnd("e.x = ?", Int(1), Int(2))

	_, err := b.Build()
	assert.True(t, IsParameterCountMismatch(err))
}

// TestBuild_MismatchKeepsPreviousParams 失败不覆盖上一次成功的参数
func TestBuild_MismatchKeepsPreviousParams(t *testing.T) {
	b := newTestBuilder().AddAnd("e.x = ?", Int(1))
	_, err := b.Build()
	require.NoError(t, err)

	b.AddAnd("e.y = ? and e.z = ?", Int(2))
	_, err = b.Build()
	require.Error(t, err)
	assert.Equal(t, []Param{Int(1)}, b.Params())
}

// TestBuild_Repeatable 重复 Build 结果一致
func TestBuild_Repeatable(t *testing.T) {
	b := newTestBuilder().AddAnd("e.x = ?", Int(1)).AddOr("e.y = ?", Int(2))

	q1, err := b.Build()
	require.NoError(t, err)
	q2, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, q1, q2)
	assert.Equal(t, []Param{Int(1), Int(2)}, b.Params())
}

// TestParams_ReturnsCopy 修改返回的切片不影响 Builder
func TestParams_ReturnsCopy(t *testing.T) {
	b := newTestBuilder().AddAnd("e.x = ?", Int(1))
	_, err := b.Build()
	require.NoError(t, err)

	got := b.Params()
	got[0] = Int(99)
	assert.Equal(t, []Param{Int(1)}, b.Params())
}

// TestAdd_CopiesParams 加入后修改调用方切片不影响片段
func TestAdd_CopiesParams(t *testing.T) {
	ps := []Param{Int(1)}
	b := newTestBuilder().AddAnd("e.x = ?", ps...)
	ps[0] = Int(2)

	_, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []Param{Int(1)}, b.Params())
}

// TestHaving_LastWins 后一次成功的 AddHaving 覆盖前一次，被忽略的调用不覆盖
func TestHaving_LastWins(t *testing.T) {
	b := newTestBuilder().
		AddGroupBy(" group by e.dept").
		AddHaving(" having count(e) > ?", Int(1)).
		AddHaving(" having sum(e.salary) > ?", Float(1000.5)).
		AddHaving(" having max(e.age) > ?", Null())

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, base+" group by e.dept having sum(e.salary) > ?0", q)
	assert.Equal(t, []Param{Float(1000.5)}, b.Params())
}

// TestHaving_WithoutGroupBy 默认情况下 HAVING 不依赖 GROUP BY
func TestHaving_WithoutGroupBy(t *testing.T) {
	b := newTestBuilder().AddHaving(" having count(e) > ?", Int(1))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, base+" having count(e) > ?0", q)
}

// TestHaving_LegacyGuard 开启旧行为后，未设置 GROUP BY 时 HAVING 被丢弃并记录 WARN
func TestHaving_LegacyGuard(t *testing.T) {
	var buf bytes.Buffer
	old := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(old)

	b := New(base, WithLogger(logging.NewStdLoggerWithLevel("", logging.WarnLevel)), WithLegacyHavingGuard()).
		AddAnd("e.x = ?", Int(1)).
		AddHaving(" having count(e) > ?", Int(2))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, base+"where e.x = ?0", q)
	assert.Equal(t, []Param{Int(1)}, b.Params())
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "having count(e) > ?")

	b.AddGroupBy(" group by e.dept")
	q, err = b.Build()
	require.NoError(t, err)
	assert.Equal(t, base+"where e.x = ?0 group by e.dept having count(e) > ?1", q)
}

// TestGroupByAndSort_Overwrite 后一次设置覆盖前一次，空字符串清除
func TestGroupByAndSort_Overwrite(t *testing.T) {
	b := newTestBuilder().
		AddGroupBy(" group by e.a").
		AddGroupBy(" group by e.b").
		AddSort(" order by e.a").
		AddSort("")

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, base+" group by e.b", q)
}

// TestBuild_BaseWithoutTrailingSpace 前缀不以空白结尾时自动补一个空格
func TestBuild_BaseWithoutTrailingSpace(t *testing.T) {
	b := New("select e from E e", WithLogger(logging.NewNoopLogger())).AddOr("e.x = ?", Int(1))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "select e from E e where ( e.x = ?0)", q)
}

// TestBuild_BasePlaceholdersNeedParams 前缀中的占位符参与编号与计数
func TestBuild_BasePlaceholdersNeedParams(t *testing.T) {
	b := New("select e from E e where e.tenant = ?", WithLogger(logging.NewNoopLogger()))

	_, err := b.Build()
	assert.True(t, IsParameterCountMismatch(err))
}

// TestBuild_BasePlaceholdersNumberedFirst 前缀中的占位符先于片段编号，参数按出现顺序匹配
func TestBuild_BasePlaceholdersNumberedFirst(t *testing.T) {
	b := New("select e from E e join e.team t on t.tenant = ?", WithLogger(logging.NewNoopLogger())).
		AddAnd("e.x = ?", Int(1), Int(2))

	q, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "select e from E e join e.team t on t.tenant = ?0 where e.x = ?1", q)
	assert.Equal(t, []Param{Int(1), Int(2)}, b.Params())
	assert.Equal(t, []any{int64(1), int64(2)}, b.Args())
}

// TestArgs_BeforeBuild 尚未成功构建时 Args 与 Params 为 nil
func TestArgs_BeforeBuild(t *testing.T) {
	b := newTestBuilder().AddAnd("e.x = ?", Int(1))
	assert.Nil(t, b.Params())
	assert.Nil(t, b.Args())
}
