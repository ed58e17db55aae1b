package dialect

import (
	"strconv"
	"strings"

	core "jpqlkit/data/db"
)

// Name 标准化的数据库方言名称
type Name string

const (
	NameMySQL    Name = "mysql"
	NameSQLite   Name = "sqlite"
	NamePostgres Name = "postgres"
	NameUnknown  Name = ""
)

// Dialect 表示当前数据库的方言能力
//
// 目前只抽象执行 jpql 语句需要的能力：占位符改写。
type Dialect struct {
	name Name
}

// New 根据字符串构造方言（大小写不敏感）
func New(name string) Dialect {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql":
		return Dialect{name: NameMySQL}
	case "sqlite", "sqlite3":
		return Dialect{name: NameSQLite}
	case "postgres", "postgresql", "pgx":
		return Dialect{name: NamePostgres}
	default:
		return Dialect{name: NameUnknown}
	}
}

// FromDatabase 从 IDatabase 实例推断方言
//
// 需要 IDatabase 可选实现 IDialectNameProvider 接口；否则返回 Unknown。
func FromDatabase(db core.IDatabase) Dialect {
	if db == nil {
		return Dialect{name: NameUnknown}
	}
	if p, ok := db.(core.IDialectNameProvider); ok {
		return New(p.GetDialectName())
	}
	return Dialect{name: NameUnknown}
}

// Name 返回标准化方言名
func (d Dialect) Name() Name {
	return d.name
}

// Rebind 将占位符转换为方言特定形式。
//
// 输入中的占位符可以是两种形式：
//   - jpql 位置占位符 ?N（N 从 0 开始），由 jpql.Builder 生成；
//   - 通用占位符 ?，按出现顺序依次编号。
//
// 转换规则：
//   - Postgres：?N -> $(N+1)，? -> $k（k 为顺序编号）；
//   - MySQL/SQLite：统一改写为 ?，参数按出现顺序绑定；
//   - Unknown：原样返回。
//
// MySQL/SQLite 丢弃序号后依赖参数顺序与占位符出现顺序一致，jpql 生成的语句满足这一点。
//
// 当前实现使用简单的字符扫描，不区分字符串字面量中的 ?，
// 如 WHERE name = 'what?' 中的 ? 也会被改写，请改用参数传入。
func (d Dialect) Rebind(query string) string {
	if query == "" || d.name == NameUnknown {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 4)
	next := 0
	for i := 0; i < len(query); i++ {
		ch := query[i]
		if ch != '?' {
			sb.WriteByte(ch)
			continue
		}

		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		idx := next
		if j > i+1 {
			if n, err := strconv.Atoi(query[i+1 : j]); err == nil {
				idx = n
			}
		}
		next = idx + 1
		i = j - 1

		switch d.name {
		case NamePostgres:
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(idx + 1))
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}
