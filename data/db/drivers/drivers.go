// Package drivers 以空导入方式注册 jpqlkit 支持的 database/sql 驱动。
//
//	import _ "jpqlkit/data/db/drivers"
//
// 注册后的驱动名与 dialect 的对应关系：
//   - "sqlite"（modernc.org/sqlite，纯 Go 实现）-> dialect.NameSQLite
//   - "mysql"（github.com/go-sql-driver/mysql）-> dialect.NameMySQL
//   - "pgx"（github.com/jackc/pgx/v5/stdlib）-> dialect.NamePostgres
package drivers

import (
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Names 返回本包注册的驱动名
func Names() []string {
	return []string{"sqlite", "mysql", "pgx"}
}
