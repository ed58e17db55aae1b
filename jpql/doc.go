// Package jpql 按片段拼装带位置参数的 JPQL/SQL 查询语句。
//
// 调用方按类别追加条件片段（AND、OR、分组 OR、HAVING、GROUP BY、ORDER BY），
// Build 按固定顺序拼接，把通用占位符 ? 改写为从 0 开始的位置占位符 ?0、?1…，
// 并校验占位符数量与参数数量一致。
//
// 基本用法：
//
//	b := jpql.New("select e from Employee e ").
//		AddAnd("e.dept = ?", jpql.Text("R&D")).
//		AddAnd("e.age >= ?", jpql.Ptr(minAge)). // minAge 为 nil 时该条件被跳过
//		AddOr("e.name like ?", jpql.Text("A%")).
//		AddOr("e.name like ?", jpql.Text("B%")).
//		AddSort(" order by e.id desc")
//
//	q, err := b.Build()
//	// q == "select e from Employee e where e.dept = ?0 and e.age >= ?1 and ( e.name like ?2 or e.name like ?3) order by e.id desc"
//	args := b.Params()
//
// 约定：
//   - Add* 的参数列表为空、或第一个参数为 Null() 时，该片段被静默忽略，便于书写可选过滤条件；
//   - GROUP BY、HAVING、ORDER BY 片段原样拼接，调用方需自带前导空格；
//   - Build 唯一的失败原因是占位符数量与参数数量不一致（ErrParameterCountMismatch）。
//
// 限制：占位符扫描不解析语法，字符串字面量中的 ? 同样会被编号。
//
// Builder 不是并发安全的，一个实例只应在单个 goroutine 中使用。
package jpql
