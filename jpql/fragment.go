package jpql

import "slices"

// fragment 条件片段及其参数，加入后不再修改
type fragment struct {
	text   string
	params []Param
}

func newFragment(text string, params []Param) fragment {
	return fragment{text: text, params: slices.Clone(params)}
}

// fragmentStore 按类别保存片段
//
//   - and/or/groupOr 保持插入顺序；
//   - having 只保留最后一次成功加入的片段；
//   - groupBy/sort 为原样文本，"" 表示未设置。
type fragmentStore struct {
	and     []fragment
	or      []fragment
	groupOr []fragment
	having  *fragment
	groupBy string
	sort    string
}

// accepts 参数为空或第一个参数为 Null 时片段被忽略
func accepts(params []Param) bool {
	return len(params) > 0 && !params[0].IsNull()
}
