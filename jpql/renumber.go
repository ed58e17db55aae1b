package jpql

import (
	"strconv"
	"strings"
)

// Marker 通用占位符
const Marker = '?'

// Renumber 从左到右扫描 text，在每个占位符后紧跟从 0 开始的序号，
// 返回改写后的文本与占位符数量。
//
//	Renumber("a = ? and b = ?") == ("a = ?0 and b = ?1", 2)
//
// 扫描不识别字符串字面量，'what?' 中的 ? 同样会被编号。
func Renumber(text string) (string, int) {
	var sb strings.Builder
	sb.Grow(len(text) + 8)

	n := 0
	for i := 0; i < len(text); i++ {
		ch := text[i]
		sb.WriteByte(ch)
		if ch == Marker {
			sb.WriteString(strconv.Itoa(n))
			n++
		}
	}
	return sb.String(), n
}
