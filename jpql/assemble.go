package jpql

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// assembly 拼装过程中的中间结果，按值传递，每个阶段返回新值
type assembly struct {
	text   string
	params []Param
}

func (a assembly) append(segment string, params []Param) assembly {
	return assembly{
		text:   a.text + segment,
		params: slices.Concat(a.params, params),
	}
}

// appendClause 追加 where 族子句，与前文之间保证恰好有空白分隔
func (a assembly) appendClause(segment string, params []Param) assembly {
	if a.text != "" && !endsWithSpace(a.text) {
		segment = " " + segment
	}
	return a.append(segment, params)
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}

type stage func(assembly) assembly

// assemble 按固定顺序拼装：AND、OR、分组 OR、GROUP BY、HAVING、ORDER BY
//
// skipHaving 为 true 时丢弃 HAVING 片段（兼容旧行为，见 WithLegacyHavingGuard）。
func assemble(base string, s fragmentStore, skipHaving bool) assembly {
	hasAnd := len(s.and) > 0
	hasOr := len(s.or) > 0

	stages := []stage{
		andStage(s.and),
		orStage(s.or, hasAnd),
		groupOrStage(s.groupOr, hasAnd || hasOr),
		rawStage(s.groupBy),
		havingStage(s.having, skipHaving),
		rawStage(s.sort),
	}

	a := assembly{text: base}
	for _, st := range stages {
		a = st(a)
	}
	return a
}

func andStage(frs []fragment) stage {
	return func(a assembly) assembly {
		if len(frs) == 0 {
			return a
		}
		body, params := join(frs, " and ", nil)
		return a.appendClause("where "+body, params)
	}
}

func orStage(frs []fragment, afterAnd bool) stage {
	return func(a assembly) assembly {
		if len(frs) == 0 {
			return a
		}
		prefix := "where ( "
		if afterAnd {
			prefix = "and ( "
		}
		body, params := join(frs, " or ", nil)
		return a.appendClause(prefix+body+")", params)
	}
}

func groupOrStage(frs []fragment, afterWhere bool) stage {
	return func(a assembly) assembly {
		if len(frs) == 0 {
			return a
		}
		prefix := "where "
		if afterWhere {
			prefix = "and "
		}
		body, params := join(frs, " and ", parenthesize)
		return a.appendClause(prefix+body, params)
	}
}

func havingStage(f *fragment, skip bool) stage {
	return func(a assembly) assembly {
		if f == nil || skip {
			return a
		}
		return a.append(f.text, f.params)
	}
}

// rawStage 原样追加无参数文本（GROUP BY、ORDER BY）
func rawStage(text string) stage {
	return func(a assembly) assembly {
		if text == "" {
			return a
		}
		return a.append(text, nil)
	}
}

// join 以 sep 连接片段文本，参数按片段顺序收集
func join(frs []fragment, sep string, wrap func(string) string) (string, []Param) {
	texts := make([]string, len(frs))
	var params []Param
	for i, f := range frs {
		texts[i] = f.text
		if wrap != nil {
			texts[i] = wrap(f.text)
		}
		params = append(params, f.params...)
	}
	return strings.Join(texts, sep), params
}

func parenthesize(s string) string {
	return "(" + s + ")"
}
