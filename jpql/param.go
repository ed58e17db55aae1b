package jpql

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Kind 参数值的类别
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Param 是绑定到位置占位符上的参数值。
//
// 只允许查询执行层能接受的几种类别：文本、整数、浮点、布尔与 Null。
// 零值即 Null()。
type Param struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

func Null() Param           { return Param{} }
func Text(v string) Param   { return Param{kind: KindText, s: v} }
func Int(v int64) Param     { return Param{kind: KindInt, i: v} }
func Float(v float64) Param { return Param{kind: KindFloat, f: v} }
func Bool(v bool) Param     { return Param{kind: KindBool, b: v} }

func (p Param) Kind() Kind   { return p.kind }
func (p Param) IsNull() bool { return p.kind == KindNull }

// Ptr 把可选值转换为参数，nil 指针得到 Null()。
//
// 配合 Add* 的 Null 跳过规则，可以直接写 AddAnd("e.age >= ?", Ptr(minAge))。
func Ptr[T ~string | ~int | ~int8 | ~int16 | ~int32 | ~int64 |
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64 | ~bool](v *T) Param {
	if v == nil {
		return Null()
	}
	return Of(*v)
}

// Of 把常见 Go 值转换为参数。
//
// nil、nil []byte、任意 nil 指针以及值为 nil 的 driver.Valuer 结果都得到 Null()，
// 非 nil 指针按其指向的值转换。
// 不支持的类型、超出 int64 范围的无符号整数都属于编程错误，直接 panic。
func Of(v any) Param {
	switch val := v.(type) {
	case nil:
		return Null()
	case Param:
		return val
	case string:
		return Text(val)
	case []byte:
		if val == nil {
			return Null()
		}
		return Text(string(val))
	case int:
		return Int(int64(val))
	case int8:
		return Int(int64(val))
	case int16:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case uint:
		return fromUint(uint64(val))
	case uint8:
		return Int(int64(val))
	case uint16:
		return Int(int64(val))
	case uint32:
		return Int(int64(val))
	case uint64:
		return fromUint(val)
	case float32:
		return Float(float64(val))
	case float64:
		return Float(val)
	case bool:
		return Bool(val)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Null()
	}

	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		if err != nil {
			panic(fmt.Sprintf("jpql: driver.Valuer failed: %v", err))
		}
		if _, nested := dv.(driver.Valuer); nested {
			panic(fmt.Sprintf("jpql: driver.Valuer %T returned another Valuer", v))
		}
		return Of(dv)
	}

	if rv.Kind() == reflect.Pointer {
		return Of(rv.Elem().Interface())
	}

	switch rv.Kind() {
	case reflect.String:
		return Text(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.Bool:
		return Bool(rv.Bool())
	}
	panic(fmt.Sprintf("jpql: unsupported parameter type %T", v))
}

func fromUint(v uint64) Param {
	if v > math.MaxInt64 {
		panic(fmt.Sprintf("jpql: unsigned value %d overflows int64", v))
	}
	return Int(int64(v))
}

// Params 批量转换，便于从 []any 迁移
func Params(vs ...any) []Param {
	out := make([]Param, len(vs))
	for i, v := range vs {
		out[i] = Of(v)
	}
	return out
}

// Any 返回对应的 Go 值，Null 返回 nil
func (p Param) Any() any {
	switch p.kind {
	case KindText:
		return p.s
	case KindInt:
		return p.i
	case KindFloat:
		return p.f
	case KindBool:
		return p.b
	default:
		return nil
	}
}

// Value 实现 driver.Valuer
func (p Param) Value() (driver.Value, error) {
	return p.Any(), nil
}

// String 用于日志输出，文本值带引号，Null 输出为 NULL
func (p Param) String() string {
	switch p.kind {
	case KindText:
		return strconv.Quote(p.s)
	case KindInt:
		return strconv.FormatInt(p.i, 10)
	case KindFloat:
		return strconv.FormatFloat(p.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(p.b)
	default:
		return "NULL"
	}
}
