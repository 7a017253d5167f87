package numfmt

import (
	"fmt"
	"strconv"
	"time"
)

// ValueType identifies which variant a [Value] holds.
type ValueType int

const (
	TypeBlank ValueType = iota
	TypeNumber
	TypeDateTime
	TypeText
	TypeBool
)

func (t ValueType) String() string {
	switch t {
	case TypeBlank:
		return "blank"
	case TypeNumber:
		return "number"
	case TypeDateTime:
		return "datetime"
	case TypeText:
		return "text"
	case TypeBool:
		return "bool"
	}
	return "ValueType(" + strconv.Itoa(int(t)) + ")"
}

// Value is a typed cell value.  Construct one with [Number], [DateTime],
// [Text], [Bool], [Blank] or [ValueOf]; the zero Value is Blank.
type Value struct {
	typ ValueType
	num float64
	t   time.Time
	str string
	b   bool
}

// Number returns a numeric cell value.  Date cells stored as serials are
// plain numbers too; the format string decides how they render.
func Number(f float64) Value { return Value{typ: TypeNumber, num: f} }

// DateTime returns a date/time cell value.  It is converted to a serial in
// the engine's date system before formatting.
func DateTime(t time.Time) Value { return Value{typ: TypeDateTime, t: t} }

// Text returns a string cell value.
func Text(s string) Value { return Value{typ: TypeText, str: s} }

// Bool returns a boolean cell value.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// Blank returns an empty cell value.
func Blank() Value { return Value{} }

// ValueOf wraps a dynamically typed cell value.  nil is Blank, strings are
// Text, bools are Bool, every Go numeric type is Number and time.Time is
// DateTime.  Any other type is rendered with [fmt.Sprint] and treated as Text.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Blank()
	case Value:
		return x
	case string:
		return Text(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case time.Time:
		return DateTime(x)
	case *time.Time:
		if x == nil {
			return Blank()
		}
		return DateTime(*x)
	default:
		return Text(fmt.Sprint(v))
	}
}

// Type reports the variant held by v.
func (v Value) Type() ValueType { return v.typ }

// Float returns the numeric payload of a Number value.
func (v Value) Float() (float64, bool) { return v.num, v.typ == TypeNumber }

// Time returns the payload of a DateTime value.
func (v Value) Time() (time.Time, bool) { return v.t, v.typ == TypeDateTime }

// Str returns the payload of a Text value.
func (v Value) Str() (string, bool) { return v.str, v.typ == TypeText }

// Boolean returns the payload of a Bool value.
func (v Value) Boolean() (bool, bool) { return v.b, v.typ == TypeBool }

// String renders v the way an unformatted cell shows it.
func (v Value) String() string {
	switch v.typ {
	case TypeNumber:
		return renderGeneral(v.num)
	case TypeDateTime:
		return v.t.Format("2006-01-02 15:04:05")
	case TypeText:
		return v.str
	case TypeBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}
