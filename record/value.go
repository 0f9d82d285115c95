package record

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind tags the shape held by a Value
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBool
	KindObject
	KindArray
	KindTime
)

var kindNames = [...]string{
	KindNull:    "null",
	KindString:  "string",
	KindInteger: "integer",
	KindFloat:   "float",
	KindBool:    "bool",
	KindObject:  "object",
	KindArray:   "array",
	KindTime:    "time",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// TimeLayout is the text form of KindTime values in JSON output and SQL literals
const TimeLayout = "2006-01-02 15:04:05"

// Value is one JSON-shaped value. The zero Value is null.
type Value struct {
	kind Kind
	str  string // KindString, and the number text for KindInteger / KindFloat
	b    bool
	obj  Record
	arr  []Value
	t    time.Time
}

func Null() Value { return Value{} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Int(i int64) Value { return Value{kind: KindInteger, str: strconv.FormatInt(i, 10)} }

func Float(f float64) Value {
	return Value{kind: KindFloat, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Number keeps the literal text of a JSON number.
// Integral text (no fraction or exponent) yields KindInteger.
func Number(n json.Number) Value {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return Value{kind: KindFloat, str: s}
	}
	return Value{kind: KindInteger, str: s}
}

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Object(r Record) Value { return Value{kind: KindObject, obj: r} }

func Array(vs ...Value) Value { return Value{kind: KindArray, arr: vs} }

func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// FromAny converts a Go value scanned from a database row
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return String(x)
	case []byte:
		return String(string(x))
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return Value{kind: KindInteger, str: strconv.FormatUint(x, 10)}
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case json.Number:
		return Number(x)
	case time.Time:
		return Time(x)
	case Record:
		return Object(x)
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return String(fmt.Sprint(v))
		}
		if _, again := dv.(driver.Valuer); again {
			return String(fmt.Sprint(dv))
		}
		return FromAny(dv)
	case fmt.Stringer:
		return String(x.String())
	default:
		return String(fmt.Sprint(v))
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() string { return v.str }

func (v Value) AsNumber() json.Number { return json.Number(v.str) }

func (v Value) AsBool() bool { return v.b }

func (v Value) AsObject() Record { return v.obj }

func (v Value) AsArray() []Value { return v.arr }

func (v Value) AsTime() time.Time { return v.t }

// Text is the scalar text of v: the string itself, the number text,
// true/false, or the formatted time. Composite values yield compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindString, KindInteger, KindFloat:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(TimeLayout)
	case KindObject, KindArray:
		return v.JSON()
	default:
		return ""
	}
}

// JSON returns the compact JSON text of v
func (v Value) JSON() string {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.String()
}

func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) {
	switch v.kind {
	case KindString:
		writeJSONString(buf, v.str)
	case KindInteger, KindFloat:
		buf.WriteString(v.str)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindTime:
		writeJSONString(buf, v.t.Format(TimeLayout))
	case KindObject:
		v.obj.writeJSON(buf)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			e.writeJSON(buf)
		}
		buf.WriteByte(']')
	default:
		buf.WriteString("null")
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)           // a string always encodes
	buf.Truncate(buf.Len() - 1) // Encode appends '\n'
}
