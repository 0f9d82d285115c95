package record

import (
	"bytes"
	"encoding/json"
)

// Field is one name/value pair of a Record
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for a Field literal
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// Record is an ordered mapping from field name to Value.
// It keeps the order fields were first seen in; a repeated name replaces
// the earlier value in place. Records are not mutated after construction.
type Record struct {
	keys []string
	vals map[string]Value
}

// New builds a Record from fields in order
func New(fields ...Field) Record {
	r := Record{
		keys: make([]string, 0, len(fields)),
		vals: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		r.set(f.Name, f.Value)
	}
	return r
}

func (r *Record) set(name string, v Value) {
	if r.vals == nil {
		r.vals = make(map[string]Value)
	}
	if _, exists := r.vals[name]; !exists {
		r.keys = append(r.keys, name)
	}
	r.vals[name] = v
}

// Get returns the value of the named field and whether it is present
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// Keys returns the field names in order
func (r Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Fields returns the fields in order
func (r Record) Fields() []Field {
	fields := make([]Field, len(r.keys))
	for i, k := range r.keys {
		fields[i] = Field{Name: k, Value: r.vals[k]}
	}
	return fields
}

func (r Record) Len() int { return len(r.keys) }

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	r.writeJSON(&buf)
	return buf.Bytes(), nil
}

func (r Record) writeJSON(buf *bytes.Buffer) {
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, k)
		buf.WriteByte(':')
		r.vals[k].writeJSON(buf)
	}
	buf.WriteByte('}')
}

// String returns the compact JSON text of r
func (r Record) String() string {
	var buf bytes.Buffer
	r.writeJSON(&buf)
	return buf.String()
}

var _ json.Marshaler = Record{}
