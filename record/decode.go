package record

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrMalformedJSON = errors.New("malformed json")

// Decode parses a JSON payload into records.
// The payload may be one object, an array of objects, or one object per line.
// The whole payload is parsed as a single document first; when that fails,
// every non-blank line is parsed on its own and any failing line fails the decode.
func Decode(data []byte) ([]Record, error) {
	doc, docErr := parseDocument(data)
	if docErr == nil {
		return toRecords(doc)
	}
	var records []Record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		v, err := parseDocument(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedJSON, lineNo, err)
		}
		recs, err := toRecords(v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, recs...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return records, nil
}

// DecodeReader reads r fully and decodes it with Decode
func DecodeReader(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func toRecords(v Value) ([]Record, error) {
	switch v.Kind() {
	case KindObject:
		return []Record{v.AsObject()}, nil
	case KindArray:
		elems := v.AsArray()
		records := make([]Record, 0, len(elems))
		for i, e := range elems {
			if e.Kind() != KindObject {
				return nil, fmt.Errorf("%w: element %d is %s, not an object", ErrMalformedJSON, i, e.Kind())
			}
			records = append(records, e.AsObject())
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: top-level %s, want object or array", ErrMalformedJSON, v.Kind())
	}
}

func parseDocument(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("trailing data after document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected %q", t)
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	var r Record
	r.vals = make(map[string]Value)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key %v is not a string", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		r.set(key, v)
	}
	if _, err := dec.Token(); err != nil { // '}'
		return Value{}, err
	}
	return Object(r), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	elems := []Value{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	if _, err := dec.Token(); err != nil { // ']'
		return Value{}, err
	}
	return Array(elems...), nil
}
