package legacy

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("invalid JSON document")

// Member is one key/value pair of a JSON object
type Member struct {
	Key   string
	Value any
}

// Object is a decoded JSON object that keeps its members in document order.
// V1 field maps carry their field order only through key order.
type Object []Member

// Get returns the value stored under key
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the object with its members in order.
// Nested values are written without HTML escaping.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := encodeJSON(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses a JSON document. Objects decode to Object, arrays to []any,
// numbers to json.Number; strings, booleans and null decode as usual.
func Decode(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.String:
		return r.Str
	}

	if r.IsArray() {
		arr := []any{}
		r.ForEach(func(_, value gjson.Result) bool {
			arr = append(arr, fromResult(value))
			return true
		})
		return arr
	}

	obj := Object{}
	r.ForEach(func(key, value gjson.Result) bool {
		obj = obj.set(key.Str, fromResult(value))
		return true
	})
	return obj
}

// set keeps the first position of a repeated key and its last value
func (o Object) set(key string, value any) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Member{Key: key, Value: value})
}

// encodeJSON encodes v as compact JSON without HTML escaping
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
