package legacy

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/ankideku/deku-migrate/internal/domain"
)

// stringify renders a JSON value the way it is stored in a text column
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case Object, []any:
		data, err := encodeJSON(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
	return cast.ToString(v)
}

// toInt64 reads an integer from a number or a base-10 numeric string.
// Integral floats are accepted; booleans are not.
func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func optionalInt64(v any) *int64 {
	n, ok := toInt64(v)
	if !ok {
		return nil
	}
	return &n
}

func optionalString(v any) *string {
	if v == nil {
		return nil
	}
	s := stringify(v)
	return &s
}

// optionalBool only accepts real JSON booleans
func optionalBool(v any) *bool {
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

func getString(o Object, key string) string {
	v, _ := o.Get(key)
	return stringify(v)
}

func getObject(o Object, key string) Object {
	v, _ := o.Get(key)
	obj, _ := v.(Object)
	return obj
}

// structuredFields reads a note field map whose entries are either
// {"value": ..., "order": n} objects or bare scalars (order 0).
func structuredFields(v any) []domain.Field {
	obj, ok := v.(Object)
	if !ok {
		return nil
	}

	fields := make([]domain.Field, 0, len(obj))
	for _, m := range obj {
		field := domain.Field{Name: m.Key}
		if entry, ok := m.Value.(Object); ok {
			value, _ := entry.Get("value")
			field.Value = stringify(value)
			if order, ok := entry.Get("order"); ok {
				if n, ok := toInt64(order); ok {
					field.Order = int(n)
				}
			}
		} else {
			field.Value = stringify(m.Value)
		}
		fields = append(fields, field)
	}
	return fields
}

// flatFields reads a name -> value map, ordering fields by position
func flatFields(v any) []domain.Field {
	obj, ok := v.(Object)
	if !ok {
		return nil
	}

	fields := make([]domain.Field, 0, len(obj))
	for i, m := range obj {
		fields = append(fields, domain.Field{
			Name:  m.Key,
			Order: i,
			Value: stringify(m.Value),
		})
	}
	return fields
}

func stringSlice(v any) []string {
	if v == nil {
		return []string{}
	}
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	return out
}
