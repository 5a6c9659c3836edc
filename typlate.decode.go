package typlate

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DecodeTOML decodes a TOML document into a Value tree. TOML is the
// native configuration format of the surrounding project tooling; the
// engine itself only ever sees the resulting tree.
func DecodeTOML(data []byte) (Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Value{}, NewDecodeError(ErrMsgDecodeTOMLFailed, err)
	}
	return fromGoMap(raw)
}

// DecodeYAML decodes a YAML document into a Value tree.
func DecodeYAML(data []byte) (Value, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Value{}, NewDecodeError(ErrMsgDecodeYAMLFailed, err)
	}
	return fromGoMap(raw)
}

// ContextFromTOML decodes a TOML document and wraps it in a context
func ContextFromTOML(data []byte) (*TemplateContext, error) {
	root, err := DecodeTOML(data)
	if err != nil {
		return nil, err
	}
	return NewTemplateContext(root), nil
}

// ContextFromYAML decodes a YAML document and wraps it in a context
func ContextFromYAML(data []byte) (*TemplateContext, error) {
	root, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	return NewTemplateContext(root), nil
}

// FromGoValue converts a decoded Go value into the tagged variant
// model. Datetimes become calendar dates; integer widths collapse to
// int64. Types outside the model are rejected rather than coerced.
func FromGoValue(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return StringValue(""), nil
	case string:
		return StringValue(val), nil
	case bool:
		return BooleanValue(val), nil
	case int:
		return IntegerValue(int64(val)), nil
	case int64:
		return IntegerValue(val), nil
	case uint64:
		return IntegerValue(int64(val)), nil
	case float64:
		return FloatValue(val), nil
	case time.Time:
		return DateValue(val), nil
	case []any:
		items := make([]Value, 0, len(val))
		for _, item := range val {
			converted, err := FromGoValue(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, converted)
		}
		return ListValue(items...), nil
	case []map[string]any:
		// TOML array-of-tables shape
		items := make([]Value, 0, len(val))
		for _, item := range val {
			converted, err := fromGoMap(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, converted)
		}
		return ListValue(items...), nil
	case map[string]any:
		return fromGoMap(val)
	case map[any]any:
		entries := make(map[string]any, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				return Value{}, NewDecodeError(ErrMsgNonStringMapKey, nil)
			}
			entries[key] = item
		}
		return fromGoMap(entries)
	default:
		return Value{}, NewUnsupportedValueError(fmt.Sprintf("%T", v))
	}
}

func fromGoMap(raw map[string]any) (Value, error) {
	entries := make(map[string]Value, len(raw))
	for k, v := range raw {
		converted, err := FromGoValue(v)
		if err != nil {
			return Value{}, err
		}
		entries[k] = converted
	}
	return TableValue(entries), nil
}
