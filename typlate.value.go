package typlate

import (
	"strconv"
	"time"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	// KindString is a UTF-8 string scalar
	KindString Kind = iota
	// KindInteger is a 64-bit signed integer scalar
	KindInteger
	// KindFloat is a 64-bit floating point scalar
	KindFloat
	// KindBoolean is a true/false scalar
	KindBoolean
	// KindDate is a calendar date scalar
	KindDate
	// KindList is an ordered sequence of values
	KindList
	// KindTable is a keyed mapping of values
	KindTable
)

// String returns the kind name as used in error metadata
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindDate:
		return "Date"
	case KindList:
		return "List"
	case KindTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Value is the tagged variant tree supplying substitution data to the
// engine. Values are immutable once constructed: all fields are
// unexported, composite constructors copy their inputs, and the engine
// never mutates a value during rendering. Independent renders may
// therefore share one value tree without synchronization.
type Value struct {
	kind    Kind
	str     string
	integer int64
	float   float64
	boolean bool
	date    time.Time
	list    []Value
	table   map[string]Value
}

// StringValue creates a string scalar
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// IntegerValue creates an integer scalar
func IntegerValue(i int64) Value {
	return Value{kind: KindInteger, integer: i}
}

// FloatValue creates a float scalar
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, float: f}
}

// BooleanValue creates a boolean scalar
func BooleanValue(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// DateValue creates a calendar date scalar. The time-of-day portion is
// discarded; only year, month, and day survive.
func DateValue(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ListValue creates an ordered list from the given elements.
// The element slice is copied.
func ListValue(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: KindList, list: copied}
}

// TableValue creates a keyed table from the given entries.
// The entry map is copied.
func TableValue(entries map[string]Value) Value {
	copied := make(map[string]Value, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return Value{kind: KindTable, table: copied}
}

// Kind returns the variant held by this value
func (v Value) Kind() Kind {
	return v.kind
}

// IsScalar reports whether the value can appear in placeholder position
func (v Value) IsScalar() bool {
	return v.kind != KindList && v.kind != KindTable
}

// AsString returns the string payload
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsInteger returns the integer payload
func (v Value) AsInteger() (int64, bool) {
	return v.integer, v.kind == KindInteger
}

// AsFloat returns the float payload
func (v Value) AsFloat() (float64, bool) {
	return v.float, v.kind == KindFloat
}

// AsBoolean returns the boolean payload
func (v Value) AsBoolean() (bool, bool) {
	return v.boolean, v.kind == KindBoolean
}

// AsDate returns the date payload
func (v Value) AsDate() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// AsList returns a copy of the list elements
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	copied := make([]Value, len(v.list))
	copy(copied, v.list)
	return copied, true
}

// Get returns the table entry for key
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindTable {
		return Value{}, false
	}
	entry, ok := v.table[key]
	return entry, ok
}

// Keys returns the table keys in unspecified order
func (v Value) Keys() []string {
	if v.kind != KindTable {
		return nil
	}
	keys := make([]string, 0, len(v.table))
	for k := range v.table {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the element count for lists and tables, zero otherwise
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindTable:
		return len(v.table)
	default:
		return 0
	}
}

// items returns the backing list without copying. Render-internal use
// only; the renderer never mutates it.
func (v Value) items() []Value {
	return v.list
}

// scalarText stringifies a scalar value for placeholder substitution.
// Returns false for lists and tables. The formats are fixed contract:
// canonical decimal for numbers, true/false for booleans, ISO-8601
// calendar dates.
func (v Value) scalarText() (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, true
	case KindInteger:
		return strconv.FormatInt(v.integer, 10), true
	case KindFloat:
		return strconv.FormatFloat(v.float, 'f', -1, 64), true
	case KindBoolean:
		if v.boolean {
			return StrTrue, true
		}
		return StrFalse, true
	case KindDate:
		return v.date.Format(DateLayout), true
	default:
		return "", false
	}
}
