package registry

import (
	"reflect"
	"regexp"
	"time"

	"github.com/funvibe/typed/internal/config"
)

// Built-in type names.
const (
	NumberTypeName   = "number"
	StringTypeName   = "string"
	BooleanTypeName  = "boolean"
	FunctionTypeName = "function"
	ArrayTypeName    = "Array"
	DateTypeName     = "Date"
	RegExpTypeName   = "RegExp"
	NullTypeName     = "null"
)

// builtinTypes is the default predicate order. The order is part of the
// engine's observable behavior: FindType classifies a value as the first
// matching entry, so Object must stay after Array and Date, and any must
// stay last. Reordering changes classification.
var builtinTypes = []Type{
	{Name: NumberTypeName, Test: IsNumber},
	{Name: StringTypeName, Test: func(v any) bool { _, ok := v.(string); return ok }},
	{Name: BooleanTypeName, Test: func(v any) bool { _, ok := v.(bool); return ok }},
	{Name: FunctionTypeName, Test: IsFunction},
	{Name: ArrayTypeName, Test: func(v any) bool { _, ok := v.([]any); return ok }},
	{Name: DateTypeName, Test: func(v any) bool { _, ok := v.(time.Time); return ok }},
	{Name: RegExpTypeName, Test: func(v any) bool { _, ok := v.(*regexp.Regexp); return ok }},
	{Name: NullTypeName, Test: func(v any) bool { return v == nil }},
	{Name: config.ObjectTypeName, Test: func(v any) bool { _, ok := v.(map[string]any); return ok }},
	{Name: config.AnyTypeName, Test: func(v any) bool { return true }},
}

// IsNumber accepts the numeric kinds the engine treats as one type.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	}
	return false
}

// IsFunction accepts any Go function value.
func IsFunction(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Func
}

// NewDefault creates a registry pre-loaded with the built-in types in their
// documented order.
func NewDefault() *Registry {
	r := New()
	r.types = append(r.types, builtinTypes...)
	return r
}
