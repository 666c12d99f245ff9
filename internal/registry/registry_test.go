package registry

import (
	"errors"
	"testing"
)

func TestAddTypeValidation(t *testing.T) {
	r := New()

	if err := r.AddType(Type{Name: "", Test: func(v any) bool { return true }}); err == nil {
		t.Errorf("expected error for nameless type")
	}
	if err := r.AddType(Type{Name: "thing"}); err == nil {
		t.Errorf("expected error for type without test")
	}

	var invalid *InvalidArgumentError
	err := r.AddType(Type{Name: "thing"})
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidArgumentError, got %T", err)
	}
}

func TestDuplicateNamesFirstWins(t *testing.T) {
	r := New()
	first := func(v any) bool { return v == "first" }
	second := func(v any) bool { return true }
	if err := r.AddType(Type{Name: "dup", Test: first}); err != nil {
		t.Fatalf("AddType: %v", err)
	}
	if err := r.AddType(Type{Name: "dup", Test: second}); err != nil {
		t.Fatalf("AddType: %v", err)
	}

	test, err := r.FindTest("dup")
	if err != nil {
		t.Fatalf("FindTest: %v", err)
	}
	if test("not-first") {
		t.Errorf("lookup returned the second predicate, want the first")
	}
	if !test("first") {
		t.Errorf("first predicate should match its own value")
	}
}

func TestFindTestHint(t *testing.T) {
	r := NewDefault()
	_, err := r.FindTest("Number")
	if err == nil {
		t.Fatalf("expected error for unknown name")
	}
	var unknown *UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTypeError, got %T", err)
	}
	if unknown.Hint != "number" {
		t.Errorf("hint = %q, want %q", unknown.Hint, "number")
	}
}

func TestFindTypeOrder(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		value any
		want  string
	}{
		{42, "number"},
		{int64(42), "number"},
		{2.5, "number"},
		{"hi", "string"},
		{true, "boolean"},
		{[]any{1, 2}, "Array"},
		{map[string]any{}, "Object"},
		{nil, "null"},
		{struct{}{}, "any"},
	}
	for _, tt := range tests {
		got, err := r.FindType(tt.value)
		if err != nil {
			t.Errorf("FindType(%v): %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FindType(%v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestAddTypeInsertsBeforeSentinels(t *testing.T) {
	r := NewDefault()
	err := r.AddType(Type{Name: "point", Test: func(v any) bool {
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		_, hasX := m["x"]
		_, hasY := m["y"]
		return hasX && hasY
	}})
	if err != nil {
		t.Fatalf("AddType: %v", err)
	}

	// A point classifies as point, not Object, because the new type sits
	// before the sentinels in predicate order.
	got, err := r.FindType(map[string]any{"x": 1, "y": 2})
	if err != nil {
		t.Fatalf("FindType: %v", err)
	}
	if got != "point" {
		t.Errorf("FindType = %s, want point", got)
	}

	index := r.TypeIndex()
	if index["point"] >= index["Object"] || index["Object"] >= index["any"] {
		t.Errorf("sentinels must stay last: point=%d Object=%d any=%d",
			index["point"], index["Object"], index["any"])
	}
}

func TestConvert(t *testing.T) {
	r := NewDefault()
	err := r.AddConversion(Conversion{
		From: "boolean",
		To:   "number",
		Convert: func(v any) any {
			if v.(bool) {
				return 1
			}
			return 0
		},
	})
	if err != nil {
		t.Fatalf("AddConversion: %v", err)
	}

	// Already the target type: passes through, conversion not consulted.
	got, err := r.Convert(7, "number")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got != 7 {
		t.Errorf("Convert(7) = %v, want 7", got)
	}

	got, err = r.Convert(true, "number")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got != 1 {
		t.Errorf("Convert(true) = %v, want 1", got)
	}

	_, err = r.Convert("x", "number")
	var noConv *NoConversionError
	if !errors.As(err, &noConv) {
		t.Fatalf("expected NoConversionError, got %v", err)
	}
	if noConv.From != "string" || noConv.To != "number" {
		t.Errorf("NoConversionError = %s->%s, want string->number", noConv.From, noConv.To)
	}
}

func TestAddConversionValidation(t *testing.T) {
	r := NewDefault()
	var unknown *UnknownTypeError
	err := r.AddConversion(Conversion{From: "nope", To: "number", Convert: func(v any) any { return v }})
	if !errors.As(err, &unknown) {
		t.Errorf("expected UnknownTypeError for from endpoint, got %v", err)
	}
	err = r.AddConversion(Conversion{From: "number", To: "nope", Convert: func(v any) any { return v }})
	if !errors.As(err, &unknown) {
		t.Errorf("expected UnknownTypeError for to endpoint, got %v", err)
	}
	err = r.AddConversion(Conversion{From: "number", To: "string"})
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidArgumentError for missing convert, got %v", err)
	}
}

func TestIgnoreSet(t *testing.T) {
	r := NewDefault()
	r.Ignore("null", "undefined")
	set := r.IgnoreSet()
	if !set["null"] || !set["undefined"] {
		t.Errorf("ignore set missing entries: %v", set)
	}
	if set["number"] {
		t.Errorf("number should not be ignored")
	}
}
