package dispatch

import (
	"errors"
	"testing"

	"github.com/funvibe/typed/internal/registry"
)

func TestFindRoundTrip(t *testing.T) {
	c := mustCompile(t, registry.NewDefault(), Signatures{
		"number, number": func(args ...any) any { return "nn" },
		"number, string": func(args ...any) any { return "ns" },
	}, Options{Name: "pair"})

	for _, key := range c.SignatureKeys() {
		impl, err := Find(c, key)
		if err != nil {
			t.Errorf("Find(%q): %v", key, err)
			continue
		}
		if got := impl(); got != c.Signatures()[key]() {
			t.Errorf("Find(%q) returned a different implementation", key)
		}
	}
}

func TestFindNormalizesSpacing(t *testing.T) {
	c := mustCompile(t, registry.NewDefault(), Signatures{
		"number, string": func(args ...any) any { return "ns" },
	}, Options{})

	impl, err := Find(c, "number , string")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if impl() != "ns" {
		t.Errorf("Find returned the wrong implementation")
	}

	impl, err = Find(c, []string{"number", "string"})
	if err != nil {
		t.Fatalf("Find with name slice: %v", err)
	}
	if impl() != "ns" {
		t.Errorf("Find with name slice returned the wrong implementation")
	}
}

func TestFindExactOnly(t *testing.T) {
	c := mustCompile(t, registry.NewDefault(), Signatures{
		"number, string": func(args ...any) any { return nil },
	}, Options{Name: "pair"})

	_, err := Find(c, "string, number")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Signature != "string,number" {
		t.Errorf("signature in error = %q, want string,number", notFound.Signature)
	}
}

func TestFindRejectsUntyped(t *testing.T) {
	_, err := Find(func() {}, "number")
	var notTyped *NotTypedError
	if !errors.As(err, &notTyped) {
		t.Fatalf("expected NotTypedError, got %v", err)
	}
}
