package registry

import (
	"strings"

	"github.com/funvibe/typed/internal/config"
)

// Type is a named runtime type predicate. Identity is the name; the position
// in the registry is significant (lower index = more specific).
type Type struct {
	Name string
	Test func(v any) bool
}

// Conversion declares that values of type From may be handed to a parameter
// expecting type To after passing through Convert. Declared priority is
// insertion order; there is no transitive closure.
type Conversion struct {
	From    string
	To      string
	Convert func(v any) any
}

// Registry holds the ordered type predicates, the ordered conversions and
// the ignore set for one engine. It is append-only: types and conversions
// can be added but never removed or reordered.
//
// Compilation reads the registry; a compiled callable closes over the
// definitions it was built from, so mutating the registry afterwards has no
// effect on existing callables.
type Registry struct {
	types       []Type
	conversions []Conversion
	ignored     []string
}

// New creates an empty registry. Most callers want NewDefault.
func New() *Registry {
	return &Registry{}
}

// AddType validates and appends a type. New types are inserted before the
// Object and any sentinels when those are present, so user types always
// classify ahead of the catch-alls. Duplicate names are allowed; the first
// registered wins on lookup.
func (r *Registry) AddType(t Type) error {
	if t.Name == "" {
		return &InvalidArgumentError{Reason: "type has no name"}
	}
	if t.Test == nil {
		return &InvalidArgumentError{Reason: "type " + t.Name + " has no test function"}
	}
	at := len(r.types)
	for i, existing := range r.types {
		if existing.Name == config.ObjectTypeName || existing.Name == config.AnyTypeName {
			at = i
			break
		}
	}
	r.types = append(r.types, Type{})
	copy(r.types[at+1:], r.types[at:])
	r.types[at] = t
	return nil
}

// FindTest returns the predicate registered under name. The error for an
// unknown name carries a case-insensitive suggestion when one exists.
func (r *Registry) FindTest(name string) (func(v any) bool, error) {
	for _, t := range r.types {
		if t.Name == name {
			return t.Test, nil
		}
	}
	return nil, &UnknownTypeError{Name: name, Hint: r.hintFor(name)}
}

// Has reports whether a type name is registered.
func (r *Registry) Has(name string) bool {
	for _, t := range r.types {
		if t.Name == name {
			return true
		}
	}
	return false
}

func (r *Registry) hintFor(name string) string {
	lower := strings.ToLower(name)
	for _, t := range r.types {
		if strings.ToLower(t.Name) == lower {
			return t.Name
		}
	}
	return ""
}

// FindType returns the name of the first type in registry order whose
// predicate matches the value.
func (r *Registry) FindType(v any) (string, error) {
	for _, t := range r.types {
		if t.Test(v) {
			return t.Name, nil
		}
	}
	return "", &UnknownValueTypeError{Value: v}
}

// TypesCopy returns a snapshot of the ordered type list. Compiled callables
// classify values against such a snapshot, so types registered later do not
// change the behavior of existing callables.
func (r *Registry) TypesCopy() []Type {
	out := make([]Type, len(r.types))
	copy(out, r.types)
	return out
}

// TypeIndex builds the specificity index used to order signatures: each
// registered name maps to its registry position (first win), with the
// Object and any sentinels forced to the end regardless of where they
// were registered.
func (r *Registry) TypeIndex() map[string]int {
	index := make(map[string]int, len(r.types)+2)
	for i, t := range r.types {
		if _, seen := index[t.Name]; !seen {
			index[t.Name] = i
		}
	}
	index[config.ObjectTypeName] = len(r.types)
	index[config.AnyTypeName] = len(r.types) + 1
	return index
}

// Ignore marks type names to be stripped from signature params during
// normalization.
func (r *Registry) Ignore(names ...string) {
	r.ignored = append(r.ignored, names...)
}

// IgnoreSet returns the ignored names as a lookup set.
func (r *Registry) IgnoreSet() map[string]bool {
	set := make(map[string]bool, len(r.ignored))
	for _, name := range r.ignored {
		set[name] = true
	}
	return set
}

// AddConversion validates and appends a conversion. Both endpoints must
// name registered types.
func (r *Registry) AddConversion(c Conversion) error {
	if c.Convert == nil {
		return &InvalidArgumentError{Reason: "conversion has no convert function"}
	}
	if !r.Has(c.From) {
		return &UnknownTypeError{Name: c.From, Hint: r.hintFor(c.From)}
	}
	if !r.Has(c.To) {
		return &UnknownTypeError{Name: c.To, Hint: r.hintFor(c.To)}
	}
	r.conversions = append(r.conversions, c)
	return nil
}

// Conversions returns the registered conversions in declaration order.
// The returned slice is shared; callers must not mutate it.
func (r *Registry) Conversions() []Conversion {
	return r.conversions
}

// Convert coerces a value to the target type. A value already classified as
// the target passes through untouched; otherwise the first conversion from
// the value's actual type to the target applies.
func (r *Registry) Convert(v any, target string) (any, error) {
	actual, err := r.FindType(v)
	if err != nil {
		return nil, err
	}
	if actual == target {
		return v, nil
	}
	for _, c := range r.conversions {
		if c.From == actual && c.To == target {
			return c.Convert(v), nil
		}
	}
	return nil, &NoConversionError{From: actual, To: target}
}
