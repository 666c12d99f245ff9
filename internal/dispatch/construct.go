package dispatch

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/funvibe/typed/internal/registry"
)

// Bootstrap type names for the construction surface.
const (
	bootStringType     = "string"
	bootSignaturesType = "Signatures"
	bootCallableType   = "Callable"
	bootFunctionType   = "function"
)

// bootstrapRegistry describes the types the public constructor dispatches
// on. It is independent of the engine's value registry: construction-time
// dispatch must work the same no matter what the user registered.
func bootstrapRegistry() *registry.Registry {
	boot := registry.New()
	for _, t := range []registry.Type{
		{Name: bootStringType, Test: func(v any) bool { _, ok := v.(string); return ok }},
		{Name: bootSignaturesType, Test: func(v any) bool { return toSignatures(v) != nil }},
		{Name: bootCallableType, Test: func(v any) bool { c, ok := v.(*Callable); return ok && c != nil }},
		{Name: bootFunctionType, Test: registry.IsFunction},
	} {
		// Registration of literal types cannot fail.
		_ = boot.AddType(t)
	}
	return boot
}

// toSignatures widens the map shapes a caller may reasonably pass into the
// canonical Signatures type; nil means the value is not a signatures map.
func toSignatures(v any) Signatures {
	switch m := v.(type) {
	case Signatures:
		return m
	case map[string]Impl:
		return Signatures(m)
	case map[string]func(args ...any) any:
		out := make(Signatures, len(m))
		for k, fn := range m {
			out[k] = fn
		}
		return out
	}
	return nil
}

// NewConstructor compiles the dispatcher behind an engine's From. The
// engine builds its own public surface with its own compiler: the three
// construction overloads are just signatures over a bootstrap registry.
func NewConstructor(reg *registry.Registry, fastWidth int) (*Callable, error) {
	build := func(name string, sigs Signatures) any {
		c, err := Compile(reg, sigs, Options{Name: name, FastPathDefs: fastWidth})
		if err != nil {
			return err
		}
		return c
	}

	return Compile(bootstrapRegistry(), Signatures{
		"Signatures": func(args ...any) any {
			sigs := toSignatures(args[0])
			return build(inferName(sigs), sigs)
		},
		"string, Signatures": func(args ...any) any {
			return build(args[0].(string), toSignatures(args[1]))
		},
		"...Callable|function": func(args ...any) any {
			return mergeCallables(args[0].([]any), build)
		},
	}, Options{Name: "from"})
}

// mergeCallables merges the signature maps of already-compiled callables
// into one. Inputs that are not compiled callables, conflicting
// implementations under one canonical key and disagreeing names all reject
// the merge.
func mergeCallables(parts []any, build func(string, Signatures) any) any {
	name := ""
	merged := make(Signatures)
	for _, part := range parts {
		c, ok := part.(*Callable)
		if !ok || c == nil {
			return &NotTypedError{Value: part}
		}
		if c.name != "" {
			if name == "" {
				name = c.name
			} else if name != c.name {
				return &NameMismatchError{Want: name, Got: c.name}
			}
		}
		for key, impl := range c.signatures {
			if prev, exists := merged[key]; exists && !sameImpl(prev, impl) {
				return &DuplicateSignatureError{Signature: key}
			}
			merged[key] = impl
		}
	}
	return build(name, merged)
}

// inferName derives a callable name from a signatures map: when every
// implementation that has a discoverable symbol name agrees on one, that
// name wins; otherwise the callable is unnamed. Anonymous functions have
// no discoverable name.
func inferName(sigs Signatures) string {
	name := ""
	for _, fn := range sigs {
		n := implName(fn)
		if n == "" {
			continue
		}
		if name == "" {
			name = n
		} else if name != n {
			return ""
		}
	}
	return name
}

// implName resolves a function value's symbol name, stripped of package
// path and receiver. Closures report as funcN and count as unnamed.
func implName(fn Impl) string {
	if fn == nil {
		return ""
	}
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}
	full := strings.TrimSuffix(f.Name(), "-fm")
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	if full == "" || strings.HasPrefix(full, "func") {
		return ""
	}
	return full
}
