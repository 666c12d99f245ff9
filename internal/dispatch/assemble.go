package dispatch

import (
	"reflect"
	"sort"

	"github.com/funvibe/typed/internal/config"
	"github.com/funvibe/typed/internal/registry"
	"github.com/funvibe/typed/internal/signature"
)

// Callable is a compiled dispatcher. It is immutable once built: it closes
// over the defs and the registry snapshot it was compiled from, so later
// registry mutation does not change its behavior.
type Callable struct {
	name string
	defs []*def

	// fastLen leading defs have arity <= config.FastPathArity and no rest
	// param; Call checks them with unrolled per-param predicates before
	// entering the generic scan.
	fastLen int

	signatures Signatures
	keys       []string

	findType func(v any) string
}

// Name returns the callable's name; empty for unnamed callables.
func (c *Callable) Name() string {
	return c.name
}

// Signatures returns the canonical signature map: the original
// (pre-expansion) signatures bound to the user implementations. The map is
// a copy; mutating it does not affect the callable.
func (c *Callable) Signatures() Signatures {
	out := make(Signatures, len(c.signatures))
	for k, v := range c.signatures {
		out[k] = v
	}
	return out
}

// SignatureKeys returns the canonical signature keys in match order.
func (c *Callable) SignatureKeys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Call dispatches on the runtime types of args: the specialized fast-path
// prefix first, the remaining defs in sorted order after it, conversion
// twins last. A structured CallError reports failure before any user
// implementation runs.
func (c *Callable) Call(args ...any) (any, error) {
	for _, d := range c.defs[:c.fastLen] {
		if len(args) != len(d.paramTests) {
			continue
		}
		switch len(args) {
		case 0:
			return d.invoke(args), nil
		case 1:
			if d.paramTests[0](args[0]) {
				return d.invoke(args), nil
			}
		case 2:
			if d.paramTests[0](args[0]) && d.paramTests[1](args[1]) {
				return d.invoke(args), nil
			}
		}
	}
	for _, d := range c.defs[c.fastLen:] {
		if d.test(args) {
			return d.invoke(args), nil
		}
	}
	return nil, buildCallError(c.name, args, c.defs, c.findType)
}

// Options configure one compilation.
type Options struct {
	// Name is the compiled callable's name.
	Name string
	// FastPathDefs caps the specialized prefix; zero means the
	// config default.
	FastPathDefs int
}

// Compile builds a callable from a signatures map against the registry's
// current state.
//
// Keys are parsed, normalized against the ignore set (silently discarding
// signatures left with an empty param) and sorted by specificity; the
// sorted set is augmented with conversion-expanded twins and assembled.
// Map iteration order is not deterministic, so keys are pre-sorted
// lexicographically: together with the stable specificity sort this makes
// def order, and therefore dispatch, deterministic.
func Compile(reg *registry.Registry, sigs Signatures, opts Options) (*Callable, error) {
	if len(sigs) == 0 {
		return nil, &NoSignaturesError{Name: opts.Name}
	}

	keys := make([]string, 0, len(sigs))
	for k := range sigs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ignore := reg.IgnoreSet()
	type bound struct {
		sig signature.Signature
		fn  Impl
	}
	var parsed []bound
	for _, key := range keys {
		sig, err := signature.Parse(key)
		if err != nil {
			return nil, err
		}
		norm, ok := signature.Normalize(sig, ignore)
		if !ok {
			continue
		}
		parsed = append(parsed, bound{sig: norm, fn: sigs[key]})
	}
	if len(parsed) == 0 {
		return nil, &NoSignaturesError{Name: opts.Name}
	}

	// Two keys may normalize to the same canonical signature. The same
	// implementation twice collapses to one def; different implementations
	// are a conflict.
	byCanonical := make(map[string]Impl, len(parsed))
	deduped := parsed[:0]
	for _, b := range parsed {
		canonical := b.sig.String()
		if prev, ok := byCanonical[canonical]; ok {
			if !sameImpl(prev, b.fn) {
				return nil, &DuplicateSignatureError{Signature: canonical}
			}
			continue
		}
		byCanonical[canonical] = b.fn
		deduped = append(deduped, b)
	}

	index := reg.TypeIndex()
	sort.SliceStable(deduped, func(i, j int) bool {
		return signature.Less(deduped[i].sig, deduped[j].sig, index)
	})

	defs := make([]*def, 0, len(deduped))
	for _, b := range deduped {
		test, paramTests, err := compileTest(reg, b.sig)
		if err != nil {
			return nil, err
		}
		d := &def{
			sig:        b.sig,
			test:       test,
			paramTests: paramTests,
			fn:         b.fn,
		}
		if b.sig.RestParam {
			d.preprocess = newPreprocess(len(b.sig.Params))
		}
		defs = append(defs, d)
	}

	defs, err := expandDefs(reg, defs)
	if err != nil {
		return nil, err
	}

	fastWidth := opts.FastPathDefs
	if fastWidth <= 0 {
		fastWidth = config.FastPathDefs
	}
	fastLen := 0
	for _, d := range defs {
		if fastLen == fastWidth || d.sig.RestParam || d.sig.Arity() > config.FastPathArity {
			break
		}
		fastLen++
	}

	c := &Callable{
		name:       opts.Name,
		defs:       defs,
		fastLen:    fastLen,
		signatures: make(Signatures, len(defs)),
		findType:   findTypeFunc(reg.TypesCopy()),
	}
	for _, d := range defs {
		if d.fromConversion {
			continue
		}
		key := d.sig.String()
		c.signatures[key] = d.fn
		c.keys = append(c.keys, key)
	}
	return c, nil
}

// sameImpl reports whether two implementations are the same function value.
func sameImpl(a, b Impl) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
