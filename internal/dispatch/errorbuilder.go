package dispatch

import (
	"github.com/funvibe/typed/internal/config"
	"github.com/funvibe/typed/internal/registry"
	"github.com/funvibe/typed/internal/signature"
)

// findTypeFunc classifies values against a registry snapshot taken at
// compile time. Values no predicate claims report as "unknown".
func findTypeFunc(types []registry.Type) func(v any) string {
	return func(v any) string {
		for _, t := range types {
			if t.Test(v) {
				return t.Name
			}
		}
		return config.UnknownTypeName
	}
}

// expectedAt returns the param a def expects at argument position i: the
// declared param when i is within arity, the rest param for trailing
// positions of a rest signature, nothing otherwise.
func expectedAt(sig signature.Signature, i int) (signature.Param, bool) {
	if i < len(sig.Params) {
		return sig.Params[i], true
	}
	if sig.RestParam {
		return sig.Params[len(sig.Params)-1], true
	}
	return signature.Param{}, false
}

// paramAccepts reports whether a param admits the named actual type.
func paramAccepts(p signature.Param, actual string) bool {
	return p.Has(actual) || p.Has(config.AnyTypeName)
}

// buildCallError classifies why no def matched a call. It narrows the def
// set one argument position at a time: the position where the candidates
// die on type yields wrongType; dying on arity yields tooManyArgs; a fully
// narrowed set with missing arguments yields tooFewArgs; anything else is
// the interior-inconsistency fallback, mismatch.
func buildCallError(name string, args []any, defs []*def, findType func(v any) string) *CallError {
	actualTypes := make([]string, len(args))
	for i, arg := range args {
		actualTypes[i] = findType(arg)
	}

	candidates := defs
	for i := range args {
		var matching []*def
		var expected []string
		seen := make(map[string]bool)
		hasParamAt := false
		for _, d := range candidates {
			p, ok := expectedAt(d.sig, i)
			if !ok {
				continue
			}
			hasParamAt = true
			for _, t := range p.Types {
				if !seen[t] {
					seen[t] = true
					expected = append(expected, t)
				}
			}
			if paramAccepts(p, actualTypes[i]) {
				matching = append(matching, d)
			}
		}
		if len(matching) == 0 {
			if hasParamAt {
				return &CallError{
					Category:      CategoryWrongType,
					Fn:            name,
					Index:         i,
					ActualType:    actualTypes[i],
					ExpectedTypes: expected,
				}
			}
			return &CallError{
				Category:       CategoryTooManyArgs,
				Fn:             name,
				ActualLength:   len(args),
				ExpectedLength: maxArity(candidates),
			}
		}
		candidates = matching
	}

	// Every argument narrowed successfully; the surviving defs must want
	// more arguments than were given, otherwise this is the interior
	// mismatch fallback.
	if minArgs(candidates) > len(args) {
		var expected []string
		seen := make(map[string]bool)
		for _, d := range candidates {
			if p, ok := expectedAt(d.sig, len(args)); ok {
				for _, t := range p.Types {
					if !seen[t] {
						seen[t] = true
						expected = append(expected, t)
					}
				}
			}
		}
		return &CallError{
			Category:      CategoryTooFewArgs,
			Fn:            name,
			Index:         len(args),
			ExpectedTypes: expected,
		}
	}
	return &CallError{
		Category:    CategoryMismatch,
		Fn:          name,
		ActualTypes: actualTypes,
	}
}

// minArgs is the smallest argument count any candidate accepts.
func minArgs(defs []*def) int {
	lowest := -1
	for _, d := range defs {
		if n := d.sig.MinArgs(); lowest < 0 || n < lowest {
			lowest = n
		}
	}
	if lowest < 0 {
		return 0
	}
	return lowest
}

// maxArity is the largest non-rest arity among the candidates.
func maxArity(defs []*def) int {
	highest := 0
	for _, d := range defs {
		if d.sig.RestParam {
			continue
		}
		if n := d.sig.Arity(); n > highest {
			highest = n
		}
	}
	return highest
}
