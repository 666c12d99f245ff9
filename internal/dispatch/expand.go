package dispatch

import (
	"github.com/funvibe/typed/internal/registry"
	"github.com/funvibe/typed/internal/signature"
)

// conversionCandidates selects, per param, the conversions a def can absorb:
// a conversion applies to param i when its target is accepted there, its
// source is not already accepted, and no earlier conversion claimed the same
// source for that param (first-win per source, in registry insertion order).
func conversionCandidates(reg *registry.Registry, sig signature.Signature) ([][]registry.Conversion, bool) {
	out := make([][]registry.Conversion, len(sig.Params))
	found := false
	for i, p := range sig.Params {
		seenFrom := make(map[string]bool)
		for _, c := range reg.Conversions() {
			if !p.Has(c.To) || p.Has(c.From) || seenFrom[c.From] {
				continue
			}
			seenFrom[c.From] = true
			out[i] = append(out[i], c)
			found = true
		}
	}
	return out, found
}

// widenSignature appends each candidate's source type to its param, keeping
// the original types first so canonical ordering inside a param is stable.
func widenSignature(sig signature.Signature, candidates [][]registry.Conversion) signature.Signature {
	out := signature.Signature{
		Params:    make([]signature.Param, len(sig.Params)),
		RestParam: sig.RestParam,
	}
	for i, p := range sig.Params {
		types := make([]string, 0, len(p.Types)+len(candidates[i]))
		types = append(types, p.Types...)
		for _, c := range candidates[i] {
			types = append(types, c.From)
		}
		out.Params[i] = signature.Param{Types: types}
	}
	return out
}

// compileConvert builds the argument transformer for a conversion-expanded
// def. Each position tries its candidates in declared order and substitutes
// the first whose source predicate matches; an argument already acceptable
// to the original param passes through untouched. Trailing rest arguments
// reuse the last position's candidates.
func compileConvert(reg *registry.Registry, candidates [][]registry.Conversion) (func(args []any) []any, error) {
	type converter struct {
		test    func(v any) bool
		convert func(v any) any
	}
	byPos := make([][]converter, len(candidates))
	for i, convs := range candidates {
		for _, c := range convs {
			test, err := reg.FindTest(c.From)
			if err != nil {
				return nil, err
			}
			byPos[i] = append(byPos[i], converter{test: test, convert: c.Convert})
		}
	}

	n := len(byPos)
	return func(args []any) []any {
		out := make([]any, len(args))
		copy(out, args)
		for i, arg := range args {
			pos := i
			if pos >= n {
				pos = n - 1
			}
			for _, c := range byPos[pos] {
				if c.test(arg) {
					out[i] = c.convert(arg)
					break
				}
			}
		}
		return out
	}, nil
}

// expandDefs derives a conversion-aware twin for every def with at least one
// candidate conversion. Twins append after the whole original block, so an
// exact match always beats a converted one and the relative order of twins
// mirrors the order of their originals.
func expandDefs(reg *registry.Registry, defs []*def) ([]*def, error) {
	expanded := make([]*def, 0, len(defs))
	for _, d := range defs {
		candidates, found := conversionCandidates(reg, d.sig)
		if !found {
			continue
		}
		wide := widenSignature(d.sig, candidates)
		test, paramTests, err := compileTest(reg, wide)
		if err != nil {
			return nil, err
		}
		convert, err := compileConvert(reg, candidates)
		if err != nil {
			return nil, err
		}
		twin := &def{
			sig:            wide,
			test:           test,
			paramTests:     paramTests,
			fn:             d.fn,
			convert:        convert,
			fromConversion: true,
		}
		if wide.RestParam {
			twin.preprocess = newPreprocess(len(wide.Params))
		}
		expanded = append(expanded, twin)
	}
	return append(defs, expanded...), nil
}
