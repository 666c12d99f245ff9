package dispatch

import (
	"github.com/funvibe/typed/internal/signature"
)

// Impl is the uniform shape of a user implementation. Arguments arrive
// exactly as passed to the callable, except that a rest signature gathers
// the trailing arguments into a single []any argument.
type Impl func(args ...any) any

// Signatures maps textual signatures to their implementations. It is the
// input of the dispatch compiler and, in canonical form, the metadata a
// compiled callable exposes.
type Signatures map[string]Impl

// def is one compiled overload: the normalized signature, its argument-list
// predicate, the per-param predicates the fast path specializes on, the
// implementation and the optional conversion and rest-gathering steps.
//
// Defs synthesized by the conversion expander carry fromConversion and are
// excluded from the callable's public signatures map.
type def struct {
	sig            signature.Signature
	test           func(args []any) bool
	paramTests     []func(v any) bool
	fn             Impl
	convert        func(args []any) []any
	preprocess     func(args []any) []any
	fromConversion bool
}

// newPreprocess builds the rest gatherer for a signature of n params: the
// trailing arguments collapse into a single []any in the last position.
func newPreprocess(n int) func(args []any) []any {
	return func(args []any) []any {
		out := make([]any, 0, n)
		out = append(out, args[:n-1]...)
		rest := make([]any, len(args)-(n-1))
		copy(rest, args[n-1:])
		return append(out, rest)
	}
}

// invoke runs one def against an argument list that already passed its test.
func (d *def) invoke(args []any) any {
	if d.convert != nil {
		args = d.convert(args)
	}
	if d.preprocess != nil {
		args = d.preprocess(args)
	}
	return d.fn(args...)
}
