package dispatch

import (
	"github.com/funvibe/typed/internal/config"
	"github.com/funvibe/typed/internal/registry"
	"github.com/funvibe/typed/internal/signature"
)

// compileParamTest builds the predicate for one param: the disjunction of
// its type predicates. A param containing any accepts unconditionally.
// Unknown type names surface here, at compile time.
func compileParamTest(reg *registry.Registry, p signature.Param) (func(v any) bool, error) {
	acceptAll := false
	tests := make([]func(v any) bool, 0, len(p.Types))
	for _, name := range p.Types {
		if name == config.AnyTypeName {
			acceptAll = true
			continue
		}
		test, err := reg.FindTest(name)
		if err != nil {
			return nil, err
		}
		tests = append(tests, test)
	}
	if acceptAll {
		return func(v any) bool { return true }, nil
	}
	if len(tests) == 1 {
		return tests[0], nil
	}
	return func(v any) bool {
		for _, test := range tests {
			if test(v) {
				return true
			}
		}
		return false
	}, nil
}

// compileTest builds the full argument-list predicate for a signature and
// returns the per-param predicates alongside it for fast-path reuse.
func compileTest(reg *registry.Registry, sig signature.Signature) (func(args []any) bool, []func(v any) bool, error) {
	paramTests := make([]func(v any) bool, len(sig.Params))
	for i, p := range sig.Params {
		test, err := compileParamTest(reg, p)
		if err != nil {
			return nil, nil, err
		}
		paramTests[i] = test
	}

	n := len(sig.Params)
	if !sig.RestParam {
		return func(args []any) bool {
			if len(args) != n {
				return false
			}
			for i, test := range paramTests {
				if !test(args[i]) {
					return false
				}
			}
			return true
		}, paramTests, nil
	}

	minArgs := sig.MinArgs()
	last := paramTests[n-1]
	return func(args []any) bool {
		if len(args) < minArgs {
			return false
		}
		for i := 0; i < n-1; i++ {
			if !paramTests[i](args[i]) {
				return false
			}
		}
		for j := n - 1; j < len(args); j++ {
			if !last(args[j]) {
				return false
			}
		}
		return true
	}, paramTests, nil
}
