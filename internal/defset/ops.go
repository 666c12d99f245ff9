package defset

import (
	"fmt"
	"strings"

	"github.com/funvibe/typed/pkg/typed"
)

// UnknownOpError indicates a definition file referenced an operation the op
// table does not provide.
type UnknownOpError struct {
	Name string
}

func (e *UnknownOpError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func formatNumber(v float64) any {
	if v == float64(int(v)) {
		return int(v)
	}
	return v
}

// ops is the table of named implementations a definition file can bind
// signatures to. Every op assumes the argument shapes its signatures in
// the definition file promise; dispatch guarantees them at call time.
var ops = map[string]typed.Impl{
	"identity": func(args ...any) any { return args[0] },
	"add": func(args ...any) any {
		return formatNumber(toFloat(args[0]) + toFloat(args[1]))
	},
	"sub": func(args ...any) any {
		return formatNumber(toFloat(args[0]) - toFloat(args[1]))
	},
	"mul": func(args ...any) any {
		return formatNumber(toFloat(args[0]) * toFloat(args[1]))
	},
	"negate": func(args ...any) any {
		return formatNumber(-toFloat(args[0]))
	},
	"concat": func(args ...any) any {
		return args[0].(string) + args[1].(string)
	},
	"upper": func(args ...any) any {
		return strings.ToUpper(args[0].(string))
	},
	"lower": func(args ...any) any {
		return strings.ToLower(args[0].(string))
	},
	"length": func(args ...any) any {
		switch v := args[0].(type) {
		case string:
			return len(v)
		case []any:
			return len(v)
		}
		return 0
	},
	"sum": func(args ...any) any {
		total := 0.0
		for _, x := range args[0].([]any) {
			total += toFloat(x)
		}
		return formatNumber(total)
	},
	"join": func(args ...any) any {
		parts := make([]string, 0, len(args[1].([]any)))
		for _, p := range args[1].([]any) {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, args[0].(string))
	},
	"not": func(args ...any) any {
		return !args[0].(bool)
	},
}

// converters is the table of named conversion functions.
var converters = map[string]func(v any) any{
	"boolToNumber": func(v any) any {
		if v.(bool) {
			return 1
		}
		return 0
	},
	"numberToString": func(v any) any {
		return fmt.Sprint(v)
	},
	"numberToBoolean": func(v any) any {
		return toFloat(v) != 0
	},
	"stringToArray": func(v any) any {
		s := v.(string)
		out := make([]any, 0, len(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		return out
	},
}

// LookupOp resolves a named implementation.
func LookupOp(name string) (typed.Impl, error) {
	if op, ok := ops[name]; ok {
		return op, nil
	}
	return nil, &UnknownOpError{Name: name}
}

// LookupConverter resolves a named conversion function.
func LookupConverter(name string) (func(v any) any, error) {
	if c, ok := converters[name]; ok {
		return c, nil
	}
	return nil, &UnknownOpError{Name: name}
}

// OpNames lists the available operation names.
func OpNames() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	return names
}
