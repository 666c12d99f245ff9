package signature

import (
	"fmt"
	"strings"

	"github.com/funvibe/typed/internal/config"
)

// SyntaxError indicates a malformed signature string.
type SyntaxError struct {
	Signature string
	Reason    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in signature %q: %s", e.Signature, e.Reason)
}

const restPrefix = "..."

// Parse turns a textual signature like "number, string|boolean, ...any"
// into its structured form. The empty (or blank) string is the zero-arity
// signature. Whitespace around commas and pipes is insignificant.
//
// A "..." prefix marks the last param as rest; on any other param it is a
// syntax error. A bare "..." defaults its type to any.
func Parse(s string) (Signature, error) {
	if strings.TrimSpace(s) == "" {
		return Signature{}, nil
	}

	tokens := strings.Split(s, ",")
	sig := Signature{Params: make([]Param, 0, len(tokens))}
	for i, token := range tokens {
		token = strings.TrimSpace(token)
		if strings.HasPrefix(token, restPrefix) {
			if i != len(tokens)-1 {
				return Signature{}, &SyntaxError{
					Signature: s,
					Reason:    "rest parameter must be the last parameter",
				}
			}
			sig.RestParam = true
			token = strings.TrimSpace(strings.TrimPrefix(token, restPrefix))
		}

		var types []string
		for _, name := range strings.Split(token, "|") {
			name = strings.TrimSpace(name)
			if name != "" {
				types = append(types, name)
			}
		}
		if len(types) == 0 && sig.RestParam && i == len(tokens)-1 {
			types = []string{config.AnyTypeName}
		}
		sig.Params = append(sig.Params, Param{Types: types})
	}
	return sig, nil
}
