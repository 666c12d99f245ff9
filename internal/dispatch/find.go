package dispatch

import (
	"fmt"
	"strings"

	"github.com/funvibe/typed/internal/signature"
)

// Find returns the implementation bound to an exact signature on a compiled
// callable. The signature may be a string or a sequence of type names; it
// is normalized by trimming and joining only. No fuzzy or conversion-aware
// matching happens here.
func Find(fn any, sig any) (Impl, error) {
	c, ok := fn.(*Callable)
	if !ok || c == nil {
		return nil, &NotTypedError{Value: fn}
	}

	var text string
	switch s := sig.(type) {
	case string:
		text = s
	case []string:
		text = strings.Join(s, ",")
	default:
		return nil, &NotFoundError{Fn: c.name, Signature: fmt.Sprint(sig)}
	}

	parsed, err := signature.Parse(text)
	if err != nil {
		return nil, err
	}
	key := parsed.String()
	if impl, ok := c.signatures[key]; ok {
		return impl, nil
	}
	return nil, &NotFoundError{Fn: c.name, Signature: key}
}
