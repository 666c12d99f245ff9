package signature

import "strings"

// Param is one position of a signature: the set of type names the position
// accepts, in declaration order. The engine never reorders a param's types;
// canonical stringification preserves them as written (post-normalization).
type Param struct {
	Types []string
}

// Has reports whether the param accepts the named type.
func (p Param) Has(name string) bool {
	for _, t := range p.Types {
		if t == name {
			return true
		}
	}
	return false
}

// String renders the param in canonical form.
func (p Param) String() string {
	return strings.Join(p.Types, "|")
}

// Signature is the declared input shape of one overload. If RestParam is
// set the last param applies to every trailing argument.
type Signature struct {
	Params    []Param
	RestParam bool
}

// Arity returns the number of declared params.
func (s Signature) Arity() int {
	return len(s.Params)
}

// MinArgs returns the smallest argument count the signature can match.
// A lone rest param matches the empty argument list; a rest param behind
// leading params requires at least one trailing argument.
func (s Signature) MinArgs() int {
	if !s.RestParam {
		return len(s.Params)
	}
	if len(s.Params) == 1 {
		return 0
	}
	return len(s.Params)
}

// String renders the canonical form used as the key in a callable's
// signatures map: params joined by commas, a rest param prefixed by "...".
func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	if s.RestParam && len(parts) > 0 {
		parts[len(parts)-1] = "..." + parts[len(parts)-1]
	}
	return strings.Join(parts, ",")
}

// Equal reports structural equality of two signatures.
func (s Signature) Equal(other Signature) bool {
	if s.RestParam != other.RestParam || len(s.Params) != len(other.Params) {
		return false
	}
	for i := range s.Params {
		if len(s.Params[i].Types) != len(other.Params[i].Types) {
			return false
		}
		for j := range s.Params[i].Types {
			if s.Params[i].Types[j] != other.Params[i].Types[j] {
				return false
			}
		}
	}
	return true
}
