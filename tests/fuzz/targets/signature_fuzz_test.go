package targets

import (
	"testing"

	"github.com/funvibe/typed/internal/signature"
)

// FuzzSignatureParser is the entry point for fuzzing the signature parser.
// Parsing must never panic, and parsing the canonical rendering of a parsed
// signature must be a fixed point.
func FuzzSignatureParser(f *testing.F) {
	// Add seed corpus
	f.Add("number")
	f.Add("number, string|boolean")
	f.Add("...any")
	f.Add("string, ...number")
	f.Add(" number | null , ... Array ")
	f.Add("")
	f.Add("...")
	f.Add("a,b,c,d,e,f")
	f.Add("||,|,")

	f.Fuzz(func(t *testing.T, input string) {
		sig, err := signature.Parse(input)
		if err != nil {
			// Rejected inputs are fine; panics are not.
			return
		}

		canonical := sig.String()
		again, err := signature.Parse(canonical)
		if err != nil {
			t.Fatalf("canonical form %q of %q does not re-parse: %v", canonical, input, err)
		}
		if again.String() != canonical {
			t.Errorf("canonical form is not a fixed point: %q -> %q", canonical, again.String())
		}
		if again.RestParam != sig.RestParam {
			t.Errorf("rest flag changed across round-trip for %q", input)
		}
	})
}
