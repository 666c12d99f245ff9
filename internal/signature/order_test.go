package signature

import (
	"strings"
	"testing"
)

// index for a registry [number, string, boolean] with the sentinels forced
// to the end the way registry.TypeIndex does it.
func testIndex() map[string]int {
	return map[string]int{
		"number":  0,
		"string":  1,
		"boolean": 2,
		"Object":  3,
		"any":     4,
	}
}

func mustParse(t *testing.T, s string) Signature {
	t.Helper()
	sig, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return sig
}

func TestSortSpecificity(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "specific before any",
			input: []string{"any", "number"},
			want:  []string{"number", "any"},
		},
		{
			name:  "registry order decides",
			input: []string{"boolean", "number", "string"},
			want:  []string{"number", "string", "boolean"},
		},
		{
			name:  "rest sorts last",
			input: []string{"...number", "any", "number"},
			want:  []string{"number", "any", "...number"},
		},
		{
			name:  "shorter first on tied prefix",
			input: []string{"number, string", "number"},
			want:  []string{"number", "number, string"},
		},
		{
			name:  "union ranked by its most specific member",
			input: []string{"string", "number|any"},
			want:  []string{"number|any", "string"},
		},
		{
			name:  "prefix decides before length",
			input: []string{"string", "number, string, boolean"},
			want:  []string{"number, string, boolean", "string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sigs := make([]Signature, len(tt.input))
			for i, s := range tt.input {
				sigs[i] = mustParse(t, s)
			}
			Sort(sigs, testIndex())

			got := make([]string, len(sigs))
			for i, sig := range sigs {
				got[i] = sig.String()
			}
			want := make([]string, len(tt.want))
			for i, s := range tt.want {
				want[i] = mustParse(t, s).String()
			}
			if strings.Join(got, ";") != strings.Join(want, ";") {
				t.Errorf("Sort(%v) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestSortIsStable(t *testing.T) {
	// "number|any" and "number" tie on the lowest-index compare and on
	// length; a stable sort keeps their declaration order.
	sigs := []Signature{mustParse(t, "number|any"), mustParse(t, "number")}
	Sort(sigs, testIndex())
	if sigs[0].String() != "number|any" || sigs[1].String() != "number" {
		t.Errorf("stable sort must keep declaration order for ties, got [%s, %s]",
			sigs[0], sigs[1])
	}
}
