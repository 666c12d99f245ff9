package signature

// Normalize strips ignored type names from every param and dedupes repeated
// names within a param, preserving declaration order. The second return is
// false when any param ends up empty: such a signature is silently
// discarded by the caller, as if it had never been provided.
func Normalize(sig Signature, ignore map[string]bool) (Signature, bool) {
	out := Signature{
		Params:    make([]Param, 0, len(sig.Params)),
		RestParam: sig.RestParam,
	}
	for _, p := range sig.Params {
		var types []string
		seen := make(map[string]bool, len(p.Types))
		for _, name := range p.Types {
			if ignore[name] || seen[name] {
				continue
			}
			seen[name] = true
			types = append(types, name)
		}
		if len(types) == 0 {
			return Signature{}, false
		}
		out.Params = append(out.Params, Param{Types: types})
	}
	return out, true
}
