package signature

import "sort"

// lowestIndex returns the most specific (lowest) registry index among the
// param's types. Names missing from the index sort after everything known;
// the compile step reports them as unknown types later.
func lowestIndex(p Param, index map[string]int) int {
	lowest := len(index) + 2
	for _, name := range p.Types {
		if i, ok := index[name]; ok && i < lowest {
			lowest = i
		}
	}
	return lowest
}

// Less implements the specificity order over signatures:
//
//  1. non-rest signatures sort before rest signatures,
//  2. over the common prefix, the param with the lower (more specific)
//     type index wins,
//  3. a tied prefix puts the shorter signature first.
func Less(a, b Signature, index map[string]int) bool {
	if a.RestParam != b.RestParam {
		return !a.RestParam
	}
	n := len(a.Params)
	if len(b.Params) < n {
		n = len(b.Params)
	}
	for i := 0; i < n; i++ {
		ai := lowestIndex(a.Params[i], index)
		bi := lowestIndex(b.Params[i], index)
		if ai != bi {
			return ai < bi
		}
	}
	return len(a.Params) < len(b.Params)
}

// Sort orders signatures by specificity, in place. The sort is stable so
// that signatures the order cannot distinguish keep their declaration
// order, which makes dispatch deterministic.
func Sort(sigs []Signature, index map[string]int) {
	sort.SliceStable(sigs, func(i, j int) bool {
		return Less(sigs[i], sigs[j], index)
	})
}
