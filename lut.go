package fmindex

// LUT precomputes SA intervals for every k-mer of a fixed depth K,
// letting backward search skip the last K rank steps.
// LUT.Intervals is indexed by the 4-ary encoding of the
// k-mer (A=0,C=1,G=2,T=3, most significant digit is the k-mer's first
// symbol).
type LUT struct {
	K         int
	Intervals []Range
}

// buildLUT performs a depth-K DFS over the alphabet: starting
// from every row [0, n-1] at depth 0 (the same start BackwardSearch
// steps from), each step narrows the interval by one backward-search
// rank step per symbol.
func buildLUT(occ *Occ, k int) *LUT {
	size := 1 << uint(2*k)
	intervals := make([]Range, size)
	full := Range{Bot: 0, Top: int(occ.C[Sigma]) - 1}

	// Depth d of the DFS chooses the k-mer symbol at window offset
	// k-1-d (backward search consumes the window's last symbol first),
	// so it contributes digit value c*4^d to match encodeKmer's
	// first-symbol-is-most-significant-digit convention.
	var dfs func(id, depth int, rng Range)
	dfs = func(id, depth int, rng Range) {
		if depth == k {
			intervals[id] = rng
			return
		}
		for c := uint8(0); c < Sigma; c++ {
			dfs(id|(int(c)<<uint(2*depth)), depth+1, stepRange(occ, rng, c))
		}
	}
	dfs(0, 0, full)

	return &LUT{K: k, Intervals: intervals}
}

// stepRange applies one backward-search step for symbol c to rng.
func stepRange(occ *Occ, rng Range, c uint8) Range {
	bot := occ.rank(c, rng.Bot-1)
	top := occ.rank(c, rng.Top) - 1
	return Range{Bot: int(bot), Top: int(top)}
}

// encodeKmer returns the 4-ary id of the last k symbols of pattern
// (pattern[len(pattern)-k:]), most significant digit first.
func encodeKmer(pattern []byte, k int) (id int, ok bool) {
	start := len(pattern) - k
	for i := 0; i < k; i++ {
		code, valid := encodeSymbol(pattern[start+i])
		if !valid {
			return 0, false
		}
		id = (id << 2) | int(code)
	}
	return id, true
}
