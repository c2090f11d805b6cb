package fmindex

// Range is *inclusive* on both ends: [Bot, Top]. An interval with
// Top < Bot is empty (canonically Range{0, -1}).
type Range struct {
	Bot int
	Top int
}

// Empty reports whether r represents no matches.
func (r Range) Empty() bool { return r.Top < r.Bot }

// Size returns the number of SA rows in r, or 0 if r is empty.
func (r Range) Size() int {
	if r.Empty() {
		return 0
	}
	return r.Top - r.Bot + 1
}

// MaxPatternLength bounds query length to guard against pathological
// input; an absurdly long query is a malformed-input condition, not
// something worth searching for.
const MaxPatternLength = 1 << 16

// BackwardSearch computes the SA interval matching pattern. Search
// proceeds right to left; when the LUT is present and the
// pattern is at least K symbols long, the LUT supplies the initial
// interval for the last K symbols and the loop only walks the
// remaining prefix.
func (ix *Index) BackwardSearch(pattern []byte) (Range, error) {
	if len(pattern) > MaxPatternLength {
		return Range{}, ErrQueryTooLong
	}
	if _, ok := validateDNA(pattern); !ok {
		return Range{}, ErrMalformedQuery
	}

	m := len(pattern)
	n := int(ix.Occ.C[Sigma])
	if m == 0 {
		// The empty pattern matches every row but the sentinel's.
		return Range{Bot: 1, Top: n - 1}, nil
	}
	// Rank stepping starts from every row, [0, n-1]: row 0 (the
	// sentinel's suffix) matches nothing itself, but its BWT symbol B[0]
	// is the text's last byte and must be counted by the first step.
	rng := Range{Bot: 0, Top: n - 1}
	start := m - 1

	if ix.LUT != nil && m >= ix.LUT.K && ix.LUT.K > 0 {
		id, ok := encodeKmer(pattern, ix.LUT.K)
		if ok {
			rng = ix.LUT.Intervals[id]
			start = m - ix.LUT.K - 1
			if rng.Empty() {
				return Range{0, -1}, nil
			}
		}
	}

	for i := start; i >= 0; i-- {
		c, _ := encodeSymbol(pattern[i]) // already validated above
		rng = stepRange(ix.Occ, rng, c)
		if rng.Empty() {
			return Range{0, -1}, nil
		}
	}
	return rng, nil
}

// Count returns the number of occurrences of pattern in the indexed
// text. An empty pattern matches the full text (every row but the
// sentinel's).
func (ix *Index) Count(pattern []byte) (int, error) {
	rng, err := ix.BackwardSearch(pattern)
	if err != nil {
		return 0, err
	}
	return rng.Size(), nil
}

// Locate returns SA[i], the text position of SA row i, by walking the
// LF-mapping until a sampled position in the CSA is reached. The walk
// is iterative, not recursive, and allocates nothing per step.
func (ix *Index) Locate(i int) (int, error) {
	if i < 0 || i >= ix.BWT.N {
		return 0, ErrInvalidArgument
	}
	steps := 0
	for {
		if i == ix.BWT.Zero {
			return steps, nil
		}
		if i%SamplePeriod == 0 {
			return int(ix.CSA.Unpack(i/SamplePeriod)) + steps, nil
		}
		c := ix.BWT.at(i)
		i = int(ix.Occ.rank(c, i)) - 1
		steps++
	}
}

// LocateAll computes the SA interval for pattern and returns every
// matching text position, emitted in ascending SA-index order across
// the whole matching range.
func (ix *Index) LocateAll(pattern []byte) ([]int, error) {
	rng, err := ix.BackwardSearch(pattern)
	if err != nil {
		return nil, err
	}
	if rng.Empty() {
		return nil, nil
	}
	out := make([]int, 0, rng.Size())
	for i := rng.Bot; i <= rng.Top; i++ {
		pos, err := ix.Locate(i)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}
