// Package sufsort is the suffix-array oracle the core FM-index build
// pipeline treats as an external, swappable dependency: given a
// byte sequence, produce a permutation of [0, n) that lexicographically
// orders its suffixes. Any correct implementation satisfies the core's
// contract; this one is a prefix-doubling sort; a DC3/SA-IS variant
// would be a drop-in replacement behind the same function signature.
package sufsort

import "sort"

// Build returns the suffix array of text: a permutation SA of [0, n)
// such that text[SA[i]:] is the i-th suffix in lexicographic order,
// where n = len(text). The caller is responsible for appending a
// terminator byte smaller than every other byte in text if one is
// required by the caller's convention (the core appends its sentinel
// before calling Build).
//
// Build runs in O(n log^2 n) time via repeated rank-doubling: after
// round k, rank[i] orders suffixes correctly among those that agree on
// their first 2^k bytes; the algorithm rounds terminate once ranks are
// already unique or the doubling step length reaches n.
func Build(text []byte) []int {
	n := len(text)
	sa := make([]int, n)
	rank := make([]int, n)
	tmp := make([]int, n)

	for i := 0; i < n; i++ {
		sa[i] = i
		rank[i] = int(text[i])
	}
	if n <= 1 {
		return sa
	}

	rankAt := func(i, k int) int {
		if i+k < n {
			return rank[i+k]
		}
		return -1
	}

	for k := 1; ; k *= 2 {
		sort.Slice(sa, func(a, b int) bool {
			ia, ib := sa[a], sa[b]
			if rank[ia] != rank[ib] {
				return rank[ia] < rank[ib]
			}
			return rankAt(ia, k) < rankAt(ib, k)
		})

		tmp[sa[0]] = 0
		unique := true
		for i := 1; i < n; i++ {
			prev, cur := sa[i-1], sa[i]
			same := rank[prev] == rank[cur] && rankAt(prev, k) == rankAt(cur, k)
			if same {
				tmp[cur] = tmp[prev]
				unique = false
			} else {
				tmp[cur] = tmp[prev] + 1
			}
		}
		copy(rank, tmp)

		if unique || k >= n {
			break
		}
	}
	return sa
}
