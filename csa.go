package fmindex

// SamplePeriod is the CSA sampling interval: SA[16*j] is stored for
// every j.
const SamplePeriod = 16

// CSA is a bit-packed, sampled suffix array: SA[16*j] is stored at
// b = ceil(log2 N) bits per sample, samples laid out contiguously
// (little-endian within each 64-bit word; a sample may straddle a word
// boundary).
type CSA struct {
	N      int      // length of the indexed text
	NBits  int       // bits per sample
	Words  []uint64  // packed sample words
}

// bitsNeeded returns the smallest b such that 2^b >= n.
func bitsNeeded(n int) int {
	b := 0
	for (uint64(1) << uint(b)) < uint64(n) {
		b++
	}
	return b
}

// buildCSA samples sa every SamplePeriod positions and bit-packs the
// samples in a bit-packed layout.
func buildCSA(sa []int) *CSA {
	n := len(sa)
	nbits := bitsNeeded(n)
	if nbits == 0 {
		nbits = 1 // degenerate n<=1: still needs a representable zero sample
	}
	nsamples := (n + SamplePeriod - 1) / SamplePeriod
	nwords := (nbits*nsamples + 63) / 64
	if nwords == 0 {
		nwords = 1
	}
	words := make([]uint64, nwords)
	mask := sampleMask(nbits)

	for j := 0; j < nsamples; j++ {
		v := uint64(sa[j*SamplePeriod]) & mask
		lo := nbits * j
		hi := lo + nbits - 1
		if lo/64 == hi/64 {
			words[lo/64] |= v << uint(lo%64)
		} else {
			words[lo/64] |= v << uint(lo%64)
			words[hi/64] |= v >> uint(64-lo%64)
		}
	}

	return &CSA{N: n, NBits: nbits, Words: words}
}

func sampleMask(nbits int) uint64 {
	if nbits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(nbits)) - 1
}

// Unpack returns sample j, the value SA[16*j].
func (s *CSA) Unpack(j int) uint64 {
	nbits := s.NBits
	mask := sampleMask(nbits)
	lo := nbits * j
	hi := lo + nbits - 1
	if lo/64 == hi/64 {
		return (s.Words[lo/64] >> uint(lo%64)) & mask
	}
	lowPart := s.Words[lo/64] >> uint(lo%64)
	highPart := s.Words[hi/64] << uint(64-lo%64)
	return (lowPart | highPart) & mask
}
