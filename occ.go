package fmindex

import "math/bits"

// occBlock is one 8-byte rank-support block: smpl is the cumulative
// count of a symbol strictly before this block, bits is a 32-bit
// bitmap with bit (31 - p%32) set iff the BWT holds the symbol at
// position p (sentinel position excluded). A block covers 32 BWT
// positions; the layout keeps both fields in one 64-bit word so a rank
// query costs a single cache-missing load.
type occBlock struct {
	smpl uint32
	bits uint32
}

// Occ is the rank-support structure over a BWT: one array of blocks
// per symbol (back to back, rows[c*NBlocks+k]) plus the prefix-sum
// vector C. Occ, like BWT, is immutable once built.
type Occ struct {
	N       int              // length of the indexed text
	NBlocks int              // ceil(N/32)
	C       [Sigma + 1]uint64 // C[c] = 1 + count of symbols < c in B
	rows    []occBlock        // Sigma*NBlocks entries
}

// buildOcc computes the Occ table and C vector for bwt in a single
// left-to-right pass over the BWT.
func buildOcc(bwt *BWT) *Occ {
	n := bwt.N
	nblocks := (n + 31) / 32
	rows := make([]occBlock, Sigma*nblocks)

	var cum [Sigma]uint32  // counts strictly before the current block
	var block [Sigma]uint32 // bitmap accumulated for the current block

	for p := 0; p < n; p++ {
		if p != bwt.Zero {
			c := bwt.at(p)
			block[c] |= 1 << uint(31-p%32)
		}
		if p%32 == 31 {
			k := p / 32
			for c := 0; c < Sigma; c++ {
				rows[c*nblocks+k] = occBlock{smpl: cum[c], bits: block[c]}
				cum[c] += uint32(bits.OnesCount32(block[c]))
				block[c] = 0
			}
		}
	}

	// Flush a trailing partial block that the loop above never reached
	// (n%32 == 0 means the last full block was already written).
	if n > 0 && n%32 != 0 {
		k := (n - 1) / 32
		for c := 0; c < Sigma; c++ {
			rows[c*nblocks+k] = occBlock{smpl: cum[c], bits: block[c]}
		}
	}

	var total [Sigma]uint32
	for c := 0; c < Sigma; c++ {
		total[c] = cum[c]
		if n%32 != 0 {
			total[c] += uint32(bits.OnesCount32(block[c]))
		}
	}

	var C [Sigma + 1]uint64
	C[0] = 1
	for c := 0; c < Sigma; c++ {
		C[c+1] = C[c] + uint64(total[c])
	}

	return &Occ{N: n, NBlocks: nblocks, C: C, rows: rows}
}

// rank returns C[c] plus the number of occurrences of symbol c in
// B[0..p], excluding the sentinel position. rank(c, -1) returns C[c],
// the convention used for "before the first symbol".
//
// popcount uses math/bits.OnesCount32, which the Go compiler lowers to
// the hardware POPCNT instruction on amd64/arm64 and falls back to a
// portable bit-trick implementation elsewhere, with no hand-rolled
// lookup table needed either way.
func (o *Occ) rank(c uint8, p int) uint64 {
	if p < 0 {
		return o.C[c]
	}
	k := p / 32
	blk := o.rows[int(c)*o.NBlocks+k]
	shift := uint(31 - p%32)
	return o.C[c] + uint64(blk.smpl) + uint64(bits.OnesCount32(blk.bits>>shift))
}
