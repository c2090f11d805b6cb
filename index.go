package fmindex

import (
	"fmt"

	"github.com/bioindex/fmindex/internal/fasta"
	"github.com/bioindex/fmindex/internal/sufsort"
)

// sentinelByte is the internal terminator appended to every indexed
// text. It is smaller than every DNA byte so it sorts first, and is
// never a value that can occur in a validated DNA text.
const sentinelByte = 0x00

// Options configures Build. The zero value builds no LUT; use
// DefaultOptions and override individual fields for the defaults.
type Options struct {
	// LUTDepth is K, the k-mer length the lookup table is built for.
	// LUTDepth <= 0 disables the LUT (backward search then always runs
	// the direct rank loop). Genome-scale texts benefit from a depth of
	// 10-13; DefaultOptions picks a much smaller depth suitable for
	// arbitrary text sizes so small texts don't pay for a LUT they
	// don't need.
	LUTDepth int

	// MaxLUTEntries caps 4^LUTDepth; Build silently drops the LUT
	// (falling back to the direct rank loop, not an error) rather than
	// build one that dwarfs the text it accelerates. Zero means no cap.
	MaxLUTEntries int
}

// DefaultOptions returns sane defaults: a small LUT depth that pays for
// itself on genome-scale input without ballooning memory on short
// texts used in tests.
func DefaultOptions() Options {
	return Options{
		LUTDepth:      4,
		MaxLUTEntries: 1 << 20, // 1M entries (16MiB of Range) is the practical cap
	}
}

// Index is the fully built, immutable FM-index: BWT + Occ + CSA, plus
// an optional k-mer LUT. All fields are read-only after Build returns
// and are safe to share across concurrently querying goroutines.
type Index struct {
	N    int // length of the original text, excluding the sentinel
	BWT  *BWT
	Occ  *Occ
	CSA  *CSA
	LUT  *LUT // nil if not built

	// StrandSplit is the forward-strand length when the index was built
	// over a forward+reverse-complement concatenation (BuildBidirectional);
	// zero for a single-strand index. Positions >= StrandSplit returned
	// by LocateAll fall on the reverse strand.
	StrandSplit int
}

// Build constructs an FM-index over text, a byte sequence that must be
// entirely {A,C,G,T} (the sentinel is appended internally; callers
// should not include one). Build runs the full pipeline in dependency
// order: suffix-array oracle, BWT, Occ, CSA, and finally the LUT.
func Build(text []byte, opts Options) (*Index, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: empty text", ErrMalformedText)
	}
	if badAt, ok := validateDNA(text); !ok {
		return nil, fmt.Errorf("%w: byte %q at offset %d", ErrMalformedText, text[badAt], badAt)
	}

	extended := make([]byte, len(text)+1)
	copy(extended, text)
	extended[len(text)] = sentinelByte

	sa := sufsort.Build(extended)
	bwt := buildBWT(extended, sa)
	occ := buildOcc(bwt)
	csa := buildCSA(sa)
	// sa is no longer needed once BWT and CSA are built; let
	// the garbage collector reclaim it rather than holding a reference.
	sa = nil

	ix := &Index{N: len(text), BWT: bwt, Occ: occ, CSA: csa}

	if opts.LUTDepth > 0 {
		size := 1 << uint(2*opts.LUTDepth)
		if opts.MaxLUTEntries == 0 || size <= opts.MaxLUTEntries {
			ix.LUT = buildLUT(occ, opts.LUTDepth)
		}
	}

	return ix, nil
}

// BuildBidirectional builds an index over fwd concatenated with its
// reverse complement, so queries can be matched against either strand
// without reversing and complementing each pattern by hand. Use
// LocateStrand to interpret positions returned by LocateAll/Locate.
func BuildBidirectional(fwd []byte, opts Options) (*Index, error) {
	combined, split := fasta.Bidirectional(fwd)
	ix, err := Build(combined, opts)
	if err != nil {
		return nil, err
	}
	ix.StrandSplit = split
	return ix, nil
}

// LocateStrand translates a raw text position (as returned by Locate or
// LocateAll on a bidirectional index) into a strand ('+' or '-') and a
// position relative to that strand's 5' end.
func (ix *Index) LocateStrand(pos int) (strand byte, localPos int) {
	if ix.StrandSplit == 0 || pos < ix.StrandSplit {
		return '+', pos
	}
	return '-', pos - ix.StrandSplit
}
