// Package fmindex implements an FM-index over DNA sequences: a
// self-contained, compressed full-text index that supports exact
// substring counting and locating in time proportional to query length
// and independent of genome size.
//
// # Overview
//
// The index is built once from a normalized text over the alphabet
// {A,C,G,T} (plus an implicit terminator) and is immutable afterward.
// Construction runs a suffix-array oracle (internal/sufsort), derives
// the Burrows-Wheeler transform, builds a rank-support table (Occ) with
// sampled counts and 32-bit bitmap blocks, a bit-packed sampled suffix
// array (CSA), and an optional k-mer lookup table that short-circuits
// the tail of backward search.
//
// # When to Use an FM-index
//
// FM-indexes excel at:
//   - Exact substring search against a large, static genome
//   - Workloads that query far more often than they rebuild
//   - Memory-constrained environments (the index is ~1.25 bytes/symbol
//     plus the CSA and LUT, versus 1 byte/symbol for the raw text)
//
// # When NOT to Use an FM-index
//
// An FM-index is not suitable for:
//   - Approximate or mismatch-tolerant search (use seed-and-extend aligners)
//   - Texts that mutate after indexing (rebuild is the only update path)
//   - Alphabets larger than 4 symbols
//
// # Basic Usage
//
//	idx, err := fmindex.Build([]byte("GATGCGAGACTCGAGATG"), fmindex.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n, _ := idx.Count([]byte("GAGA"))       // 2
//	pos, _ := idx.LocateAll([]byte("GAGA")) // []int{5, 12} (order not guaranteed)
//
//	// Persist and reload.
//	if err := idx.Save("genome"); err != nil {
//	    log.Fatal(err)
//	}
//	idx2, err := fmindex.Load("genome", fmindex.LoadOptions{LUTDepth: 4})
//
// # Performance Characteristics
//
// Build: O(n log^2 n) dominated by the suffix-array oracle.
// Query: O(m) backward-search steps for a pattern of length m (fewer
// when the k-mer LUT short-circuits the tail), plus an expected <16-step
// LF walk per located position.
package fmindex
