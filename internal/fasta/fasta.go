// Package fasta is a thin, out-of-core collaborator: it turns raw
// FASTA records into the normalized byte sequence the core FM-index
// consumes (uppercase, {A,C,G,T} only,
// ambiguity codes resolved by cycling A/C/G/T), and builds the reverse
// complement needed for bidirectional search. No example in the
// retrieved pack parses FASTA directly, so this package is built
// directly on bufio/strings rather than grounded on a specific
// example; see DESIGN.md.
package fasta

import (
	"bufio"
	"io"
	"strings"
)

// revcompTable maps a DNA byte to its complement; built the way
// original_source/index.h's REVCOMP table is laid out (0 for anything
// that isn't A/C/G/T, which callers should never pass in).
var revcompTable = buildRevcompTable()

func buildRevcompTable() [256]byte {
	var t [256]byte
	t['A'], t['T'] = 'T', 'A'
	t['C'], t['G'] = 'G', 'C'
	return t
}

// cycle is the deterministic ambiguity-code replacement: a
// conventional way to resolve IUPAC ambiguity codes is cycling
// through A/C/G/T.
var cycle = [4]byte{'A', 'C', 'G', 'T'}

// Read parses a FASTA stream and returns the normalized, concatenated
// sequence across every record in the file (headers are discarded;
// multiple records are joined directly, matching a whole-genome FASTA
// convention). The returned bytes are uppercase and restricted to
// {A,C,G,T}; ambiguity codes are resolved in place.
func Read(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)

	var seq []byte
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, ">") || strings.HasPrefix(line, ";") {
			continue
		}
		seq = append(seq, line...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	Normalize(seq)
	return seq, nil
}

// Normalize uppercases seq in place and replaces every byte outside
// {A,C,G,T} with a deterministic cycling replacement, so the same
// input always normalizes to the same output.
func Normalize(seq []byte) {
	cyclePos := 0
	for i, b := range seq {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		switch b {
		case 'A', 'C', 'G', 'T':
			seq[i] = b
		default:
			seq[i] = cycle[cyclePos%4]
			cyclePos++
		}
	}
}

// ReverseComplement returns the reverse complement of a normalized
// {A,C,G,T} sequence.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	n := len(seq)
	for i, b := range seq {
		out[n-1-i] = revcompTable[b]
	}
	return out
}

// Bidirectional concatenates seq and its reverse complement into a
// single normalized sequence for bidirectional-strand search. There
// is no embedded separator: the core
// indexes the result as one text with a single trailing sentinel, per
// the core's fixed four-symbol alphabet (see DESIGN.md). The returned
// split point is len(seq): positions >= split fall on the reverse
// strand.
func Bidirectional(seq []byte) (combined []byte, split int) {
	rc := ReverseComplement(seq)
	combined = make([]byte, 0, len(seq)+len(rc))
	combined = append(combined, seq...)
	combined = append(combined, rc...)
	return combined, len(seq)
}
