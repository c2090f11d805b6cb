package fmindex

import (
	"errors"
	"sort"
	"testing"
)

func TestBuildRejectsEmptyText(t *testing.T) {
	if _, err := Build(nil, DefaultOptions()); !errors.Is(err, ErrMalformedText) {
		t.Fatalf("err = %v, want ErrMalformedText", err)
	}
}

func TestBuildRejectsNonDNAByte(t *testing.T) {
	if _, err := Build([]byte("GATTNACA"), DefaultOptions()); !errors.Is(err, ErrMalformedText) {
		t.Fatalf("err = %v, want ErrMalformedText", err)
	}
}

func TestBuildLowercaseRejected(t *testing.T) {
	// Lowercase is a FASTA-layer concern (internal/fasta.Normalize);
	// the core is strict.
	if _, err := Build([]byte("gattaca"), DefaultOptions()); err == nil {
		t.Fatal("expected error for lowercase input")
	}
}

func TestBuildBidirectionalAndLocateStrand(t *testing.T) {
	fwd := []byte("GATTACA")
	ix, err := BuildBidirectional(fwd, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildBidirectional: %v", err)
	}
	if ix.StrandSplit != len(fwd) {
		t.Fatalf("StrandSplit = %d, want %d", ix.StrandSplit, len(fwd))
	}

	// "GATTACA" occurs once on the forward strand at position 0.
	locs, err := ix.LocateAll(fwd)
	if err != nil {
		t.Fatalf("LocateAll: %v", err)
	}
	foundForward := false
	for _, p := range locs {
		strand, local := ix.LocateStrand(p)
		if strand == '+' && local == 0 {
			foundForward = true
		}
	}
	if !foundForward {
		t.Fatalf("expected a forward-strand hit at local position 0, got %v", locs)
	}

	// The reverse complement of "GATTACA" is "TGTAATC"; it must appear
	// on the '-' strand at local position 0.
	rcLocs, err := ix.LocateAll([]byte("TGTAATC"))
	if err != nil {
		t.Fatalf("LocateAll(revcomp): %v", err)
	}
	sort.Ints(rcLocs)
	foundReverse := false
	for _, p := range rcLocs {
		strand, local := ix.LocateStrand(p)
		if strand == '-' && local == 0 {
			foundReverse = true
		}
	}
	if !foundReverse {
		t.Fatalf("expected a reverse-strand hit at local position 0, got %v", rcLocs)
	}
}

func TestLocateOutOfRange(t *testing.T) {
	ix, err := Build([]byte("GATTACA"), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := ix.Locate(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Locate(-1) err = %v, want ErrInvalidArgument", err)
	}
	if _, err := ix.Locate(ix.BWT.N); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Locate(N) err = %v, want ErrInvalidArgument", err)
	}
	// The largest valid row (full range's Top) must succeed.
	if _, err := ix.Locate(ix.BWT.N - 1); err != nil {
		t.Fatalf("Locate(N-1): %v", err)
	}
}
