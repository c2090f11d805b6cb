package fmindex

import (
	"testing"

	"github.com/bioindex/fmindex/internal/sufsort"
)

// TestBuildBWTKnownExample checks buildBWT against a hand-verified
// result for "GATTACA$": SA = [7,6,4,1,5,0,3,2], so BWT = A C T G A . T A
// with the sentinel row (SA[i]==0) at i=5.
func TestBuildBWTKnownExample(t *testing.T) {
	text := []byte("GATTACA\x00")
	sa := sufsort.Build(text)

	wantSA := []int{7, 6, 4, 1, 5, 0, 3, 2}
	for i, v := range wantSA {
		if sa[i] != v {
			t.Fatalf("sa[%d] = %d, want %d (full sa=%v)", i, sa[i], v, sa)
		}
	}

	bwt := buildBWT(text, sa)
	if bwt.Zero != 5 {
		t.Fatalf("Zero = %d, want 5", bwt.Zero)
	}
	want := []byte{'A', 'C', 'T', 'G', 'A', 0, 'T', 'A'}
	for i, w := range want {
		if i == bwt.Zero {
			continue
		}
		got := decodeSymbol(bwt.at(i))
		if got != w {
			t.Fatalf("bwt[%d] = %q, want %q", i, got, w)
		}
	}
}

// TestBuildBWTSymbolCounts checks that decoding every non-sentinel BWT
// position reproduces the same multiset of symbols as the input text
// (BWT is a permutation of the text, sentinel excluded).
func TestBuildBWTSymbolCounts(t *testing.T) {
	texts := []string{"A", "ACGT", "AAAAACCCCCGGGGGTTTTT", "GATGCGAGACTCGAGATG"}
	for _, s := range texts {
		text := append([]byte(s), 0)
		sa := sufsort.Build(text)
		bwt := buildBWT(text, sa)

		var want, got [Sigma]int
		for _, b := range []byte(s) {
			c, ok := encodeSymbol(b)
			if !ok {
				t.Fatalf("non-DNA byte in test input %q", s)
			}
			want[c]++
		}
		for i := 0; i < bwt.N; i++ {
			if i == bwt.Zero {
				continue
			}
			got[bwt.at(i)]++
		}
		if got != want {
			t.Fatalf("%q: symbol counts = %v, want %v", s, got, want)
		}
	}
}

func TestBuildBWTPanicsOnMissingZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on suffix array missing a 0 entry")
		}
	}()
	text := []byte("AC\x00")
	buildBWT(text, []int{1, 2}) // no 0 present
}
