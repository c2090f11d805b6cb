package fmindex

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	text := []byte("GATGCGAGACTCGAGATG")
	ix, err := Build(text, Options{LUTDepth: 3, MaxLUTEntries: 1 << 10})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dir := t.TempDir()
	prefix := filepath.Join(dir, "idx")
	if err := ix.Save(prefix); err != nil {
		t.Fatalf("Save: %v", err)
	}
	for _, ext := range []string{".bwt", ".occ", ".sa"} {
		if _, err := os.Stat(prefix + ext); err != nil {
			t.Fatalf("expected %s to exist: %v", ext, err)
		}
	}

	loaded, err := Load(prefix, LoadOptions{LUTDepth: 3})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.N != ix.N {
		t.Fatalf("loaded.N = %d, want %d", loaded.N, ix.N)
	}

	patterns := []string{"GAGA", "GATG", "G", "TTTT", ""}
	for _, p := range patterns {
		wantCount, err := ix.Count([]byte(p))
		if err != nil {
			t.Fatalf("Count(%q) on original: %v", p, err)
		}
		gotCount, err := loaded.Count([]byte(p))
		if err != nil {
			t.Fatalf("Count(%q) on loaded: %v", p, err)
		}
		if gotCount != wantCount {
			t.Fatalf("Count(%q): loaded=%d want=%d", p, gotCount, wantCount)
		}

		want, err := ix.LocateAll([]byte(p))
		if err != nil {
			t.Fatalf("LocateAll(%q) on original: %v", p, err)
		}
		got, err := loaded.LocateAll([]byte(p))
		if err != nil {
			t.Fatalf("LocateAll(%q) on loaded: %v", p, err)
		}
		sort.Ints(want)
		sort.Ints(got)
		if len(want) != len(got) {
			t.Fatalf("LocateAll(%q): loaded=%v want=%v", p, got, want)
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("LocateAll(%q): loaded=%v want=%v", p, got, want)
			}
		}
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "nope"), LoadOptions{}); err == nil {
		t.Fatal("expected error loading a nonexistent index")
	}
}

func TestLoadRejectsTruncatedHeader(t *testing.T) {
	text := []byte("GATTACA")
	ix, err := Build(text, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	dir := t.TempDir()
	prefix := filepath.Join(dir, "idx")
	if err := ix.Save(prefix); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Truncate the .occ file to less than its header size.
	if err := os.WriteFile(prefix+".occ", []byte{1, 2, 3}, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(prefix, LoadOptions{}); err == nil {
		t.Fatal("expected error loading a truncated index")
	}
}
