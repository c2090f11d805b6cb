// Command fmindex builds and queries FM-indexes over FASTA files from
// the command line: "index" builds and persists an index, "search"
// loads one and reports counts and locations for a batch of patterns
// (the batch-query shape of original_source/seed.c's main loop).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/grailbio/base/log"

	"github.com/bioindex/fmindex"
	"github.com/bioindex/fmindex/internal/fasta"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "index":
		err = runIndex(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Printf("fmindex: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  fmindex index -fasta <path> -out <prefix> [-lut-depth N] [-bidirectional]")
	fmt.Fprintln(os.Stderr, "  fmindex search -index <prefix> [-lut-depth N] <pattern> [pattern ...]")
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	fastaPath := fs.String("fasta", "", "input FASTA file")
	outPrefix := fs.String("out", "", "output index file prefix")
	lutDepth := fs.Int("lut-depth", fmindex.DefaultOptions().LUTDepth, "k-mer LUT depth (0 disables)")
	maxLUT := fs.Int("max-lut-entries", fmindex.DefaultOptions().MaxLUTEntries, "cap on 4^lut-depth entries, 0 for no cap")
	bidirectional := fs.Bool("bidirectional", false, "also index the reverse complement")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fastaPath == "" || *outPrefix == "" {
		return fmt.Errorf("both -fasta and -out are required")
	}

	f, err := os.Open(*fastaPath)
	if err != nil {
		return err
	}
	defer f.Close()

	log.Printf("fmindex: reading %s", *fastaPath)
	seq, err := fasta.Read(f)
	if err != nil {
		return fmt.Errorf("reading fasta: %w", err)
	}
	log.Printf("fmindex: read %d bases", len(seq))

	opts := fmindex.Options{LUTDepth: *lutDepth, MaxLUTEntries: *maxLUT}

	log.Printf("fmindex: building index (lut-depth=%d, bidirectional=%v)", *lutDepth, *bidirectional)
	var idx *fmindex.Index
	if *bidirectional {
		idx, err = fmindex.BuildBidirectional(seq, opts)
	} else {
		idx, err = fmindex.Build(seq, opts)
	}
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if err := idx.Save(*outPrefix); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}
	log.Printf("fmindex: wrote %s.{bwt,occ,sa}", *outPrefix)
	return nil
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	indexPrefix := fs.String("index", "", "index file prefix (as passed to -out when indexing)")
	lutDepth := fs.Int("lut-depth", 0, "k-mer LUT depth to rebuild after loading (0 disables)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	patterns := fs.Args()
	if *indexPrefix == "" || len(patterns) == 0 {
		return fmt.Errorf("-index and at least one pattern are required")
	}

	idx, err := fmindex.Load(*indexPrefix, fmindex.LoadOptions{LUTDepth: *lutDepth})
	if err != nil {
		return fmt.Errorf("loading index: %w", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for _, p := range patterns {
		pattern := []byte(p)
		count, err := idx.Count(pattern)
		if err != nil {
			log.Printf("fmindex: %q: %v", p, err)
			continue
		}
		locs, err := idx.LocateAll(pattern)
		if err != nil {
			log.Printf("fmindex: %q: %v", p, err)
			continue
		}
		sort.Ints(locs)

		if idx.StrandSplit == 0 {
			fmt.Fprintf(w, "%s\t%d\t%v\n", p, count, locs)
			continue
		}
		strands := make([]string, len(locs))
		for i, pos := range locs {
			strand, local := idx.LocateStrand(pos)
			strands[i] = fmt.Sprintf("%c:%d", strand, local)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\n", p, count, strands)
	}
	return nil
}
