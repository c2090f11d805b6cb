package fmindex

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"unsafe"
)

// Persisted file layout: each of the three files is a raw
// little-endian header followed by a variable-length tail, sized so
// the tail starts on an 8-byte boundary. Writing goes through a
// temporary file in the target directory followed by os.Rename,
// the atomic-publish pattern this pack's slotcache package
// (other_examples, calvinalkan-agent-task/pkg/slotcache) uses for its
// own on-disk format; loading mmaps the file read-only and reinterprets
// the tail in place rather than copying it, mirroring the same
// package's mmap-and-wrap approach.

const (
	bwtHeaderSize = 3 * 8             // n, nslots, zero
	occHeaderSize = 2*8 + (Sigma+1)*8 // n, nblocks, C[0..Sigma]
	saHeaderSize  = 3 * 8             // n, nwords, nbits
)

// Save persists ix as three files: prefix+".bwt", prefix+".occ", and
// prefix+".sa". Each file is written to a temporary path and renamed
// into place only once fully and durably written, so no file is ever
// left half-written. The three renames are separate: if a later file
// fails, the files already renamed stay in place and are not removed.
func (ix *Index) Save(prefix string) error {
	if err := writeAtomic(prefix+".bwt", ix.BWT.encode()); err != nil {
		return fmt.Errorf("fmindex: save bwt: %w", err)
	}
	if err := writeAtomic(prefix+".occ", ix.Occ.encode()); err != nil {
		return fmt.Errorf("fmindex: save occ: %w", err)
	}
	if err := writeAtomic(prefix+".sa", ix.CSA.encode()); err != nil {
		return fmt.Errorf("fmindex: save sa: %w", err)
	}
	return nil
}

// writeAtomic writes data to a temporary file beside path, fsyncs it,
// and renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// encode serializes the BWT header and packed slots, field by field
// (not a memory copy of the Go struct, which has no guaranteed layout
// across compilers/architectures).
func (b *BWT) encode() []byte {
	buf := make([]byte, bwtHeaderSize+len(b.Slots))
	binary.LittleEndian.PutUint64(buf[0:8], uint64(b.N))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(b.Slots)))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(b.Zero))
	copy(buf[bwtHeaderSize:], b.Slots)
	return buf
}

// encode serializes the Occ header (n, nblocks, C) and the block rows,
// field by field per block (smpl then bits), matching the on-disk
// layout irrespective of Go's struct layout rules.
func (o *Occ) encode() []byte {
	nrows := len(o.rows)
	buf := make([]byte, occHeaderSize+nrows*8)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(o.N))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(o.NBlocks))
	off := 16
	for _, c := range o.C {
		binary.LittleEndian.PutUint64(buf[off:off+8], c)
		off += 8
	}
	for _, blk := range o.rows {
		binary.LittleEndian.PutUint32(buf[off:off+4], blk.smpl)
		binary.LittleEndian.PutUint32(buf[off+4:off+8], blk.bits)
		off += 8
	}
	return buf
}

// encode serializes the CSA header (n, nwords, nbits) and packed words.
func (s *CSA) encode() []byte {
	buf := make([]byte, saHeaderSize+len(s.Words)*8)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(s.N))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(s.Words)))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(s.NBits))
	off := saHeaderSize
	for _, w := range s.Words {
		binary.LittleEndian.PutUint64(buf[off:off+8], w)
		off += 8
	}
	return buf
}

// mappedFile is a read-only mmap'd file kept alive for the lifetime of
// a loaded Index; Close unmaps and closes it.
type mappedFile struct {
	data []byte
	f    *os.File
}

func mmapReadOnly(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := st.Size()
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %s is empty", ErrCorruptFile, path)
	}
	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fmindex: mmap %s: %w", path, err)
	}
	return &mappedFile{data: data, f: f}, nil
}

func (m *mappedFile) Close() error {
	err := syscall.Munmap(m.data)
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// LoadOptions configures Load.
type LoadOptions struct {
	// LUTDepth rebuilds a k-mer LUT after loading (the LUT itself is
	// never persisted; the on-disk format has no LUT file).
	// Zero disables it.
	LUTDepth int
}

// Load maps prefix+".bwt"/".occ"/".sa" read-only and reconstructs an
// Index in place, reinterpreting the packed tails of the mapped files
// rather than copying them. The mappings are never explicitly
// unmapped; they live for the process lifetime, which is the expected
// usage for a read-only index loaded once and queried repeatedly.
func Load(prefix string, opts LoadOptions) (*Index, error) {
	ix, _, err := loadWithHandles(prefix, opts)
	return ix, err
}

func loadWithHandles(prefix string, opts LoadOptions) (*Index, []*mappedFile, error) {
	bwtMap, err := mmapReadOnly(prefix + ".bwt")
	if err != nil {
		return nil, nil, err
	}
	occMap, err := mmapReadOnly(prefix + ".occ")
	if err != nil {
		bwtMap.Close()
		return nil, nil, err
	}
	saMap, err := mmapReadOnly(prefix + ".sa")
	if err != nil {
		bwtMap.Close()
		occMap.Close()
		return nil, nil, err
	}
	handles := []*mappedFile{bwtMap, occMap, saMap}

	bwt, err := decodeBWT(bwtMap.data)
	if err != nil {
		closeAll(handles)
		return nil, nil, err
	}
	occ, err := decodeOcc(occMap.data)
	if err != nil {
		closeAll(handles)
		return nil, nil, err
	}
	csa, err := decodeCSA(saMap.data)
	if err != nil {
		closeAll(handles)
		return nil, nil, err
	}
	if bwt.N != occ.N || occ.N != csa.N {
		closeAll(handles)
		return nil, nil, fmt.Errorf("%w: mismatched N across files", ErrCorruptFile)
	}

	ix := &Index{N: bwt.N - 1, BWT: bwt, Occ: occ, CSA: csa}
	if opts.LUTDepth > 0 {
		ix.LUT = buildLUT(occ, opts.LUTDepth)
	}
	return ix, handles, nil
}

// closeAll unmaps and closes every handle, used to unwind already-opened
// mappings when a later file in the set fails to decode.
func closeAll(handles []*mappedFile) {
	for _, h := range handles {
		h.Close()
	}
}

func decodeBWT(data []byte) (*BWT, error) {
	if len(data) < bwtHeaderSize {
		return nil, fmt.Errorf("%w: bwt header truncated", ErrCorruptFile)
	}
	n := int(binary.LittleEndian.Uint64(data[0:8]))
	nslots := int(binary.LittleEndian.Uint64(data[8:16]))
	zero := int(binary.LittleEndian.Uint64(data[16:24]))
	if n <= 0 || zero < 0 || zero >= n || nslots != (n+3)/4 {
		return nil, fmt.Errorf("%w: bwt header inconsistent", ErrCorruptFile)
	}
	if len(data) < bwtHeaderSize+nslots {
		return nil, fmt.Errorf("%w: bwt tail truncated", ErrCorruptFile)
	}
	return &BWT{N: n, Zero: zero, Slots: data[bwtHeaderSize : bwtHeaderSize+nslots]}, nil
}

func decodeOcc(data []byte) (*Occ, error) {
	if len(data) < occHeaderSize {
		return nil, fmt.Errorf("%w: occ header truncated", ErrCorruptFile)
	}
	n := int(binary.LittleEndian.Uint64(data[0:8]))
	nblocks := int(binary.LittleEndian.Uint64(data[8:16]))
	if n <= 0 || nblocks != (n+31)/32 {
		return nil, fmt.Errorf("%w: occ header inconsistent", ErrCorruptFile)
	}
	var c [Sigma + 1]uint64
	off := 16
	for i := range c {
		c[i] = binary.LittleEndian.Uint64(data[off : off+8])
		off += 8
	}
	for i := 1; i < len(c); i++ {
		if c[i] < c[i-1] {
			return nil, fmt.Errorf("%w: C vector not monotone", ErrCorruptFile)
		}
	}
	if c[Sigma] != uint64(n) {
		return nil, fmt.Errorf("%w: C[Sigma] != n", ErrCorruptFile)
	}

	nrows := Sigma * nblocks
	if len(data) < occHeaderSize+nrows*8 {
		return nil, fmt.Errorf("%w: occ tail truncated", ErrCorruptFile)
	}
	tail := data[occHeaderSize : occHeaderSize+nrows*8]
	rows := unsafe.Slice((*occBlock)(unsafe.Pointer(&tail[0])), nrows)

	return &Occ{N: n, NBlocks: nblocks, C: c, rows: rows}, nil
}

func decodeCSA(data []byte) (*CSA, error) {
	if len(data) < saHeaderSize {
		return nil, fmt.Errorf("%w: sa header truncated", ErrCorruptFile)
	}
	n := int(binary.LittleEndian.Uint64(data[0:8]))
	nwords := int(binary.LittleEndian.Uint64(data[8:16]))
	nbits := int(binary.LittleEndian.Uint64(data[16:24]))
	if n <= 0 || nbits <= 0 || nbits > 64 {
		return nil, fmt.Errorf("%w: sa header inconsistent", ErrCorruptFile)
	}
	if len(data) < saHeaderSize+nwords*8 {
		return nil, fmt.Errorf("%w: sa tail truncated", ErrCorruptFile)
	}
	var words []uint64
	if nwords > 0 {
		tail := data[saHeaderSize : saHeaderSize+nwords*8]
		words = unsafe.Slice((*uint64)(unsafe.Pointer(&tail[0])), nwords)
	}
	return &CSA{N: n, NBits: nbits, Words: words}, nil
}
