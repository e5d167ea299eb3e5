package binary

import (
	"fmt"
	"io"
	"os"
	"time"

	ledger "github.com/mdhowey/ledgerbin"
)

// magicNumber and formatVersion gate every stream this package writes
// or reads. formatVersion 0x00030000 declares that the pool-size,
// entry, transaction, and bigint counters below are fixed 64-bit
// fields rather than host-native widths, so an incompatible reader can
// reject the stream outright.
const (
	magicNumber   uint32 = 0xFFEED765
	formatVersion uint32 = 0x00030000
)

// Test reports whether r begins with this package's magic number and
// an exactly matching format version, without committing to a full
// read. The stream is always left positioned at the start, so a
// caller that gets false can fall back to its textual source without
// any cleanup.
func Test(r io.ReadSeeker) (bool, error) {
	ok, err := testAt(r)
	if _, serr := r.Seek(0, io.SeekStart); serr != nil && err == nil {
		err = serr
	}
	return ok, err
}

func testAt(r io.ReadSeeker) (bool, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	magic, err := readU32(r)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return false, nil
		}
		return false, err
	}
	version, err := readU32(r)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return false, nil
		}
		return false, err
	}
	return magic == magicNumber && version == formatVersion, nil
}

// WriteJournal writes j to w in this package's binary cache format.
// w need not be seekable: back-patched fields (the
// string-pool length and the bigint count) are handled by the sink
// abstraction, which buffers the whole stream in memory when w isn't
// an io.WriteSeeker.
func WriteJournal(w io.Writer, j *ledger.Journal, opts Options) error {
	s := newSink(w)
	guards := opts.DebugGuards

	if err := writeU32(s, magicNumber); err != nil {
		return err
	}
	if err := writeU32(s, formatVersion); err != nil {
		return err
	}

	if err := writeU16(s, uint16(len(j.Sources))); err != nil {
		return err
	}
	for _, sf := range j.Sources {
		if err := writeString(s, sf.Path, guards); err != nil {
			return err
		}
		if err := writeI64(s, sf.ModTime.Unix()); err != nil {
			return err
		}
	}

	accountIdent, err := writeAccountTree(s, j.Master, guards)
	if err != nil {
		return err
	}

	poolTok, err := s.Reserve()
	if err != nil {
		return err
	}
	poolStart := s.Pos()
	xactCount, err := writeEntryPool(s, j.Entries, guards)
	if err != nil {
		return err
	}
	poolLen := uint64(s.Pos() - poolStart)

	if err := writeU64(s, uint64(len(j.Entries))); err != nil {
		return err
	}
	if err := writeU64(s, xactCount); err != nil {
		return err
	}

	bigintTok, err := s.Reserve()
	if err != nil {
		return err
	}
	var bigintsCount uint64

	commodityIdent, err := writeCommodityTable(s, j, guards, &bigintsCount)
	if err != nil {
		return err
	}

	if err := writeEntryRecords(s, j.Entries, accountIdent, commodityIdent, &bigintsCount); err != nil {
		return err
	}

	if err := s.Fill(poolTok, poolLen); err != nil {
		return err
	}
	if err := s.Fill(bigintTok, bigintsCount); err != nil {
		return err
	}
	return s.Flush()
}

// ReadJournal reads a journal cache from r. path is the source ledger
// path the caller wants to load a cache for; an empty path skips the
// "does the first recorded file match" check. When master is non-nil,
// the stream's own top-level account is discarded and its children are
// re-parented onto master instead.
//
// A nil *ledger.Journal with a nil error means the cache is not
// usable — wrong magic/version, a path mismatch, or a stale mtime —
// and the caller should regenerate from source. A non-nil error means
// the stream was structurally corrupt or an I/O operation failed.
func ReadJournal(r io.ReadSeeker, path string, master *ledger.Account, opts Options) (*ledger.Journal, int, error) {
	guards := opts.DebugGuards

	magic, err := readU32(r)
	if err != nil {
		return nil, 0, err
	}
	version, err := readU32(r)
	if err != nil {
		return nil, 0, err
	}
	if magic != magicNumber || version != formatVersion {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, 0, err
		}
		return nil, 0, nil
	}

	fileCount, err := readU16(r)
	if err != nil {
		return nil, 0, err
	}

	sources := make([]ledger.SourceFile, 0, fileCount)
	for i := uint16(0); i < fileCount; i++ {
		p, err := readStreamedString(r, guards)
		if err != nil {
			return nil, 0, err
		}
		mtimeUnix, err := readI64(r)
		if err != nil {
			return nil, 0, err
		}
		mtime := time.Unix(mtimeUnix, 0).UTC()

		if i == 0 && path != "" && p != path {
			return nil, 0, nil
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, 0, fmt.Errorf("ledgerbin: checking staleness of %s: %w", p, err)
		}
		if info.ModTime().After(mtime) {
			return nil, 0, nil
		}

		sources = append(sources, ledger.SourceFile{Path: p, ModTime: mtime})
	}

	accounts, root, err := readAccountTree(r, guards)
	if err != nil {
		return nil, 0, err
	}
	if master != nil {
		for _, c := range root.Children() {
			depth := c.Depth
			master.AddAccount(c)
			c.Depth = depth
		}
		root = master
	}

	poolSize, err := readU64(r)
	if err != nil {
		return nil, 0, err
	}
	pool := make([]byte, poolSize)
	if _, err := io.ReadFull(r, pool); err != nil {
		return nil, 0, err
	}

	entryCount, err := readU64(r)
	if err != nil {
		return nil, 0, err
	}
	transactionCount, err := readU64(r)
	if err != nil {
		return nil, 0, err
	}
	bigintCount, err := readU64(r)
	if err != nil {
		return nil, 0, err
	}
	arena := ledger.NewArena(int(entryCount), int(transactionCount), int(bigintCount))

	commodities, err := readCommodityTable(r, guards, arena)
	if err != nil {
		return nil, 0, err
	}

	entries, err := readEntries(r, guards, entryCount, pool, accounts, commodities, arena)
	if err != nil {
		return nil, 0, err
	}

	if err := arena.AssertExhausted(); err != nil {
		return nil, 0, structuralWrap("arena pool size mismatch", err)
	}

	j := &ledger.Journal{
		Sources:     sources,
		Master:      root,
		Commodities: map[string]*ledger.Commodity{"": ledger.NewCommodity("")},
		Entries:     entries,
		Arena:       arena,
	}
	for _, c := range commodities {
		if err := j.AddCommodity(c); err != nil {
			return nil, 0, structuralWrap("commodity symbol collision while loading cache", err)
		}
	}

	return j, len(entries), nil
}
