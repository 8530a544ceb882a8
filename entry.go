package msgfs

import (
	"encoding/binary"
	"fmt"
)

// DirectoryEntry is one record in a Directory node's payload:
//
//	name_len (8B LE) ‖ name (name_len bytes, UTF-8) ‖ block (8B LE)
//
// Directory entries whose referent is itself a Directory keep a
// trailing '/' as part of the stored name; file entries don't. This is
// the path resolver's encoded-key convention (see path.go) — a wart
// inherited from the original design on purpose, not silently fixed.
type DirectoryEntry struct {
	Name  string
	Block BlockID
}

// NewDirectoryEntry builds a DirectoryEntry, rejecting names over NAME_MAX.
func NewDirectoryEntry(name string, block BlockID) (DirectoryEntry, error) {
	e := DirectoryEntry{Name: name, Block: block}
	if err := e.SetName(name); err != nil {
		return DirectoryEntry{}, err
	}
	return e, nil
}

// SetName replaces the entry's name, rejecting names over NAME_MAX bytes.
func (e *DirectoryEntry) SetName(name string) error {
	if len(name) > NAME_MAX {
		return fmt.Errorf("%w: %d > %d", ErrNameTooLong, len(name), NAME_MAX)
	}
	e.Name = name
	return nil
}

// encodedLen returns the exact number of bytes this entry occupies on the wire.
func (e DirectoryEntry) encodedLen() int {
	return nameLenSize + len(e.Name) + blockIDSize
}

func (e DirectoryEntry) appendTo(buf []byte) []byte {
	var hdr [nameLenSize]byte
	binary.LittleEndian.PutUint64(hdr[:], uint64(len(e.Name)))
	buf = append(buf, hdr[:]...)
	buf = append(buf, e.Name...)
	var blk [blockIDSize]byte
	binary.LittleEndian.PutUint64(blk[:], uint64(e.Block))
	buf = append(buf, blk[:]...)
	return buf
}

// decodeDirectoryEntries parses a dense sequence of DirectoryEntry
// records until the buffer is exhausted. It rejects any name_len
// exceeding NAME_MAX, and any record that runs past the end of buf.
func decodeDirectoryEntries(buf []byte) ([]DirectoryEntry, error) {
	var entries []DirectoryEntry
	for len(buf) > 0 {
		if len(buf) < nameLenSize {
			return nil, fmt.Errorf("%w: truncated directory entry header", ErrMalformedBlock)
		}
		nameLen := binary.LittleEndian.Uint64(buf[:nameLenSize])
		if nameLen > NAME_MAX {
			return nil, fmt.Errorf("%w: name length %d exceeds %d", ErrMalformedBlock, nameLen, NAME_MAX)
		}
		buf = buf[nameLenSize:]

		need := int(nameLen) + blockIDSize
		if len(buf) < need {
			return nil, fmt.Errorf("%w: truncated directory entry body", ErrMalformedBlock)
		}
		name := string(buf[:nameLen])
		buf = buf[nameLen:]
		block := BlockID(binary.LittleEndian.Uint64(buf[:blockIDSize]))
		buf = buf[blockIDSize:]

		entries = append(entries, DirectoryEntry{Name: name, Block: block})
	}
	return entries, nil
}
