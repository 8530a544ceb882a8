package msgfs

import (
	"encoding/binary"
	"fmt"
)

// FileBlock is one data-block reference inside a File node, in upload order.
type FileBlock struct {
	Block BlockID
}

// Node is the decoded contents of a Node block: either a Directory (its
// entries) or a File (its ordered data-block list). Unlike the original
// mutable-placeholder decode path, a Node here is constructed directly as
// whichever variant its Kind says it is — Entries is only meaningful when
// Kind == Directory, Blocks only when Kind == File.
type Node struct {
	Kind           NodeKind
	ParentBlockID  BlockID // 0 iff this is the root
	Entries        []DirectoryEntry
	Blocks         []FileBlock
	fileByteSize   uint64 // File: total plaintext bytes (Node.Size() for File)
}

// NewDirectoryNode returns an empty Directory node with the given parent.
func NewDirectoryNode(parent BlockID) Node {
	return Node{Kind: Directory, ParentBlockID: parent}
}

// NewFileNode returns an empty File node with the given parent.
func NewFileNode(parent BlockID) Node {
	return Node{Kind: File, ParentBlockID: parent}
}

// Size returns the Node's size field: entry count for a Directory, total
// plaintext bytes for a File.
func (n Node) Size() uint64 {
	if n.Kind == Directory {
		return uint64(len(n.Entries))
	}
	return n.fileByteSize
}

// IsFull reports whether a Directory already holds ENTRY_COUNT entries.
func (n Node) IsFull() bool {
	return len(n.Entries) >= ENTRY_COUNT
}

// ContainsEntry reports whether a Directory already has an entry with this exact name.
func (n Node) ContainsEntry(name string) bool {
	for _, e := range n.Entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// GetEntry returns the entry with the given name.
func (n Node) GetEntry(name string) (DirectoryEntry, bool) {
	for _, e := range n.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return DirectoryEntry{}, false
}

// PushEntry appends a new directory entry, rejecting a full directory.
func (n *Node) PushEntry(name string, block BlockID) error {
	if n.Kind != Directory {
		return fmt.Errorf("%w: PushEntry on %s node", ErrKindMismatch, n.Kind)
	}
	if n.IsFull() {
		return ErrDirectoryFull
	}
	entry, err := NewDirectoryEntry(name, block)
	if err != nil {
		return err
	}
	n.Entries = append(n.Entries, entry)
	return nil
}

// RenameEntry renames the entry named old to new in place.
func (n *Node) RenameEntry(old, new string) error {
	if n.Kind != Directory {
		return fmt.Errorf("%w: RenameEntry on %s node", ErrKindMismatch, n.Kind)
	}
	for i := range n.Entries {
		if n.Entries[i].Name == old {
			return n.Entries[i].SetName(new)
		}
	}
	return ErrNotFound
}

// DeleteEntry removes the entry named name.
func (n *Node) DeleteEntry(name string) error {
	if n.Kind != Directory {
		return fmt.Errorf("%w: DeleteEntry on %s node", ErrKindMismatch, n.Kind)
	}
	for i := range n.Entries {
		if n.Entries[i].Name == name {
			n.Entries = append(n.Entries[:i], n.Entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// PushDataBlock appends a new data block to a File node, accumulating its
// plaintext size into the Node's reported size.
func (n *Node) PushDataBlock(block BlockID, plaintextSize uint64) error {
	if n.Kind != File {
		return fmt.Errorf("%w: PushDataBlock on %s node", ErrKindMismatch, n.Kind)
	}
	if len(n.Blocks) >= BLOCK_COUNT {
		return fmt.Errorf("%w: file will exceed the maximum block count of %d", ErrFileTooLarge, BLOCK_COUNT)
	}
	if n.fileByteSize+plaintextSize > MAX_FILE_SIZE {
		return fmt.Errorf("%w: file reported larger than maximum size of %d", ErrFileTooLarge, uint64(MAX_FILE_SIZE))
	}
	n.Blocks = append(n.Blocks, FileBlock{Block: block})
	n.fileByteSize += plaintextSize
	return nil
}

// EncodeNode serializes a Node to its on-wire representation. It refuses
// (returns an error rather than panicking — callers treat this as fatal
// per spec) if the result would exceed BLOCK_SIZE.
func EncodeNode(n Node) ([]byte, error) {
	buf := make([]byte, 0, nodeHeader)
	var hdr [nodeHeader]byte
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(n.Kind))
	binary.LittleEndian.PutUint64(hdr[8:16], n.Size())
	binary.LittleEndian.PutUint64(hdr[16:24], uint64(n.ParentBlockID))
	buf = append(buf, hdr[:]...)

	switch n.Kind {
	case Directory:
		for _, e := range n.Entries {
			buf = e.appendTo(buf)
		}
	case File:
		for _, b := range n.Blocks {
			var blk [blockIDSize]byte
			binary.LittleEndian.PutUint64(blk[:], uint64(b.Block))
			buf = append(buf, blk[:]...)
		}
	default:
		return nil, fmt.Errorf("%w: cannot encode %s", ErrKindMismatch, n.Kind)
	}

	if len(buf) > BLOCK_SIZE {
		return nil, fmt.Errorf("%w: encoded node is %d bytes, exceeds BLOCK_SIZE", ErrMalformedBlock, len(buf))
	}
	return buf, nil
}

// DecodeNode parses the on-wire representation of a Node. The Kind field
// determines which variant is populated; Decode never constructs an
// intermediate placeholder of the other kind.
func DecodeNode(data []byte) (Node, error) {
	if len(data) > BLOCK_SIZE {
		return Node{}, fmt.Errorf("%w: block is %d bytes, exceeds BLOCK_SIZE", ErrMalformedBlock, len(data))
	}
	if len(data) < nodeHeader {
		return Node{}, fmt.Errorf("%w: too little data (%d bytes) to hold a Node header", ErrMalformedBlock, len(data))
	}

	kind := NodeKind(binary.LittleEndian.Uint64(data[0:8]))
	size := binary.LittleEndian.Uint64(data[8:16])
	parent := BlockID(binary.LittleEndian.Uint64(data[16:24]))
	payload := data[nodeHeader:]

	switch kind {
	case Directory:
		entries, err := decodeDirectoryEntries(payload)
		if err != nil {
			return Node{}, err
		}
		if uint64(len(entries)) != size {
			return Node{}, fmt.Errorf("%w: declared %d entries, decoded %d", ErrMalformedBlock, size, len(entries))
		}
		return Node{Kind: Directory, ParentBlockID: parent, Entries: entries}, nil

	case File:
		if size > MAX_FILE_SIZE {
			return Node{}, fmt.Errorf("%w: file reports size %d, exceeds MAX_FILE_SIZE %d", ErrMalformedBlock, size, uint64(MAX_FILE_SIZE))
		}
		if len(payload)%blockIDSize != 0 {
			return Node{}, fmt.Errorf("%w: file payload length %d not divisible by %d", ErrMalformedBlock, len(payload), blockIDSize)
		}
		blocks := make([]FileBlock, 0, len(payload)/blockIDSize)
		for i := 0; i < len(payload); i += blockIDSize {
			blocks = append(blocks, FileBlock{Block: BlockID(binary.LittleEndian.Uint64(payload[i : i+blockIDSize]))})
		}
		return Node{Kind: File, ParentBlockID: parent, Blocks: blocks, fileByteSize: size}, nil

	default:
		return Node{}, fmt.Errorf("%w: unknown node kind %d", ErrMalformedBlock, uint64(kind))
	}
}
