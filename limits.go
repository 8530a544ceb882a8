package msgfs

// BlockID is the identifier the blob log assigns a block (message) when
// it is created. Zero means "no parent" on the root directory node.
type BlockID uint64

const (
	kindSize   = 8 // NodeKind, little-endian u64
	sizeSize   = 8 // Node.Size, little-endian u64
	parentSize = 8 // Node.ParentBlockID, little-endian u64
	nodeHeader = kindSize + sizeSize + parentSize

	nameLenSize  = 8
	blockIDSize  = 8
	entryOverhead = nameLenSize + blockIDSize

	// NAME_MAX is the maximum byte length of a single directory entry name:
	// 2^10 minus the fixed name_len and block fields of a DirectoryEntry.
	NAME_MAX = (1 << 10) - blockIDSize - nameLenSize

	// BLOCK_SIZE is the maximum encoded size of a Node and the maximum
	// plaintext size of one file data chunk: 8 MiB.
	BLOCK_SIZE = 1 << 23

	// BLOCK_COUNT is the file data-block fan-out: how many 8-byte BlockIDs
	// fit in a File node's payload room.
	BLOCK_COUNT = (BLOCK_SIZE - nodeHeader) / blockIDSize

	// MAX_FILE_SIZE is the largest file this format can represent.
	MAX_FILE_SIZE = BLOCK_SIZE * BLOCK_COUNT

	// ENTRY_COUNT is the directory fan-out, computed conservatively as if
	// every entry used the maximum NAME_MAX-byte name (spec Open Question:
	// entries actually pack densely, so real capacity is higher; this
	// conservative bound is kept on purpose rather than switched to a
	// byte-budget check).
	ENTRY_COUNT = (BLOCK_SIZE - nodeHeader) / (NAME_MAX + entryOverhead)
)
