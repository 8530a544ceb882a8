package msgfs

import "testing"

func TestEntryCountFitsBlockSize(t *testing.T) {
	// ENTRY_COUNT entries at the worst-case (maximum) name length must
	// still fit inside one block alongside the node header.
	used := nodeHeader + ENTRY_COUNT*(NAME_MAX+entryOverhead)
	if used > BLOCK_SIZE {
		t.Fatalf("ENTRY_COUNT*%d-byte entries overflow BLOCK_SIZE: %d > %d", NAME_MAX+entryOverhead, used, BLOCK_SIZE)
	}
}

func TestBlockCountFitsBlockSize(t *testing.T) {
	used := nodeHeader + BLOCK_COUNT*blockIDSize
	if used > BLOCK_SIZE {
		t.Fatalf("BLOCK_COUNT block ids overflow BLOCK_SIZE: %d > %d", used, BLOCK_SIZE)
	}
}

func TestMaxFileSizeDerivation(t *testing.T) {
	if MAX_FILE_SIZE != BLOCK_SIZE*BLOCK_COUNT {
		t.Fatalf("MAX_FILE_SIZE = %d, want %d", MAX_FILE_SIZE, BLOCK_SIZE*BLOCK_COUNT)
	}
}
