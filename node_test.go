package msgfs

import "testing"

func TestEncodeDecodeDirectoryNode(t *testing.T) {
	n := NewDirectoryNode(5)
	if err := n.PushEntry("a", 1); err != nil {
		t.Fatal(err)
	}
	if err := n.PushEntry("b/", 2); err != nil {
		t.Fatal(err)
	}

	data, err := EncodeNode(n)
	if err != nil {
		t.Fatalf("EncodeNode: %v", err)
	}

	got, err := DecodeNode(data)
	if err != nil {
		t.Fatalf("DecodeNode: %v", err)
	}
	if got.Kind != Directory || got.ParentBlockID != 5 || len(got.Entries) != 2 {
		t.Fatalf("decoded node mismatch: %+v", got)
	}
	if got.Entries[0].Name != "a" || got.Entries[1].Name != "b/" {
		t.Fatalf("decoded entries mismatch: %+v", got.Entries)
	}
}

func TestEncodeDecodeFileNode(t *testing.T) {
	n := NewFileNode(9)
	if err := n.PushDataBlock(100, 4096); err != nil {
		t.Fatal(err)
	}
	if err := n.PushDataBlock(101, 2048); err != nil {
		t.Fatal(err)
	}

	data, err := EncodeNode(n)
	if err != nil {
		t.Fatalf("EncodeNode: %v", err)
	}

	got, err := DecodeNode(data)
	if err != nil {
		t.Fatalf("DecodeNode: %v", err)
	}
	if got.Kind != File || got.ParentBlockID != 9 {
		t.Fatalf("decoded node mismatch: %+v", got)
	}
	if got.Size() != 4096+2048 {
		t.Fatalf("decoded size = %d, want %d", got.Size(), 4096+2048)
	}
	if len(got.Blocks) != 2 || got.Blocks[0].Block != 100 || got.Blocks[1].Block != 101 {
		t.Fatalf("decoded blocks mismatch: %+v", got.Blocks)
	}
}

func TestDirectoryFullRejectsPush(t *testing.T) {
	n := NewDirectoryNode(0)
	for i := 0; i < ENTRY_COUNT; i++ {
		if err := n.PushEntry(string(rune('a'+i%26))+string(rune(i)), BlockID(i)); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if !n.IsFull() {
		t.Fatal("expected directory to report full")
	}
	if err := n.PushEntry("overflow", 999); err != ErrDirectoryFull {
		t.Fatalf("expected ErrDirectoryFull, got %v", err)
	}
}

func TestPushEntryKindMismatch(t *testing.T) {
	n := NewFileNode(0)
	if err := n.PushEntry("x", 1); err == nil {
		t.Fatal("expected an error pushing a directory entry onto a File node")
	}
}

func TestDeleteEntryNotFound(t *testing.T) {
	n := NewDirectoryNode(0)
	if err := n.DeleteEntry("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecodeNodeRejectsTruncatedHeader(t *testing.T) {
	if _, err := DecodeNode([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected an error decoding too few bytes for a header")
	}
}

func TestDecodeNodeRejectsSizeMismatch(t *testing.T) {
	n := NewDirectoryNode(0)
	if err := n.PushEntry("a", 1); err != nil {
		t.Fatal(err)
	}
	data, err := EncodeNode(n)
	if err != nil {
		t.Fatal(err)
	}
	// Corrupt the declared size field (bytes 8:16) to disagree with the
	// actual number of encoded entries.
	data[8] = 99
	if _, err := DecodeNode(data); err == nil {
		t.Fatal("expected an error decoding a node with a mismatched size field")
	}
}
