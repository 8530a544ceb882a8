package msgfs

import (
	"bytes"
	"testing"
)

func TestNonceSequencerIncrements(t *testing.T) {
	seq := NewNonceSequencer()

	first, err := seq.Next()
	if err != nil {
		t.Fatal(err)
	}
	second, err := seq.Next()
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(first, second) {
		t.Fatal("two successive nonces must not be equal")
	}
	if len(first) != 12 || len(second) != 12 {
		t.Fatalf("nonce length = %d/%d, want 12", len(first), len(second))
	}
	if !bytes.Equal(first[:4], []byte{0, 0, 0, 0}) {
		t.Fatalf("first 4 bytes of nonce must be zero, got %x", first[:4])
	}
}

func TestNonceSequencerOverflow(t *testing.T) {
	seq := &NonceSequencer{counter: ^uint64(0) - 1}

	if _, err := seq.Next(); err != nil {
		t.Fatalf("unexpected error before overflow: %v", err)
	}
	if _, err := seq.Next(); err != ErrNonceOverflow {
		t.Fatalf("expected ErrNonceOverflow, got %v", err)
	}
}
