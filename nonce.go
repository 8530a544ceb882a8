package msgfs

import "encoding/binary"

// NonceSequencer produces the deterministic 96-bit nonce stream used to
// pair AEAD chunks with their position in a file. A fresh sequencer is
// created per upload and per download of the same file (never held as a
// shared/global counter — see SPEC_FULL.md §4.2), so the i-th chunk of any
// upload and any later download of the same blocks always use nonce i.
type NonceSequencer struct {
	counter uint64
}

// NewNonceSequencer returns a sequencer starting at counter 0.
func NewNonceSequencer() *NonceSequencer {
	return &NonceSequencer{}
}

// Next returns the next 12-byte nonce: 4 zero bytes followed by the
// little-endian counter, then advances the counter.
func (s *NonceSequencer) Next() ([]byte, error) {
	if s.counter == ^uint64(0) {
		return nil, ErrNonceOverflow
	}
	var nonce [12]byte
	binary.LittleEndian.PutUint64(nonce[4:], s.counter)
	s.counter++
	return nonce[:], nil
}
