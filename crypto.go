package msgfs

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// newCipher builds the AEAD used to seal/open data chunks from the first
// 32 bytes of key. AES-256-GCM, not GCM-SIV: see DESIGN.md.
func newCipher(key []byte) (cipher.AEAD, error) {
	if len(key) < 32 {
		return nil, ErrKeyTooShort
	}
	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, fmt.Errorf("building cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
