//go:build zstd

package msgfs

import "github.com/klauspost/compress/zstd"

func init() {
	RegisterCompressor("zstd", func() Compressor { return &zstdCompressor{} })
}

type zstdCompressor struct{}

func (z *zstdCompressor) Name() string { return "zstd" }

func (z *zstdCompressor) Compress(plaintext []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(plaintext, nil), nil
}

func (z *zstdCompressor) Decompress(compressed []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(compressed, nil)
}
