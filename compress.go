package msgfs

import "fmt"

// Compressor optionally transforms a plaintext chunk before AEAD
// encryption on upload, and reverses the transform after AEAD decryption
// on download. The codec in use is never recorded in the Node or
// DirectoryEntry wire format (spec.md's block format is frozen and
// unversioned), so the same Compressor (or nil for none) used to upload a
// file must be supplied again to download it.
type Compressor interface {
	Name() string
	Compress(plaintext []byte) ([]byte, error)
	Decompress(compressed []byte) ([]byte, error)
}

// compressorFactories is populated by build-tag-gated init() functions
// (compress_zstd.go, compress_xz.go), mirroring the teacher's
// register-by-build-tag pattern for optional codecs (comp_zstd.go, comp_xz.go).
var compressorFactories = map[string]func() Compressor{}

// RegisterCompressor makes a codec available to CompressorByName. Called
// from the init() of a build-tag-gated file for each optional codec.
func RegisterCompressor(name string, factory func() Compressor) {
	compressorFactories[name] = factory
}

// CompressorByName looks up a registered codec by name. "" or "none"
// always resolves to (nil, nil) — no compression.
func CompressorByName(name string) (Compressor, error) {
	if name == "" || name == "none" {
		return nil, nil
	}
	factory, ok := compressorFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown compression codec %q (built without support for it?)", name)
	}
	return factory(), nil
}
