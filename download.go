package msgfs

import (
	"context"
	"fmt"
	"io"
)

// DownloadOption configures a Download call.
type DownloadOption func(*downloadConfig)

type downloadConfig struct {
	compressor Compressor
	onChunk    func(plaintextBytes int64)
}

// WithDownloadCompressor must match whatever WithCompressor was used on upload.
func WithDownloadCompressor(c Compressor) DownloadOption {
	return func(cfg *downloadConfig) { cfg.compressor = c }
}

// WithDownloadProgress registers a callback invoked after each chunk is
// decrypted, with the cumulative number of plaintext bytes written so far.
func WithDownloadProgress(fn func(plaintextBytes int64)) DownloadOption {
	return func(cfg *downloadConfig) { cfg.onChunk = fn }
}

// Download resolves source to a File node and streams its decrypted
// plaintext to w, in block order (spec.md §4.6). Decryption failure on
// any chunk is fatal and leaves w holding a truncated prefix of the file.
func (fs *FS) Download(ctx context.Context, source string, w io.Writer, key []byte, opts ...DownloadOption) error {
	node, _, err := fs.Traverse(ctx, source)
	if err != nil {
		return err
	}
	if node.Kind != File {
		return fmt.Errorf("%w: %q is a directory, not a file", ErrKindMismatch, source)
	}

	return fs.DownloadNode(ctx, node, w, key, opts...)
}

// DownloadNode streams an already-resolved File node's decrypted
// plaintext to w. Callers that already hold the node (e.g. a FUSE binding
// walking the tree by block id rather than by path) can use this directly
// instead of paying for a redundant Traverse.
func (fs *FS) DownloadNode(ctx context.Context, node Node, w io.Writer, key []byte, opts ...DownloadOption) error {
	if node.Kind != File {
		return fmt.Errorf("%w: cannot download a %s node", ErrKindMismatch, node.Kind)
	}

	var cfg downloadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	aead, err := newCipher(key)
	if err != nil {
		return err
	}
	nonce := NewNonceSequencer()

	var written int64
	for _, b := range node.Blocks {
		ciphertext, err := fs.store.GetDataBlock(ctx, b.Block)
		if err != nil {
			return err
		}

		n, err := nonce.Next()
		if err != nil {
			return err
		}
		plaintext, err := aead.Open(nil, n, ciphertext, nil)
		if err != nil {
			return fmt.Errorf("decrypting block %d: %w", b.Block, err)
		}

		if cfg.compressor != nil {
			plaintext, err = cfg.compressor.Decompress(plaintext)
			if err != nil {
				return fmt.Errorf("decompressing block %d: %w", b.Block, err)
			}
		}

		if _, err := w.Write(plaintext); err != nil {
			return fmt.Errorf("writing destination: %w", err)
		}
		written += int64(len(plaintext))

		if cfg.onChunk != nil {
			cfg.onChunk(written)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
