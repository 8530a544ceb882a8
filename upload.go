package msgfs

import (
	"context"
	"fmt"
	"io"
)

// UploadOption configures an Upload call.
type UploadOption func(*uploadConfig)

type uploadConfig struct {
	compressor Compressor
	onChunk    func(plaintextBytes int64)
}

// WithCompressor compresses each plaintext chunk before encryption. The
// same Compressor (or none) must be supplied to Download to read the file back.
func WithCompressor(c Compressor) UploadOption {
	return func(cfg *uploadConfig) { cfg.compressor = c }
}

// WithUploadProgress registers a callback invoked after each chunk is
// written, with the cumulative number of plaintext bytes processed so far.
func WithUploadProgress(fn func(plaintextBytes int64)) UploadOption {
	return func(cfg *uploadConfig) { cfg.onChunk = fn }
}

// Upload reads size bytes from r, encrypts it in BLOCK_SIZE-or-smaller
// chunks, and publishes it as a new file at destination (spec.md §4.6).
//
// The destination's parent directory is resolved and checked for room
// and name collisions before any block is created. The file node is
// published empty first, the data blocks are then created one at a time,
// and the file node is rewritten once with the full block list; it only
// becomes reachable from the tree in the final step, after every data
// block and the final file-node edit have succeeded (spec.md §5 ordering
// guarantee b). If the context is canceled or a chunk write fails
// partway through, the data blocks and the file node already created are
// left as unreachable orphans — the error returned is a
// *PartialWriteError naming the blocks written so far.
func (fs *FS) Upload(ctx context.Context, r io.Reader, size int64, destination string, key []byte, opts ...UploadOption) error {
	if size > MAX_FILE_SIZE {
		return fmt.Errorf("%w: %d > %d", ErrFileTooLarge, size, int64(MAX_FILE_SIZE))
	}

	var cfg uploadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	dirPath, fileName, err := SplitPath(destination, false, false)
	if err != nil {
		return err
	}

	dirNode, dirID, err := fs.Traverse(ctx, dirPath)
	if err != nil {
		return err
	}
	if dirNode.Kind != Directory {
		return fmt.Errorf("%w: %q is not a directory", ErrKindMismatch, dirPath)
	}
	if dirNode.IsFull() {
		return ErrDirectoryFull
	}
	if dirNode.ContainsEntry(fileName) {
		return ErrNameCollision
	}

	fileNode, fileID, err := fs.store.CreateFile(ctx, dirID)
	if err != nil {
		return err
	}

	aead, err := newCipher(key)
	if err != nil {
		return err
	}
	nonce := NewNonceSequencer()

	var written []BlockID
	partial := func(err error) error {
		return &PartialWriteError{Operation: "upload", BlocksWritten: append(written, fileID), Err: err}
	}

	var readBytes int64
	chunk := make([]byte, BLOCK_SIZE)
	for readBytes < size {
		chunkSize := size - readBytes
		if chunkSize > BLOCK_SIZE {
			chunkSize = BLOCK_SIZE
		}
		if _, err := io.ReadFull(r, chunk[:chunkSize]); err != nil {
			return partial(fmt.Errorf("reading source: %w", err))
		}
		readBytes += chunkSize

		plaintext := chunk[:chunkSize]
		if cfg.compressor != nil {
			plaintext, err = cfg.compressor.Compress(plaintext)
			if err != nil {
				return partial(fmt.Errorf("compressing chunk: %w", err))
			}
		}

		n, err := nonce.Next()
		if err != nil {
			return partial(err)
		}
		ciphertext := aead.Seal(nil, n, plaintext, nil)

		blockID, err := fs.store.CreateDataBlock(ctx, ciphertext)
		if err != nil {
			return partial(err)
		}
		written = append(written, blockID)

		if err := fileNode.PushDataBlock(blockID, uint64(chunkSize)); err != nil {
			return partial(err)
		}

		if cfg.onChunk != nil {
			cfg.onChunk(readBytes)
		}

		if err := ctx.Err(); err != nil {
			return partial(err)
		}
	}

	if err := fs.store.EditFile(ctx, fileID, fileNode); err != nil {
		return partial(err)
	}
	if err := dirNode.PushEntry(fileName, fileID); err != nil {
		return partial(err)
	}
	if err := fs.store.EditDirectory(ctx, dirID, dirNode); err != nil {
		return partial(err)
	}

	return nil
}
