package msgfs

import (
	"context"
	"io"
)

// Replace overwrites the file at destination with the contents of r,
// composed as an Rm of the existing file followed by an Upload of the new
// one (spec.md §4.6 Open Question). quick is forwarded to Rm: when true,
// destination's existing data blocks are left orphaned in the log rather
// than deleted. This is deliberately not atomic: a failure or
// cancellation between the two steps can leave destination missing, with
// the new data orphaned in the log and never linked in. No other
// operation in this package swaps a file's contents atomically either:
// Mv keeps the entry's name, and Rename rejects a name that already exists.
func (fs *FS) Replace(ctx context.Context, r io.Reader, size int64, destination string, key []byte, quick bool, opts ...UploadOption) error {
	if err := fs.Rm(ctx, destination, quick, false); err != nil {
		return err
	}
	return fs.Upload(ctx, r, size, destination, key, opts...)
}
