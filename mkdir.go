package msgfs

import (
	"context"
	"fmt"
)

// Mkdir creates a new, empty Directory node at path, which must end in
// '/' (spec.md §4.6). Its parent must already exist, have room for one
// more entry, and not already contain an entry with this name.
func (fs *FS) Mkdir(ctx context.Context, path string) error {
	parentPath, name, err := SplitPath(path, true, true)
	if err != nil {
		return err
	}

	parent, parentID, err := fs.Traverse(ctx, parentPath)
	if err != nil {
		return err
	}
	if parent.Kind != Directory {
		return fmt.Errorf("%w: %q is not a directory", ErrKindMismatch, parentPath)
	}
	if parent.IsFull() {
		return ErrDirectoryFull
	}
	if parent.ContainsEntry(name) {
		return ErrNameCollision
	}

	_, childID, err := fs.store.CreateDirectory(ctx, parentID)
	if err != nil {
		return err
	}

	if err := parent.PushEntry(name, childID); err != nil {
		return err
	}
	return fs.store.EditDirectory(ctx, parentID, parent)
}
