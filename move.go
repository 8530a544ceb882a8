package msgfs

import (
	"context"
	"fmt"
)

// Mv moves the entry at src into the directory at destDir, keeping its
// original name (spec.md §4.6). destDir must already resolve to a
// directory — unlike a Unix mv, the caller cannot rename the entry in the
// same call; combine with Rename for that.
//
// Unlike the original implementation, Mv rewrites the moved node's
// ParentBlockID to point at destDir before re-publishing it, so the
// node's recorded parent always agrees with the directory entry that
// references it.
func (fs *FS) Mv(ctx context.Context, src, destDir string) error {
	if src == destDir {
		return nil
	}
	if src == "/" {
		return ErrNotRoot
	}

	_, srcName, err := SplitPath(src, true, false)
	if err != nil {
		return err
	}

	srcNode, srcID, err := fs.Traverse(ctx, src)
	if err != nil {
		return err
	}

	srcParent, err := fs.store.GetDirectory(ctx, srcNode.ParentBlockID)
	if err != nil {
		return err
	}
	srcParentID := srcNode.ParentBlockID

	destNode, destID, err := fs.Traverse(ctx, destDir)
	if err != nil {
		return err
	}
	if destNode.Kind != Directory {
		return fmt.Errorf("%w: %q is not a directory", ErrKindMismatch, destDir)
	}
	if destNode.IsFull() {
		return ErrDirectoryFull
	}
	if destNode.ContainsEntry(srcName) {
		return ErrNameCollision
	}

	if err := srcParent.DeleteEntry(srcName); err != nil {
		return err
	}
	if err := destNode.PushEntry(srcName, srcID); err != nil {
		return err
	}

	srcNode.ParentBlockID = destID
	if srcNode.Kind == Directory {
		err = fs.store.EditDirectory(ctx, srcID, srcNode)
	} else {
		err = fs.store.EditFile(ctx, srcID, srcNode)
	}
	if err != nil {
		return err
	}

	if err := fs.store.EditDirectory(ctx, srcParentID, srcParent); err != nil {
		return err
	}
	if srcParentID == destID {
		return nil
	}
	return fs.store.EditDirectory(ctx, destID, destNode)
}
