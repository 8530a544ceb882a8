package msgfs

import (
	"context"
	"fmt"
	"strings"
)

// Rename changes the name of the entry at path to newName, keeping it in
// the same parent directory and pointed at the same node (spec.md §4.6).
//
// newName must not be "/". If path addresses a directory (trailing '/'),
// newName must itself end in '/' and contain no other '/'; if path
// addresses a file, newName must not contain '/' at all — a rename never
// changes an entry's kind or moves it to a different directory.
func (fs *FS) Rename(ctx context.Context, path, newName string) error {
	if newName == "/" {
		return fmt.Errorf("%w: new name must not be \"/\"", ErrPathSyntax)
	}

	isDir := strings.HasSuffix(path, "/")
	slashPos := strings.IndexByte(newName, '/')
	switch {
	case isDir && slashPos != len(newName)-1:
		return fmt.Errorf("%w: new directory name must only have '/' at the end", ErrPathSyntax)
	case !isDir && slashPos >= 0:
		return fmt.Errorf("%w: new file name must not contain '/'", ErrPathSyntax)
	}

	parentPath, oldName, err := SplitPath(path, true, false)
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
	if parent.ContainsEntry(newName) {
		return ErrNameCollision
	}

	if err := parent.RenameEntry(oldName, newName); err != nil {
		return err
	}
	return fs.store.EditDirectory(ctx, parentID, parent)
}
