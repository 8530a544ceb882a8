package msgfs

import "context"

// Entry describes one node discovered during a List walk: its full path
// (from the tree root), kind, and reported size (entry count for a
// directory, byte count for a file).
type Entry struct {
	Path string
	Kind NodeKind
	Size uint64
}

// listFrame is one pending directory to expand during a List walk.
type listFrame struct {
	id   BlockID
	path string
}

// List walks the tree rooted at path and returns that node followed by
// every node beneath it. If path references a file, the result holds only
// that file. A directory's entries are emitted together, in stored order,
// before its subdirectories are expanded depth-first. The walk is driven by
// an explicit stack of pending directories rather than recursive calls,
// so its memory use is bounded by tree breadth rather than tree depth
// (spec.md §9).
func (fs *FS) List(ctx context.Context, path string) ([]Entry, error) {
	root, rootID, err := fs.Traverse(ctx, path)
	if err != nil {
		return nil, err
	}
	if root.Kind != Directory {
		return []Entry{{Path: path, Kind: root.Kind, Size: root.Size()}}, nil
	}

	entries := []Entry{{Path: path, Kind: root.Kind, Size: root.Size()}}
	stack := []listFrame{{id: rootID, path: path}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dir, err := fs.store.GetDirectory(ctx, frame.id)
		if err != nil {
			return nil, err
		}

		// Emitted entries follow the directory's stored order; the pending
		// subdirectories are collected alongside and pushed onto the stack
		// in reverse afterward, so the stack's LIFO pop still visits them
		// in stored order despite being pushed last-to-first.
		var children []listFrame
		for _, e := range dir.Entries {
			childPath := frame.path + e.Name

			child, err := fs.store.GetAny(ctx, e.Block)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Path: childPath, Kind: child.Kind, Size: child.Size()})

			if child.Kind == Directory {
				children = append(children, listFrame{id: e.Block, path: childPath})
			}
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return entries, nil
}
