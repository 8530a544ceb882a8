package msgfs

import (
	"context"
	"fmt"
)

// RemoveOption configures an Rm call.
type RemoveOption func(*removeConfig)

type removeConfig struct {
	onBlockDeleted func(id BlockID)
}

// WithRemoveProgress registers a callback invoked after each block (node
// or data) is deleted during a recursive remove.
func WithRemoveProgress(fn func(id BlockID)) RemoveOption {
	return func(cfg *removeConfig) { cfg.onBlockDeleted = fn }
}

// workItem is one pending node to visit during a recursive delete walk.
// Using an explicit stack instead of call-stack recursion keeps the walk's
// memory bounded by tree breadth, not by tree depth (spec.md §9).
type workItem struct {
	id   BlockID
	node Node
}

// Rm deletes the entity at path (spec.md §4.6).
//
//   - A Directory may only be removed with recursive=true.
//   - A File may only be removed with recursive=false.
//   - quick=true skips deleting the target's own blocks (and, for a
//     directory, everything beneath it), leaving them as orphans in the
//     log but still removing the parent's directory entry so the tree
//     stays consistent.
func (fs *FS) Rm(ctx context.Context, path string, quick, recursive bool, opts ...RemoveOption) error {
	if path == "/" {
		return ErrNotRoot
	}

	var cfg removeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	_, leaf, err := SplitPath(path, true, false)
	if err != nil {
		return err
	}

	target, targetID, err := fs.Traverse(ctx, path)
	if err != nil {
		return err
	}

	switch {
	case target.Kind == Directory && !recursive:
		return fmt.Errorf("%w: %q is a directory, pass recursive=true", ErrRecursiveMismatch, path)
	case target.Kind == File && recursive:
		return fmt.Errorf("%w: %q is a file, cannot delete recursively", ErrRecursiveMismatch, path)
	}

	parent, err := fs.store.GetDirectory(ctx, target.ParentBlockID)
	if err != nil {
		return err
	}

	if !quick {
		if err := fs.deleteSubtree(ctx, targetID, target, cfg); err != nil {
			return err
		}
	}

	if err := parent.DeleteEntry(leaf); err != nil {
		return err
	}
	return fs.store.EditDirectory(ctx, target.ParentBlockID, parent)
}

// deleteSubtree destroys targetID and, if it is a directory, everything
// beneath it, as an explicit depth-first work stack rather than
// recursive calls.
func (fs *FS) deleteSubtree(ctx context.Context, targetID BlockID, target Node, cfg removeConfig) error {
	queue := []workItem{{id: targetID, node: target}}
	// nodeOrder accumulates node blocks in visit order; we delete data
	// blocks as we discover them (files are leaves) and node blocks only
	// after all their descendants are gone, so we pop node deletions in
	// reverse discovery order.
	var nodeOrder []BlockID

	for len(queue) > 0 {
		item := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		switch item.node.Kind {
		case File:
			for _, b := range item.node.Blocks {
				if err := fs.store.DeleteBlock(ctx, b.Block); err != nil {
					return err
				}
				if cfg.onBlockDeleted != nil {
					cfg.onBlockDeleted(b.Block)
				}
			}
			nodeOrder = append(nodeOrder, item.id)

		case Directory:
			nodeOrder = append(nodeOrder, item.id)
			for _, e := range item.node.Entries {
				child, err := fs.store.GetAny(ctx, e.Block)
				if err != nil {
					return err
				}
				queue = append(queue, workItem{id: e.Block, node: child})
			}
		}
	}

	// Delete node blocks last-discovered-first so a directory is only
	// removed after everything it referenced is already gone.
	for i := len(nodeOrder) - 1; i >= 0; i-- {
		if err := fs.store.DeleteBlock(ctx, nodeOrder[i]); err != nil {
			return err
		}
		if cfg.onBlockDeleted != nil {
			cfg.onBlockDeleted(nodeOrder[i])
		}
	}
	return nil
}
