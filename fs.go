package msgfs

import (
	"context"
	"fmt"
	"strconv"
)

// FS is the filesystem built on top of a BlobLog: path resolution, node
// mutation, and the chunked upload/download pipeline (spec.md §4.6).
// Scheduling is single-threaded cooperative (spec.md §5) — FS holds no
// locks and assumes one driver invocation per process.
type FS struct {
	store  *NodeStore
	log    BlobLog
	rootID BlockID
}

// Open bootstraps an FS against log: it reads the root BlockID from the
// channel topic, or creates the root directory and records its id there
// if the topic is empty (spec.md §4.7).
func Open(ctx context.Context, log BlobLog) (*FS, error) {
	store := NewNodeStore(log)

	topic, ok, err := log.GetTopic(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: reading channel topic: %w", err)
	}

	if ok && topic != "" {
		id, err := strconv.ParseUint(topic, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: channel topic %q is not a valid root block id: %w", topic, err)
		}
		return &FS{store: store, log: log, rootID: BlockID(id)}, nil
	}

	_, rootID, err := store.CreateDirectory(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: creating root directory: %w", err)
	}
	if err := log.SetTopic(ctx, strconv.FormatUint(uint64(rootID), 10)); err != nil {
		return nil, fmt.Errorf("bootstrap: saving root block id to channel topic: %w", err)
	}

	return &FS{store: store, log: log, rootID: rootID}, nil
}

// RootID returns the BlockID of the root directory node.
func (fs *FS) RootID() BlockID {
	return fs.rootID
}

// Store exposes the underlying NodeStore for callers that need direct node access (e.g. the FUSE binding).
func (fs *FS) Store() *NodeStore {
	return fs.store
}
