package msgfs

import (
	"context"
	"fmt"
)

const (
	labelNode = "node"
	labelData = "data"
)

// NodeStore wraps a BlobLog with kind-checked typed access to Node blocks
// and opaque data blocks (spec.md §4.4). It holds no state of its own.
type NodeStore struct {
	log BlobLog
}

// NewNodeStore returns a NodeStore backed by log.
func NewNodeStore(log BlobLog) *NodeStore {
	return &NodeStore{log: log}
}

func (s *NodeStore) createNode(ctx context.Context, n Node) (Node, BlockID, error) {
	data, err := EncodeNode(n)
	if err != nil {
		return Node{}, 0, err
	}
	id, err := s.log.Send(ctx, data, labelNode)
	if err != nil {
		return Node{}, 0, &TransportError{Op: "send node", Err: err}
	}
	return n, id, nil
}

// CreateDirectory creates an empty Directory node under parent.
func (s *NodeStore) CreateDirectory(ctx context.Context, parent BlockID) (Node, BlockID, error) {
	return s.createNode(ctx, NewDirectoryNode(parent))
}

// CreateFile creates an empty File node under parent.
func (s *NodeStore) CreateFile(ctx context.Context, parent BlockID) (Node, BlockID, error) {
	return s.createNode(ctx, NewFileNode(parent))
}

func (s *NodeStore) getNode(ctx context.Context, id BlockID) (Node, error) {
	data, err := s.log.Read(ctx, id)
	if err != nil {
		return Node{}, &TransportError{Op: "read node", BlockID: id, Err: err}
	}
	return DecodeNode(data)
}

// GetAny reads and decodes a node of either kind.
func (s *NodeStore) GetAny(ctx context.Context, id BlockID) (Node, error) {
	return s.getNode(ctx, id)
}

// GetDirectory reads a node and rejects it if it isn't a Directory.
func (s *NodeStore) GetDirectory(ctx context.Context, id BlockID) (Node, error) {
	n, err := s.getNode(ctx, id)
	if err != nil {
		return Node{}, err
	}
	if n.Kind != Directory {
		return Node{}, fmt.Errorf("%w: block %d is %s, not Directory", ErrKindMismatch, id, n.Kind)
	}
	return n, nil
}

// GetFile reads a node and rejects it if it isn't a File.
func (s *NodeStore) GetFile(ctx context.Context, id BlockID) (Node, error) {
	n, err := s.getNode(ctx, id)
	if err != nil {
		return Node{}, err
	}
	if n.Kind != File {
		return Node{}, fmt.Errorf("%w: block %d is %s, not File", ErrKindMismatch, id, n.Kind)
	}
	return n, nil
}

func (s *NodeStore) editNode(ctx context.Context, id BlockID, n Node, want NodeKind) error {
	if n.Kind != want {
		return fmt.Errorf("%w: tried to edit %s node as %s", ErrKindMismatch, n.Kind, want)
	}
	data, err := EncodeNode(n)
	if err != nil {
		return err
	}
	if err := s.log.Edit(ctx, id, data); err != nil {
		return &TransportError{Op: "edit node", BlockID: id, Err: err}
	}
	return nil
}

// EditDirectory re-encodes and writes back a Directory node.
func (s *NodeStore) EditDirectory(ctx context.Context, id BlockID, n Node) error {
	return s.editNode(ctx, id, n, Directory)
}

// EditFile re-encodes and writes back a File node.
func (s *NodeStore) EditFile(ctx context.Context, id BlockID, n Node) error {
	return s.editNode(ctx, id, n, File)
}

// CreateDataBlock stores an opaque (possibly encrypted) chunk.
func (s *NodeStore) CreateDataBlock(ctx context.Context, data []byte) (BlockID, error) {
	id, err := s.log.Send(ctx, data, labelData)
	if err != nil {
		return 0, &TransportError{Op: "send data block", Err: err}
	}
	return id, nil
}

// GetDataBlock fetches an opaque chunk's bytes.
func (s *NodeStore) GetDataBlock(ctx context.Context, id BlockID) ([]byte, error) {
	data, err := s.log.Read(ctx, id)
	if err != nil {
		return nil, &TransportError{Op: "read data block", BlockID: id, Err: err}
	}
	return data, nil
}

// DeleteBlock deletes any block (node or data) by id.
func (s *NodeStore) DeleteBlock(ctx context.Context, id BlockID) error {
	if err := s.log.Delete(ctx, id); err != nil {
		return &TransportError{Op: "delete block", BlockID: id, Err: err}
	}
	return nil
}
