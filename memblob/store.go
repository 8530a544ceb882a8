// Package memblob provides an in-memory msgfs.BlobLog, standing in for a
// real message-log transport in tests the way mock_test.go's mockReader
// stands in for a real squashfs image reader.
package memblob

import (
	"context"
	"fmt"
	"sync"

	"github.com/comicalcache/msgfs"
)

// Store is a msgfs.BlobLog backed by an in-process map. It never persists
// anything and is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	next  uint64
	blobs map[msgfs.BlockID][]byte
	topic string
	has   bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{blobs: make(map[msgfs.BlockID][]byte)}
}

func (s *Store) Send(ctx context.Context, data []byte, label string) (msgfs.BlockID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := msgfs.BlockID(s.next)
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[id] = cp
	return id, nil
}

func (s *Store) Edit(ctx context.Context, id msgfs.BlockID, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return fmt.Errorf("memblob: edit of unknown block %d", id)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[id] = cp
	return nil
}

func (s *Store) Delete(ctx context.Context, id msgfs.BlockID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return fmt.Errorf("memblob: delete of unknown block %d", id)
	}
	delete(s.blobs, id)
	return nil
}

func (s *Store) Read(ctx context.Context, id msgfs.BlockID) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[id]
	if !ok {
		return nil, fmt.Errorf("memblob: read of unknown block %d", id)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *Store) GetTopic(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic, s.has, nil
}

func (s *Store) SetTopic(ctx context.Context, topic string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topic = topic
	s.has = true
	return nil
}

// Len reports how many blocks are currently stored, for test assertions
// about orphaned blocks after a partial write or a quick delete.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
