//go:build mount

// Package fuse exposes a read-only view of an msgfs.FS tree as a FUSE
// mount, using the high-level github.com/hanwen/go-fuse/v2/fs API (unlike
// the low-level fuse.RawFileSystem hookup the squashfs package uses, this
// tree builds each child Inode lazily from Lookup rather than walking an
// on-disk inode table up front).
package fuse

import (
	"context"
	"fmt"
	"sync"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/comicalcache/msgfs"
)

// Options configures how file contents are read back during a mount.
type Options struct {
	Key        []byte
	Compressor msgfs.Compressor
}

// node is one directory or file in the mounted tree.
type node struct {
	fs.Inode

	fsys *msgfs.FS
	opts Options

	blockID msgfs.BlockID
	n       msgfs.Node
}

var _ fs.NodeLookuper = (*node)(nil)
var _ fs.NodeReaddirer = (*node)(nil)
var _ fs.NodeOpener = (*node)(nil)
var _ fs.NodeGetattrer = (*node)(nil)

// Root returns the Inode to pass to fs.Mount as the tree's root. If path
// is empty, the mount exposes the whole tree from "/"; otherwise path
// (which must name a directory, i.e. end in '/') is resolved first and
// only the subtree beneath it is exposed.
func Root(fsys *msgfs.FS, path string, opts Options) (fs.InodeEmbedder, error) {
	if path == "" {
		path = "/"
	}

	ctx := context.Background()
	root, rootID, err := fsys.Traverse(ctx, path)
	if err != nil {
		return nil, err
	}
	if root.Kind != msgfs.Directory {
		return nil, fmt.Errorf("%q is not a directory", path)
	}
	return &node{fsys: fsys, opts: opts, blockID: rootID, n: root}, nil
}

func (n *node) childMode() uint32 {
	if n.n.Kind == msgfs.Directory {
		return fuse.S_IFDIR | 0o555
	}
	return fuse.S_IFREG | 0o444
}

func (n *node) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = n.childMode()
	out.Size = n.n.Size()
	return 0
}

func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	if n.n.Kind != msgfs.Directory {
		return nil, syscall.ENOTDIR
	}

	// Directory entries are stored with their own trailing '/' when they
	// address a subdirectory; try the plain name first, then with a slash.
	entry, ok := n.n.GetEntry(name)
	if !ok {
		entry, ok = n.n.GetEntry(name + "/")
	}
	if !ok {
		return nil, syscall.ENOENT
	}

	child, err := n.fsys.Store().GetAny(ctx, entry.Block)
	if err != nil {
		return nil, syscall.EIO
	}

	childNode := &node{fsys: n.fsys, opts: n.opts, blockID: entry.Block, n: child}
	stable := fs.StableAttr{Mode: childNode.childMode(), Ino: uint64(entry.Block)}
	inode := n.NewInode(ctx, childNode, stable)
	out.Mode = childNode.childMode()
	out.Size = child.Size()
	return inode, 0
}

func (n *node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	if n.n.Kind != msgfs.Directory {
		return nil, syscall.ENOTDIR
	}
	entries := make([]fuse.DirEntry, 0, len(n.n.Entries))
	for _, e := range n.n.Entries {
		mode := uint32(fuse.S_IFREG)
		name := e.Name
		if len(name) > 0 && name[len(name)-1] == '/' {
			mode = fuse.S_IFDIR
			name = name[:len(name)-1]
		}
		entries = append(entries, fuse.DirEntry{Name: name, Mode: mode, Ino: uint64(e.Block)})
	}
	return fs.NewListDirStream(entries), 0
}

// fileHandle serves reads from a whole-file plaintext buffer decrypted on Open.
type fileHandle struct {
	mu   sync.Mutex
	data []byte
}

func (n *node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if n.n.Kind != msgfs.File {
		return nil, 0, syscall.EISDIR
	}

	var buf writerAt
	var opts []msgfs.DownloadOption
	if n.opts.Compressor != nil {
		opts = append(opts, msgfs.WithDownloadCompressor(n.opts.Compressor))
	}
	if err := n.fsys.DownloadNode(ctx, n.n, &buf, n.opts.Key, opts...); err != nil {
		return nil, 0, syscall.EIO
	}

	return &fileHandle{data: buf.Bytes()}, fuse.FOPEN_KEEP_CACHE, 0
}

func (h *fileHandle) Read(ctx context.Context, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if off >= int64(len(h.data)) {
		return fuse.ReadResultData(nil), 0
	}
	end := off + int64(len(dest))
	if end > int64(len(h.data)) {
		end = int64(len(h.data))
	}
	return fuse.ReadResultData(h.data[off:end]), 0
}

// writerAt accumulates sequential writes; msgfs.Download only ever writes
// forward, so this is equivalent to a plain growable byte buffer.
type writerAt struct {
	buf []byte
}

func (w *writerAt) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *writerAt) Bytes() []byte { return w.buf }
