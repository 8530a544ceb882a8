// End-to-end scenarios exercised against memblob.Store, an in-memory
// stand-in for a real message-log transport.
package msgfs_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/comicalcache/msgfs"
	"github.com/comicalcache/msgfs/memblob"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func openTestFS(t *testing.T) (*msgfs.FS, *memblob.Store) {
	t.Helper()
	store := memblob.New()
	fsys, err := msgfs.Open(context.Background(), store)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return fsys, store
}

// E1: bootstrapping twice against the same log resumes the same root.
func TestBootstrapResumesRoot(t *testing.T) {
	ctx := context.Background()
	store := memblob.New()

	fsys1, err := msgfs.Open(ctx, store)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}

	fsys2, err := msgfs.Open(ctx, store)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}

	if fsys1.RootID() != fsys2.RootID() {
		t.Fatalf("root id changed across bootstrap: %d != %d", fsys1.RootID(), fsys2.RootID())
	}
}

// E2: upload then download round-trips the exact plaintext.
func TestUploadDownloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	content := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 1000)

	if err := fsys.Upload(ctx, strings.NewReader(content), int64(len(content)), "/notes.txt", testKey); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	var out bytes.Buffer
	if err := fsys.Download(ctx, "/notes.txt", &out, testKey); err != nil {
		t.Fatalf("Download: %v", err)
	}

	if out.String() != content {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", out.Len(), len(content))
	}
}

// A file spanning multiple BLOCK_SIZE chunks still round-trips correctly.
func TestUploadDownloadMultiBlock(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	size := int64(msgfs.BLOCK_SIZE)*2 + 12345
	content := make([]byte, size)
	for i := range content {
		content[i] = byte(i)
	}

	if err := fsys.Upload(ctx, bytes.NewReader(content), size, "/big.bin", testKey); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	var out bytes.Buffer
	if err := fsys.Download(ctx, "/big.bin", &out, testKey); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !bytes.Equal(out.Bytes(), content) {
		t.Fatal("multi-block round trip mismatch")
	}
}

// E3: mkdir then upload into the new directory, then list it.
func TestMkdirThenUploadThenList(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	if err := fsys.Mkdir(ctx, "/docs/"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := fsys.Upload(ctx, strings.NewReader("hello"), 5, "/docs/a.txt", testKey); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	entries, err := fsys.List(ctx, "/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var sawDir, sawFile bool
	for _, e := range entries {
		switch e.Path {
		case "/docs/":
			sawDir = true
		case "/docs/a.txt":
			sawFile = true
		}
	}
	if !sawDir || !sawFile {
		t.Fatalf("expected to see /docs/ and /docs/a.txt in listing, got %+v", entries)
	}
}

// List reports siblings within one directory in their stored (creation)
// order, not reversed by the stack-based walk's internal push order.
func TestListPreservesSiblingOrder(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	if err := fsys.Mkdir(ctx, "/b/"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Upload(ctx, strings.NewReader("x"), 1, "/x.txt", testKey); err != nil {
		t.Fatal(err)
	}

	entries, err := fsys.List(ctx, "/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var order []string
	for _, e := range entries {
		if e.Path == "/b/" || e.Path == "/x.txt" {
			order = append(order, e.Path)
		}
	}
	if len(order) != 2 || order[0] != "/b/" || order[1] != "/x.txt" {
		t.Fatalf("expected [/b/ /x.txt] in stored order, got %v", order)
	}
}

// E4: renaming a file keeps it addressable under the new name only.
func TestRename(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	if err := fsys.Upload(ctx, strings.NewReader("x"), 1, "/old.txt", testKey); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Rename(ctx, "/old.txt", "new.txt"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	if _, _, err := fsys.Traverse(ctx, "/old.txt"); err == nil {
		t.Fatal("old name should no longer resolve")
	}
	if _, _, err := fsys.Traverse(ctx, "/new.txt"); err != nil {
		t.Fatalf("new name should resolve: %v", err)
	}
}

// E5: moving a file into a subdirectory updates both its parent-directory
// listing and its own recorded ParentBlockID.
func TestMoveUpdatesParent(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	if err := fsys.Mkdir(ctx, "/archive/"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Upload(ctx, strings.NewReader("x"), 1, "/report.txt", testKey); err != nil {
		t.Fatal(err)
	}

	if err := fsys.Mv(ctx, "/report.txt", "/archive/"); err != nil {
		t.Fatalf("Mv: %v", err)
	}

	if _, _, err := fsys.Traverse(ctx, "/report.txt"); err == nil {
		t.Fatal("source path should no longer resolve")
	}

	moved, _, err := fsys.Traverse(ctx, "/archive/report.txt")
	if err != nil {
		t.Fatalf("moved file should resolve: %v", err)
	}

	archiveDir, archiveID, err := fsys.Traverse(ctx, "/archive/")
	if err != nil {
		t.Fatal(err)
	}
	_ = archiveDir
	if moved.ParentBlockID != archiveID {
		t.Fatalf("moved node's ParentBlockID = %d, want %d", moved.ParentBlockID, archiveID)
	}
}

// E6: recursive rm removes a directory and everything beneath it; a
// subsequent traversal of the directory fails and the log holds fewer
// blocks than before.
func TestRemoveRecursive(t *testing.T) {
	ctx := context.Background()
	fsys, store := openTestFS(t)

	if err := fsys.Mkdir(ctx, "/tree/"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Mkdir(ctx, "/tree/sub/"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Upload(ctx, strings.NewReader("leaf"), 4, "/tree/sub/leaf.txt", testKey); err != nil {
		t.Fatal(err)
	}

	before := store.Len()

	if err := fsys.Rm(ctx, "/tree/", false, true); err != nil {
		t.Fatalf("Rm: %v", err)
	}

	if _, _, err := fsys.Traverse(ctx, "/tree/"); err == nil {
		t.Fatal("removed directory should no longer resolve")
	}

	after := store.Len()
	if after >= before {
		t.Fatalf("expected blocks to be deleted: before=%d after=%d", before, after)
	}
}

// Removing a file with recursive=true is rejected.
func TestRemoveRecursiveOnFileRejected(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	if err := fsys.Upload(ctx, strings.NewReader("x"), 1, "/f.txt", testKey); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Rm(ctx, "/f.txt", false, true); err == nil {
		t.Fatal("expected an error removing a file recursively")
	}
}

// Removing a directory without recursive=true is rejected.
func TestRemoveDirectoryWithoutRecursiveRejected(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	if err := fsys.Mkdir(ctx, "/d/"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Rm(ctx, "/d/", false, false); err == nil {
		t.Fatal("expected an error removing a directory without recursive=true")
	}
}

// Quick-remove drops the directory entry but leaves the blocks orphaned.
func TestRemoveQuickLeavesBlocksOrphaned(t *testing.T) {
	ctx := context.Background()
	fsys, store := openTestFS(t)

	if err := fsys.Upload(ctx, strings.NewReader("x"), 1, "/f.txt", testKey); err != nil {
		t.Fatal(err)
	}
	before := store.Len()

	if err := fsys.Rm(ctx, "/f.txt", true, false); err != nil {
		t.Fatalf("Rm: %v", err)
	}

	if _, _, err := fsys.Traverse(ctx, "/f.txt"); err == nil {
		t.Fatal("removed file should no longer resolve")
	}
	if store.Len() != before {
		t.Fatalf("quick remove should not delete blocks: before=%d after=%d", before, store.Len())
	}
}

// Replace composes Rm+Upload: the old content is gone, the new content readable.
func TestReplace(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	if err := fsys.Upload(ctx, strings.NewReader("old content"), 11, "/r.txt", testKey); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Replace(ctx, strings.NewReader("new!"), 4, "/r.txt", testKey, false); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	var out bytes.Buffer
	if err := fsys.Download(ctx, "/r.txt", &out, testKey); err != nil {
		t.Fatal(err)
	}
	if out.String() != "new!" {
		t.Fatalf("got %q, want %q", out.String(), "new!")
	}
}

// Quick-replace leaves the old file's blocks orphaned instead of deleting them.
func TestReplaceQuickLeavesBlocksOrphaned(t *testing.T) {
	ctx := context.Background()
	fsys, store := openTestFS(t)

	if err := fsys.Upload(ctx, strings.NewReader("old content"), 11, "/r.txt", testKey); err != nil {
		t.Fatal(err)
	}
	before := store.Len()

	if err := fsys.Replace(ctx, strings.NewReader("new!"), 4, "/r.txt", testKey, true); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if store.Len() <= before {
		t.Fatalf("expected new blocks to be added on top of orphaned old ones: before=%d after=%d", before, store.Len())
	}

	var out bytes.Buffer
	if err := fsys.Download(ctx, "/r.txt", &out, testKey); err != nil {
		t.Fatal(err)
	}
	if out.String() != "new!" {
		t.Fatalf("got %q, want %q", out.String(), "new!")
	}
}

// Uploading a file larger than MAX_FILE_SIZE is rejected before any block is written.
func TestUploadTooLarge(t *testing.T) {
	ctx := context.Background()
	fsys, store := openTestFS(t)
	before := store.Len()

	err := fsys.Upload(ctx, zeroReader{}, int64(msgfs.MAX_FILE_SIZE)+1, "/huge.bin", testKey)
	if err == nil {
		t.Fatal("expected an error uploading an over-sized file")
	}
	if store.Len() != before {
		t.Fatalf("no blocks should have been written, got %d new", store.Len()-before)
	}
}

// Uploading to a name that already exists is rejected.
func TestUploadNameCollision(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	if err := fsys.Upload(ctx, strings.NewReader("a"), 1, "/dup.txt", testKey); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Upload(ctx, strings.NewReader("b"), 1, "/dup.txt", testKey); err == nil {
		t.Fatal("expected a name collision error")
	}
}

// Downloading a path that names a directory is rejected.
func TestDownloadDirectoryRejected(t *testing.T) {
	ctx := context.Background()
	fsys, _ := openTestFS(t)

	if err := fsys.Mkdir(ctx, "/d/"); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := fsys.Download(ctx, "/d/", &out, testKey); err == nil {
		t.Fatal("expected an error downloading a directory path")
	}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
