package msgfs

import "fmt"

// NodeKind distinguishes a Directory node from a File node. Encoded as a
// little-endian u64 at the start of every Node block.
type NodeKind uint64

const (
	Directory NodeKind = 0
	File      NodeKind = 1
)

func (k NodeKind) String() string {
	switch k {
	case Directory:
		return "Directory"
	case File:
		return "File"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint64(k))
	}
}
