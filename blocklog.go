package msgfs

import "context"

// BlobLog is the narrow capability set the core needs from the remote
// message log (spec.md §4.3, §6). Implementations translate each method
// to whatever the concrete transport calls a message/attachment/topic
// operation; the core never assumes more than this interface. See
// memblob.Store for an in-memory fake used in tests, and discordblob.Adapter
// for a real binding.
type BlobLog interface {
	// Send appends a new message carrying one attachment of data, labeled
	// for transport-side hinting only (the core never relies on the label
	// when reading a block back — kind is recovered from the Node header).
	Send(ctx context.Context, data []byte, label string) (BlockID, error)

	// Edit replaces the single attachment of an existing message.
	Edit(ctx context.Context, id BlockID, data []byte) error

	// Delete removes a message and its attachment.
	Delete(ctx context.Context, id BlockID) error

	// Read fetches the bytes of a message's first attachment.
	Read(ctx context.Context, id BlockID) ([]byte, error)

	// GetTopic returns the channel-wide free-form text field, if set.
	GetTopic(ctx context.Context) (string, bool, error)

	// SetTopic overwrites the channel-wide free-form text field.
	SetTopic(ctx context.Context, topic string) error
}
