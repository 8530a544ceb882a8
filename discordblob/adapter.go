// Package discordblob binds msgfs.BlobLog to a single Discord text channel
// via github.com/bwmarrin/discordgo: each block is one message carrying
// exactly one file attachment, and the channel topic carries the root
// block id (spec.md §4.3, §6).
package discordblob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/comicalcache/msgfs"
)

// Adapter is a msgfs.BlobLog backed by one Discord channel.
type Adapter struct {
	session   *discordgo.Session
	channelID string
}

// New returns an Adapter that sends and reads blocks in channelID using an
// already-authenticated session.
func New(session *discordgo.Session, channelID string) *Adapter {
	return &Adapter{session: session, channelID: channelID}
}

func (a *Adapter) Send(ctx context.Context, data []byte, label string) (msgfs.BlockID, error) {
	msg, err := a.session.ChannelMessageSendComplex(a.channelID, &discordgo.MessageSend{
		Files: []*discordgo.File{{
			Name:        label,
			ContentType: "application/octet-stream",
			Reader:      bytes.NewReader(data),
		}},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("discordblob: send: %w", err)
	}
	id, err := strconv.ParseUint(msg.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("discordblob: message id %q is not numeric: %w", msg.ID, err)
	}
	return msgfs.BlockID(id), nil
}

func (a *Adapter) Edit(ctx context.Context, id msgfs.BlockID, data []byte) error {
	messageID := strconv.FormatUint(uint64(id), 10)
	edit := discordgo.NewMessageEdit(a.channelID, messageID)
	// Clearing Attachments and supplying Files replaces the message's
	// attachment wholesale rather than appending to it.
	attachments := []*discordgo.MessageAttachment{}
	edit.Attachments = &attachments
	edit.Files = []*discordgo.File{{
		Name:        "data",
		ContentType: "application/octet-stream",
		Reader:      bytes.NewReader(data),
	}}
	_, err := a.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discordblob: edit %d: %w", id, err)
	}
	return nil
}

func (a *Adapter) Delete(ctx context.Context, id msgfs.BlockID) error {
	messageID := strconv.FormatUint(uint64(id), 10)
	if err := a.session.ChannelMessageDelete(a.channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discordblob: delete %d: %w", id, err)
	}
	return nil
}

func (a *Adapter) Read(ctx context.Context, id msgfs.BlockID) ([]byte, error) {
	messageID := strconv.FormatUint(uint64(id), 10)
	msg, err := a.session.ChannelMessage(a.channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discordblob: fetch message %d: %w", id, err)
	}
	if len(msg.Attachments) == 0 {
		return nil, fmt.Errorf("discordblob: message %d has no attachment", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, msg.Attachments[0].URL, nil)
	if err != nil {
		return nil, fmt.Errorf("discordblob: building attachment request for %d: %w", id, err)
	}
	resp, err := a.session.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discordblob: fetching attachment for %d: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discordblob: attachment fetch for %d: unexpected status %s", id, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (a *Adapter) GetTopic(ctx context.Context) (string, bool, error) {
	ch, err := a.session.Channel(a.channelID, discordgo.WithContext(ctx))
	if err != nil {
		return "", false, fmt.Errorf("discordblob: fetching channel: %w", err)
	}
	return ch.Topic, ch.Topic != "", nil
}

func (a *Adapter) SetTopic(ctx context.Context, topic string) error {
	_, err := a.session.ChannelEdit(a.channelID, &discordgo.ChannelEdit{Topic: topic}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discordblob: setting channel topic: %w", err)
	}
	return nil
}
