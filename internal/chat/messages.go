package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"batepapo/internal/model"
	"batepapo/internal/store"
)

// MessageStore is the storage the MessageLog needs.
type MessageStore interface {
	ParticipantExists(ctx context.Context, name string) (bool, error)
	InsertMessage(ctx context.Context, m model.Message) error
	ListMessages(ctx context.Context, viewer string, limit int) ([]model.Message, error)
	FindMessage(ctx context.Context, id string) (model.Message, error)
	DeleteMessage(ctx context.Context, id, owner string) error
}

// MessageLog is the append-only sequence of room messages.
type MessageLog struct {
	store MessageStore
	opts  options
}

// NewMessageLog creates a MessageLog backed by s.
func NewMessageLog(s MessageStore, opts ...Option) *MessageLog {
	return &MessageLog{store: s, opts: newOptions(opts)}
}

// Append validates m, checks that its sender is registered and stores it with
// a fresh ID and time. ID and Time set by the caller are ignored.
func (l *MessageLog) Append(ctx context.Context, m model.Message) (model.Message, error) {
	in := messageInput{
		From: identity(m.From),
		To:   identity(m.To),
		Text: strings.TrimSpace(m.Text),
		Type: model.MessageType(strings.TrimSpace(string(m.Type))),
	}
	if err := check(in); err != nil {
		return model.Message{}, err
	}

	registered, err := l.store.ParticipantExists(ctx, in.From)
	if err != nil {
		return model.Message{}, storeError("lookup sender", err)
	}
	if !registered {
		return model.Message{}, ErrUnknownSender
	}

	stored := model.Message{
		ID:   uuid.NewString(),
		From: in.From,
		To:   in.To,
		Text: m.Text,
		Type: in.Type,
		Time: l.opts.now().Format(model.TimeLayout),
	}
	if err := l.store.InsertMessage(ctx, stored); err != nil {
		return model.Message{}, storeError("append message", err)
	}

	l.opts.notifier.Publish(model.Event{Type: model.EventMessageCreated, Message: &stored})
	return stored, nil
}

// Query returns the messages viewer may read, oldest first. A nil limit
// returns all of them, a non-positive limit none, otherwise the newest
// *limit entries.
func (l *MessageLog) Query(ctx context.Context, viewer string, limit *int) ([]model.Message, error) {
	viewer = identity(viewer)
	n := 0
	if limit != nil {
		if *limit <= 0 {
			return []model.Message{}, nil
		}
		n = *limit
	}
	messages, err := l.store.ListMessages(ctx, viewer, n)
	if err != nil {
		return nil, storeError("query messages", err)
	}
	return messages, nil
}

// Delete removes message id on behalf of requester, who must be its sender.
func (l *MessageLog) Delete(ctx context.Context, id, requester string) error {
	requester = identity(requester)
	m, err := l.store.FindMessage(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return storeError("find message", err)
	}
	if m.From != requester {
		return ErrForbidden
	}

	if err := l.store.DeleteMessage(ctx, id, requester); err != nil {
		// deleted concurrently
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return storeError("delete message", err)
	}

	l.opts.notifier.Publish(model.Event{Type: model.EventMessageDeleted, ID: id, Message: &m})
	return nil
}
