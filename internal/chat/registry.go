package chat

import (
	"context"
	"errors"
	"time"

	"batepapo/internal/model"
	"batepapo/internal/store"
)

// ParticipantStore is the storage the Registry needs.
type ParticipantStore interface {
	CreateParticipant(ctx context.Context, p model.Participant, join model.Message) error
	ListParticipants(ctx context.Context) ([]model.Participant, error)
	TouchParticipant(ctx context.Context, name string, at time.Time) error
}

// Registry tracks the participants currently in the room.
type Registry struct {
	store ParticipantStore
	opts  options
}

// NewRegistry creates a Registry backed by s.
func NewRegistry(s ParticipantStore, opts ...Option) *Registry {
	return &Registry{store: s, opts: newOptions(opts)}
}

// Register adds name to the room and announces it. The participant and its
// join message are written together, so either both exist or neither does.
func (r *Registry) Register(ctx context.Context, name string) (model.Participant, error) {
	in := registration{Name: identity(name)}
	if err := check(in); err != nil {
		return model.Participant{}, err
	}

	now := r.opts.now()
	p := model.Participant{Name: in.Name, LastSeen: now}
	join := statusMessage(in.Name, model.JoinText, now)

	if err := r.store.CreateParticipant(ctx, p, join); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return model.Participant{}, ErrNameTaken
		}
		return model.Participant{}, storeError("register participant", err)
	}

	r.opts.notifier.Publish(model.Event{
		Type:    model.EventParticipantJoined,
		Name:    p.Name,
		Message: &join,
	})
	return p, nil
}

// List returns the active participants.
func (r *Registry) List(ctx context.Context) ([]model.Participant, error) {
	participants, err := r.store.ListParticipants(ctx)
	if err != nil {
		return nil, storeError("list participants", err)
	}
	return participants, nil
}

// Heartbeat refreshes the last-seen time of name.
func (r *Registry) Heartbeat(ctx context.Context, name string) error {
	name = identity(name)
	if name == "" {
		return ErrMissingIdentity
	}
	if err := r.store.TouchParticipant(ctx, name, r.opts.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return storeError("heartbeat", err)
	}
	return nil
}
