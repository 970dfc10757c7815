package chat

import (
	"context"
	"log"
	"sync"
	"time"

	"batepapo/internal/model"
)

// SweepStore is the storage the Sweeper needs.
type SweepStore interface {
	ListParticipants(ctx context.Context) ([]model.Participant, error)
	ExpireParticipant(ctx context.Context, name string, cutoff time.Time, departure model.Message) (bool, error)
}

// Sweeper periodically evicts participants that stopped sending heartbeats.
type Sweeper struct {
	store     SweepStore
	threshold time.Duration
	interval  time.Duration
	opts      options
	wg        sync.WaitGroup
}

// NewSweeper evicts participants idle for longer than threshold, checking
// every interval.
func NewSweeper(s SweepStore, threshold, interval time.Duration, opts ...Option) *Sweeper {
	return &Sweeper{
		store:     s,
		threshold: threshold,
		interval:  interval,
		opts:      newOptions(opts),
	}
}

// Run sweeps on every tick until ctx is cancelled, then waits for sweeps in
// flight. A slow sweep does not delay the next one.
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("[Sweeper] Started (threshold=%s, interval=%s)", s.threshold, s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			log.Println("[Sweeper] Stopped")
			return
		case <-ticker.C:
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.Sweep(ctx)
			}()
		}
	}
}

// Sweep runs one eviction pass and returns how many participants it removed.
func (s *Sweeper) Sweep(ctx context.Context) int {
	participants, err := s.store.ListParticipants(ctx)
	if err != nil {
		log.Printf("[Sweeper] ❌ Failed to list participants: %v", err)
		return 0
	}

	now := s.opts.now()
	cutoff := now.Add(-s.threshold)
	evicted := 0
	for _, p := range participants {
		if !p.LastSeen.Before(cutoff) {
			continue
		}
		if s.expire(ctx, p.Name, cutoff, now) {
			evicted++
		}
	}

	if evicted > 0 {
		log.Printf("[Sweeper] ✅ Evicted %d inactive participant(s)", evicted)
	}
	return evicted
}

func (s *Sweeper) expire(ctx context.Context, name string, cutoff, now time.Time) (removed bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Sweeper] ❌ Panic while expiring %q: %v", name, r)
			removed = false
		}
	}()

	departure := statusMessage(name, model.LeaveText, now)
	removed, err := s.store.ExpireParticipant(ctx, name, cutoff, departure)
	if err != nil {
		log.Printf("[Sweeper] ❌ Failed to expire %q: %v", name, err)
		return false
	}
	if removed {
		s.opts.notifier.Publish(model.Event{
			Type:    model.EventParticipantLeft,
			Name:    name,
			Message: &departure,
		})
	}
	return removed
}
