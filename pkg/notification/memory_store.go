package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/vclock"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Notification
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Notification)}
}

func (s *MemoryStore) Create(ctx context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[n.ID] = n
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy with an independent clock so callers cannot mutate stored state.
	n.Clock = vclock.Copy(n.Clock)
	return &n, nil
}

func (s *MemoryStore) MarkRead(ctx context.Context, id string, clock vclock.Clock, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}

	n.IsRead = true
	n.Clock = vclock.Copy(clock)
	n.UpdatedAt = at
	s.records[id] = n
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, shopID string, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Notification
	for _, n := range s.records {
		if n.ShopID != shopID || !opts.visibleTo(&n) {
			continue
		}
		if opts.OnlyUnread && n.IsRead {
			continue
		}
		if len(opts.Types) > 0 && !containsType(opts.Types, n.Type) {
			continue
		}
		if opts.Since != nil && n.CreatedAt.Before(*opts.Since) {
			continue
		}
		n.Clock = vclock.Copy(n.Clock)
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	start := min(opts.Offset, len(out))
	end := len(out)
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}
	return out[start:end], nil
}

func (s *MemoryStore) CountUnread(ctx context.Context, shopID, staffID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scope := ListOptions{StaffID: staffID}
	var count int64
	for _, n := range s.records {
		if n.ShopID == shopID && !n.IsRead && scope.visibleTo(&n) {
			count++
		}
	}
	return count, nil
}

func containsType(types []Type, t Type) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}
