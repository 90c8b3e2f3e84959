package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count     int
	resetTime time.Time
}

// MemoryStore keeps one counter per identifier in a mutex-guarded map.
// Counters are per process: multiple instances do not share quota, which is
// acceptable for single-instance deployments only.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}

	// discard expired windows every minute to bound memory
	go func() {
		for {
			time.Sleep(time.Minute)
			s.sweep()
		}
	}()

	return s
}

func (s *MemoryStore) Allow(_ context.Context, key string, quota Quota) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	e, ok := s.entries[key]
	if !ok || e.resetTime.Before(now) {
		s.entries[key] = &entry{count: 1, resetTime: now.Add(quota.Window)}
		return Result{
			Allowed:   true,
			Remaining: quota.MaxRequests - 1,
			ResetIn:   quota.Window,
		}, nil
	}

	if e.count >= quota.MaxRequests {
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetIn:   e.resetTime.Sub(now),
		}, nil
	}

	e.count++
	return Result{
		Allowed:   true,
		Remaining: quota.MaxRequests - e.count,
		ResetIn:   e.resetTime.Sub(now),
	}, nil
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if e.resetTime.Before(now) {
			delete(s.entries, key)
		}
	}
}
