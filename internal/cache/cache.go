// Package cache is a read-through cache for list and detail queries, with
// explicit invalidation and per-key request de-duplication.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var SystemClock Clock = ClockFunc(time.Now)

// Backend stores raw values. Patterns use glob syntax where '*' matches any run
// of characters.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) (int, error)
	// Purge drops expired entries and reports how many were removed.
	Purge(ctx context.Context) int
}

type Stats struct {
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Sets          int64 `json:"sets"`
	Invalidations int64 `json:"invalidations"`
	Evictions     int64 `json:"evictions"`
	InFlight      int64 `json:"inFlight"`
	Shared        int64 `json:"shared"`
}

type Service struct {
	backend    Backend
	clock      Clock
	defaultTTL time.Duration
	group      singleflight.Group

	// epoch changes on every invalidation. Loads that started in an older
	// epoch are not written back, and singleflight calls are scoped to it.
	epochMu sync.RWMutex
	epoch   uint64

	hits, misses, sets, invalidations, evictions, inFlight, shared atomic.Int64
}

func New(backend Backend, clock Clock, defaultTTL time.Duration) *Service {
	if clock == nil {
		clock = SystemClock
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Service{backend: backend, clock: clock, defaultTTL: defaultTTL}
}

func (s *Service) Clock() Clock {
	if s == nil {
		return SystemClock
	}
	return s.clock
}

// Get decodes a cached value into dest. It reports false on a miss.
func (s *Service) Get(ctx context.Context, key string, dest any) (bool, error) {
	if s == nil {
		return false, nil
	}
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		s.misses.Add(1)
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.misses.Add(1)
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	s.hits.Add(1)
	return true, nil
}

func (s *Service) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, raw, ttl); err != nil {
		return err
	}
	s.sets.Add(1)
	return nil
}

// Fetch fills dest from the cache, or from loader on a miss. Concurrent misses
// for the same key share one loader call. Cache failures fall through to the
// loader.
func (s *Service) Fetch(ctx context.Context, key string, ttl time.Duration, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if s == nil {
		return load(ctx, dest, loader)
	}

	ok, err := s.Get(ctx, key, dest)
	if err != nil {
		slog.Warn("Cache Fetch read failed", "key", key, "error", err)
	}
	if ok {
		return nil
	}

	epoch := s.currentEpoch()
	ch := s.group.DoChan(key+"@"+strconv.FormatUint(epoch, 10), func() (any, error) {
		s.inFlight.Add(1)
		defer s.inFlight.Add(-1)

		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, raw, ttl, epoch)
		return raw, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		if res.Shared {
			s.shared.Add(1)
		}
		return json.Unmarshal(res.Val.([]byte), dest)
	}
}

func (s *Service) currentEpoch() uint64 {
	s.epochMu.RLock()
	defer s.epochMu.RUnlock()
	return s.epoch
}

// store writes a loaded value unless an invalidation happened since the load
// began. The read lock is held across the write so an invalidation either
// precedes it (and the write is skipped) or follows it (and deletes it).
func (s *Service) store(ctx context.Context, key string, raw []byte, ttl time.Duration, epoch uint64) {
	s.epochMu.RLock()
	defer s.epochMu.RUnlock()

	if s.epoch != epoch {
		slog.Debug("Cache Fetch result discarded after invalidation", "key", key)
		return
	}
	if err := s.backend.Set(ctx, key, raw, s.ttl(ttl)); err != nil {
		slog.Warn("Cache Fetch write failed", "key", key, "error", err)
		return
	}
	s.sets.Add(1)
}

func load(ctx context.Context, dest any, loader func(context.Context) (any, error)) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (s *Service) ttl(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return s.defaultTTL
	}
	return ttl
}

// InvalidatePattern removes every key matching pattern, e.g. "events:*".
func (s *Service) InvalidatePattern(ctx context.Context, pattern string) error {
	if s == nil {
		return nil
	}
	s.epochMu.Lock()
	s.epoch++
	s.epochMu.Unlock()

	n, err := s.backend.DeletePattern(ctx, pattern)
	if err != nil {
		slog.Error("Cache InvalidatePattern", "pattern", pattern, "error", err)
		return err
	}
	s.invalidations.Add(int64(n))
	return nil
}

func (s *Service) Cleanup(ctx context.Context) int {
	if s == nil {
		return 0
	}
	n := s.backend.Purge(ctx)
	s.evictions.Add(int64(n))
	return n
}

func (s *Service) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Sets:          s.sets.Load(),
		Invalidations: s.invalidations.Load(),
		Evictions:     s.evictions.Load(),
		InFlight:      s.inFlight.Load(),
		Shared:        s.shared.Load(),
	}
}
