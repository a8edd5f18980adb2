package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cimillas/slot-reserve/internal/cache"
	"github.com/cimillas/slot-reserve/internal/clock"
	"github.com/cimillas/slot-reserve/internal/domain"
)

type AvailabilityRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetSlotForUpdate(ctx context.Context, slotID string) (domain.Slot, error)
	CountActiveHolds(ctx context.Context, slotID string, now time.Time) (int, error)
}

const (
	defaultCacheTTL = 15 * time.Second
	defaultLockTTL  = 2 * time.Second
	defaultLockWait = 100 * time.Millisecond
)

// AvailabilityService computes remaining capacity for a slot, absorbing read
// traffic with a TTL cache and bounding concurrent recomputation with a
// short-lived stampede lock.
type AvailabilityService struct {
	repo     AvailabilityRepository
	kv       cache.Store
	clock    clock.Clock
	cacheTTL time.Duration
	lockTTL  time.Duration
	lockWait time.Duration
}

type AvailabilityServiceOption func(*AvailabilityService)

// WithCacheTTL overrides how long computed availability stays cached.
func WithCacheTTL(d time.Duration) AvailabilityServiceOption {
	return func(s *AvailabilityService) {
		if d > 0 {
			s.cacheTTL = d
		}
	}
}

// WithLockWait overrides the delay before re-checking the cache when another
// caller holds the stampede lock. Tests shrink it to avoid real sleeps.
func WithLockWait(d time.Duration) AvailabilityServiceOption {
	return func(s *AvailabilityService) {
		if d > 0 {
			s.lockWait = d
		}
	}
}

func NewAvailabilityService(repo AvailabilityRepository, kv cache.Store, clk clock.Clock, opts ...AvailabilityServiceOption) *AvailabilityService {
	svc := &AvailabilityService{
		repo:     repo,
		kv:       kv,
		clock:    clk,
		cacheTTL: defaultCacheTTL,
		lockTTL:  defaultLockTTL,
		lockWait: defaultLockWait,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// GetAvailability returns the slot's capacity view. Cache hits are returned
// verbatim; on a miss at most one caller per lock window recomputes from the
// store, and lock losers wait once, re-check the cache, then compute anyway
// rather than block unboundedly.
func (s *AvailabilityService) GetAvailability(ctx context.Context, slotID string) (domain.Availability, error) {
	key := availabilityKey(slotID)

	if av, ok := s.cached(ctx, key); ok {
		return av, nil
	}

	acquired, lockErr := s.kv.SetIfAbsent(ctx, availabilityLockKey(slotID), []byte("1"), s.lockTTL)
	// The lock is released on every exit path, whether or not we acquired it.
	defer func() {
		_ = s.kv.Delete(ctx, availabilityLockKey(slotID))
	}()

	if lockErr == nil && !acquired {
		time.Sleep(s.lockWait)
		if av, ok := s.cached(ctx, key); ok {
			return av, nil
		}
	}

	return s.compute(ctx, slotID, key)
}

func (s *AvailabilityService) compute(ctx context.Context, slotID, key string) (domain.Availability, error) {
	now := s.clock.Now()
	var av domain.Availability

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		slot, err := s.repo.GetSlotForUpdate(txCtx, slotID)
		if err != nil {
			return err
		}
		held, err := s.repo.CountActiveHolds(txCtx, slotID, now)
		if err != nil {
			return err
		}
		available := slot.Capacity - held
		if available < 0 {
			available = 0
		}
		av = domain.Availability{
			SlotID:    slot.ID,
			Capacity:  slot.Capacity,
			Available: available,
			Held:      held,
		}
		return nil
	})
	if err != nil {
		return domain.Availability{}, err
	}

	if data, err := json.Marshal(av); err == nil {
		// Best effort: the TTL bounds staleness, write-side invalidation
		// keeps it fresh.
		_ = s.kv.Put(ctx, key, data, s.cacheTTL)
	}
	return av, nil
}

// cached reads and decodes a cached availability entry. Cache failures
// degrade to recomputation instead of surfacing to the caller.
func (s *AvailabilityService) cached(ctx context.Context, key string) (domain.Availability, bool) {
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return domain.Availability{}, false
	}
	var av domain.Availability
	if err := json.Unmarshal(data, &av); err != nil {
		return domain.Availability{}, false
	}
	return av, true
}
