package app

import (
	"context"
	"sync"
	"time"

	"github.com/cimillas/slot-reserve/internal/domain"
)

// fakeRepo is an in-memory stand-in for the postgres repositories. WithTx
// holds a mutex for the span of the callback, approximating the exclusive
// row locks the real store provides for the span of a transaction; calls made
// outside a transaction lock per call.
type fakeRepo struct {
	mu    sync.Mutex
	slots map[string]domain.Slot
	holds map[string]domain.Hold
}

type fakeTxKey struct{}

func newFakeRepo(slots []domain.Slot, holds []domain.Hold) *fakeRepo {
	r := &fakeRepo{
		slots: make(map[string]domain.Slot),
		holds: make(map[string]domain.Hold),
	}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	for _, h := range holds {
		r.holds[h.ID] = h
	}
	return r
}

func (r *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(context.WithValue(ctx, fakeTxKey{}, true))
}

// lock takes the mutex unless the context already carries the tx marker.
func (r *fakeRepo) lock(ctx context.Context) func() {
	if ctx.Value(fakeTxKey{}) != nil {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *fakeRepo) GetSlotForUpdate(ctx context.Context, slotID string) (domain.Slot, error) {
	defer r.lock(ctx)()
	slot, ok := r.slots[slotID]
	if !ok {
		return domain.Slot{}, domain.ErrSlotNotFound
	}
	return slot, nil
}

func (r *fakeRepo) GetHoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error) {
	defer r.lock(ctx)()
	hold, ok := r.holds[holdID]
	if !ok {
		return domain.Hold{}, domain.ErrHoldNotFound
	}
	return hold, nil
}

func (r *fakeRepo) FindHoldByIdempotencyKey(ctx context.Context, key string) (*domain.Hold, error) {
	defer r.lock(ctx)()
	for _, h := range r.holds {
		if h.IdempotencyKey == key {
			h := h
			return &h, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CountActiveHolds(ctx context.Context, slotID string, now time.Time) (int, error) {
	defer r.lock(ctx)()
	return r.countActive(slotID, "", now), nil
}

func (r *fakeRepo) CountActiveHoldsExcluding(ctx context.Context, slotID, holdID string, now time.Time) (int, error) {
	defer r.lock(ctx)()
	return r.countActive(slotID, holdID, now), nil
}

// countActive applies the capacity predicate. Callers must hold the lock.
func (r *fakeRepo) countActive(slotID, excludeHoldID string, now time.Time) int {
	total := 0
	for _, h := range r.holds {
		if h.SlotID != slotID || h.ID == excludeHoldID {
			continue
		}
		if h.Active(now) {
			total++
		}
	}
	return total
}

func (r *fakeRepo) CreateHold(ctx context.Context, hold domain.Hold) error {
	defer r.lock(ctx)()
	for _, h := range r.holds {
		if h.IdempotencyKey == hold.IdempotencyKey {
			return domain.ErrDuplicateIdempotencyKey
		}
	}
	r.holds[hold.ID] = hold
	return nil
}

func (r *fakeRepo) MarkConfirmed(ctx context.Context, holdID string, at time.Time) error {
	defer r.lock(ctx)()
	hold, ok := r.holds[holdID]
	if !ok {
		return domain.ErrHoldNotFound
	}
	hold.Status = domain.HoldStatusConfirmed
	hold.ConfirmedAt = &at
	hold.UpdatedAt = at
	r.holds[holdID] = hold
	return nil
}

func (r *fakeRepo) MarkCancelled(ctx context.Context, holdID string, at time.Time) error {
	defer r.lock(ctx)()
	hold, ok := r.holds[holdID]
	if !ok {
		return domain.ErrHoldNotFound
	}
	hold.Status = domain.HoldStatusCancelled
	hold.CancelledAt = &at
	hold.UpdatedAt = at
	r.holds[holdID] = hold
	return nil
}

func (r *fakeRepo) holdCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.holds)
}

func (r *fakeRepo) getHold(id string) (domain.Hold, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holds[id]
	return h, ok
}
