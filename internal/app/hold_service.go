package app

import (
	"context"
	"time"

	"github.com/cimillas/slot-reserve/internal/cache"
	"github.com/cimillas/slot-reserve/internal/clock"
	"github.com/cimillas/slot-reserve/internal/domain"
)

type HoldRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetSlotForUpdate(ctx context.Context, slotID string) (domain.Slot, error)
	GetHoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error)
	FindHoldByIdempotencyKey(ctx context.Context, key string) (*domain.Hold, error)
	CountActiveHolds(ctx context.Context, slotID string, now time.Time) (int, error)
	CountActiveHoldsExcluding(ctx context.Context, slotID, holdID string, now time.Time) (int, error)
	CreateHold(ctx context.Context, hold domain.Hold) error
	MarkConfirmed(ctx context.Context, holdID string, at time.Time) error
	MarkCancelled(ctx context.Context, holdID string, at time.Time) error
}

const defaultHoldTTL = 300 * time.Second

// HoldService drives the hold lifecycle: idempotent creation against slot
// capacity, confirmation, and cancellation. Every write re-validates capacity
// and hold state under the owning row locks before mutating, and drops the
// slot's cached availability so reads catch up.
type HoldService struct {
	repo    HoldRepository
	kv      cache.Store
	clock   clock.Clock
	holdTTL time.Duration
}

type HoldServiceOption func(*HoldService)

// WithHoldTTL overrides the default lifetime of new holds.
func WithHoldTTL(d time.Duration) HoldServiceOption {
	return func(s *HoldService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

func NewHoldService(repo HoldRepository, kv cache.Store, clk clock.Clock, opts ...HoldServiceOption) *HoldService {
	svc := &HoldService{
		repo:    repo,
		kv:      kv,
		clock:   clk,
		holdTTL: defaultHoldTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// CreateHold places a pending hold against the slot. The idempotency key is
// the identity of the operation: a replay returns the original hold untouched,
// even when called with a different slot id. New holds are admitted only while
// the slot row is exclusively locked, so concurrent creates serialize and
// cannot oversell capacity.
func (s *HoldService) CreateHold(ctx context.Context, slotID, idempotencyKey string) (domain.Hold, error) {
	if idempotencyKey == "" {
		return domain.Hold{}, domain.ErrIdempotencyKeyRequired
	}

	// Replay check runs outside the slot lock; a replay must not pay for or
	// block on capacity validation.
	if existing, err := s.repo.FindHoldByIdempotencyKey(ctx, idempotencyKey); err != nil {
		return domain.Hold{}, err
	} else if existing != nil {
		return *existing, nil
	}

	now := s.clock.Now()
	var result domain.Hold

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		// Re-check inside the transaction: a concurrent create with the same
		// key may have committed since the pre-check, and a replay must win
		// over the capacity check.
		if existing, err := s.repo.FindHoldByIdempotencyKey(txCtx, idempotencyKey); err != nil {
			return err
		} else if existing != nil {
			result = *existing
			return nil
		}

		slot, err := s.repo.GetSlotForUpdate(txCtx, slotID)
		if err != nil {
			return err
		}

		held, err := s.repo.CountActiveHolds(txCtx, slotID, now)
		if err != nil {
			return err
		}
		if slot.Capacity-held <= 0 {
			return domain.ErrCapacityExhausted
		}

		hold := domain.Hold{
			ID:             newUUID(),
			SlotID:         slotID,
			IdempotencyKey: idempotencyKey,
			Status:         domain.HoldStatusPending,
			ExpiresAt:      now.Add(s.holdTTL),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := s.repo.CreateHold(txCtx, hold); err != nil {
			// A concurrent create with the same key won the unique index
			// race; re-read so the retry stays idempotent.
			if err == domain.ErrDuplicateIdempotencyKey {
				existing, ferr := s.repo.FindHoldByIdempotencyKey(txCtx, idempotencyKey)
				if ferr != nil {
					return ferr
				}
				if existing != nil {
					result = *existing
					return nil
				}
			}
			return err
		}

		if err := s.kv.Delete(txCtx, availabilityKey(slotID)); err != nil {
			return err
		}

		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}

// ConfirmHold moves a pending hold to confirmed. State guards run in a fixed
// order (already confirmed, cancelled, expired) before capacity is re-checked
// under the slot lock, excluding the hold itself from the count. ExpiresAt is
// not updated on confirm.
func (s *HoldService) ConfirmHold(ctx context.Context, holdID string) (domain.Hold, error) {
	now := s.clock.Now()
	var result domain.Hold

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		hold, err := s.repo.GetHoldForUpdate(txCtx, holdID)
		if err != nil {
			return err
		}

		switch {
		case hold.Status == domain.HoldStatusConfirmed:
			return domain.ErrHoldAlreadyConfirmed
		case hold.Status == domain.HoldStatusCancelled:
			return domain.ErrHoldCancelled
		case hold.ExpiresAt.Before(now):
			return domain.ErrHoldExpired
		}

		slot, err := s.repo.GetSlotForUpdate(txCtx, hold.SlotID)
		if err != nil {
			return err
		}

		held, err := s.repo.CountActiveHoldsExcluding(txCtx, hold.SlotID, holdID, now)
		if err != nil {
			return err
		}
		if held >= slot.Capacity {
			return domain.ErrCapacityExhausted
		}

		if err := s.repo.MarkConfirmed(txCtx, holdID, now); err != nil {
			return err
		}
		if err := s.kv.Delete(txCtx, availabilityKey(hold.SlotID)); err != nil {
			return err
		}

		hold.Status = domain.HoldStatusConfirmed
		hold.ConfirmedAt = &now
		hold.UpdatedAt = now
		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}

// CancelHold moves a hold to cancelled, the absorbing state. Confirmed holds
// are cancellable; only an already-cancelled hold is rejected.
func (s *HoldService) CancelHold(ctx context.Context, holdID string) (domain.Hold, error) {
	now := s.clock.Now()
	var result domain.Hold

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		hold, err := s.repo.GetHoldForUpdate(txCtx, holdID)
		if err != nil {
			return err
		}
		if hold.Status == domain.HoldStatusCancelled {
			return domain.ErrHoldAlreadyCancelled
		}

		if err := s.repo.MarkCancelled(txCtx, holdID, now); err != nil {
			return err
		}
		if err := s.kv.Delete(txCtx, availabilityKey(hold.SlotID)); err != nil {
			return err
		}

		hold.Status = domain.HoldStatusCancelled
		hold.CancelledAt = &now
		hold.UpdatedAt = now
		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}
