package app

import (
	"context"
	"testing"
	"time"

	"github.com/cimillas/slot-reserve/internal/clock"
	"github.com/cimillas/slot-reserve/internal/domain"
)

func TestAdminService_CreateSlot(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates a slot", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		svc := NewAdminService(repo, clock.NewFixed(now))

		slot, err := svc.CreateSlot(context.Background(), 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if slot.ID == "" {
			t.Fatalf("expected slot ID to be set")
		}
		if slot.Capacity != 10 {
			t.Fatalf("expected capacity 10, got %d", slot.Capacity)
		}
		if len(repo.slots) != 1 {
			t.Fatalf("expected 1 slot stored, got %d", len(repo.slots))
		}
	})

	t.Run("zero capacity is allowed", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		svc := NewAdminService(repo, clock.NewFixed(now))

		if _, err := svc.CreateSlot(context.Background(), 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("negative capacity is rejected", func(t *testing.T) {
		repo := &fakeAdminRepo{}
		svc := NewAdminService(repo, clock.NewFixed(now))

		_, err := svc.CreateSlot(context.Background(), -1)
		if err != domain.ErrInvalidCapacity {
			t.Fatalf("expected ErrInvalidCapacity, got %v", err)
		}
		if len(repo.slots) != 0 {
			t.Fatalf("expected no slot stored, got %d", len(repo.slots))
		}
	})
}

type fakeAdminRepo struct {
	slots []domain.Slot
}

func (r *fakeAdminRepo) CreateSlot(_ context.Context, slot domain.Slot) error {
	r.slots = append(r.slots, slot)
	return nil
}

func (r *fakeAdminRepo) GetSlot(_ context.Context, slotID string) (domain.Slot, error) {
	for _, s := range r.slots {
		if s.ID == slotID {
			return s, nil
		}
	}
	return domain.Slot{}, domain.ErrSlotNotFound
}

func (r *fakeAdminRepo) ListSlots(_ context.Context) ([]domain.Slot, error) {
	return r.slots, nil
}
