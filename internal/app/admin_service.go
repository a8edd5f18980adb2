package app

import (
	"context"

	"github.com/cimillas/slot-reserve/internal/clock"
	"github.com/cimillas/slot-reserve/internal/domain"
)

type AdminRepository interface {
	CreateSlot(ctx context.Context, slot domain.Slot) error
	GetSlot(ctx context.Context, slotID string) (domain.Slot, error)
	ListSlots(ctx context.Context) ([]domain.Slot, error)
}

// AdminService provisions slots. Capacity changes and deletion are not part
// of the reservation flow and stay out of it.
type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:  repo,
		clock: clk,
	}
}

func (s *AdminService) CreateSlot(ctx context.Context, capacity int) (domain.Slot, error) {
	if capacity < 0 {
		return domain.Slot{}, domain.ErrInvalidCapacity
	}

	now := s.clock.Now()
	slot := domain.Slot{
		ID:        newUUID(),
		Capacity:  capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return domain.Slot{}, err
	}
	return slot, nil
}

func (s *AdminService) GetSlot(ctx context.Context, slotID string) (domain.Slot, error) {
	return s.repo.GetSlot(ctx, slotID)
}

func (s *AdminService) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	return s.repo.ListSlots(ctx)
}
