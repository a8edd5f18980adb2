package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cimillas/slot-reserve/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SlotRepository serves slot provisioning and the availability read path.
type SlotRepository struct {
	db
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{db: db{pool: pool}}
}

func (r *SlotRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *SlotRepository) CreateSlot(ctx context.Context, slot domain.Slot) error {
	const stmt = `
INSERT INTO slots (id, capacity, created_at, updated_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt, slot.ID, slot.Capacity, slot.CreatedAt, slot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

func (r *SlotRepository) GetSlot(ctx context.Context, slotID string) (domain.Slot, error) {
	const query = `SELECT id, capacity, created_at, updated_at FROM slots WHERE id = $1`

	var s domain.Slot
	err := r.queryRow(ctx, query, slotID).Scan(&s.ID, &s.Capacity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return domain.Slot{}, domain.ErrSlotNotFound
		}
		return domain.Slot{}, fmt.Errorf("get slot: %w", err)
	}
	return s, nil
}

func (r *SlotRepository) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	const query = `SELECT id, capacity, created_at, updated_at FROM slots ORDER BY created_at`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ID, &s.Capacity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

func (r *SlotRepository) GetSlotForUpdate(ctx context.Context, slotID string) (domain.Slot, error) {
	return getSlotForUpdate(ctx, r.db, slotID)
}

func (r *SlotRepository) CountActiveHolds(ctx context.Context, slotID string, now time.Time) (int, error) {
	return countActiveHolds(ctx, r.db, slotID, now)
}

// getSlotForUpdate takes the slot's exclusive row lock for the rest of the
// transaction. Capacity-affecting operations serialize on it.
func getSlotForUpdate(ctx context.Context, d db, slotID string) (domain.Slot, error) {
	const query = `SELECT id, capacity, created_at, updated_at FROM slots WHERE id = $1 FOR UPDATE`

	var s domain.Slot
	err := d.queryRow(ctx, query, slotID).Scan(&s.ID, &s.Capacity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return domain.Slot{}, domain.ErrSlotNotFound
		}
		return domain.Slot{}, fmt.Errorf("get slot for update: %w", err)
	}
	return s, nil
}

// countActiveHolds applies the one capacity predicate used everywhere:
// not cancelled and not past expiry.
func countActiveHolds(ctx context.Context, d db, slotID string, now time.Time) (int, error) {
	const query = `
SELECT COUNT(*)
FROM holds
WHERE slot_id = $1 AND status <> 'cancelled' AND expires_at > $2`

	var total int
	if err := d.queryRow(ctx, query, slotID, now).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrSlotNotFound
		}
		return 0, fmt.Errorf("count active holds: %w", err)
	}
	return total, nil
}
