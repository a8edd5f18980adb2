package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cimillas/slot-reserve/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HoldRepository backs the hold lifecycle: creation against capacity plus the
// confirmed/cancelled transitions.
type HoldRepository struct {
	db
}

func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{db: db{pool: pool}}
}

func (r *HoldRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *HoldRepository) GetSlotForUpdate(ctx context.Context, slotID string) (domain.Slot, error) {
	return getSlotForUpdate(ctx, r.db, slotID)
}

func (r *HoldRepository) GetHoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error) {
	const query = `
SELECT id, slot_id, idempotency_key, status, expires_at, confirmed_at, cancelled_at, created_at, updated_at
FROM holds
WHERE id = $1
FOR UPDATE`

	var h domain.Hold
	err := r.queryRow(ctx, query, holdID).Scan(
		&h.ID, &h.SlotID, &h.IdempotencyKey, &h.Status,
		&h.ExpiresAt, &h.ConfirmedAt, &h.CancelledAt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return domain.Hold{}, domain.ErrHoldNotFound
		}
		return domain.Hold{}, fmt.Errorf("get hold for update: %w", err)
	}
	return h, nil
}

// FindHoldByIdempotencyKey looks a hold up by key alone. The key is unique
// across all slots, so a replay resolves without knowing the slot.
func (r *HoldRepository) FindHoldByIdempotencyKey(ctx context.Context, key string) (*domain.Hold, error) {
	const query = `
SELECT id, slot_id, idempotency_key, status, expires_at, confirmed_at, cancelled_at, created_at, updated_at
FROM holds
WHERE idempotency_key = $1`

	var h domain.Hold
	err := r.queryRow(ctx, query, key).Scan(
		&h.ID, &h.SlotID, &h.IdempotencyKey, &h.Status,
		&h.ExpiresAt, &h.ConfirmedAt, &h.CancelledAt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find hold by idempotency key: %w", err)
	}
	return &h, nil
}

func (r *HoldRepository) CountActiveHolds(ctx context.Context, slotID string, now time.Time) (int, error) {
	return countActiveHolds(ctx, r.db, slotID, now)
}

func (r *HoldRepository) CountActiveHoldsExcluding(ctx context.Context, slotID, holdID string, now time.Time) (int, error) {
	const query = `
SELECT COUNT(*)
FROM holds
WHERE slot_id = $1 AND id <> $2 AND status <> 'cancelled' AND expires_at > $3`

	var total int
	if err := r.queryRow(ctx, query, slotID, holdID, now).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrHoldNotFound
		}
		return 0, fmt.Errorf("count active holds excluding: %w", err)
	}
	return total, nil
}

func (r *HoldRepository) CreateHold(ctx context.Context, hold domain.Hold) error {
	const stmt = `
INSERT INTO holds (id, slot_id, idempotency_key, status, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		hold.ID,
		hold.SlotID,
		hold.IdempotencyKey,
		hold.Status,
		hold.ExpiresAt,
		hold.CreatedAt,
		hold.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("create hold: %w", err)
	}
	return nil
}

func (r *HoldRepository) MarkConfirmed(ctx context.Context, holdID string, at time.Time) error {
	const stmt = `
UPDATE holds
SET status = 'confirmed', confirmed_at = $2, updated_at = $2
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, holdID, at)
	if err != nil {
		return fmt.Errorf("mark hold confirmed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHoldNotFound
	}
	return nil
}

func (r *HoldRepository) MarkCancelled(ctx context.Context, holdID string, at time.Time) error {
	const stmt = `
UPDATE holds
SET status = 'cancelled', cancelled_at = $2, updated_at = $2
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, holdID, at)
	if err != nil {
		return fmt.Errorf("mark hold cancelled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHoldNotFound
	}
	return nil
}
