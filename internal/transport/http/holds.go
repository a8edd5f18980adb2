package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/slot-reserve/internal/domain"
)

const idempotencyHeader = "Idempotency-Key"

// HoldCreator is the minimal interface needed to create a hold.
type HoldCreator interface {
	CreateHold(ctx context.Context, slotID, idempotencyKey string) (domain.Hold, error)
}

// HandleCreateHold returns an HTTP handler for POST /slots/{id}/hold. The
// idempotency key rides in the Idempotency-Key header and must be a UUID;
// that format check is a boundary concern, the service only requires the key
// to be present.
func HandleCreateHold(svc HoldCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		parts := splitPath(r.URL.Path)
		if len(parts) != 3 || parts[0] != "slots" || parts[1] == "" || parts[2] != "hold" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		key := r.Header.Get(idempotencyHeader)
		if key == "" {
			writeError(w, http.StatusBadRequest, codeIdempotencyRequired, domain.ErrIdempotencyKeyRequired.Error())
			return
		}
		if !isUUID(key) {
			writeError(w, http.StatusBadRequest, codeInvalidIdempotency, "idempotency key must be a uuid")
			return
		}

		hold, err := svc.CreateHold(r.Context(), parts[1], key)
		if err != nil {
			switch err {
			case domain.ErrIdempotencyKeyRequired:
				writeError(w, http.StatusBadRequest, codeIdempotencyRequired, err.Error())
			case domain.ErrSlotNotFound:
				writeError(w, http.StatusNotFound, codeSlotNotFound, err.Error())
			case domain.ErrCapacityExhausted:
				writeError(w, http.StatusConflict, codeCapacityExhausted, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		// An idempotent replay answers 201 as well; the caller cannot tell a
		// retry from the original request.
		writeJSON(w, http.StatusCreated, createHoldResponse{
			HoldID:    hold.ID,
			SlotID:    hold.SlotID,
			Status:    string(hold.Status),
			ExpiresAt: hold.ExpiresAt,
		})
	}
}

type createHoldResponse struct {
	HoldID    string    `json:"hold_id"`
	SlotID    string    `json:"slot_id"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}

// isUUID accepts the canonical 8-4-4-4-12 hex form.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range s {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
			if !isHex {
				return false
			}
		}
	}
	return true
}
