package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/slot-reserve/internal/domain"
)

// HoldConfirmer is the minimal interface needed to confirm a hold.
type HoldConfirmer interface {
	ConfirmHold(ctx context.Context, holdID string) (domain.Hold, error)
}

// HandleConfirmHold returns an HTTP handler for POST /holds/{id}/confirm.
func HandleConfirmHold(svc HoldConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		parts := splitPath(r.URL.Path)
		if len(parts) != 3 || parts[0] != "holds" || parts[1] == "" || parts[2] != "confirm" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		hold, err := svc.ConfirmHold(r.Context(), parts[1])
		if err != nil {
			switch err {
			case domain.ErrHoldNotFound:
				writeError(w, http.StatusNotFound, codeHoldNotFound, err.Error())
			case domain.ErrHoldAlreadyConfirmed:
				writeError(w, http.StatusConflict, codeHoldAlreadyConfirmed, err.Error())
			case domain.ErrHoldCancelled:
				writeError(w, http.StatusConflict, codeHoldCancelled, err.Error())
			case domain.ErrHoldExpired:
				writeError(w, http.StatusConflict, codeHoldExpired, err.Error())
			case domain.ErrCapacityExhausted:
				writeError(w, http.StatusConflict, codeCapacityExhausted, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, confirmHoldResponse{
			HoldID:      hold.ID,
			SlotID:      hold.SlotID,
			Status:      string(hold.Status),
			ConfirmedAt: hold.ConfirmedAt,
		})
	}
}

type confirmHoldResponse struct {
	HoldID      string     `json:"hold_id"`
	SlotID      string     `json:"slot_id"`
	Status      string     `json:"status"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
}
