package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/slot-reserve/internal/domain"
)

// HoldCanceller is the minimal interface needed to cancel a hold.
type HoldCanceller interface {
	CancelHold(ctx context.Context, holdID string) (domain.Hold, error)
}

// HandleCancelHold returns an HTTP handler for DELETE /holds/{id}. Confirmed
// holds may be cancelled; only an already-cancelled hold conflicts.
func HandleCancelHold(svc HoldCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		parts := splitPath(r.URL.Path)
		if len(parts) != 2 || parts[0] != "holds" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		hold, err := svc.CancelHold(r.Context(), parts[1])
		if err != nil {
			switch err {
			case domain.ErrHoldNotFound:
				writeError(w, http.StatusNotFound, codeHoldNotFound, err.Error())
			case domain.ErrHoldAlreadyCancelled:
				writeError(w, http.StatusConflict, codeHoldAlreadyCancelled, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, cancelHoldResponse{
			HoldID:      hold.ID,
			Status:      string(hold.Status),
			CancelledAt: hold.CancelledAt,
		})
	}
}

type cancelHoldResponse struct {
	HoldID      string     `json:"hold_id"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelled_at"`
}
