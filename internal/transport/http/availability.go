package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/cimillas/slot-reserve/internal/domain"
)

// AvailabilityGetter is the minimal interface needed to serve availability.
type AvailabilityGetter interface {
	GetAvailability(ctx context.Context, slotID string) (domain.Availability, error)
}

// HandleGetAvailability returns an HTTP handler for GET /slots/{id}/availability.
func HandleGetAvailability(svc AvailabilityGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		parts := splitPath(r.URL.Path)
		if len(parts) != 3 || parts[0] != "slots" || parts[1] == "" || parts[2] != "availability" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		av, err := svc.GetAvailability(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, domain.ErrSlotNotFound) {
				writeError(w, http.StatusNotFound, codeSlotNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, av)
	}
}
