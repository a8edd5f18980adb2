package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/slot-reserve/internal/domain"
)

// SlotAdmin is the provisioning surface for slots.
type SlotAdmin interface {
	CreateSlot(ctx context.Context, capacity int) (domain.Slot, error)
	GetSlot(ctx context.Context, slotID string) (domain.Slot, error)
	ListSlots(ctx context.Context) ([]domain.Slot, error)
}

// HandleAdminSlots returns an HTTP handler for POST/GET /admin/slots.
func HandleAdminSlots(svc SlotAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req createSlotRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			slot, err := svc.CreateSlot(r.Context(), req.Capacity)
			if err != nil {
				if err == domain.ErrInvalidCapacity {
					writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			writeJSON(w, http.StatusCreated, toSlotResponse(slot))

		case http.MethodGet:
			slots, err := svc.ListSlots(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			out := make([]slotResponse, 0, len(slots))
			for _, s := range slots {
				out = append(out, toSlotResponse(s))
			}
			writeJSON(w, http.StatusOK, out)

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleAdminSlot returns an HTTP handler for GET /admin/slots/{id}.
func HandleAdminSlot(svc SlotAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		parts := splitPath(r.URL.Path)
		if len(parts) != 3 || parts[0] != "admin" || parts[1] != "slots" || parts[2] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		slot, err := svc.GetSlot(r.Context(), parts[2])
		if err != nil {
			if err == domain.ErrSlotNotFound {
				writeError(w, http.StatusNotFound, codeSlotNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, toSlotResponse(slot))
	}
}

type createSlotRequest struct {
	Capacity int `json:"capacity"`
}

type slotResponse struct {
	ID        string    `json:"id"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

func toSlotResponse(s domain.Slot) slotResponse {
	return slotResponse{
		ID:        s.ID,
		Capacity:  s.Capacity,
		CreatedAt: s.CreatedAt,
	}
}
