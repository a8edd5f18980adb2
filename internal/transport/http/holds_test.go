package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cimillas/slot-reserve/internal/domain"
)

const testUUID = "a3bb189e-8bf9-3888-9912-ace4e6543002"

func TestHandleCreateHold(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	successHold := domain.Hold{
		ID:        "hold-123",
		SlotID:    "slot-1",
		Status:    domain.HoldStatusPending,
		ExpiresAt: now.Add(300 * time.Second),
	}

	tests := []struct {
		name           string
		method         string
		path           string
		idempotencyKey string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			method:         http.MethodPost,
			path:           "/slots/slot-1/hold",
			idempotencyKey: testUUID,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"hold_id":"hold-123"`,
		},
		{
			name:           "wrong method",
			method:         http.MethodGet,
			path:           "/slots/slot-1/hold",
			idempotencyKey: testUUID,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "missing idempotency key",
			method:         http.MethodPost,
			path:           "/slots/slot-1/hold",
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"idempotency_key_required"`,
		},
		{
			name:           "idempotency key not a uuid",
			method:         http.MethodPost,
			path:           "/slots/slot-1/hold",
			idempotencyKey: "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"invalid_idempotency_key"`,
		},
		{
			name:           "slot not found",
			method:         http.MethodPost,
			path:           "/slots/slot-1/hold",
			idempotencyKey: testUUID,
			serviceErr:     domain.ErrSlotNotFound,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: `"code":"slot_not_found"`,
		},
		{
			name:           "capacity exhausted",
			method:         http.MethodPost,
			path:           "/slots/slot-1/hold",
			idempotencyKey: testUUID,
			serviceErr:     domain.ErrCapacityExhausted,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"capacity_exhausted"`,
		},
		{
			name:           "internal error",
			method:         http.MethodPost,
			path:           "/slots/slot-1/hold",
			idempotencyKey: testUUID,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubHoldService{hold: successHold, err: tt.serviceErr}
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.idempotencyKey != "" {
				req.Header.Set(idempotencyHeader, tt.idempotencyKey)
			}
			rec := httptest.NewRecorder()

			HandleCreateHold(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestIsUUID(t *testing.T) {
	t.Parallel()

	valid := []string{
		testUUID,
		"00000000-0000-0000-0000-000000000000",
		"A3BB189E-8BF9-3888-9912-ACE4E6543002",
	}
	for _, s := range valid {
		if !isUUID(s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}

	invalid := []string{
		"",
		"not-a-uuid",
		"a3bb189e8bf938889912ace4e6543002",
		"a3bb189e-8bf9-3888-9912-ace4e654300",
		"a3bb189e-8bf9-3888-9912-ace4e6543002x",
		"g3bb189e-8bf9-3888-9912-ace4e6543002",
	}
	for _, s := range invalid {
		if isUUID(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

type stubHoldService struct {
	hold domain.Hold
	err  error
}

func (s *stubHoldService) CreateHold(_ context.Context, _, _ string) (domain.Hold, error) {
	if s.err != nil {
		return domain.Hold{}, s.err
	}
	return s.hold, nil
}
