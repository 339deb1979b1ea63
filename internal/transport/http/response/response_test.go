package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	appCtx "github.com/baechuer/real-time-ressys/services/events-api/internal/pkg/context"
)

func TestErr(t *testing.T) {
	t.Run("maps_domain_error_to_correct_status", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{"not_found", domain.ErrNotFound("event not found"), http.StatusNotFound, "not_found"},
			{"validation", domain.ErrValidation("name too short"), http.StatusBadRequest, "validation_error"},
			{"forbidden", domain.ErrForbidden("not allowed"), http.StatusForbidden, "forbidden"},
			{"invalid_state", domain.ErrInvalidState("conflict"), http.StatusConflict, "invalid_state"},
			{"wrapped_not_found", fmt.Errorf("get event 7: %w", domain.ErrNotFound("event not found")), http.StatusNotFound, "not_found"},
			{"generic_error", errors.New("db crash"), http.StatusInternalServerError, "internal_error"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rr := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/events/7", nil)
				Err(rr, req, tt.err)

				assert.Equal(t, tt.wantStatus, rr.Code)

				var body ErrorBody
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Error.Code)
			})
		}
	})

	t.Run("internal_error_hides_details", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		Err(rr, req, errors.New("pq: connection refused"))

		assert.NotContains(t, rr.Body.String(), "connection refused")
	})

	t.Run("meta_and_request_id_are_passed_through", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req = req.WithContext(appCtx.WithRequestID(req.Context(), "req-1"))

		Err(rr, req, domain.ErrValidationMeta("invalid query param", map[string]string{"when": "bad"}))

		var body ErrorBody
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "req-1", body.Error.RequestID)
		assert.Equal(t, "bad", body.Error.Meta["when"])
	})
}

func TestRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestID(req))

	req.Header.Set("X-Request-Id", "from-header")
	assert.Equal(t, "from-header", RequestID(req))

	req = req.WithContext(appCtx.WithRequestID(req.Context(), "from-ctx"))
	assert.Equal(t, "from-ctx", RequestID(req))
}

func TestData(t *testing.T) {
	rr := httptest.NewRecorder()
	Data(rr, http.StatusOK, map[string]int64{"id": 123})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	dataMap := env.Data.(map[string]any)
	assert.Equal(t, float64(123), dataMap["id"])
}

func TestNoContent(t *testing.T) {
	rr := httptest.NewRecorder()
	NoContent(rr)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Zero(t, rr.Body.Len())
}
