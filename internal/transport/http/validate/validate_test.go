package validate

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
)

func TestDecodeJSON(t *testing.T) {
	type testStruct struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	t.Run("valid_json_decoding", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name": "Sydney", "age": 200}`))

		var dst testStruct
		require.NoError(t, DecodeJSON(req, &dst))
		assert.Equal(t, "Sydney", dst.Name)
		assert.Equal(t, 200, dst.Age)
	})

	t.Run("fail_on_unknown_fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name": "Syd", "unknown_field": true}`))

		var dst testStruct
		err := DecodeJSON(req, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field")
	})

	t.Run("fail_on_malformed_json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name": "Syd",`))

		var dst testStruct
		assert.Error(t, DecodeJSON(req, &dst))
	})

	t.Run("fail_on_trailing_data", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name": "Syd"}{"name": "Two"}`))

		var dst testStruct
		assert.Error(t, DecodeJSON(req, &dst))
	})
}

type createReq struct {
	Name   string  `json:"name" validate:"required,min=5,max=10"`
	When   string  `json:"when" validate:"required,rfc3339"`
	Answer string  `json:"answer" validate:"omitempty,answer"`
	Note   *string `json:"note" validate:"omitempty,min=3"`
}

func appErr(t *testing.T, err error) *domain.AppError {
	t.Helper()
	var ae *domain.AppError
	require.True(t, errors.As(err, &ae), "want AppError, got %v", err)
	return ae
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(&createReq{Name: "Party", When: "2024-03-11T18:00:00Z", Answer: "maybe"}))
	})

	t.Run("field_errors_use_json_names", func(t *testing.T) {
		short := "ab"
		ae := appErr(t, Struct(&createReq{Name: "abc", When: "tomorrow", Answer: "nope", Note: &short}))

		assert.Equal(t, domain.CodeValidation, ae.Code)
		assert.Equal(t, "must be at least 5 characters", ae.Meta["name"])
		assert.Equal(t, "must be an RFC3339 timestamp", ae.Meta["when"])
		assert.Equal(t, "must be one of: accepted, maybe, rejected", ae.Meta["answer"])
		assert.Equal(t, "must be at least 3 characters", ae.Meta["note"])
	})

	t.Run("required", func(t *testing.T) {
		ae := appErr(t, Struct(&createReq{}))
		assert.Equal(t, "is required", ae.Meta["name"])
		assert.Equal(t, "is required", ae.Meta["when"])
		assert.NotContains(t, ae.Meta, "answer")
	})
}

func TestBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name": 5}`))
	var dst createReq
	ae := appErr(t, Body(req, &dst))
	assert.Equal(t, "invalid json body", ae.Message)
}

func withParam(key, val string) *chi.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return rctx
}

func TestPathID(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	} {
		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, withParam("id", tc.raw)))

		got, err := PathID(req, "id")
		if tc.ok {
			require.NoError(t, err, tc.raw)
			assert.Equal(t, tc.want, got)
		} else {
			ae := appErr(t, err)
			assert.Contains(t, ae.Meta, "id")
		}
	}
}

func TestPage(t *testing.T) {
	for raw, want := range map[string]int{"": 1, "1": 1, "4": 4, "0": 1, "-2": 1} {
		req := httptest.NewRequest("GET", "/events?page="+raw, nil)
		got, err := Page(req)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	req := httptest.NewRequest("GET", "/events?page=two", nil)
	_, err := Page(req)
	assert.Error(t, err)
}
