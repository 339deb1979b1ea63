//go:build integration
// +build integration

package cases

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/dto"
)

func TestEventsCRUD(t *testing.T) {
	e := setup(t)
	evID := createEvent(t, e, e.OrganizerToken, "Integration Event", time.Now().Add(48*time.Hour))
	path := e.BaseURL + "/events/" + id(evID)

	code, env := doJSON(t, "GET", path, "", nil)
	require.Equal(t, 200, code)
	var got dto.EventResp
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, organizerID, got.OrganizerID)
	assert.Zero(t, got.AttendeeCount)

	code, env = doJSON(t, "PATCH", path, e.OrganizerToken, map[string]any{"name": "Renamed Event"})
	require.Equal(t, 200, code, "update err=%v", env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Renamed Event", got.Name)
	assert.Equal(t, "Integration test event", got.Description)

	code, _ = doJSON(t, "DELETE", path, e.OrganizerToken, nil)
	require.Equal(t, 204, code)

	code, env = doJSON(t, "GET", path, "", nil)
	assert.Equal(t, 404, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestEvents_OffsetPagination(t *testing.T) {
	e := setup(t)
	for i := 1; i <= 7; i++ {
		createEvent(t, e, e.OrganizerToken, fmt.Sprintf("Paged Event %d", i), time.Now().AddDate(0, 1, i))
	}

	seen := map[int64]bool{}
	for page, want := range map[int][]int64{1: {7, 6, 5}, 2: {4, 3, 2}, 3: {1}, 4: {}} {
		code, env := doJSON(t, "GET", fmt.Sprintf("%s/events?page=%d", e.BaseURL, page), "", nil)
		require.Equal(t, 200, code)

		var p dto.PageResp[dto.EventResp]
		require.NoError(t, json.Unmarshal(env.Data, &p))
		require.NotNil(t, p.Total)
		assert.Equal(t, 7, *p.Total)
		assert.Equal(t, 3, *p.TotalPages)

		ids := make([]int64, 0, len(p.Items))
		for _, it := range p.Items {
			assert.False(t, seen[it.ID], "event %d on two pages", it.ID)
			seen[it.ID] = true
			ids = append(ids, it.ID)
		}
		assert.Equal(t, want, ids, "page %d", page)
	}
	assert.Len(t, seen, 7)
}

func TestEvents_WindowToday(t *testing.T) {
	e := setup(t)
	createEvent(t, e, e.OrganizerToken, "Far Future Event", time.Now().AddDate(1, 0, 0))

	code, env := doJSON(t, "GET", e.BaseURL+"/events?when=today", "", nil)
	require.Equal(t, 200, code)
	var p dto.PageResp[dto.EventResp]
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Empty(t, p.Items)

	code, _ = doJSON(t, "GET", e.BaseURL+"/events?when=someday", "", nil)
	assert.Equal(t, 400, code)
}
