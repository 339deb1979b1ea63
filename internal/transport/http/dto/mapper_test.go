package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/pagination"
)

func TestToEventResp(t *testing.T) {
	when := time.Date(2024, 3, 11, 18, 0, 0, 0, time.UTC)
	e := &domain.Event{
		ID:               7,
		Name:             "Board games",
		Description:      "Bring snacks",
		Address:          "Main st 1",
		When:             when,
		OrganizerID:      3,
		AttendeeCount:    4,
		AttendeeAccepted: 2,
		AttendeeMaybe:    1,
		AttendeeRejected: 1,
	}

	resp := ToEventResp(e)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Board games", resp.Name)
	assert.Equal(t, when, resp.When)
	assert.Equal(t, int64(3), resp.OrganizerID)
	assert.Equal(t, 4, resp.AttendeeCount)
	assert.Equal(t, 2, resp.AttendeeAccepted)
	assert.Equal(t, 1, resp.AttendeeMaybe)
	assert.Equal(t, 1, resp.AttendeeRejected)
}

func TestToEventPage(t *testing.T) {
	t.Run("counted_page_has_totals", func(t *testing.T) {
		res := pagination.Result[*domain.Event]{
			Items:       []*domain.Event{{ID: 2}, {ID: 1}},
			CurrentPage: 1,
			Limit:       3,
			HasTotal:    true,
			Total:       2,
			TotalPages:  1,
		}

		b, err := json.Marshal(ToEventPage(res))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, float64(2), got["total"])
		assert.Equal(t, float64(1), got["total_pages"])
		assert.Equal(t, float64(1), got["current_page"])
		assert.Equal(t, float64(3), got["limit"])
		assert.Len(t, got["items"], 2)
	})

	t.Run("uncounted_page_omits_totals", func(t *testing.T) {
		b, err := json.Marshal(ToEventPage(pagination.Result[*domain.Event]{CurrentPage: 4, Limit: 3}))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		assert.NotContains(t, got, "total")
		assert.NotContains(t, got, "total_pages")
		// empty page is [] not null
		assert.Equal(t, []any{}, got["items"])
	})
}

func TestToAttendeeList(t *testing.T) {
	out := ToAttendeeList([]*domain.Attendee{
		{ID: 1, EventID: 7, UserID: 3, Answer: domain.AnswerAccepted},
		{ID: 2, EventID: 7, UserID: 4, Answer: domain.AnswerRejected},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "accepted", out[0].Answer)
	assert.Equal(t, "rejected", out[1].Answer)
	assert.Equal(t, int64(4), out[1].UserID)
}
