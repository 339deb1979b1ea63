package handlers

import (
	"net/http"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/application/event"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/validate"
)

// ListMine serves GET /events-attendance: events the caller has answered.
func (h *EventsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, err := validate.Page(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	res, err := h.svc.ListAttendedBy(r.Context(), middleware.UserID(r), page)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	metrics.RecordListing("attended_by", "", len(res.Items))
	response.Data(w, http.StatusOK, dto.ToEventPage(res))
}

func (h *EventsHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	eventID, err := validate.PathID(r, "eventId")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	a, err := h.svc.GetAttendance(r.Context(), middleware.UserID(r), eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToAttendeeResp(a))
}

// Answer serves PUT /events-attendance/{eventId}.
func (h *EventsHandler) Answer(w http.ResponseWriter, r *http.Request) {
	eventID, err := validate.PathID(r, "eventId")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	var req dto.AnswerReq
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	answer, err := domain.ParseAnswer(req.Answer)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	a, err := h.svc.Answer(r.Context(), event.AnswerCmd{
		UserID:  middleware.UserID(r),
		EventID: eventID,
		Answer:  answer,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToAttendeeResp(a))
}
