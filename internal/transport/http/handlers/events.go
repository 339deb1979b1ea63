package handlers

import (
	"net/http"
	"time"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/application/event"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/query"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/validate"
)

type EventsHandler struct {
	svc *event.Service
}

func NewEventsHandler(svc *event.Service) *EventsHandler {
	return &EventsHandler{svc: svc}
}

// List serves GET /events?when=&page=.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := validate.Page(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	// normalised before use; the window becomes a metric label
	when, err := query.ParseWindow(r.URL.Query().Get("when"))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	res, err := h.svc.ListEvents(r.Context(), event.ListFilter{When: when, Page: page})
	if err != nil {
		response.Err(w, r, err)
		return
	}

	metrics.RecordListing("events", string(when), len(res.Items))
	response.Data(w, http.StatusOK, dto.ToEventPage(res))
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	ev, err := h.svc.GetOne(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev))
}

// ListOrganizedBy serves GET /events-organized-by-user/{userId}.
func (h *EventsHandler) ListOrganizedBy(w http.ResponseWriter, r *http.Request) {
	userID, err := validate.PathID(r, "userId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	page, err := validate.Page(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	res, err := h.svc.ListOrganizedBy(r.Context(), userID, page)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	metrics.RecordListing("organized_by", "", len(res.Items))
	response.Data(w, http.StatusOK, dto.ToEventPage(res))
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventReq
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}

	// validated as RFC3339 above
	when, _ := time.Parse(time.RFC3339, req.When)

	ev, err := h.svc.Create(r.Context(), event.CreateCmd{
		ActorID:     middleware.UserID(r),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		When:        when,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToEventResp(ev))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	var req dto.UpdateEventReq
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}

	cmd := event.UpdateCmd{
		ActorID:     middleware.UserID(r),
		EventID:     id,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
	}
	if req.When != nil {
		when, _ := time.Parse(time.RFC3339, *req.When)
		cmd.When = &when
	}

	ev, err := h.svc.Update(r.Context(), cmd)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), middleware.UserID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.NoContent(w)
}

// ListAttendees serves GET /events/{id}/attendees.
func (h *EventsHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	as, err := h.svc.ListAttendees(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToAttendeeList(as))
}
