package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/secretariat-suite/engagement-service/internal/application/event"
	"github.com/secretariat-suite/engagement-service/internal/domain"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/dto"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/middleware"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/response"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/validate"
)

type EventsHandler struct {
	svc *event.Service
}

func NewEventsHandler(svc *event.Service) *EventsHandler {
	return &EventsHandler{svc: svc}
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	cmd := event.CreateCmd{
		ActorID:   middleware.UserID(r),
		ActorRole: middleware.Role(r),
		Title:     req.Title,
		Notes:     req.Notes,
		EventDate: req.EventDate,
		Locations: dto.ToLocationSet(req.Locations),
	}
	ev, err := h.svc.Create(r.Context(), cmd)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToEventResp(ev))
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}
	ev, err := h.svc.Get(r.Context(), id, middleware.UserID(r), middleware.Role(r))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}
	var req dto.UpdateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	cmd := event.UpdateCmd{
		ActorID:   middleware.UserID(r),
		ActorRole: middleware.Role(r),
		EventID:   id,
		Title:     req.Title,
		Notes:     req.Notes,
		EventDate: req.EventDate,
	}
	if req.Locations != nil {
		set := dto.ToLocationSet(*req.Locations)
		cmd.Locations = &set
	}
	ev, err := h.svc.Update(r.Context(), cmd)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev))
}

func (h *EventsHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}
	ev, err := h.svc.Archive(r.Context(), id, middleware.UserID(r), middleware.Role(r))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}
	if err := h.svc.Delete(r.Context(), id, middleware.UserID(r), middleware.Role(r)); err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := h.svc.List(r.Context(), page, pageSize)
	if err != nil {
		response.Err(w, err)
		return
	}
	out := make([]dto.EventResp, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToEventResp(it))
	}
	response.Data(w, http.StatusOK, dto.PageResp[dto.EventResp]{
		Items:    out,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}
