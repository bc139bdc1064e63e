package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/secretariat-suite/engagement-service/internal/application/engagement"
	"github.com/secretariat-suite/engagement-service/internal/domain"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/dto"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/response"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/validate"
)

type CountersHandler struct {
	engine *engagement.Engine
}

func NewCountersHandler(engine *engagement.Engine) *CountersHandler {
	return &CountersHandler{engine: engine}
}

func (h *CountersHandler) Get(w http.ResponseWriter, r *http.Request) {
	cat := domain.Category(chi.URLParam(r, "category"))
	if !cat.Valid() {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"category": "must be one of: district, town, neighborhood, village, stk, mosque, event",
		}))
		return
	}
	id, ok := validate.ParseID(chi.URLParam(r, "location_id"))
	if !ok {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"location_id": "must be a positive integer",
		}))
		return
	}

	rec, err := h.engine.GetCounter(r.Context(), domain.NewLocationRef(cat, id))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCounterResp(rec))
}

func (h *CountersHandler) Top(w http.ResponseWriter, r *http.Request) {
	cat := domain.Category(chi.URLParam(r, "category"))
	if !cat.Valid() {
		response.Err(w, domain.ErrValidationMeta("invalid path param", map[string]string{
			"category": "must be one of: district, town, neighborhood, village, stk, mosque, event",
		}))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	recs, err := h.engine.TopCounters(r.Context(), cat, limit)
	if err != nil {
		response.Err(w, err)
		return
	}
	out := make([]dto.CounterResp, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.ToCounterResp(rec))
	}
	response.Data(w, http.StatusOK, out)
}
