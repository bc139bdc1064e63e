package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/secretariat-suite/engagement-service/internal/application/engagement"
	"github.com/secretariat-suite/engagement-service/internal/domain"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/dto"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/middleware"
	"github.com/secretariat-suite/engagement-service/internal/transport/http/response"
)

type ReconcileHandler struct {
	engine  *engagement.Engine
	timeout time.Duration
}

func NewReconcileHandler(engine *engagement.Engine, timeout time.Duration) *ReconcileHandler {
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &ReconcileHandler{engine: engine, timeout: timeout}
}

// Run triggers a full counter rebuild. Admin-only: this is an operational
// maintenance action, not a user feature. A pass already in flight answers
// 409 immediately.
func (h *ReconcileHandler) Run(w http.ResponseWriter, r *http.Request) {
	if middleware.Role(r) != "admin" {
		response.Err(w, domain.ErrForbidden("reconcile requires admin"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	summary, err := h.engine.ReconcileAll(ctx)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ReconcileResp(summary))
}
