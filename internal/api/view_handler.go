package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/dmussaku/mongodb-etl-poc/internal/navigation"
	"github.com/dmussaku/mongodb-etl-poc/internal/service"
)

type navigateRequest struct {
	Path string `json:"path"`
}

type navigateReply struct {
	navigation.Selection
}

func (navigateReply) Render(http.ResponseWriter, *http.Request) error { return nil }

type snapshotReply struct {
	service.Snapshot
}

func (snapshotReply) Render(http.ResponseWriter, *http.Request) error { return nil }

type actionReply struct {
	Status string `json:"status"`
	JobID  int64  `json:"job_id,omitempty"`
}

func (r actionReply) Render(_ http.ResponseWriter, req *http.Request) error {
	render.Status(req, http.StatusAccepted)
	return nil
}

// Healthz handles GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	report := h.readiness.Check(r.Context())
	status := http.StatusOK
	if !report.Ready {
		status = http.StatusServiceUnavailable
	}
	h.respondJSON(w, r, status, report)
}

// Navigate handles POST /api/navigate
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	selection := h.service.Navigate(r.Context(), req.Path)
	_ = render.Render(w, r, navigateReply{Selection: selection})
}

// GetView handles GET /api/view
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, snapshotReply{Snapshot: h.service.Snapshot()})
}

// RefreshView handles POST /api/view/refresh
func (h *Handler) RefreshView(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.respondActionError(w, r, err)
		return
	}
	_ = render.Render(w, r, snapshotReply{Snapshot: h.service.Snapshot()})
}

// RunViewJob handles POST /api/view/run
func (h *Handler) RunViewJob(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RunJob(r.Context()); err != nil {
		h.respondActionError(w, r, err)
		return
	}
	_ = render.Render(w, r, actionReply{Status: "triggered"})
}

// TriggerJobRun handles POST /api/jobs/{id}/run
func (h *Handler) TriggerJobRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "job id must be an integer")
		return
	}

	if err := h.service.TriggerRun(r.Context(), id); err != nil {
		h.respondActionError(w, r, err)
		return
	}
	_ = render.Render(w, r, actionReply{Status: "triggered", JobID: id})
}

// DismissNotice handles DELETE /api/notices/{id}
func (h *Handler) DismissNotice(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DismissNotice(chi.URLParam(r, "id")); err != nil {
		h.respondActionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
