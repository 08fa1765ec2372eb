package http

import "net/http"

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.DashboardService.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, summary, http.StatusOK)
}
