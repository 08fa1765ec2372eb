package http

import "net/http"

// invalidateCache drops one table with ?table=, or every table without it.
func (h *Handler) invalidateCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	table := r.URL.Query().Get("table")
	if table == "" {
		h.services.CacheService.InvalidateAll(ctx)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.services.CacheService.Invalidate(ctx, table); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
