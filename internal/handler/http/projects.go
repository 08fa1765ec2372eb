package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-data-hub/models"
)

// listProjects serves every project, or only active ones with ?active=true.
func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	onlyActive, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	var (
		projects []models.Project
		err      error
	)
	if onlyActive {
		projects, err = h.services.ProjectService.ListActive(ctx)
	} else {
		projects, err = h.services.ProjectService.List(ctx)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, projects, http.StatusOK)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var req models.NewProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.services.ProjectService.Create(r.Context(), callerIdentity(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, project, http.StatusCreated)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.services.ProjectService.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, project, http.StatusOK)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.services.ProjectService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, project, http.StatusOK)
}

func (h *Handler) toggleProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.services.ProjectService.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, project, http.StatusOK)
}
