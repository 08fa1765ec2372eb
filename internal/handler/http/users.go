package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-data-hub/internal/service"
	"github.com/MKhiriev/go-data-hub/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, users, http.StatusOK)
}

func (h *Handler) addUser(w http.ResponseWriter, r *http.Request) {
	var req models.NewUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Add(r.Context(), callerIdentity(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, user, http.StatusCreated)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, &service.ValidationError{Fields: []string{models.ColEmail}, Reason: "malformed e-mail in path"})
		return
	}

	removed, err := h.services.UserService.DeleteByEmail(r.Context(), callerIdentity(r), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, removed, http.StatusOK)
}
