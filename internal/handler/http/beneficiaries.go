package http

import (
	"net/http"

	"github.com/MKhiriev/go-data-hub/models"
)

func (h *Handler) listBeneficiaries(w http.ResponseWriter, r *http.Request) {
	snap, err := h.services.BeneficiaryService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, snap, http.StatusOK)
}

func (h *Handler) registerBeneficiary(w http.ResponseWriter, r *http.Request) {
	var b models.Beneficiary
	if err := decodeBody(r, &b); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.BeneficiaryService.Register(r.Context(), callerIdentity(r), b)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, result, http.StatusCreated)
}
