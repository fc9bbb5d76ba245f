package handlers

import (
	"context"
	"net/http"

	"denizsel-backend/internal/models"
	"denizsel-backend/internal/services"
)

type contactSubmitter interface {
	Submit(ctx context.Context, req *models.ContactRequest) (string, error)
}

type ContactHandler struct {
	contact contactSubmitter
}

func NewContactHandler(contact contactSubmitter) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(services.TextFor(models.ParseLanguage(req.Language)).ContactInvalid, r))
		return
	}

	message, err := h.contact.Submit(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, err, services.TextFor(models.ParseLanguage(req.Language)).ContactFailed)
		return
	}

	writeJSON(w, http.StatusOK, models.ContactResponse{Success: true, Message: message})
}
