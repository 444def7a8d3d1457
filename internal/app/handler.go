package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"formbuilder/internal/app/apiresp"
	"formbuilder/internal/form"
	"formbuilder/internal/gforms"
	"formbuilder/internal/history"
)

type Handler struct {
	svc formbuilderService
}

type formbuilderService interface {
	Validate(batch []form.RawQuestion) ([]form.NormalizedQuestion, []form.ValidationError)
	Create(ctx context.Context, in CreateFormInput) (*gforms.CreateResult, []form.ValidationError, error)
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

func NewHandler(svc formbuilderService) *Handler {
	return &Handler{svc: svc}
}

type validateRequest struct {
	Questions []form.RawQuestion `json:"questions"`
}

type validateResponse struct {
	Valid     bool                      `json:"valid"`
	Questions []form.NormalizedQuestion `json:"questions"`
	Errors    []form.ValidationError    `json:"errors"`
}

type createFormRequest struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Questions    []form.RawQuestion `json:"questions"`
	ForcePartial bool               `json:"force_partial"`
}

func (h *Handler) ValidateQuestions(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Questions) == 0 {
		apiresp.WriteError(w, r, http.StatusBadRequest, "questions is required")
		return
	}

	normalized, errs := h.svc.Validate(req.Questions)
	if errs == nil {
		errs = []form.ValidationError{}
	}
	apiresp.WriteOK(w, r, http.StatusOK, validateResponse{
		Valid:     len(errs) == 0,
		Questions: normalized,
		Errors:    errs,
	})
}

func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	var req createFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Questions) == 0 {
		apiresp.WriteError(w, r, http.StatusBadRequest, "questions is required")
		return
	}

	res, errs, err := h.svc.Create(r.Context(), CreateFormInput{
		Title:        req.Title,
		Description:  req.Description,
		Questions:    req.Questions,
		ForcePartial: req.ForcePartial,
		Source:       "api",
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoValidQuestions), errors.Is(err, form.ErrNoQuestions):
			// force_partial with nothing valid left: keep the per-question
			// diagnostics in the response.
			if len(errs) > 0 {
				apiresp.WriteValidation(w, r, errs)
				return
			}
			apiresp.WriteError(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			apiresp.WriteError(w, r, http.StatusBadGateway, "form creation failed upstream")
		}
		return
	}
	if res == nil {
		apiresp.WriteValidation(w, r, errs)
		return
	}

	apiresp.WriteOK(w, r, http.StatusCreated, res)
}

func (h *Handler) ListForms(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			apiresp.WriteError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	entries, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	apiresp.WriteOK(w, r, http.StatusOK, entries)
}
