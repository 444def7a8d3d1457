package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"formbuilder/internal/app/observability"
	"formbuilder/internal/form"
	"formbuilder/internal/gforms"
	"formbuilder/internal/history"
)

var ErrNoValidQuestions = errors.New("no valid questions to publish")

type CreateFormInput struct {
	Title        string
	Description  string
	Questions    []form.RawQuestion
	ForcePartial bool
	Source       string
}

// Service glues validation, the Forms API client and the history store
// behind the HTTP handlers.
type Service struct {
	forms     formsAPI
	history   *history.Store
	collector *observability.Collector
}

type formsAPI interface {
	CreateForm(ctx context.Context, f form.Form) (*gforms.CreateResult, error)
	ListForms(ctx context.Context, max int) ([]gforms.FormSummary, error)
}

func NewService(forms formsAPI, hist *history.Store, collector *observability.Collector) *Service {
	return &Service{forms: forms, history: hist, collector: collector}
}

// Validate runs the question checks without touching any remote API.
func (s *Service) Validate(batch []form.RawQuestion) ([]form.NormalizedQuestion, []form.ValidationError) {
	return form.Normalize(batch)
}

// Create validates the batch and publishes it as a new form. Validation
// failures come back in the second return; with ForcePartial set the valid
// questions are published anyway.
func (s *Service) Create(ctx context.Context, in CreateFormInput) (*gforms.CreateResult, []form.ValidationError, error) {
	normalized, errs := form.Normalize(in.Questions)
	if len(errs) > 0 && !in.ForcePartial {
		return nil, errs, nil
	}
	if len(normalized) == 0 {
		return nil, errs, ErrNoValidQuestions
	}

	f, err := form.NewForm(in.Title, in.Description, normalized)
	if err != nil {
		return nil, errs, err
	}

	res, err := s.forms.CreateForm(ctx, *f)
	if err != nil {
		return nil, errs, fmt.Errorf("publish form: %w", err)
	}

	if s.collector != nil {
		s.collector.CountFormCreated(res.QuestionCount)
	}
	if s.history != nil {
		entry := history.Entry{
			FormID:        res.FormID,
			Title:         res.Title,
			QuestionCount: res.QuestionCount,
			EditURL:       res.EditURL,
			ViewURL:       res.ViewURL,
			Source:        in.Source,
		}
		if err := s.history.Record(ctx, entry); err != nil {
			// The form exists remotely; a history miss is not fatal.
			log.Printf("history record failed: %v", err)
		}
	}
	return res, errs, nil
}

// Recent lists recently created forms from the history store.
func (s *Service) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	if s.history == nil {
		return nil, errors.New("history store not configured")
	}
	return s.history.List(ctx, limit)
}
