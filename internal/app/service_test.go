package app

import (
	"context"
	"errors"
	"testing"

	"formbuilder/internal/form"
	"formbuilder/internal/gforms"
)

type fakeFormsAPI struct {
	createFn func(ctx context.Context, f form.Form) (*gforms.CreateResult, error)
}

func (f *fakeFormsAPI) CreateForm(ctx context.Context, fr form.Form) (*gforms.CreateResult, error) {
	if f.createFn == nil {
		return nil, errors.New("not implemented")
	}
	return f.createFn(ctx, fr)
}

func (f *fakeFormsAPI) ListForms(ctx context.Context, max int) ([]gforms.FormSummary, error) {
	return nil, errors.New("not implemented")
}

func TestServiceCreateRejectsInvalidBatch(t *testing.T) {
	svc := NewService(&fakeFormsAPI{
		createFn: func(ctx context.Context, f form.Form) (*gforms.CreateResult, error) {
			t.Fatal("CreateForm should not be called for an invalid batch")
			return nil, nil
		},
	}, nil, nil)

	res, errs, err := svc.Create(context.Background(), CreateFormInput{
		Questions: []form.RawQuestion{
			{Text: "Good", TypeToken: "short answer"},
			{Text: "Bad", TypeToken: "dropdown"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != nil {
		t.Fatal("expected no result")
	}
	if len(errs) != 1 || errs[0].Index != 1 {
		t.Errorf("errs = %+v", errs)
	}
}

func TestServiceCreateForcePartial(t *testing.T) {
	var published form.Form
	svc := NewService(&fakeFormsAPI{
		createFn: func(ctx context.Context, f form.Form) (*gforms.CreateResult, error) {
			published = f
			return &gforms.CreateResult{FormID: "f1", Title: f.Title, QuestionCount: len(f.Questions)}, nil
		},
	}, nil, nil)

	res, errs, err := svc.Create(context.Background(), CreateFormInput{
		Title:        "Partial",
		ForcePartial: true,
		Questions: []form.RawQuestion{
			{Text: "Good", TypeToken: "short answer"},
			{Text: "Bad", TypeToken: "dropdown"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || res.QuestionCount != 1 {
		t.Fatalf("result = %+v", res)
	}
	if len(errs) != 1 {
		t.Errorf("errs = %+v", errs)
	}
	if len(published.Questions) != 1 || published.Questions[0].Text != "Good" {
		t.Errorf("published = %+v", published.Questions)
	}
}

func TestServiceCreateNoValidQuestions(t *testing.T) {
	svc := NewService(&fakeFormsAPI{}, nil, nil)

	_, _, err := svc.Create(context.Background(), CreateFormInput{
		ForcePartial: true,
		Questions:    []form.RawQuestion{{Text: "Bad", TypeToken: "nope"}},
	})
	if !errors.Is(err, ErrNoValidQuestions) {
		t.Fatalf("expected ErrNoValidQuestions, got %v", err)
	}
}

func TestServiceCreateDefaultsTitle(t *testing.T) {
	svc := NewService(&fakeFormsAPI{
		createFn: func(ctx context.Context, f form.Form) (*gforms.CreateResult, error) {
			if f.Title != form.DefaultTitle {
				t.Errorf("title = %q", f.Title)
			}
			return &gforms.CreateResult{FormID: "f1", Title: f.Title, QuestionCount: 1}, nil
		},
	}, nil, nil)

	if _, _, err := svc.Create(context.Background(), CreateFormInput{
		Questions: []form.RawQuestion{{Text: "Q", TypeToken: "text"}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
