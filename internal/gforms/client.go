// Package gforms talks to the Google Forms and Drive REST APIs: it creates
// a form, pushes its questions in one batchUpdate, and lists recent forms.
package gforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"formbuilder/internal/form"
	"formbuilder/internal/gauth"
)

const (
	defaultFormsBaseURL = "https://forms.googleapis.com"
	defaultDriveBaseURL = "https://www.googleapis.com"
)

type Client struct {
	HTTP     *http.Client
	BaseURL  string
	DriveURL string
	Tokens   gauth.TokenSource
}

func NewClient(tokens gauth.TokenSource) *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		BaseURL:  defaultFormsBaseURL,
		DriveURL: defaultDriveBaseURL,
		Tokens:   tokens,
	}
}

// CreateResult describes a created form.
type CreateResult struct {
	FormID        string `json:"form_id"`
	Title         string `json:"title"`
	EditURL       string `json:"edit_url"`
	ViewURL       string `json:"view_url"`
	QuestionCount int    `json:"question_count"`
}

// FormSummary is one row of the Drive-backed recent-forms listing.
type FormSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Created string `json:"created"`
	URL     string `json:"url"`
}

// CreateForm creates the form shell, then batch-adds the description and
// every question. The returned URLs follow the docs.google.com edit/view
// layout.
func (c *Client) CreateForm(ctx context.Context, f form.Form) (*CreateResult, error) {
	if len(f.Questions) == 0 {
		return nil, form.ErrNoQuestions
	}

	shell := map[string]any{
		"info": map[string]any{"title": f.Title},
	}
	var created struct {
		FormID string `json:"formId"`
	}
	if err := c.do(ctx, http.MethodPost, c.BaseURL+"/v1/forms", shell, &created); err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	if created.FormID == "" {
		return nil, fmt.Errorf("create form: response missing formId")
	}

	requests := make([]map[string]any, 0, len(f.Questions)+1)
	if f.Description != "" {
		requests = append(requests, map[string]any{
			"updateFormInfo": map[string]any{
				"info":       map[string]any{"description": f.Description},
				"updateMask": "description",
			},
		})
	}
	requests = append(requests, BuildItemRequests(f.Questions)...)

	batch := map[string]any{"requests": requests}
	batchURL := c.BaseURL + "/v1/forms/" + url.PathEscape(created.FormID) + ":batchUpdate"
	if err := c.do(ctx, http.MethodPost, batchURL, batch, nil); err != nil {
		return nil, fmt.Errorf("add questions: %w", err)
	}

	return &CreateResult{
		FormID:        created.FormID,
		Title:         f.Title,
		EditURL:       "https://docs.google.com/forms/d/" + created.FormID + "/edit",
		ViewURL:       "https://docs.google.com/forms/d/" + created.FormID + "/viewform",
		QuestionCount: len(f.Questions),
	}, nil
}

// ListForms returns up to max recent Google Forms from Drive.
func (c *Client) ListForms(ctx context.Context, max int) ([]FormSummary, error) {
	if max <= 0 {
		max = 10
	}
	q := url.Values{}
	q.Set("q", "mimeType='application/vnd.google-apps.form'")
	q.Set("pageSize", fmt.Sprint(max))
	q.Set("fields", "files(id, name, createdTime, webViewLink)")

	var out struct {
		Files []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			CreatedTime string `json:"createdTime"`
			WebViewLink string `json:"webViewLink"`
		} `json:"files"`
	}
	if err := c.do(ctx, http.MethodGet, c.DriveURL+"/drive/v3/files?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}

	forms := make([]FormSummary, 0, len(out.Files))
	for _, f := range out.Files {
		forms = append(forms, FormSummary{
			ID:      f.ID,
			Title:   f.Name,
			Created: f.CreatedTime,
			URL:     f.WebViewLink,
		})
	}
	return forms, nil
}

func (c *Client) do(ctx context.Context, method, rawURL string, in, out any) error {
	tok, err := c.Tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("forms auth: %w", err)
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("forms request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("forms api: status %d: %s", resp.StatusCode, snippet(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 512 {
		s = s[:512] + "..."
	}
	return s
}
