package parse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"formbuilder/internal/gauth"
)

func TestExtractSheetID(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantErr bool
	}{
		{name: "edit url", source: "https://docs.google.com/spreadsheets/d/1AbCdEf-GhIjKl_MnOp/edit#gid=0", want: "1AbCdEf-GhIjKl_MnOp"},
		{name: "bare id", source: "1AbCdEfGhIjKlMnOpQrStUvWxYz12345", want: "1AbCdEfGhIjKlMnOpQrStUvWxYz12345"},
		{name: "garbage", source: "https://example.com/nothing", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractSheetID(tc.source)
			if tc.wantErr {
				if !errors.Is(err, ErrSheetID) {
					t.Fatalf("expected ErrSheetID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSheetsClientParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "/values/") {
			_, _ = w.Write([]byte(`{"values":[["Question","Type"],["Name?","short answer"],["Pick","dropdown: A, B"]]}`))
			return
		}
		_, _ = w.Write([]byte(`{"properties":{"title":"My Survey"},"sheets":[{"properties":{"title":"Sheet1"}}]}`))
	}))
	defer srv.Close()

	c := &SheetsClient{
		HTTP:    srv.Client(),
		BaseURL: srv.URL,
		Tokens:  gauth.StaticToken("test-token"),
	}

	doc, err := c.Parse(context.Background(), "1AbCdEfGhIjKlMnOpQrStUvWxYz12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "My Survey" {
		t.Fatalf("expected spreadsheet title, got %q", doc.Title)
	}
	if len(doc.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(doc.Questions))
	}
	if doc.Questions[1].TypeToken != "dropdown: A, B" {
		t.Fatalf("unexpected type token %q", doc.Questions[1].TypeToken)
	}
}

func TestSheetsClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":"PERMISSION_DENIED"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := &SheetsClient{HTTP: srv.Client(), BaseURL: srv.URL, Tokens: gauth.StaticToken("t")}
	_, err := c.Parse(context.Background(), "1AbCdEfGhIjKlMnOpQrStUvWxYz12345")
	if err == nil || !strings.Contains(err.Error(), "status 403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}
