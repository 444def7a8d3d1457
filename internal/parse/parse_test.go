package parse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	jsonNoExt := filepath.Join(dir, "questions")
	if err := os.WriteFile(jsonNoExt, []byte(`[{"question":"Q","type":"text"}]`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	csvNoExt := filepath.Join(dir, "rows")
	if err := os.WriteFile(csvNoExt, []byte("question,type\nQ,text\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name   string
		source string
		want   Format
	}{
		{name: "sheets url", source: "https://docs.google.com/spreadsheets/d/1AbCdEfGhIjKlMnOpQrStUvWxYz1234567890/edit", want: FormatSheets},
		{name: "bare sheet id", source: "1AbCdEfGhIjKlMnOpQrStUvWxYz1234567890", want: FormatSheets},
		{name: "json ext", source: "questions.json", want: FormatJSON},
		{name: "csv ext", source: "questions.csv", want: FormatCSV},
		{name: "xlsx ext", source: "questions.xlsx", want: FormatXLSX},
		{name: "json sniff", source: jsonNoExt, want: FormatJSON},
		{name: "csv sniff", source: csvNoExt, want: FormatCSV},
		{name: "default json", source: filepath.Join(dir, "missing"), want: FormatJSON},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.source); got != tc.want {
				t.Fatalf("Detect(%q) = %q, want %q", tc.source, got, tc.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := ParseFormat("yaml"); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
	got, err := ParseFormat(" CSV ")
	if err != nil || got != FormatCSV {
		t.Fatalf("expected csv, got %q err=%v", got, err)
	}
}

func TestFromTable(t *testing.T) {
	rows := [][]string{
		{"Question", "Description", "Type"},
		{"What is your name?", "", "short answer"},
		{"", "", ""},
		{"Pick a fruit", "Choose one", "multiple choice: Apple, Banana"},
	}

	doc, err := fromTable(rows, "Survey")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Survey" {
		t.Fatalf("expected title Survey, got %q", doc.Title)
	}
	if len(doc.Questions) != 2 {
		t.Fatalf("expected blank row skipped, got %d questions", len(doc.Questions))
	}
	if doc.Questions[1].TypeToken != "multiple choice: Apple, Banana" {
		t.Fatalf("expected inline type preserved, got %q", doc.Questions[1].TypeToken)
	}
}

func TestFromTableMissingColumns(t *testing.T) {
	_, err := fromTable([][]string{{"Question", "Description"}, {"Q", "d"}}, "t")
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
}

func TestFromTableNoDataRows(t *testing.T) {
	_, err := fromTable([][]string{{"question", "type"}}, "t")
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestParseJSONBytes(t *testing.T) {
	doc, err := parseJSONBytes([]byte(`[
		{"question":"Name?","type":"short answer"},
		{"question":"Pick","type":"dropdown","options":["A","B"],"description":"choose"}
	]`), "Form from sample")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(doc.Questions))
	}
	q := doc.Questions[1]
	if q.TypeToken != "dropdown" || len(q.Options) != 2 || q.Description != "choose" {
		t.Fatalf("unexpected question: %+v", q)
	}
}

func TestParseJSONBytesRejectsNonArray(t *testing.T) {
	if _, err := parseJSONBytes([]byte(`{"question":"Q"}`), "t"); err == nil {
		t.Fatalf("expected error for non-array json")
	}
}

func TestParseCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	content := "Question,Description,Type\nWhat is your name?,,short answer\nPick a fruit,Choose one,\"multiple choice: Apple, Banana\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := ParseCSV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Form from survey" {
		t.Fatalf("expected derived title, got %q", doc.Title)
	}
	if len(doc.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(doc.Questions))
	}
	if doc.Questions[1].TypeToken != "multiple choice: Apple, Banana" {
		t.Fatalf("unexpected type token %q", doc.Questions[1].TypeToken)
	}
}

func TestFromTableOptionsColumn(t *testing.T) {
	rows := [][]string{
		{"Question", "Type", "Options"},
		{"Pick a city", "dropdown", `"New York, NY", Boston`},
	}

	doc, err := fromTable(rows, "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := doc.Questions[0]
	if len(q.Options) != 2 || q.Options[0] != "New York, NY" || q.Options[1] != "Boston" {
		t.Fatalf("unexpected options: %v", q.Options)
	}
}
