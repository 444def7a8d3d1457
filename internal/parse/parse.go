// Package parse turns question sources (JSON files, CSV files, Excel
// workbooks, Google Sheets) into raw question batches. Adapters only decode
// and shape rows; all validation happens in the form package.
package parse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"formbuilder/internal/form"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSheets Format = "sheets"
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoRows         = errors.New("no data rows found")
	ErrBadFormat      = errors.New("unsupported input format")
)

// Document is a parsed source: a suggested title plus the raw records.
type Document struct {
	Title     string
	Questions []form.RawQuestion
}

// ParseFormat validates a user-supplied format override.
func ParseFormat(v string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(v))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatSheets:
		return FormatSheets, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadFormat, v)
	}
}

// Detect guesses the source format: a Google Sheets URL or bare spreadsheet
// ID first, then the file extension, then a content sniff.
func Detect(source string) Format {
	if looksLikeSheet(source) {
		return FormatSheets
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	}

	if raw, err := os.ReadFile(source); err == nil {
		content := strings.TrimSpace(string(raw))
		if strings.HasPrefix(content, "[") || strings.HasPrefix(content, "{") {
			return FormatJSON
		}
		if strings.Contains(content, ",") {
			return FormatCSV
		}
	}
	return FormatJSON
}

func looksLikeSheet(source string) bool {
	if strings.Contains(source, "docs.google.com") && strings.Contains(source, "spreadsheets") {
		return true
	}
	// A bare spreadsheet ID: long, no path separators, no extension.
	return len(source) > 20 && !strings.ContainsAny(source, "/\\.")
}

// titleFromPath derives the original "Form from <stem>" title.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return "Form from " + stem
}

// fromTable maps header-addressed rows onto raw questions. The header row is
// matched case-insensitively; question and type columns are required,
// description is optional. Rows whose cells are all blank are skipped as
// spreadsheet padding; partially filled rows pass through so the validator
// can report them.
func fromTable(rows [][]string, title string) (*Document, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	header := map[string]int{}
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"question", "type"} {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, col)
		}
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	questions := make([]form.RawQuestion, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		get := func(key string) string {
			idx, ok := header[key]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		q := form.RawQuestion{
			Text:        get("question"),
			Description: get("description"),
			TypeToken:   get("type"),
		}
		if opts := get("options"); opts != "" {
			q.Options = form.SplitOptionList(opts)
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, ErrNoRows
	}

	return &Document{Title: title, Questions: questions}, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
