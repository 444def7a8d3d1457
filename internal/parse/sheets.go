package parse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"formbuilder/internal/gauth"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com"

var sheetIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`),
	regexp.MustCompile(`docs\.google\.com.*[/=]([a-zA-Z0-9-_]{30,})`),
}

var ErrSheetID = errors.New("could not extract spreadsheet id")

// SheetsClient fetches spreadsheet rows from the Google Sheets API.
type SheetsClient struct {
	HTTP    *http.Client
	BaseURL string
	Tokens  gauth.TokenSource
}

func NewSheetsClient(tokens gauth.TokenSource) *SheetsClient {
	return &SheetsClient{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		BaseURL: defaultSheetsBaseURL,
		Tokens:  tokens,
	}
}

// ExtractSheetID pulls the spreadsheet id out of a Sheets URL, or returns a
// bare id unchanged.
func ExtractSheetID(source string) (string, error) {
	if !strings.Contains(source, "/") && len(source) > 20 {
		return source, nil
	}
	for _, re := range sheetIDPatterns {
		if m := re.FindStringSubmatch(source); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetID, source)
}

// Parse fetches the first worksheet of the spreadsheet behind source (URL or
// id) and maps it like a CSV table. The spreadsheet title becomes the form
// title.
func (c *SheetsClient) Parse(ctx context.Context, source string) (*Document, error) {
	id, err := ExtractSheetID(source)
	if err != nil {
		return nil, err
	}

	title, firstSheet, err := c.metadata(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := c.values(ctx, id, firstSheet)
	if err != nil {
		return nil, err
	}
	return fromTable(rows, title)
}

func (c *SheetsClient) metadata(ctx context.Context, id string) (title, firstSheet string, err error) {
	var out struct {
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
		Sheets []struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
	}
	path := "/v4/spreadsheets/" + url.PathEscape(id) + "?fields=properties.title,sheets.properties.title"
	if err := c.get(ctx, path, &out); err != nil {
		return "", "", err
	}
	if len(out.Sheets) == 0 {
		return "", "", errors.New("spreadsheet has no sheets")
	}
	return out.Properties.Title, out.Sheets[0].Properties.Title, nil
}

func (c *SheetsClient) values(ctx context.Context, id, sheet string) ([][]string, error) {
	var out struct {
		Values [][]any `json:"values"`
	}
	path := "/v4/spreadsheets/" + url.PathEscape(id) + "/values/" + url.PathEscape(sheet)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(out.Values))
	for _, raw := range out.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *SheetsClient) get(ctx context.Context, path string, out any) error {
	tok, err := c.Tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("sheets auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build sheets request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("sheets api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode sheets response: %w", err)
	}
	return nil
}
