package parse

import (
	"encoding/json"
	"fmt"
	"os"

	"formbuilder/internal/form"
)

// ParseJSON reads a file holding a JSON array of question objects.
func ParseJSON(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}
	return parseJSONBytes(raw, titleFromPath(path))
}

func parseJSONBytes(raw []byte, title string) (*Document, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("json must contain an array of questions: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoRows
	}

	questions := make([]form.RawQuestion, 0, len(items))
	for i, item := range items {
		var q form.RawQuestion
		if err := json.Unmarshal(item, &q); err != nil {
			return nil, fmt.Errorf("question %d must be an object: %w", i+1, err)
		}
		questions = append(questions, q)
	}

	return &Document{Title: title, Questions: questions}, nil
}
