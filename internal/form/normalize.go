package form

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoQuestions = errors.New("form has no questions")

// RawQuestion is one input record before validation. TypeToken may embed an
// inline option list ("multiple choice: Red, Green"); Options is used when
// the source supplies options separately (JSON arrays, an options column).
type RawQuestion struct {
	Text        string   `json:"question"`
	Description string   `json:"description,omitempty"`
	TypeToken   string   `json:"type"`
	Options     []string `json:"options,omitempty"`
}

// NormalizedQuestion is the validated, canonical record handed to the form
// creation client. Options is never nil for choice kinds and always empty
// for text kinds.
type NormalizedQuestion struct {
	Text        string   `json:"question"`
	Description *string  `json:"description,omitempty"`
	Kind        Kind     `json:"type"`
	Options     []string `json:"options,omitempty"`
}

// ValidationError pins one problem to one input record. Index is the
// position in the input batch, Field one of "type", "question", "options".
type ValidationError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("question %d: %s: %s", e.Index, e.Field, e.Message)
}

// Form is a titled batch of normalized questions ready for submission.
type Form struct {
	Title       string
	Description string
	Questions   []NormalizedQuestion
}

const DefaultTitle = "Untitled Form"

// NewForm builds a Form, falling back to DefaultTitle when title is blank.
func NewForm(title, description string, questions []NormalizedQuestion) (*Form, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	return &Form{
		Title:       title,
		Description: strings.TrimSpace(description),
		Questions:   questions,
	}, nil
}

// Normalize validates and canonicalizes a batch in one pass. Every record
// either contributes one NormalizedQuestion or at least one ValidationError,
// never both. All records are checked; a bad record never stops the batch,
// and output order matches input order.
func Normalize(batch []RawQuestion) ([]NormalizedQuestion, []ValidationError) {
	questions := make([]NormalizedQuestion, 0, len(batch))
	var errs []ValidationError

	for i, raw := range batch {
		token := raw.TypeToken
		options := raw.Options
		if kindPart, inline, ok := splitInlineOptions(token); ok {
			token = kindPart
			options = inline
		}

		recordOK := true

		kind, err := ParseKind(token)
		if err != nil {
			var unknown *UnknownKindError
			errors.As(err, &unknown)
			errs = append(errs, ValidationError{
				Index:   i,
				Field:   "type",
				Message: fmt.Sprintf("unrecognized question type %q", unknown.Token),
			})
			recordOK = false
		}

		text := strings.TrimSpace(raw.Text)
		if text == "" {
			errs = append(errs, ValidationError{
				Index:   i,
				Field:   "question",
				Message: "question text is required",
			})
			recordOK = false
		}

		// The options check needs a resolved kind; skip it when the type
		// token already failed.
		var cleaned []string
		if recordOK || kind != "" {
			if RequiresOptions(kind) {
				cleaned = cleanOptions(options)
				if len(cleaned) == 0 {
					errs = append(errs, ValidationError{
						Index:   i,
						Field:   "options",
						Message: fmt.Sprintf("%s questions must have at least one option", kind),
					})
					recordOK = false
				}
			}
		}

		if !recordOK {
			continue
		}

		var description *string
		if d := strings.TrimSpace(raw.Description); d != "" {
			description = &d
		}
		if cleaned == nil {
			cleaned = []string{}
		}
		questions = append(questions, NormalizedQuestion{
			Text:        text,
			Description: description,
			Kind:        kind,
			Options:     cleaned,
		})
	}

	return questions, errs
}

// splitInlineOptions splits "kind: opt1, opt2" on the first colon. The
// option list is comma-separated; double or single quotes protect embedded
// commas and surrounding quotes are stripped ("New York, NY" stays one
// option).
func splitInlineOptions(token string) (string, []string, bool) {
	idx := strings.Index(token, ":")
	if idx < 0 {
		return "", nil, false
	}
	return token[:idx], SplitOptionList(token[idx+1:]), true
}

// SplitOptionList splits a comma-separated option list with the same
// quote-aware rules as inline type options. Adapters use it for separate
// option columns.
func SplitOptionList(s string) []string {
	rest := strings.TrimSpace(s)

	var options []string
	var current strings.Builder
	var quote rune
	inQuotes := false

	flush := func() {
		opt := strings.TrimSpace(current.String())
		opt = stripQuotes(opt)
		opt = strings.TrimSpace(opt)
		if opt != "" {
			options = append(options, opt)
		}
		current.Reset()
	}

	for _, ch := range rest {
		switch {
		case !inQuotes && (ch == '"' || ch == '\''):
			inQuotes = true
			quote = ch
			current.WriteRune(ch)
		case inQuotes && ch == quote:
			inQuotes = false
			current.WriteRune(ch)
		case !inQuotes && ch == ',':
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()

	return options
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// cleanOptions trims, drops empties, and removes exact duplicates keeping
// first-seen order.
func cleanOptions(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
