package form

import (
	"fmt"
	"strings"
)

// Kind is a canonical question type. The set is closed: every question
// resolves to exactly one Kind, and the Kind decides whether options are
// required.
type Kind string

const (
	ShortAnswer    Kind = "short answer"
	Paragraph      Kind = "paragraph"
	MultipleChoice Kind = "multiple choice"
	Checkboxes     Kind = "checkboxes"
	Dropdown       Kind = "dropdown"
)

// kindAliases maps trimmed, lowercased input spellings to canonical kinds.
// Every canonical name is its own alias so normalized output round-trips.
var kindAliases = map[string]Kind{
	"short answer": ShortAnswer,
	"text":         ShortAnswer,

	"paragraph":   Paragraph,
	"long_answer": Paragraph,
	"textarea":    Paragraph,

	"multiple choice": MultipleChoice,
	"radio":           MultipleChoice,

	"checkboxes":   Checkboxes,
	"checkbox":     Checkboxes,
	"multi_select": Checkboxes,

	"dropdown": Dropdown,
	"select":   Dropdown,
}

// UnknownKindError reports a type token with no alias. Token holds the
// original input verbatim, before trimming or lowercasing, so callers can
// echo it back to the user unmodified.
type UnknownKindError struct {
	Token string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown question type %q", e.Token)
}

// ParseKind resolves a raw type token to its canonical Kind. Lookup is
// case-insensitive and ignores surrounding whitespace; matching is exact,
// never fuzzy or prefix-based.
func ParseKind(token string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return "", &UnknownKindError{Token: token}
	}
	return k, nil
}

// RequiresOptions reports whether the kind needs a non-empty option list.
func RequiresOptions(k Kind) bool {
	switch k {
	case MultipleChoice, Checkboxes, Dropdown:
		return true
	case ShortAnswer, Paragraph:
		return false
	default:
		return false
	}
}

// Kinds returns the canonical kinds in presentation order.
func Kinds() []Kind {
	return []Kind{ShortAnswer, Paragraph, MultipleChoice, Checkboxes, Dropdown}
}

// Aliases returns the accepted input spellings per kind.
func Aliases() map[Kind][]string {
	out := make(map[Kind][]string, len(kindAliases))
	for alias, k := range kindAliases {
		out[k] = append(out[k], alias)
	}
	return out
}
