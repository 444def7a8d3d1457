package gforms

import "formbuilder/internal/form"

// choiceTypes maps checked choice kinds to the Forms API choiceQuestion type.
var choiceTypes = map[form.Kind]string{
	form.MultipleChoice: "RADIO",
	form.Checkboxes:     "CHECKBOX",
	form.Dropdown:       "DROP_DOWN",
}

// BuildItemRequests translates normalized questions into the createItem
// requests of a Forms batchUpdate call. Item order matches question order;
// the index field keeps the API from reordering on insert.
func BuildItemRequests(questions []form.NormalizedQuestion) []map[string]any {
	requests := make([]map[string]any, 0, len(questions))
	for i, q := range questions {
		var question map[string]any
		if t, ok := choiceTypes[q.Kind]; ok {
			opts := make([]map[string]any, 0, len(q.Options))
			for _, o := range q.Options {
				opts = append(opts, map[string]any{"value": o})
			}
			question = map[string]any{
				"choiceQuestion": map[string]any{
					"type":    t,
					"options": opts,
				},
			}
		} else {
			question = map[string]any{
				"textQuestion": map[string]any{
					"paragraph": q.Kind == form.Paragraph,
				},
			}
		}
		question["required"] = false

		item := map[string]any{
			"title":        q.Text,
			"questionItem": map[string]any{"question": question},
		}
		if q.Description != nil {
			item["description"] = *q.Description
		}

		requests = append(requests, map[string]any{
			"createItem": map[string]any{
				"item":     item,
				"location": map[string]any{"index": i},
			},
		})
	}
	return requests
}
