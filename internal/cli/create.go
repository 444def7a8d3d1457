package cli

import (
	"fmt"

	"formbuilder/internal/form"
	"formbuilder/internal/history"

	"github.com/spf13/cobra"
)

func CreateCmd(flags *rootFlags) *cobra.Command {
	var (
		formatFlag   string
		title        string
		description  string
		forcePartial bool
		noHistory    bool
	)

	cmd := &cobra.Command{
		Use:   "create <source>",
		Short: "Validate questions and create a Google Form from them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source := args[0]

			doc, err := flags.loadDocument(ctx, source, formatFlag)
			if err != nil {
				return err
			}

			normalized, errs := form.Normalize(doc.Questions)
			printValidation(cmd, errs)
			if len(errs) > 0 && !forcePartial {
				return fmt.Errorf("%d of %d questions failed validation (use --force-partial to create anyway)",
					invalidCount(errs), len(doc.Questions))
			}

			formTitle := title
			if formTitle == "" {
				formTitle = doc.Title
			}
			built, err := form.NewForm(formTitle, description, normalized)
			if err != nil {
				return err
			}

			client, err := flags.formsClient()
			if err != nil {
				return err
			}
			res, err := client.CreateForm(ctx, *built)
			if err != nil {
				return err
			}

			cmd.Printf("Created form %q with %d questions\n", res.Title, res.QuestionCount)
			cmd.Printf("  edit: %s\n", res.EditURL)
			cmd.Printf("  view: %s\n", res.ViewURL)

			if !noHistory {
				store, closeStore, err := flags.historyStore(ctx)
				if err != nil {
					cmd.PrintErrf("warning: history unavailable: %v\n", err)
					return nil
				}
				defer closeStore()
				if err := store.Record(ctx, history.Entry{
					FormID:        res.FormID,
					Title:         res.Title,
					QuestionCount: res.QuestionCount,
					EditURL:       res.EditURL,
					ViewURL:       res.ViewURL,
					Source:        source,
				}); err != nil {
					cmd.PrintErrf("warning: history record failed: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "input format: json, csv, xlsx or sheets (default: detect)")
	cmd.Flags().StringVar(&title, "title", "", "form title (default: derived from the source)")
	cmd.Flags().StringVar(&description, "description", "", "form description")
	cmd.Flags().BoolVar(&forcePartial, "force-partial", false, "create the form from the valid questions even if some fail")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording the form in the history database")

	return cmd
}

func printValidation(cmd *cobra.Command, errs []form.ValidationError) {
	for _, e := range errs {
		cmd.PrintErrf("row %d: %s: %s\n", e.Index+1, e.Field, e.Message)
	}
}

// invalidCount counts distinct question indexes, since one question can
// fail more than one check.
func invalidCount(errs []form.ValidationError) int {
	seen := make(map[int]bool, len(errs))
	for _, e := range errs {
		seen[e.Index] = true
	}
	return len(seen)
}
