package cli

import (
	"fmt"

	"formbuilder/internal/form"

	"github.com/spf13/cobra"
)

func ValidateCmd(flags *rootFlags) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "validate <source>",
		Short: "Check a question file without creating anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := flags.loadDocument(cmd.Context(), args[0], formatFlag)
			if err != nil {
				return err
			}

			normalized, errs := form.Normalize(doc.Questions)
			printValidation(cmd, errs)
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d questions failed validation",
					invalidCount(errs), len(doc.Questions))
			}

			cmd.Printf("%d questions valid\n", len(normalized))

			counts := make(map[form.Kind]int, len(normalized))
			for _, q := range normalized {
				counts[q.Kind]++
			}
			for _, k := range form.Kinds() {
				if counts[k] > 0 {
					cmd.Printf("  %-16s %d\n", k, counts[k])
				}
			}

			for i, q := range normalized {
				line := fmt.Sprintf("%3d. [%s] %s", i+1, q.Kind, q.Text)
				if len(q.Options) > 0 {
					line += fmt.Sprintf(" (%d options)", len(q.Options))
				}
				cmd.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "input format: json, csv, xlsx or sheets (default: detect)")
	return cmd
}
