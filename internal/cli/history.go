package cli

import (
	"github.com/spf13/cobra"
)

func HistoryCmd(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List forms created by this tool, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeStore, err := flags.historyStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			entries, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cmd.Println("no history yet")
				return nil
			}
			for _, e := range entries {
				cmd.Printf("%s  %s (%d questions)\n      %s\n",
					e.CreatedAt.Format("2006-01-02 15:04"), e.Title, e.QuestionCount, e.EditURL)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries to list")
	return cmd
}
