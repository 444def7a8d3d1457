package cli

import (
	"github.com/spf13/cobra"
)

func ListFormsCmd(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list-forms",
		Short: "List recent Google Forms from Drive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.formsClient()
			if err != nil {
				return err
			}
			forms, err := client.ListForms(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(forms) == 0 {
				cmd.Println("no forms found")
				return nil
			}
			for _, f := range forms {
				cmd.Printf("%s  %s\n      %s\n", f.Created, f.Title, f.URL)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of forms to list")
	return cmd
}
