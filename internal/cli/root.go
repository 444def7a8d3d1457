// Package cli holds the formbuilder command tree.
package cli

import (
	"context"
	"fmt"

	"formbuilder/internal/gauth"
	"formbuilder/internal/gforms"
	"formbuilder/internal/history"
	"formbuilder/internal/parse"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	credentialsPath string
	tokenPath       string
	historyDriver   string
	historyDSN      string
}

func RootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Create Google Forms from question definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.credentialsPath, "credentials", "credentials.json", "path to the Google credentials file")
	root.PersistentFlags().StringVar(&flags.tokenPath, "token", "token.json", "path to the stored user token file")
	root.PersistentFlags().StringVar(&flags.historyDriver, "history-driver", "sqlite", "history database driver (sqlite or postgres)")
	root.PersistentFlags().StringVar(&flags.historyDSN, "history-dsn", "", "history database DSN")

	root.AddCommand(
		CreateCmd(flags),
		ValidateCmd(flags),
		ListFormsCmd(flags),
		HistoryCmd(flags),
		FormatsCmd(),
		TypesCmd(),
		ExampleCmd(),
		ServeCmd(flags),
	)

	return root
}

func (f *rootFlags) formsClient() (*gforms.Client, error) {
	tokens, err := gauth.NewTokenSource(f.credentialsPath, f.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("load google credentials: %w", err)
	}
	return gforms.NewClient(tokens), nil
}

func (f *rootFlags) sheetsClient() (*parse.SheetsClient, error) {
	tokens, err := gauth.NewTokenSource(f.credentialsPath, f.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("load google credentials: %w", err)
	}
	return parse.NewSheetsClient(tokens), nil
}

func (f *rootFlags) historyStore(ctx context.Context) (*history.Store, func(), error) {
	db, err := history.Open(ctx, history.Driver(f.historyDriver), f.historyDSN)
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(db), func() { _ = db.Close() }, nil
}

// loadDocument parses the source, building a Sheets client only when the
// source actually is a spreadsheet.
func (f *rootFlags) loadDocument(ctx context.Context, source, formatFlag string) (*parse.Document, error) {
	format := parse.Detect(source)
	if formatFlag != "" {
		var err error
		format, err = parse.ParseFormat(formatFlag)
		if err != nil {
			return nil, err
		}
	}

	var sheets *parse.SheetsClient
	if format == parse.FormatSheets {
		var err error
		sheets, err = f.sheetsClient()
		if err != nil {
			return nil, err
		}
	}
	return parse.Load(ctx, source, format, sheets)
}
