package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"formbuilder/internal/form"

	"github.com/spf13/cobra"
)

func FormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Show the supported input formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Supported input formats:")
			cmd.Println("  json    array of question objects")
			cmd.Println("  csv     table with Question, Type and optional Description, Options columns")
			cmd.Println("  xlsx    first worksheet, same columns as csv")
			cmd.Println("  sheets  Google Sheets URL or spreadsheet ID, same columns as csv")
			cmd.Println()
			cmd.Println("Choice options can live in an Options column or inline in the type,")
			cmd.Println(`e.g. "multiple choice: Red, Green, Blue".`)
		},
	}
}

func TypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Show the supported question types and their aliases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			aliases := form.Aliases()
			cmd.Println("Supported question types:")
			for _, k := range form.Kinds() {
				names := aliases[k]
				sort.Strings(names)
				line := fmt.Sprintf("  %-16s aliases: %s", k, strings.Join(names, ", "))
				if form.RequiresOptions(k) {
					line += "  (requires options)"
				}
				cmd.Println(line)
			}
		},
	}
}

var sampleQuestions = []form.RawQuestion{
	{
		Text:        "What is your full name?",
		Description: "Please enter your first and last name",
		TypeToken:   "short answer",
	},
	{
		Text:        "Tell us about yourself",
		Description: "Write a brief description",
		TypeToken:   "paragraph",
	},
	{
		Text:        "What is your favorite programming language?",
		Description: "Choose one from the list",
		TypeToken:   "multiple choice",
		Options:     []string{"Python", "JavaScript", "Java", "C++", "Go", "Rust"},
	},
	{
		Text:        "Which technologies do you use?",
		Description: "Select all that apply",
		TypeToken:   "checkboxes",
		Options:     []string{"React", "Vue", "Angular", "Django", "Flask", "Docker", "Kubernetes"},
	},
	{
		Text:      "What is your experience level?",
		TypeToken: "dropdown",
		Options:   []string{"Beginner", "Intermediate", "Advanced", "Expert"},
	},
}

func ExampleCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "example <output-path>",
		Short: "Write a sample question file to try the tool with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			switch outputFormat {
			case "json":
				if filepath.Ext(path) == "" {
					path += ".json"
				}
				if err := writeExampleJSON(path); err != nil {
					return err
				}
			case "csv":
				if filepath.Ext(path) == "" {
					path += ".csv"
				}
				if err := writeExampleCSV(path); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported example format %q (json or csv)", outputFormat)
			}
			cmd.Printf("Example %s file created: %s\n", strings.ToUpper(outputFormat), path)
			cmd.Printf("Try it with: formbuilder create %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "json", "example format: json or csv")
	return cmd
}

func writeExampleJSON(path string) error {
	buf, err := json.MarshalIndent(sampleQuestions, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(buf, '\n'), 0o644)
}

func writeExampleCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Question", "Description", "Type"}); err != nil {
		return err
	}
	for _, q := range sampleQuestions {
		typeStr := q.TypeToken
		if len(q.Options) > 0 {
			typeStr = q.TypeToken + ": " + strings.Join(q.Options, ", ")
		}
		if err := w.Write([]string{q.Text, q.Description, typeStr}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
