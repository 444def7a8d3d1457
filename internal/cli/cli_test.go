package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"formbuilder/internal/parse"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := RootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestTypesCmd(t *testing.T) {
	out, _, err := runCmd(t, "types")
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	for _, want := range []string{"short answer", "paragraph", "multiple choice", "checkboxes", "dropdown", "radio", "requires options"} {
		if !strings.Contains(out, want) {
			t.Errorf("types output missing %q", want)
		}
	}
}

func TestFormatsCmd(t *testing.T) {
	out, _, err := runCmd(t, "formats")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}
	for _, want := range []string{"json", "csv", "xlsx", "sheets"} {
		if !strings.Contains(out, want) {
			t.Errorf("formats output missing %q", want)
		}
	}
}

func TestExampleCmdJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample")
	_, _, err := runCmd(t, "example", path, "--format", "json")
	if err != nil {
		t.Fatalf("example: %v", err)
	}

	doc, err := parse.ParseJSON(path + ".json")
	if err != nil {
		t.Fatalf("parse example: %v", err)
	}
	if len(doc.Questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(doc.Questions))
	}
}

func TestExampleCmdCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample")
	_, _, err := runCmd(t, "example", path, "--format", "csv")
	if err != nil {
		t.Fatalf("example: %v", err)
	}

	doc, err := parse.ParseCSV(path + ".csv")
	if err != nil {
		t.Fatalf("parse example: %v", err)
	}
	if len(doc.Questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(doc.Questions))
	}
}

func TestValidateCmdValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	data := `[
		{"question": "Name?", "type": "short answer"},
		{"question": "Color?", "type": "multiple choice", "options": ["Red", "Blue"]}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, _, err := runCmd(t, "validate", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "2 questions valid") {
		t.Errorf("output = %q", out)
	}
}

func TestValidateCmdInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	data := `[{"question": "Pick", "type": "dropdown"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, errOut, err := runCmd(t, "validate", path)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(errOut, "row 1: options:") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestServeCmdStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	tokenJSON := `{"client_id":"cid","client_secret":"cs","refresh_token":"rt"}`
	if err := os.WriteFile(tokenPath, []byte(tokenJSON), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := RootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{
		"serve",
		"--addr", "127.0.0.1:0",
		"--credentials", filepath.Join(dir, "missing.json"),
		"--token", tokenPath,
		"--history-driver", "sqlite",
		"--history-dsn", "file:" + filepath.Join(dir, "history.db"),
	})

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error on cancellation: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return after context cancellation")
	}
}
