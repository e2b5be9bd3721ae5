package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/ops"
	"github.com/iconforge/iconforge/internal/stylesheet"
)

// testConfig returns a default config that writes into a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.DataFile = filepath.Join(t.TempDir(), "missing.data.json")
	return cfg
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// withStdin replaces os.Stdin with a pipe carrying content for the duration of the test.
func withStdin(t *testing.T, content string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	go func() {
		_, _ = w.WriteString(content)
		w.Close()
	}()

	oldStdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = oldStdin
		r.Close()
	})
}

// runApp runs the CLI with args and returns what it wrote to stdout.
func runApp(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	app := newCLIApp(cfg, zaptest.NewLogger(t))
	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"iconforge"}, args...))
	return stdout.String(), err
}

func TestCLIParse(t *testing.T) {
	withStdin(t, ".is-red { color: red; }\n.is-pad { padding: 0; }\n")

	out, err := runApp(t, testConfig(t), "parse")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var snippets []stylesheet.Snippet
	if err := json.Unmarshal([]byte(out), &snippets); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(snippets) != 2 {
		t.Fatalf("expected 2 snippets, got %d", len(snippets))
	}
	if snippets[0].Name != "is-red" || snippets[0].Color != "red" {
		t.Errorf("unexpected first snippet: %+v", snippets[0])
	}
	if snippets[1].Name != "is-pad" || snippets[1].Color != "" {
		t.Errorf("unexpected second snippet: %+v", snippets[1])
	}
}

func TestCLIParse_FileArgument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.css", ".is-a { top: 0; }")

	out, err := runApp(t, testConfig(t), "parse", path)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !strings.Contains(out, `"name": "is-a"`) {
		t.Errorf("expected is-a in output, got %s", out)
	}
}

func TestCLIParse_EmptyInputIsEmptyList(t *testing.T) {
	withStdin(t, "")

	out, err := runApp(t, testConfig(t), "parse")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("expected [], got %q", out)
	}
}

func TestCLISerialize(t *testing.T) {
	withStdin(t, `[{"name":"is-red","snippet":".is-red {\n  color: red;\n}"},{"name":"if-home","content":"\\e900"}]`)

	out, err := runApp(t, testConfig(t), "serialize")
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	want := ".is-red {\n  color: red;\n}\n\n.if-home:before {\n  content: \"\\e900\";\n}\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestCLISerialize_MalformedDocument(t *testing.T) {
	withStdin(t, `"just a string"`)

	_, err := runApp(t, testConfig(t), "serialize")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "[MALFORMED_DOCUMENT]") {
		t.Errorf("expected MALFORMED_DOCUMENT, got %v", err)
	}
}

func TestCLIRoundtrip(t *testing.T) {
	withStdin(t, ".is-red { color: red; }")

	out, err := runApp(t, testConfig(t), "roundtrip")
	if err != nil {
		t.Fatalf("roundtrip failed: %v", err)
	}

	var snippets []stylesheet.Snippet
	if err := json.Unmarshal([]byte(out), &snippets); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(snippets) != 1 || snippets[0].Name != "is-red" {
		t.Errorf("unexpected snippets: %+v", snippets)
	}
}

func TestCLIConvert(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, t.TempDir(), "styles.css", ".is-red { color: red; }")

	out, err := runApp(t, cfg, "convert", path)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	var result ops.ConvertOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if result.Kind != "stylesheet" || result.Count != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Path != filepath.Join(cfg.OutputDir, cfg.SnippetsOutput) {
		t.Errorf("Path = %q", result.Path)
	}
	if _, err := os.Stat(result.Path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestCLIConvert_AutoWithOutput(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.json", `{"is-red":".is-red {\n  color: red;\n}"}`)
	target := filepath.Join(dir, "out.css")

	out, err := runApp(t, cfg, "convert", "--auto", "--output", target, path)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	var result ops.ConvertOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if result.Kind != "document" || result.Path != target {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.AutoCount != 1 {
		t.Errorf("AutoCount = %d, want 1", result.AutoCount)
	}
}

func TestCLICombine(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"height":512,"icons":[{"tags":["star"],"paths":["M1 1"]}]}`)
	writeFile(t, dir, "a.json", `{"icons":[{"tags":["home"],"paths":["M0 0"]}]}`)
	writeFile(t, dir, "broken.json", `{not json`)

	out, err := runApp(t, cfg, "combine", dir)
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}

	var result ops.CombineOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if result.Count != 2 || result.Files != 3 {
		t.Errorf("Count = %d, Files = %d, want 2 and 3", result.Count, result.Files)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].File != "broken.json" {
		t.Errorf("unexpected skipped files: %+v", result.Skipped)
	}
}

func TestCLICheck(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.css", ".is-red {\n  color: red;\n}")

	out, err := runApp(t, testConfig(t), "check", path)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	var result ops.CheckOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if !result.OK || result.Rules != 1 {
		t.Errorf("unexpected report: %+v", result)
	}
}

func TestCLILookup(t *testing.T) {
	cfg := testConfig(t)
	data := writeFile(t, t.TempDir(), "data.json", `{"classes":[{"name":"is-red","snippet":".is-red {\n  color: red;\n}","color":"red"}]}`)

	t.Run("json", func(t *testing.T) {
		out, err := runApp(t, cfg, "lookup", "--data", data, "is-red")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		var result ops.LookupOutput
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if result.Name != "is-red" || result.Color != "red" {
			t.Errorf("unexpected entry: %+v", result)
		}
		if !strings.HasPrefix(result.Hover, "**is-red**") {
			t.Errorf("Hover = %q", result.Hover)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := runApp(t, cfg, "lookup", "--data", data, "--markdown", "is-red")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if !strings.HasPrefix(out, "**is-red**") {
			t.Errorf("output = %q", out)
		}
	})
}

// TestCLIErrorHandling tests error handling in CLI commands.
func TestCLIErrorHandling(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "hello")
	data := writeFile(t, dir, "data.json", `{"classes":[]}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"convert without file", []string{"convert"}, "[INVALID_REQUEST]"},
		{"convert unsupported extension", []string{"convert", txt}, "[UNSUPPORTED_FORMAT]"},
		{"convert missing file", []string{"convert", filepath.Join(dir, "nope.css")}, "[FILE_NOT_FOUND]"},
		{"check without file", []string{"check"}, "[INVALID_REQUEST]"},
		{"combine missing dir", []string{"combine", filepath.Join(dir, "nope")}, "[INVALID_REQUEST]"},
		{"parse missing file", []string{"parse", filepath.Join(dir, "nope.css")}, "[FILE_NOT_FOUND]"},
		{"lookup missing data file", []string{"lookup", "is-red"}, "[FILE_NOT_FOUND]"},
		{"lookup unknown name", []string{"lookup", "--data", data, "is-red"}, "[NOT_FOUND]"},
		{"lookup without name", []string{"lookup", "--data", data}, "[INVALID_REQUEST]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// cli.Exit writes to stderr, so just verify the error is returned
			_, err := runApp(t, cfg, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

// TestIsCLIMode tests the isCLIMode function.
func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"no args", []string{"iconforge"}, false},
		{"combine command", []string{"iconforge", "combine"}, true},
		{"convert command", []string{"iconforge", "convert"}, true},
		{"parse command", []string{"iconforge", "parse"}, true},
		{"ui command", []string{"iconforge", "ui"}, true},
		{"help flag", []string{"iconforge", "--help"}, true},
		{"version flag", []string{"iconforge", "--version"}, true},
		{"short help flag", []string{"iconforge", "-h"}, true},
		{"short version flag", []string{"iconforge", "-v"}, true},
		{"unknown arg defaults to MCP", []string{"iconforge", "--unknown"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore os.Args
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isCLIMode(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

// TestIsHelpOrVersion tests the isHelpOrVersion function.
func TestIsHelpOrVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"no args", []string{"iconforge"}, false},
		{"help flag", []string{"iconforge", "--help"}, true},
		{"short help flag", []string{"iconforge", "-h"}, true},
		{"version flag", []string{"iconforge", "--version"}, true},
		{"short version flag", []string{"iconforge", "-v"}, true},
		{"help subcommand", []string{"iconforge", "help"}, true},
		{"convert command is not help", []string{"iconforge", "convert"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isHelpOrVersion(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

// TestReadStdinWithLimit tests the readStdin function respects size limits.
func TestReadStdinWithLimit(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		withStdin(t, "  .a { top: 0; }\n")

		result, err := readStdin(1000)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if result != ".a { top: 0; }" {
			t.Errorf("expected trimmed content, got %q", result)
		}
	})

	t.Run("exceeds limit", func(t *testing.T) {
		withStdin(t, strings.Repeat("x", 100))

		// Limit is 50 bytes, content is 100
		_, err := readStdin(50)
		if err == nil {
			t.Fatal("expected error for content exceeding limit")
		}
		if !strings.Contains(err.Error(), "exceeds 50 bytes") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
