package ops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/iconforge/iconforge/internal/errors"
)

func TestValidateInput(t *testing.T) {
	dir := t.TempDir()

	existing := filepath.Join(dir, "styles.css")
	if err := os.WriteFile(existing, []byte(".a { color: red; }"), 0600); err != nil {
		t.Fatal(err)
	}
	dirNamedCSS := filepath.Join(dir, "folder.css")
	if err := os.Mkdir(dirNamedCSS, 0700); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		wantKind InputKind
		wantCode errors.ErrorCode
	}{
		{"empty", "  ", KindUnknown, errors.ErrInvalidRequest},
		{"unsupported and missing", filepath.Join(dir, "nope.txt"), KindUnknown, errors.ErrUnsupportedFormat},
		{"missing stylesheet", filepath.Join(dir, "nope.css"), KindStylesheet, errors.ErrFileNotFound},
		{"missing document", filepath.Join(dir, "nope.json"), KindDocument, errors.ErrFileNotFound},
		{"directory", dirNamedCSS, KindStylesheet, errors.ErrInvalidRequest},
		{"existing stylesheet", existing, KindStylesheet, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ValidateInput(tt.path)
			if kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", kind, tt.wantKind)
			}
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateOutput(t *testing.T) {
	dir := t.TempDir()

	if err := validateOutput(filepath.Join(dir, "new.json")); err != nil {
		t.Errorf("missing output should be allowed, got %v", err)
	}
	if err := validateOutput(dir); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("directory output error = %v, want INVALID_REQUEST", err)
	}
	if err := validateOutput(""); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty output error = %v, want INVALID_REQUEST", err)
	}
}

func TestValidateOutput_SymlinkRejected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()

	target := filepath.Join(dir, "target.json")
	if err := os.WriteFile(target, []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	if err := validateOutput(link); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("symlink output error = %v, want INVALID_REQUEST", err)
	}
	if err := writeFileAtomic(link, []byte("{}")); err == nil {
		t.Error("writeFileAtomic through a symlink should fail")
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("symlink target was modified: %q", data)
	}
}

func TestWriteFileAtomic_CreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools", "output", "out.css")

	if err := writeFileAtomic(path, []byte(".a {}")); err != nil {
		t.Fatalf("writeFileAtomic failed: %v", err)
	}
	if err := writeFileAtomic(path, []byte(".b {}")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != ".b {}" {
		t.Errorf("content = %q, want overwritten content", data)
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file, found %d entries", len(entries))
	}
}

func TestReadInput_Missing(t *testing.T) {
	_, err := readInput(filepath.Join(t.TempDir(), "missing.css"))
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("readInput error = %v, want FILE_NOT_FOUND", err)
	}
}
