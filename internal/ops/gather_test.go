package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avolkov/zvonar/internal/errors"
)

func TestGather_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "april.txt")
	if err := os.WriteFile(path, []byte("Апреля, Понедельник\n08:00 Литургия\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Gather(path)
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if got.Text != "Апреля, Понедельник\n08:00 Литургия\n" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Source != path || got.Files != 1 {
		t.Errorf("Source/Files = %q/%d", got.Source, got.Files)
	}
}

func TestGather_DirectoryConcatenatesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"02-may.txt":   "Мая, Вторник\n",
		"01-april.txt": "Апреля, Понедельник\n",
		"notes.docx":   "ignored binary",
		"readme.md":    "ignored too",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Gather(dir)
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if got.Files != 2 {
		t.Errorf("Files = %d, want 2", got.Files)
	}
	want := "Апреля, Понедельник\n\nМая, Вторник\n"
	if got.Text != want {
		t.Errorf("Text = %q, want %q", got.Text, want)
	}
}

func TestGather_UppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "APRIL.TXT"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Gather(dir)
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if got.Files != 1 {
		t.Errorf("Files = %d, want 1", got.Files)
	}
}

func TestGather_Errors(t *testing.T) {
	emptyDir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		wantCode errors.ErrorCode
	}{
		{"empty path", "", errors.ErrInvalidRequest},
		{"missing path", filepath.Join(emptyDir, "nope.txt"), errors.ErrFileNotFound},
		{"directory without text files", emptyDir, errors.ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Gather(tt.path)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Gather(%q) error = %v, want %s", tt.path, err, tt.wantCode)
			}
		})
	}
}
