package ops

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/avolkov/zvonar/internal/errors"
)

// SourceText is raw schedule text plus where it came from. OCR and docx
// extraction happen upstream; Gather only ingests their text output.
type SourceText struct {
	Text   string `json:"-"`
	Source string `json:"source"`
	Files  int    `json:"files"`
}

// Gather reads schedule text from a file, or from every .txt file of a
// directory concatenated in name order.
func Gather(path string) (*SourceText, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewInvalidRequest("source path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, errors.NewInternal(err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		return &SourceText{Text: string(data), Source: path, Files: 1}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	var parts []string
	files := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		parts = append(parts, string(data))
		files++
	}
	if files == 0 {
		return nil, errors.NewEmptyInput()
	}

	return &SourceText{
		Text:   strings.Join(parts, "\n"),
		Source: path,
		Files:  files,
	}, nil
}
