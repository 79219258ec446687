package ops

import (
	"strings"

	"github.com/avolkov/zvonar/internal/errors"
	"github.com/avolkov/zvonar/internal/patch"
)

// ApplyInput contains parameters for the Apply operation.
type ApplyInput struct {
	TargetPath string // required
	Fragment   string // required, non-blank
	BackupKeep int    // default: patch.DefaultBackupKeep
}

// ApplyOutput contains the result of the Apply operation.
type ApplyOutput struct {
	TargetPath string `json:"target_path"`
	BackupPath string `json:"backup_path"`
	Changed    bool   `json:"changed"`
}

// Apply patches the fragment into the target file's marked region.
func Apply(input ApplyInput) (*ApplyOutput, error) {
	if strings.TrimSpace(input.TargetPath) == "" {
		return nil, errors.NewInvalidRequest("target path is required")
	}

	result, err := patch.Apply(input.TargetPath, input.Fragment, patch.Options{
		BackupKeep: input.BackupKeep,
	})
	if err != nil {
		return nil, err
	}

	return &ApplyOutput{
		TargetPath: input.TargetPath,
		BackupPath: result.BackupPath,
		Changed:    result.Changed,
	}, nil
}
