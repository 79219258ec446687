// Package patch replaces the marker-bounded schedule region of a target
// document with a freshly generated fragment. The target is backed up
// before any mutation and restored from that backup if the write fails,
// so a failed patch always leaves the file byte-identical to its prior
// state.
package patch

import (
	"os"
	"strings"
	"time"

	"github.com/avolkov/zvonar/internal/errors"
)

// Marker is the literal delimiter bounding the replaceable region. A valid
// target contains it exactly twice, once as each boundary.
const Marker = "<!------------------------------ Insert Schedule ------------------------------>"

// DefaultBackupKeep is the rolling backup retention cap.
const DefaultBackupKeep = 10

// Options tunes an Apply call. The zero value uses the defaults.
type Options struct {
	BackupKeep int              // retained backups after the patch, default DefaultBackupKeep
	Now        func() time.Time // backup timestamp source, default time.Now
}

// Result describes a completed patch.
type Result struct {
	BackupPath string `json:"backup_path"`
	Changed    bool   `json:"changed"`
}

// Apply replaces the marker-bounded region of the target file with the
// fragment. Preconditions: the target exists, the fragment is non-blank,
// and the document contains Marker exactly twice; Apply never guesses an
// insertion point. A result byte-identical to the current content is a
// success-no-op with no write.
func Apply(targetPath, fragment string, opts Options) (*Result, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, errors.NewEmptyFragment()
	}
	if opts.BackupKeep <= 0 {
		opts.BackupKeep = DefaultBackupKeep
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	content, err := os.ReadFile(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFound(targetPath)
		}
		return nil, errors.NewInternal(err)
	}

	text := string(content)
	if found := strings.Count(text, Marker); found != 2 {
		return nil, errors.NewMarkerMismatch(targetPath, found)
	}

	backupPath, err := createBackup(targetPath, content, opts.BackupKeep, now())
	if err != nil {
		return nil, err
	}

	start := strings.Index(text, Marker)
	end := strings.Index(text[start+len(Marker):], Marker) + start + 2*len(Marker)
	replacement := Marker + "\n" + fragment + "\n      " + Marker
	updated := text[:start] + replacement + text[end:]

	if updated == text {
		return &Result{BackupPath: backupPath, Changed: false}, nil
	}

	if err := os.WriteFile(targetPath, []byte(updated), 0o644); err != nil {
		if restoreErr := restore(backupPath, targetPath); restoreErr != nil {
			return nil, errors.NewInternal(restoreErr)
		}
		return nil, errors.NewInternal(err)
	}

	return &Result{BackupPath: backupPath, Changed: true}, nil
}
