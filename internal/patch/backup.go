package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/avolkov/zvonar/internal/errors"
)

// backupTimestampLayout gives whole-second resolution. Two backups of the
// same target within one second collide; callers serialize patches.
const backupTimestampLayout = "20060102_150405"

// BackupInfo describes one retained backup file.
type BackupInfo struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// backupDir returns the backups directory sitting alongside the target.
func backupDir(targetPath string) string {
	return filepath.Join(filepath.Dir(targetPath), "backups")
}

// backupPrefix returns the file name prefix of the target's backups.
func backupPrefix(targetPath string) string {
	return filepath.Base(targetPath) + ".backup_"
}

// createBackup writes a timestamped copy of the target's current content
// into the sibling backups directory, pruning older backups first so that
// at most keep files remain after the new one is added.
func createBackup(targetPath string, content []byte, keep int, now time.Time) (string, error) {
	dir := backupDir(targetPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to create backup directory: %w", err))
	}

	if err := pruneBackups(dir, backupPrefix(targetPath), keep-1); err != nil {
		return "", err
	}

	name := backupPrefix(targetPath) + now.Format(backupTimestampLayout)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to write backup: %w", err))
	}
	return path, nil
}

// pruneBackups deletes all but the keep most recent backups with the given
// prefix, oldest first by modification time.
func pruneBackups(dir, prefix string, keep int) error {
	backups, err := listBackups(dir, prefix)
	if err != nil {
		return err
	}
	if len(backups) <= keep {
		return nil
	}
	for _, b := range backups[:len(backups)-keep] {
		if err := os.Remove(b.Path); err != nil {
			return errors.NewInternal(fmt.Errorf("failed to prune backup: %w", err))
		}
	}
	return nil
}

// restore copies a backup back over the target.
func restore(backupPath, targetPath string) error {
	content, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup for restore: %w", err)
	}
	if err := os.WriteFile(targetPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to restore target from backup: %w", err)
	}
	return nil
}

// ListBackups returns the target's retained backups, oldest first.
func ListBackups(targetPath string) ([]BackupInfo, error) {
	return listBackups(backupDir(targetPath), backupPrefix(targetPath))
}

func listBackups(dir, prefix string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewInternal(err)
	}

	var backups []BackupInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		backups = append(backups, BackupInfo{
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].ModTime.Equal(backups[j].ModTime) {
			return backups[i].ModTime.Before(backups[j].ModTime)
		}
		return backups[i].Path < backups[j].Path
	})
	return backups, nil
}
