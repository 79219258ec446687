package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/avolkov/zvonar/internal/patch"
)

// Config holds application configuration.
type Config struct {
	// TargetFile is the default patch target, the site page carrying the
	// schedule markers.
	TargetFile string `json:"target_file,omitempty"`

	// SourceDir is the default directory of extracted schedule text files.
	SourceDir string `json:"source_dir,omitempty"`

	// BackupKeep is the rolling backup retention cap for the target file.
	BackupKeep int `json:"backup_keep,omitempty"`

	// JournalKeep is how many pipeline runs the journal retains.
	JournalKeep int `json:"journal_keep,omitempty"`
}

// DefaultJournalKeep is the default run journal retention cap.
const DefaultJournalKeep = 100

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BackupKeep:  patch.DefaultBackupKeep,
		JournalKeep: DefaultJournalKeep,
	}
}

// Load loads configuration from baseDir/config.json. Values present in the
// file override the defaults; a missing file yields the defaults. The
// baseDir parameter allows tests to use t.TempDir() instead of ~/.zvonar.
func Load(baseDir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.BackupKeep <= 0 {
		cfg.BackupKeep = patch.DefaultBackupKeep
	}
	if cfg.JournalKeep <= 0 {
		cfg.JournalKeep = DefaultJournalKeep
	}
	return cfg, nil
}
