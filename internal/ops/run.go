package ops

import (
	"database/sql"
	"time"

	"github.com/avolkov/zvonar/internal/config"
	"github.com/avolkov/zvonar/internal/errors"
	"github.com/avolkov/zvonar/internal/journal"
)

// RunInput contains parameters for the Run operation.
type RunInput struct {
	Text       string // raw text; when empty, text is gathered from SourcePath
	SourcePath string // file or directory; default: cfg.SourceDir
	TargetPath string // default: cfg.TargetFile
}

// RunOutput contains the result of the Run operation.
type RunOutput struct {
	RunID      string `json:"run_id"`
	Source     string `json:"source"`
	Entries    int    `json:"entries"`
	Rows       int    `json:"rows"`
	BackupPath string `json:"backup_path,omitempty"`
	Changed    bool   `json:"changed"`
	Status     string `json:"status"`
}

// Run executes the whole pipeline: gather text, convert it to a fragment,
// patch the target, and record the outcome in the journal. Failed runs are
// journaled too, with the taxonomy error code. The patcher's empty-fragment
// check guarantees a run that produced nothing never clobbers the live
// page.
func Run(database *sql.DB, cfg *config.Config, input RunInput) (*RunOutput, error) {
	runID, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	targetPath := input.TargetPath
	if targetPath == "" {
		targetPath = cfg.TargetFile
	}
	if targetPath == "" {
		return nil, errors.NewInvalidRequest("target path is required (flag or config target_file)")
	}

	text := input.Text
	source := "stdin"
	if text == "" {
		sourcePath := input.SourcePath
		if sourcePath == "" {
			sourcePath = cfg.SourceDir
		}
		if sourcePath == "" {
			return nil, errors.NewInvalidRequest("source path is required (flag, stdin or config source_dir)")
		}
		gathered, err := Gather(sourcePath)
		if err != nil {
			recordFailure(database, cfg, runID, sourcePath, err)
			return nil, err
		}
		text = gathered.Text
		source = gathered.Source
	}

	converted, err := Convert(ConvertInput{Text: text})
	if err != nil {
		recordFailure(database, cfg, runID, source, err)
		return nil, err
	}

	applied, err := Apply(ApplyInput{
		TargetPath: targetPath,
		Fragment:   converted.Fragment,
		BackupKeep: cfg.BackupKeep,
	})
	if err != nil {
		recordFailure(database, cfg, runID, source, err)
		return nil, err
	}

	status := journal.StatusOK
	if !applied.Changed {
		status = journal.StatusNoop
	}

	record := &journal.Run{
		ID:         runID,
		CreatedAt:  time.Now().Unix(),
		Source:     source,
		Entries:    converted.Entries,
		Rows:       converted.Rows,
		BackupPath: applied.BackupPath,
		Status:     status,
	}
	if err := journal.Insert(database, record, cfg.JournalKeep); err != nil {
		return nil, err
	}

	return &RunOutput{
		RunID:      runID,
		Source:     source,
		Entries:    converted.Entries,
		Rows:       converted.Rows,
		BackupPath: applied.BackupPath,
		Changed:    applied.Changed,
		Status:     status,
	}, nil
}

// recordFailure journals a failed run. Best effort: the pipeline error is
// what the caller needs to see, not a journaling hiccup on top of it.
func recordFailure(database *sql.DB, cfg *config.Config, runID, source string, runErr error) {
	code := string(errors.ErrInternal)
	if zErr, ok := runErr.(*errors.Error); ok {
		code = string(zErr.Code)
	}
	_ = journal.Insert(database, &journal.Run{
		ID:        runID,
		CreatedAt: time.Now().Unix(),
		Source:    source,
		Status:    journal.StatusError,
		ErrorCode: code,
	}, cfg.JournalKeep)
}
