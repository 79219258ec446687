package journal

import (
	"database/sql"

	"github.com/avolkov/zvonar/internal/errors"
)

// Run statuses.
const (
	StatusOK    = "ok"    // target patched
	StatusNoop  = "noop"  // fragment identical, nothing written
	StatusError = "error" // pipeline failed, error_code holds the taxonomy code
)

// Run is one recorded pipeline run.
type Run struct {
	ID         string `json:"id"`
	CreatedAt  int64  `json:"created_at"`
	Source     string `json:"source"`
	Entries    int    `json:"entries"`
	Rows       int    `json:"rows"`
	BackupPath string `json:"backup_path,omitempty"`
	Status     string `json:"status"`
	ErrorCode  string `json:"error_code,omitempty"`
}

// Insert records a run and prunes the journal down to the keep most recent
// entries.
func Insert(db *sql.DB, r *Run, keep int) error {
	backupPath := sql.NullString{String: r.BackupPath, Valid: r.BackupPath != ""}
	errorCode := sql.NullString{String: r.ErrorCode, Valid: r.ErrorCode != ""}

	query := `
		INSERT INTO runs (id, created_at, source, entries, rows, backup_path, status, error_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query,
		r.ID, r.CreatedAt, r.Source, r.Entries, r.Rows, backupPath, r.Status, errorCode,
	); err != nil {
		return errors.NewInternal(err)
	}

	if keep > 0 {
		prune := `
			DELETE FROM runs WHERE id NOT IN (
				SELECT id FROM runs ORDER BY created_at DESC, id DESC LIMIT ?
			)
		`
		if _, err := db.Exec(prune, keep); err != nil {
			return errors.NewInternal(err)
		}
	}

	return nil
}

// List returns runs newest first, with the total run count for pagination.
func List(db *sql.DB, limit, offset int) ([]Run, int, error) {
	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, created_at, source, entries, rows, backup_path, status, error_code
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var backupPath, errorCode sql.NullString
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.Entries, &r.Rows,
			&backupPath, &r.Status, &errorCode); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		r.BackupPath = backupPath.String
		r.ErrorCode = errorCode.String
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return runs, total, nil
}
