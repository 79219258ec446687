package ops

import (
	"database/sql"

	"github.com/avolkov/zvonar/internal/journal"
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// HistoryOutput contains the result of the History operation.
type HistoryOutput struct {
	Items      []journal.Run `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// History retrieves recorded pipeline runs, newest first.
func History(database *sql.DB, input HistoryInput) (*HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	offset := max(input.Offset, 0)

	runs, total, err := journal.List(database, limit, offset)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []journal.Run{}
	}

	return &HistoryOutput{
		Items: runs,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(runs) < total,
			Total:   total,
		},
	}, nil
}
