package web

import (
	"database/sql"
	"net/http"
	"os"
	"strconv"

	"github.com/avolkov/zvonar/internal/config"
	"github.com/avolkov/zvonar/internal/errors"
	"github.com/avolkov/zvonar/internal/ops"
	"github.com/avolkov/zvonar/internal/patch"
)

// Handlers contains HTTP route handlers for the preview UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleRuns handles GET /runs — the pipeline run history.
func (h *Handlers) HandleRuns(w http.ResponseWriter, r *http.Request) {
	input := ops.HistoryInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultHistoryLimit),
		Offset: parseIntParam(r, "offset", 0),
	}

	result, err := ops.History(h.db, input)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderPage(w, "runs", RunsPageData{
		PageData: PageData{
			Title:   "Runs",
			Version: h.renderer.version,
			Nav:     "runs",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandleBackups handles GET /backups — the target's backup trail.
func (h *Handlers) HandleBackups(w http.ResponseWriter, r *http.Request) {
	target := h.cfg.TargetFile
	if target == "" {
		h.renderer.renderError(w, errors.NewInvalidRequest("no target_file configured"))
		return
	}

	backups, err := patch.ListBackups(target)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	// Newest first for display.
	for i, j := 0, len(backups)-1; i < j; i, j = i+1, j-1 {
		backups[i], backups[j] = backups[j], backups[i]
	}

	h.renderer.renderPage(w, "backups", BackupsPageData{
		PageData: PageData{
			Title:   "Backups",
			Version: h.renderer.version,
			Nav:     "backups",
		},
		Target:  target,
		Backups: backups,
	})
}

// HandlePreview handles GET /preview — serves the current target page
// verbatim so the patched schedule can be inspected.
func (h *Handlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	target := h.cfg.TargetFile
	if target == "" {
		h.renderer.renderError(w, errors.NewInvalidRequest("no target_file configured"))
		return
	}

	content, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			h.renderer.renderError(w, errors.NewFileNotFound(target))
			return
		}
		h.renderer.renderError(w, errors.NewInternal(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(content)
}

// parseIntParam reads an integer query parameter with a default.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
