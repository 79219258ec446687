package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avolkov/zvonar/internal/config"
	"github.com/avolkov/zvonar/internal/journal"
	"github.com/avolkov/zvonar/internal/patch"
)

func setupServer(t *testing.T) (*http.Server, *config.Config) {
	t.Helper()

	database, err := journal.Init(t.TempDir())
	if err != nil {
		t.Fatalf("journal.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	run := &journal.Run{
		ID:        "run-1",
		CreatedAt: 1712500000,
		Source:    "text/april.txt",
		Entries:   7,
		Rows:      2,
		Status:    journal.StatusOK,
	}
	if err := journal.Insert(database, run, 0); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	cfg := config.DefaultConfig()
	return NewServer(database, cfg, "test", "127.0.0.1", 0), cfg
}

func get(t *testing.T, srv *http.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleRuns(t *testing.T) {
	srv, _ := setupServer(t)

	rec := get(t, srv, "/runs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"text/april.txt", "status-ok", "1 run(s) total"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRootRedirectsToRuns(t *testing.T) {
	srv, _ := setupServer(t)

	rec := get(t, srv, "/")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/runs" {
		t.Errorf("Location = %q, want /runs", loc)
	}
}

func TestHandleBackups(t *testing.T) {
	srv, cfg := setupServer(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "index.html")
	cfg.TargetFile = target
	page := patch.Marker + "\nx\n" + patch.Marker
	if err := os.WriteFile(target, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := patch.Apply(target, "<div>schedule</div>", patch.Options{}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	rec := get(t, srv, "/backups")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "index.html.backup_") {
		t.Error("body should list the backup file")
	}
}

func TestHandleBackups_NoTargetConfigured(t *testing.T) {
	srv, _ := setupServer(t)

	rec := get(t, srv, "/backups")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlePreview(t *testing.T) {
	srv, cfg := setupServer(t)

	target := filepath.Join(t.TempDir(), "index.html")
	cfg.TargetFile = target
	if err := os.WriteFile(target, []byte("<html>current schedule</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, srv, "/preview")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "<html>current schedule</html>" {
		t.Errorf("body = %q, want the target content verbatim", rec.Body.String())
	}
}

func TestHandlePreview_MissingTargetFile(t *testing.T) {
	srv, cfg := setupServer(t)
	cfg.TargetFile = filepath.Join(t.TempDir(), "nope.html")

	rec := get(t, srv, "/preview")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
