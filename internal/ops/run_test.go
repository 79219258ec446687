package ops

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avolkov/zvonar/internal/config"
	"github.com/avolkov/zvonar/internal/errors"
	"github.com/avolkov/zvonar/internal/journal"
	"github.com/avolkov/zvonar/internal/patch"
)

func testPage() string {
	return "<html>\n      " + patch.Marker + "\nold\n      " + patch.Marker + "\n</html>\n"
}

func setupRun(t *testing.T) (*sql.DB, *config.Config, string) {
	t.Helper()

	database, err := journal.Init(t.TempDir())
	if err != nil {
		t.Fatalf("journal.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	target := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(target, []byte(testPage()), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.TargetFile = target
	return database, cfg, target
}

func TestRun_HappyPath(t *testing.T) {
	database, cfg, target := setupRun(t)

	output, err := Run(database, cfg, RunInput{Text: sampleText(5)})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if output.RunID == "" {
		t.Error("RunID should not be empty")
	}
	if output.Status != journal.StatusOK || !output.Changed {
		t.Errorf("Status/Changed = %s/%v, want ok/true", output.Status, output.Changed)
	}
	if output.Entries != 5 || output.Rows != 2 {
		t.Errorf("Entries/Rows = %d/%d, want 5/2", output.Entries, output.Rows)
	}
	if output.Source != "stdin" {
		t.Errorf("Source = %q, want stdin", output.Source)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "<h3>1 Апреля, Понедельник</h3>") {
		t.Error("target should contain the generated schedule")
	}

	history, err := History(database, HistoryInput{})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history.Items) != 1 || history.Items[0].ID != output.RunID {
		t.Errorf("journal should hold the run, got %+v", history.Items)
	}
}

func TestRun_SecondIdenticalRunIsNoop(t *testing.T) {
	database, cfg, _ := setupRun(t)

	if _, err := Run(database, cfg, RunInput{Text: sampleText(2)}); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	output, err := Run(database, cfg, RunInput{Text: sampleText(2)})
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if output.Status != journal.StatusNoop || output.Changed {
		t.Errorf("Status/Changed = %s/%v, want noop/false", output.Status, output.Changed)
	}
}

func TestRun_GathersFromSourcePath(t *testing.T) {
	database, cfg, _ := setupRun(t)

	sourceDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(sourceDir, "april.txt"), []byte(sampleText(1)), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.SourceDir = sourceDir

	output, err := Run(database, cfg, RunInput{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if output.Source != sourceDir {
		t.Errorf("Source = %q, want %q", output.Source, sourceDir)
	}
	if output.Entries != 1 {
		t.Errorf("Entries = %d, want 1", output.Entries)
	}
}

func TestRun_FailureIsJournaled(t *testing.T) {
	database, cfg, target := setupRun(t)

	// Break the target: a single marker is ambiguous.
	if err := os.WriteFile(target, []byte("<html>"+patch.Marker+"</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Run(database, cfg, RunInput{Text: sampleText(1)})
	if !errors.Is(err, errors.ErrMarkerMismatch) {
		t.Fatalf("error = %v, want MARKER_MISMATCH", err)
	}

	history, err := History(database, HistoryInput{})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history.Items) != 1 {
		t.Fatalf("journal should hold the failed run, got %d items", len(history.Items))
	}
	failed := history.Items[0]
	if failed.Status != journal.StatusError || failed.ErrorCode != "MARKER_MISMATCH" {
		t.Errorf("failed run = %+v, want status error with MARKER_MISMATCH", failed)
	}
}

func TestRun_EmptyFragmentNeverPatches(t *testing.T) {
	database, cfg, target := setupRun(t)
	original := testPage()

	_, err := Run(database, cfg, RunInput{Text: "текст без единой даты"})
	if !errors.Is(err, errors.ErrEmptyFragment) {
		t.Fatalf("error = %v, want EMPTY_FRAGMENT", err)
	}

	content, readErr := os.ReadFile(target)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(content) != original {
		t.Error("a run that produced no entries must not touch the target")
	}
}

func TestRun_MissingTarget(t *testing.T) {
	database, cfg, _ := setupRun(t)
	cfg.TargetFile = ""

	_, err := Run(database, cfg, RunInput{Text: sampleText(1)})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}
