package migrate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDir_AcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestValidateDir_RejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "001_short_version.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename to fail validation")
	}
}

func TestValidateDir_RejectsMissingGooseMarkers(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "20250901120000_missing_markers.sql")
	if err := os.WriteFile(bad, []byte("CREATE TABLE x (id int);"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected missing goose markers to fail validation")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Tap Calibration!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("migration created outside dir: %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration failed validation: %v", err)
	}
}
