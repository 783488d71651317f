// ABOUTME: Tests for opening the database and running transactions
// ABOUTME: Covers WAL mode, foreign keys, re-initialization and WithTx rollback
package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/bizlink/models"
)

func TestOpenDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer db.Close()

	// Verify database file exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	// Verify schema was initialized
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	if count < 4 {
		t.Errorf("Expected at least 4 tables, got %d", count)
	}

	// Verify WAL mode
	var mode string
	err = db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("Expected WAL mode, got %s", mode)
	}
}

func TestOpenDatabaseInvalidPath(t *testing.T) {
	// Try to create database in a path that cannot be created
		dbPath := "/invalid/nonexistent/path/that/cannot/be/created/test.db"

	_, err := OpenDatabase(dbPath)
	if err == nil {
		t.Errorf("Expected error for invalid path, but OpenDatabase succeeded")
	}
}

func TestOpenDatabaseSchemaInitFailure(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	// First, create a valid database to ensure the file exists
	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("Initial OpenDatabase failed: %v", err)
	}
	db.Close()

	// Now try to open the database again - schema initialization should handle existing tables gracefully
	// This tests that "CREATE TABLE IF NOT EXISTS" statements don't fail
	db, err = OpenDatabase(dbPath)
	if err != nil {
		t.Errorf("OpenDatabase should handle re-initialization gracefully, but got error: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	// Verify tables still exist after re-initialization
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tables after re-initialization: %v", err)
	}
	if count < 9 {
		t.Errorf("Expected at least 9 tables after re-initialization, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := CreateCompany(ctx, tx, &models.Company{Name: "Globex"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	found, err := FindCompanyByName(ctx, db, "Globex")
	if err != nil {
		t.Fatalf("FindCompanyByName failed: %v", err)
	}
	if found != nil {
		t.Error("company should not survive a rolled back transaction")
	}
}
