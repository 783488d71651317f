// ABOUTME: Tests for database schema creation
// ABOUTME: Uses in-memory SQLite for fast isolated tests
package db

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestInitSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	tables := []string{
		"companies", "users", "connections", "meetings", "referral_cards",
		"recommendations", "follow_ups", "activity_log", "calendar_exports",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	indexes := []string{
		"idx_connections_pair",
		"idx_meetings_pending_pair",
		"idx_referral_cards_meeting",
		"idx_activity_log_entity",
	}
	for _, idx := range indexes {
		var indexName string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&indexName)
		if err != nil {
			t.Errorf("Index %s not found: %v", idx, err)
		}
	}
}

func TestInitSchemaIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()

	for i := 0; i < 2; i++ {
		if err := InitSchema(db); err != nil {
			t.Fatalf("InitSchema run %d failed: %v", i+1, err)
		}
	}
}

func TestSchemaRejectsUnknownStatus(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	_, err = db.Exec(`INSERT INTO users (id, name, membership_status, created_at, updated_at)
		VALUES ('u1', 'Ann', 'honorary', '2024-01-01', '2024-01-01')`)
	if err == nil {
		t.Error("expected CHECK constraint to reject unknown membership status")
	}
}
