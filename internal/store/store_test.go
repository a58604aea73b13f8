package store

import (
	"database/sql"
	"testing"

	"github.com/dukerupert/nannyloop/internal/database"
	"github.com/dukerupert/nannyloop/internal/model"
)

// openTestDB opens a fresh in-memory database with migrations applied.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// Ensure foreign keys are enforced (modernc/sqlite may not honor DSN param for :memory:)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedHousehold creates a household with one parent user and one child.
func seedHousehold(t *testing.T, db *sql.DB, name string) (*model.Household, *model.User, *model.Child) {
	t.Helper()

	h, err := NewHouseholdStore(db).Create(name)
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	u, err := NewUserStore(db).Create(name+"-parent@example.com", "x", model.RoleParent, h.ID)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	c, err := NewChildStore(db).Create(h.ID, "Mia", "2022-06-01")
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	return h, u, c
}
