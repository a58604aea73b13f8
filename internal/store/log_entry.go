package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/nannyloop/internal/model"
)

type LogEntryStore struct {
	db *sql.DB
}

func NewLogEntryStore(db *sql.DB) *LogEntryStore {
	return &LogEntryStore{db: db}
}

func scanLogEntry(scanner interface{ Scan(...any) error }) (*model.LogEntry, error) {
	var l model.LogEntry
	err := scanner.Scan(&l.ID, &l.HouseholdID, &l.ChildID, &l.CarerName, &l.Category, &l.Notes, &l.Timestamp, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const logEntryCols = `id, household_id, child_id, carer_name, category, notes, timestamp, created_at`

func (s *LogEntryStore) Create(householdID, childID int64, carerName, category, notes string, timestamp time.Time) (*model.LogEntry, error) {
	result, err := s.db.Exec(
		`INSERT INTO log_entries (household_id, child_id, carer_name, category, notes, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		householdID, childID, carerName, category, notes, timestamp.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert log entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *LogEntryStore) GetByID(householdID, id int64) (*model.LogEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+logEntryCols+` FROM log_entries WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	l, err := scanLogEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get log entry: %w", err)
	}
	return l, nil
}

// ListByChildAndRange returns the child's log entries with timestamp in
// [start, end), oldest first.
func (s *LogEntryStore) ListByChildAndRange(householdID, childID int64, start, end time.Time) ([]model.LogEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+logEntryCols+` FROM log_entries
		 WHERE household_id = ? AND child_id = ? AND timestamp >= ? AND timestamp < ?
		 ORDER BY timestamp ASC`,
		householdID, childID, start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query log entries: %w", err)
	}
	defer rows.Close()

	return collectLogEntries(rows)
}

// ListRecent returns the household's newest log entries across all children.
func (s *LogEntryStore) ListRecent(householdID int64, limit int) ([]model.LogEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+logEntryCols+` FROM log_entries
		 WHERE household_id = ?
		 ORDER BY timestamp DESC LIMIT ?`,
		householdID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent log entries: %w", err)
	}
	defer rows.Close()

	return collectLogEntries(rows)
}

func collectLogEntries(rows *sql.Rows) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	for rows.Next() {
		l, err := scanLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, *l)
	}
	return entries, rows.Err()
}
