package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/nannyloop/internal/model"
)

type ScheduleItemStore struct {
	db *sql.DB
}

func NewScheduleItemStore(db *sql.DB) *ScheduleItemStore {
	return &ScheduleItemStore{db: db}
}

func scanScheduleItem(scanner interface{ Scan(...any) error }) (*model.ScheduleItem, error) {
	var it model.ScheduleItem
	var notes sql.NullString
	err := scanner.Scan(&it.ID, &it.HouseholdID, &it.ChildID, &it.Title, &it.Category, &notes, &it.StartTime, &it.CreatedByUserID, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		it.Notes = &notes.String
	}
	return &it, nil
}

const scheduleItemCols = `id, household_id, child_id, title, category, notes, start_time, created_by_user_id, created_at`

func (s *ScheduleItemStore) Create(householdID, childID int64, title, category string, notes *string, startTime time.Time, createdByUserID int64) (*model.ScheduleItem, error) {
	var n sql.NullString
	if notes != nil {
		n = sql.NullString{String: *notes, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO schedule_items (household_id, child_id, title, category, notes, start_time, created_by_user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		householdID, childID, title, category, n, startTime.UTC(), createdByUserID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert schedule item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *ScheduleItemStore) GetByID(householdID, id int64) (*model.ScheduleItem, error) {
	row := s.db.QueryRow(
		`SELECT `+scheduleItemCols+` FROM schedule_items WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	it, err := scanScheduleItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule item: %w", err)
	}
	return it, nil
}

// ListByChildAndRange returns the child's schedule items with start_time in
// [start, end), earliest first.
func (s *ScheduleItemStore) ListByChildAndRange(householdID, childID int64, start, end time.Time) ([]model.ScheduleItem, error) {
	rows, err := s.db.Query(
		`SELECT `+scheduleItemCols+` FROM schedule_items
		 WHERE household_id = ? AND child_id = ? AND start_time >= ? AND start_time < ?
		 ORDER BY start_time ASC`,
		householdID, childID, start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query schedule items: %w", err)
	}
	defer rows.Close()

	var items []model.ScheduleItem
	for rows.Next() {
		it, err := scanScheduleItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}
