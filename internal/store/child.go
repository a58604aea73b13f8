package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/nannyloop/internal/model"
)

type ChildStore struct {
	db *sql.DB
}

func NewChildStore(db *sql.DB) *ChildStore {
	return &ChildStore{db: db}
}

func scanChild(scanner interface{ Scan(...any) error }) (*model.Child, error) {
	var c model.Child
	err := scanner.Scan(&c.ID, &c.HouseholdID, &c.Name, &c.DateOfBirth, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const childCols = `id, household_id, name, date_of_birth, created_at, updated_at`

func (s *ChildStore) Create(householdID int64, name, dateOfBirth string) (*model.Child, error) {
	result, err := s.db.Exec(
		`INSERT INTO children (household_id, name, date_of_birth) VALUES (?, ?, ?)`,
		householdID, name, dateOfBirth,
	)
	if err != nil {
		return nil, fmt.Errorf("insert child: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(householdID, id)
}

// GetByID returns the child only when it belongs to the given household.
func (s *ChildStore) GetByID(householdID, id int64) (*model.Child, error) {
	row := s.db.QueryRow(
		`SELECT `+childCols+` FROM children WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	c, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	return c, nil
}

func (s *ChildStore) ListByHousehold(householdID int64) ([]model.Child, error) {
	rows, err := s.db.Query(
		`SELECT `+childCols+` FROM children WHERE household_id = ? ORDER BY name ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}
