// Package carelog validates and persists new log entries and schedule items.
package carelog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/nannyloop/internal/model"
)

var (
	// ErrChildNotFound is returned when the child does not belong to the
	// caller's household.
	ErrChildNotFound = errors.New("child not found")
	// ErrInvalidDateFormat is returned when a timestamp string does not
	// match the expected YYYY-MM-DDTHH:MM pattern.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrMissingRequiredField is returned when a required ingestion field
	// is absent or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)

const timestampLayout = "2006-01-02T15:04"

// defaultCategory is applied to schedule items created without one.
const defaultCategory = "Other"

// ChildFinder resolves a child within a household.
type ChildFinder interface {
	GetByID(householdID, childID int64) (*model.Child, error)
}

// LogWriter persists log entries.
type LogWriter interface {
	Create(householdID, childID int64, carerName, category, notes string, timestamp time.Time) (*model.LogEntry, error)
}

// EventWriter persists schedule items.
type EventWriter interface {
	Create(householdID, childID int64, title, category string, notes *string, startTime time.Time, createdByUserID int64) (*model.ScheduleItem, error)
}

// Service is the ingestion path for new logs and schedule items. All
// validation happens before the single row write, so a failed call
// persists nothing.
type Service struct {
	children ChildFinder
	logs     LogWriter
	events   EventWriter
	now      func() time.Time
}

func NewService(children ChildFinder, logs LogWriter, events EventWriter) *Service {
	return &Service{
		children: children,
		logs:     logs,
		events:   events,
		now:      time.Now,
	}
}

// AddLog records something that happened for a child. An empty when defaults
// the timestamp to the ingestion time.
func (s *Service) AddLog(householdID, childID int64, carerName, category, notes, when string) (*model.LogEntry, error) {
	if err := s.checkChild(householdID, childID); err != nil {
		return nil, err
	}

	timestamp := s.now().UTC()
	if strings.TrimSpace(when) != "" {
		t, err := time.Parse(timestampLayout, strings.TrimSpace(when))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateFormat, when)
		}
		timestamp = t.UTC()
	}

	return s.logs.Create(householdID, childID, carerName, category, notes, timestamp)
}

// AddEvent records something planned for a child. Category defaults to
// "Other"; empty notes are stored as absent rather than as an empty string.
func (s *Service) AddEvent(householdID, childID int64, title, category, notes, startTimeRaw string, createdByUserID int64) (*model.ScheduleItem, error) {
	title = strings.TrimSpace(title)
	startTimeRaw = strings.TrimSpace(startTimeRaw)
	if title == "" || startTimeRaw == "" || childID == 0 {
		return nil, ErrMissingRequiredField
	}

	if err := s.checkChild(householdID, childID); err != nil {
		return nil, err
	}

	startTime, err := time.Parse(timestampLayout, startTimeRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateFormat, startTimeRaw)
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = defaultCategory
	}

	var notesPtr *string
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		notesPtr = &trimmed
	}

	return s.events.Create(householdID, childID, title, category, notesPtr, startTime.UTC(), createdByUserID)
}

func (s *Service) checkChild(householdID, childID int64) error {
	child, err := s.children.GetByID(householdID, childID)
	if err != nil {
		return fmt.Errorf("look up child: %w", err)
	}
	if child == nil {
		return ErrChildNotFound
	}
	return nil
}
