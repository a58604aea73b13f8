package store

import (
	"testing"
	"time"
)

func TestScheduleItemCreate(t *testing.T) {
	db := openTestDB(t)
	h, u, c := seedHousehold(t, db, "smith")
	s := NewScheduleItemStore(db)

	start := time.Date(2024, 3, 6, 19, 30, 0, 0, time.UTC)
	notes := "bring towel"
	it, err := s.Create(h.ID, c.ID, "Swim class", "Activity", &notes, start, u.ID)
	if err != nil {
		t.Fatalf("create schedule item: %v", err)
	}
	if it.Title != "Swim class" || it.Category != "Activity" {
		t.Errorf("got %+v", it)
	}
	if it.Notes == nil || *it.Notes != "bring towel" {
		t.Errorf("notes = %v, want bring towel", it.Notes)
	}
	if !it.StartTime.Equal(start) {
		t.Errorf("start_time = %v, want %v", it.StartTime, start)
	}
	if it.CreatedByUserID != u.ID {
		t.Errorf("created_by_user_id = %d, want %d", it.CreatedByUserID, u.ID)
	}
}

func TestScheduleItemNilNotes(t *testing.T) {
	db := openTestDB(t)
	h, u, c := seedHousehold(t, db, "smith")
	s := NewScheduleItemStore(db)

	it, err := s.Create(h.ID, c.ID, "Nap", "Other", nil, time.Date(2024, 3, 6, 13, 0, 0, 0, time.UTC), u.ID)
	if err != nil {
		t.Fatalf("create schedule item: %v", err)
	}
	if it.Notes != nil {
		t.Errorf("notes = %q, want nil", *it.Notes)
	}
}

func TestScheduleItemListByChildAndRange(t *testing.T) {
	db := openTestDB(t)
	h, u, c := seedHousehold(t, db, "smith")
	s := NewScheduleItemStore(db)

	weekStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	if _, err := s.Create(h.ID, c.ID, "In range", "Other", nil, weekStart.Add(50*time.Hour), u.ID); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(h.ID, c.ID, "At end", "Other", nil, weekEnd, u.ID); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(h.ID, c.ID, "Before", "Other", nil, weekStart.Add(-time.Hour), u.ID); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.ListByChildAndRange(h.ID, c.ID, weekStart, weekEnd)
	if err != nil {
		t.Fatalf("list by range: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "In range" {
		t.Errorf("title = %q, want %q", got[0].Title, "In range")
	}
}
