package store

import "testing"

func TestChildCreateAndGetByID(t *testing.T) {
	db := openTestDB(t)
	h, _, _ := seedHousehold(t, db, "smith")
	s := NewChildStore(db)

	c, err := s.Create(h.ID, "Theo", "January 2023")
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if c.Name != "Theo" {
		t.Errorf("name = %q, want %q", c.Name, "Theo")
	}
	if c.DateOfBirth != "January 2023" {
		t.Errorf("date_of_birth = %q, want %q", c.DateOfBirth, "January 2023")
	}
	if c.HouseholdID != h.ID {
		t.Errorf("household_id = %d, want %d", c.HouseholdID, h.ID)
	}

	got, err := s.GetByID(h.ID, c.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got == nil || got.Name != "Theo" {
		t.Errorf("got = %+v, want Theo", got)
	}
}

func TestChildGetByIDWrongHousehold(t *testing.T) {
	db := openTestDB(t)
	_, _, c := seedHousehold(t, db, "smith")
	other, _, _ := seedHousehold(t, db, "jones")
	s := NewChildStore(db)

	got, err := s.GetByID(other.ID, c.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for child in another household, got %+v", got)
	}
}

func TestChildListByHousehold(t *testing.T) {
	db := openTestDB(t)
	h, _, _ := seedHousehold(t, db, "smith")
	other, _, _ := seedHousehold(t, db, "jones")
	s := NewChildStore(db)

	if _, err := s.Create(h.ID, "Ada", "2021-01-01"); err != nil {
		t.Fatalf("create child: %v", err)
	}

	children, err := s.ListByHousehold(h.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	// Ada + the seeded Mia, sorted by name
	if len(children) != 2 {
		t.Fatalf("len = %d, want 2", len(children))
	}
	if children[0].Name != "Ada" || children[1].Name != "Mia" {
		t.Errorf("order = [%s %s], want [Ada Mia]", children[0].Name, children[1].Name)
	}

	for _, c := range children {
		if c.HouseholdID == other.ID {
			t.Errorf("child %d leaked from household %d", c.ID, other.ID)
		}
	}
}
