package timetable

import (
	"fmt"
	"sort"
	"time"

	"github.com/dukerupert/nannyloop/internal/model"
)

// Slots are the starting hours of the 2-hour display slots. The grid covers
// fixed operating hours 06:00-22:00; entries outside that span clamp to the
// nearest boundary slot rather than being hidden.
var Slots = []int{6, 8, 10, 12, 14, 16, 18, 20}

const (
	firstSlot = 6
	lastSlot  = 20
)

// SlotFor returns the slot an entry at time t displays in.
func SlotFor(t time.Time) int {
	slot := (t.Hour() / 2) * 2
	if slot < firstSlot {
		return firstSlot
	}
	if slot > lastSlot {
		return lastSlot
	}
	return slot
}

// Kind discriminates grid entries by origin.
type Kind string

const (
	KindLog   Kind = "log"
	KindEvent Kind = "event"
)

// Entry is one item in a grid cell. Title is the schedule item's title for
// events and the log's category for logs; Carer is set only for logs.
type Entry struct {
	Kind     Kind      `json:"kind"`
	Time     time.Time `json:"time"`
	Category string    `json:"category"`
	Title    string    `json:"title"`
	Notes    string    `json:"notes"`
	Carer    string    `json:"carer,omitempty"`
}

// Cell addresses one grid cell: Day is 0 (Monday) through 6 (Sunday),
// Slot is one of Slots.
type Cell struct {
	Day  int
	Slot int
}

// Grid maps populated cells to their entries, sorted ascending by time.
type Grid map[Cell][]Entry

// LogSource and EventSource are the store reads the builder depends on,
// satisfied by store.LogEntryStore and store.ScheduleItemStore.
type LogSource interface {
	ListByChildAndRange(householdID, childID int64, start, end time.Time) ([]model.LogEntry, error)
}

type EventSource interface {
	ListByChildAndRange(householdID, childID int64, start, end time.Time) ([]model.ScheduleItem, error)
}

// Builder assembles week grids from a child's logs and schedule items.
type Builder struct {
	logs   LogSource
	events EventSource
}

func NewBuilder(logs LogSource, events EventSource) *Builder {
	return &Builder{logs: logs, events: events}
}

// Build fetches the child's logs and schedule items in [start, end) and
// buckets them into cells. It is a pure read: same arguments and store
// contents always produce the same grid.
func (b *Builder) Build(householdID, childID int64, start, end time.Time) (Grid, error) {
	logs, err := b.logs.ListByChildAndRange(householdID, childID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch logs: %w", err)
	}
	items, err := b.events.ListByChildAndRange(householdID, childID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule items: %w", err)
	}

	grid := make(Grid)
	for _, l := range logs {
		grid.place(Entry{
			Kind:     KindLog,
			Time:     l.Timestamp.UTC(),
			Category: l.Category,
			Title:    l.Category,
			Notes:    l.Notes,
			Carer:    l.CarerName,
		}, start, end)
	}
	for _, it := range items {
		var notes string
		if it.Notes != nil {
			notes = *it.Notes
		}
		grid.place(Entry{
			Kind:     KindEvent,
			Time:     it.StartTime.UTC(),
			Category: it.Category,
			Title:    it.Title,
			Notes:    notes,
		}, start, end)
	}

	// Stable sort keeps fetch order for a log and an event sharing a timestamp.
	for cell := range grid {
		entries := grid[cell]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Time.Before(entries[j].Time)
		})
	}

	return grid, nil
}

// place buckets one entry, dropping anything outside [start, end) or the
// 7-day window. The range query already bounds the data; this guards
// boundary timestamps exactly at end.
func (g Grid) place(e Entry, start, end time.Time) {
	if e.Time.Before(start) || !e.Time.Before(end) {
		return
	}
	day := dayIndex(start, e.Time)
	if day < 0 || day > 6 {
		return
	}
	cell := Cell{Day: day, Slot: SlotFor(e.Time)}
	g[cell] = append(g[cell], e)
}

func dayIndex(start, t time.Time) int {
	return int(dateOnly(t).Sub(dateOnly(start)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
