package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/nannyloop/internal/auth"
	"github.com/dukerupert/nannyloop/internal/store"
	"github.com/dukerupert/nannyloop/internal/timetable"
)

type TimetableHandler struct {
	childStore *store.ChildStore
	builder    *timetable.Builder
	logger     *slog.Logger
}

func NewTimetableHandler(cs *store.ChildStore, builder *timetable.Builder, logger *slog.Logger) *TimetableHandler {
	return &TimetableHandler{childStore: cs, builder: builder, logger: logger}
}

type timetableSlot struct {
	Hour    int               `json:"hour"`
	Entries []timetable.Entry `json:"entries"`
}

type timetableDay struct {
	Date  string          `json:"date"`
	Slots []timetableSlot `json:"slots"`
}

type timetableResponse struct {
	Week timetable.Week `json:"week"`
	Days []timetableDay `json:"days"`
}

// Get renders a child's week as a 7-day grid of 2-hour slots. The optional
// week parameter is any YYYY-MM-DD date inside the wanted week; empty means
// the current week.
func (h *TimetableHandler) Get(w http.ResponseWriter, r *http.Request) {
	childID, err := strconv.ParseInt(r.URL.Query().Get("child_id"), 10, 64)
	if err != nil || childID < 1 {
		writeError(w, http.StatusBadRequest, "child_id is required")
		return
	}

	householdID := auth.HouseholdID(r.Context())
	child, err := h.childStore.GetByID(householdID, childID)
	if err != nil {
		h.logger.Error("child lookup failed", "household_id", householdID, "child_id", childID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if child == nil {
		writeError(w, http.StatusNotFound, "child not found")
		return
	}

	week, err := timetable.ResolveWeek(r.URL.Query().Get("week"))
	if err != nil {
		if writeIngestError(w, err) {
			return
		}
		writeError(w, http.StatusBadRequest, "invalid date format")
		return
	}

	grid, err := h.builder.Build(householdID, childID, week.Start, week.End)
	if err != nil {
		h.logger.Error("timetable build failed", "household_id", householdID, "child_id", childID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := timetableResponse{Week: week, Days: make([]timetableDay, 0, 7)}
	for day := 0; day < 7; day++ {
		d := timetableDay{
			Date:  week.Start.AddDate(0, 0, day).Format("2006-01-02"),
			Slots: make([]timetableSlot, 0, len(timetable.Slots)),
		}
		for _, hour := range timetable.Slots {
			entries := grid[timetable.Cell{Day: day, Slot: hour}]
			if entries == nil {
				entries = []timetable.Entry{}
			}
			d.Slots = append(d.Slots, timetableSlot{Hour: hour, Entries: entries})
		}
		resp.Days = append(resp.Days, d)
	}

	writeJSON(w, http.StatusOK, resp)
}
