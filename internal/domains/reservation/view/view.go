// Package view turns stored reservations into per item rows for a day schedule.
package view

import (
	"cmp"
	"equiplend/catalog"
	"equiplend/internal/domains/reservation/model"
	"slices"
	"time"
)

// DisplayRow is one equipment item of one reservation.
type DisplayRow struct {
	ReservationID int64
	Item          string
	Start         time.Time
	End           time.Time
	Requester     string
	Department    string
	Remarks       string
}

// ProjectDay keeps the records overlapping the calendar day of date in loc and
// expands each into one row per item. Rows are ordered by start, then
// reservation id, then catalog position of the item.
func ProjectDay(date time.Time, loc *time.Location, records []model.Reservation, equipment *catalog.Catalog) []DisplayRow {
	day := model.DayInterval(date, loc)
	rows := []DisplayRow{}

	for _, record := range records {
		if !model.Overlaps(record.Interval(), day) {
			continue
		}

		for _, item := range record.Items {
			rows = append(rows, DisplayRow{
				ReservationID: record.ID,
				Item:          item,
				Start:         record.Start,
				End:           record.End,
				Requester:     record.Requester,
				Department:    record.Department,
				Remarks:       record.Remarks,
			})
		}
	}

	slices.SortStableFunc(rows, func(a, b DisplayRow) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}

		if c := cmp.Compare(a.ReservationID, b.ReservationID); c != 0 {
			return c
		}

		return cmp.Compare(equipment.Position(a.Item), equipment.Position(b.Item))
	})

	return rows
}
