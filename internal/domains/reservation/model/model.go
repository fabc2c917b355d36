package model

import (
	"equiplend/shared/model"
	"slices"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldRequester  = "requester"
	FieldDepartment = "department"
	FieldItems      = "equipment_items"
	FieldStart      = "start_at"
	FieldEnd        = "end_at"
	FieldRemarks    = "remarks"
)

// NoReservation is never assigned by a store; ids start at 1.
const NoReservation int64 = 0

type Reservation struct {
	ID         int64          `db:"id"              insert:"-"`
	Requester  string         `db:"requester"`
	Department string         `db:"department"`
	Items      pq.StringArray `db:"equipment_items"`
	Start      time.Time      `db:"start_at"`
	End        time.Time      `db:"end_at"`
	Remarks    string         `db:"remarks"`
	model.Metadata
}

func (r Reservation) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}

func (r Reservation) HasItem(item string) bool {
	return slices.Contains(r.Items, item)
}

// Clone returns a copy that shares no backing array with r.
func (r Reservation) Clone() Reservation {
	r.Items = slices.Clone(r.Items)

	return r
}

// Request is a reservation proposal after the caller converted raw input into typed fields.
type Request struct {
	Requester  string
	Department string
	Items      []string
	Interval   Interval
	Remarks    string
}
