package dto

import (
	"equiplend/internal/domains/reservation/model"
	"equiplend/internal/domains/reservation/view"
	"equiplend/shared"
	"equiplend/shared/constant"
	gDto "equiplend/shared/dto"
	"equiplend/shared/failure"
	"equiplend/shared/timezone"
	"equiplend/shared/validator"
	"fmt"
	"slices"
	"time"
)

// ReservationRequest is the body of both create and full replacement.
// Requester and items are checked by the service so each rejection keeps its reason.
type ReservationRequest struct {
	Requester  string   `json:"requester"  validate:"max=100"`
	Department string   `json:"department" validate:"omitempty,max=100"`
	Items      []string `json:"items"      validate:"omitempty,max=64,dive,max=64"`
	Start      string   `json:"start"      validate:"required,instant"`
	End        string   `json:"end"        validate:"required,instant"`
	Remarks    string   `json:"remarks"    validate:"omitempty,max=500"`
}

func (r *ReservationRequest) ToRequest() (model.Request, error) {
	start, err := timezone.ParseFirst(r.Start, validator.InstantLayouts...)
	if err != nil {
		return model.Request{}, failure.BadRequest(fmt.Errorf("invalid start: %w", err))
	}

	end, err := timezone.ParseFirst(r.End, validator.InstantLayouts...)
	if err != nil {
		return model.Request{}, failure.BadRequest(fmt.Errorf("invalid end: %w", err))
	}

	return model.Request{
		Requester:  r.Requester,
		Department: r.Department,
		Items:      slices.Clone(r.Items),
		Interval:   model.Interval{Start: start, End: end},
		Remarks:    r.Remarks,
	}, nil
}

type CreateReservationResponse struct {
	ID int64 `json:"id"`
}

type ReservationResponse struct {
	ID         int64    `json:"id"`
	Requester  string   `json:"requester"`
	Department string   `json:"department"`
	Items      []string `json:"items"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Remarks    string   `json:"remarks"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.Requester = model.Requester
	r.Department = model.Department
	r.Items = slices.Clone([]string(model.Items))
	r.Start = timezone.Format(model.Start, constant.DateFormat)
	r.End = timezone.Format(model.End, constant.DateFormat)
	r.Remarks = model.Remarks
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type DisplayRowResponse struct {
	ReservationID int64  `json:"reservation_id"`
	Item          string `json:"item"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Time          string `json:"time"`
	Requester     string `json:"requester"`
	Department    string `json:"department"`
	Remarks       string `json:"remarks"`
}

func (r *DisplayRowResponse) FromRow(row view.DisplayRow) {
	r.ReservationID = row.ReservationID
	r.Item = row.Item
	r.Start = timezone.Format(row.Start, constant.DateFormat)
	r.End = timezone.Format(row.End, constant.DateFormat)
	r.Time = timezone.Format(row.Start, constant.ClockFormat) + " - " + timezone.Format(row.End, constant.ClockFormat)
	r.Requester = row.Requester
	r.Department = row.Department
	r.Remarks = row.Remarks
}

type ScheduleResponse struct {
	Date string               `json:"date"`
	Rows []DisplayRowResponse `json:"rows"`
}

func (r *ScheduleResponse) FromRows(date time.Time, rows []view.DisplayRow) {
	r.Date = timezone.Format(date, constant.DayFormat)

	r.Rows = make([]DisplayRowResponse, len(rows))
	for i, row := range rows {
		r.Rows[i].FromRow(row)
	}
}

type EquipmentResponse struct {
	Equipment []string `json:"equipment"`
}
