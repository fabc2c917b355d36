package reservation

import (
	"equiplend/infras/otel"
	"equiplend/internal/domains/reservation/model/dto"
	"equiplend/internal/domains/reservation/service"
	"equiplend/shared/constant"
	gDto "equiplend/shared/dto"
	"equiplend/shared/failure"
	"equiplend/shared/timezone"
	"equiplend/shared/validator"
	"equiplend/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Put("/{id}", handler.UpdateReservation)
		routerGroup.Delete("/{id}", handler.CancelReservation)
	})

	router.Get("/schedule/{date}", handler.GetSchedule)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.BadRequestFromString("id must be a positive integer")
	}

	return id, nil
}

// CreateReservation books one or more equipment items for an interval.
// @Summary Create a reservation
// @Description Reserve equipment items for [start, end). All items are booked or none is.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.ReservationRequest true "Reservation"
// @Success 201 {object} response.Data[dto.CreateReservationResponse] "Reservation created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Items already reserved"
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	var body dto.ReservationRequest

	if err := validator.Validate(r.Body, &body); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	req, err := body.ToRequest()
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created")

	response.WithJSON(w, http.StatusCreated, dto.CreateReservationResponse{ID: id})
}

// GetReservations lists reservations ordered by start.
// @Summary Get all reservations
// @Description Retrieve reservations ordered by start time, optionally only those holding one equipment item.
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param equipment query string false "Equipment item"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	equipment := r.URL.Query().Get(constant.RequestParamEquipment)

	reservations, err := handler.service.GetAll(ctx, queryParams, equipment)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves one reservation.
// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservation replaces every field of a reservation.
// @Summary Update a reservation
// @Description Replace a reservation. The reservation never conflicts with its own previous state.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body dto.ReservationRequest true "Reservation"
// @Success 200 {object} response.Message "Reservation updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Items already reserved"
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [put]
// @Security ApiKeyAuth
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	var body dto.ReservationRequest

	if err := validator.Validate(r.Body, &body); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	req, err := body.ToRequest()
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation updated")

	response.WithMessage(w, http.StatusOK, "Reservation updated successfully")
}

// CancelReservation deletes a reservation.
// @Summary Cancel a reservation
// @Description Cancelling an unknown or already cancelled reservation returns 404.
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Message "Reservation cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled")

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}

// GetSchedule returns one row per reserved item for a calendar day.
// @Summary Get the schedule of a day
// @Tags Reservation
// @Produce json
// @Param date path string true "Day as YYYY-MM-DD"
// @Success 200 {object} response.Data[dto.ScheduleResponse] "Rows of the day"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedule/{date} [get]
func (handler *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedule")
	defer scope.End()

	raw := chi.URLParam(r, constant.RequestParamDate)

	if err := validator.ValidateVar(raw, "required,day"); err != nil {
		response.WithError(w, err)

		return
	}

	date, err := timezone.Parse(constant.DayFormat, raw)
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	schedule, err := handler.service.ProjectDay(ctx, date)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, schedule)
}
