package service

import (
	"context"
	"equiplend/catalog"
	"equiplend/config"
	"equiplend/infras/kafka"
	"equiplend/infras/otel"
	"equiplend/internal/domains/reservation/conflict"
	"equiplend/internal/domains/reservation/model"
	"equiplend/internal/domains/reservation/model/dto"
	"equiplend/internal/domains/reservation/repository"
	"equiplend/internal/domains/reservation/view"
	"equiplend/shared"
	"equiplend/shared/cache"
	"equiplend/shared/constant"
	gDto "equiplend/shared/dto"
	"equiplend/shared/failure"
	"equiplend/shared/logger"
	"equiplend/shared/timezone"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	cacheGeneration        = "reservation:generation"
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
	cacheSchedule          = "reservation:schedule"
)

const (
	attributeID    = "reservation.id"
	attributeItems = "reservation.items"
	attributeStart = "reservation.start"
	attributeEnd   = "reservation.end"
)

type Reservation interface {
	Create(ctx context.Context, req model.Request) (int64, error)
	Update(ctx context.Context, id int64, req model.Request) error
	Cancel(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, equipment string) (dto.GetReservationsResponse, error)
	ProjectDay(ctx context.Context, date time.Time) (dto.ScheduleResponse, error)
	Catalog() []string
}

type serviceImpl struct {
	repo    repository.Reservation
	catalog *catalog.Catalog
	cfg     *config.Config
	cache   cache.RedisCache
	events  kafka.Client
	otel    otel.Otel
}

func New(repo repository.Reservation, catalog *catalog.Catalog, cfg *config.Config, cache cache.RedisCache, events kafka.Client, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:    repo,
		catalog: catalog,
		cfg:     cfg,
		cache:   cache,
		events:  events,
		otel:    otel,
	}
}

// check applies the request shape rules in order and stops at the first
// failure. On success the items are de-duplicated and in catalog order.
func (s *serviceImpl) check(req model.Request) (model.Request, error) {
	req.Requester = strings.TrimSpace(req.Requester)
	if req.Requester == constant.Empty {
		return req, failure.Rejected(failure.ReasonMissingRequester, "requester is required")
	}

	known, unknown := s.catalog.Normalize(req.Items)
	if len(known) == 0 && len(unknown) == 0 {
		return req, failure.Rejected(failure.ReasonNoEquipmentSelected, "at least one equipment item must be selected")
	}

	if len(unknown) > 0 {
		return req, failure.Rejected(failure.ReasonUnknownEquipment, "unknown equipment: "+strings.Join(unknown, ", "), unknown...)
	}

	if !req.Interval.Valid() {
		return req, failure.Rejected(failure.ReasonInvalidInterval, "start must be before end")
	}

	req.Items = known

	return req, nil
}

func toRecord(req model.Request) model.Reservation {
	return model.Reservation{
		Requester:  req.Requester,
		Department: strings.TrimSpace(req.Department),
		Items:      req.Items,
		Start:      req.Interval.Start,
		End:        req.Interval.End,
		Remarks:    req.Remarks,
	}
}

func conflictMessage(items []string) string {
	return "equipment already reserved for an overlapping time: " + strings.Join(items, ", ")
}

// failureLog logs rejections and missing records at warn level, anything else at error level.
func failureLog(ctx context.Context, err error) *zerolog.Event {
	if failure.IsRejection(err) || failure.GetReason(err) == failure.ReasonNotFound {
		return logger.Ctx(ctx).Warn().Err(err)
	}

	return logger.Ctx(ctx).Error().Err(err)
}

// storageFailure keeps failures raised inside an atomic section and marks anything else as a store error.
func storageFailure(err error) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	return failure.StorageFailure(err)
}

func (s *serviceImpl) Create(ctx context.Context, req model.Request) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req, err = s.check(req)
	if err != nil {
		return model.NoReservation, err
	}

	record := toRecord(req)

	scope.SetAttributes(map[string]any{
		attributeItems: req.Items,
		attributeStart: req.Interval.Start,
		attributeEnd:   req.Interval.End,
	})

	err = s.repo.Atomic(ctx, req.Items, func(ctx context.Context, tx repository.Tx) error {
		conflicts, err := conflict.FindConflicts(ctx, tx, req.Items, req.Interval, model.NoReservation)
		if err != nil {
			return failure.StorageFailure(err)
		}

		if len(conflicts) > 0 {
			return failure.Conflict(conflictMessage(conflicts), conflicts...)
		}

		id, err = tx.Insert(ctx, record)
		if err != nil {
			return failure.StorageFailure(err)
		}

		return nil
	})
	if err != nil {
		err = storageFailure(err)
		failureLog(ctx, err).Str("requester", req.Requester).Strs("items", req.Items).Msg("reservation not created")

		return model.NoReservation, err
	}

	logger.Ctx(ctx).Info().Int64("id", id).Str("requester", req.Requester).Strs("items", req.Items).Msg("reservation created")

	s.afterMutation(ctx, id)
	s.publish(ctx, model.NewEvent(model.EventCreated, id, record))

	return id, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req model.Request) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req, err = s.check(req)
	if err != nil {
		return err
	}

	record := toRecord(req)

	scope.SetAttributes(map[string]any{
		attributeID:    id,
		attributeItems: req.Items,
		attributeStart: req.Interval.Start,
		attributeEnd:   req.Interval.End,
	})

	err = s.repo.Atomic(ctx, req.Items, func(ctx context.Context, tx repository.Tx) error {
		if _, err := tx.Get(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return failure.NotFound("reservation not found")
			}

			return failure.StorageFailure(err)
		}

		conflicts, err := conflict.FindConflicts(ctx, tx, req.Items, req.Interval, id)
		if err != nil {
			return failure.StorageFailure(err)
		}

		if len(conflicts) > 0 {
			return failure.Conflict(conflictMessage(conflicts), conflicts...)
		}

		err = tx.Update(ctx, id, record)
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound("reservation not found")
		}

		if err != nil {
			return failure.StorageFailure(err)
		}

		return nil
	})
	if err != nil {
		err = storageFailure(err)
		failureLog(ctx, err).Int64("id", id).Strs("items", req.Items).Msg("reservation not updated")

		return err
	}

	logger.Ctx(ctx).Info().Int64("id", id).Strs("items", req.Items).Msg("reservation updated")

	s.afterMutation(ctx, id)
	s.publish(ctx, model.NewEvent(model.EventUpdated, id, record))

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(attributeID, id)

	var record model.Reservation

	err = s.repo.Atomic(ctx, nil, func(ctx context.Context, tx repository.Tx) error {
		current, err := tx.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound("reservation not found")
		}

		if err != nil {
			return failure.StorageFailure(err)
		}

		record = current

		err = tx.Delete(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound("reservation not found")
		}

		if err != nil {
			return failure.StorageFailure(err)
		}

		return nil
	})
	if err != nil {
		err = storageFailure(err)
		failureLog(ctx, err).Int64("id", id).Msg("reservation not cancelled")

		return err
	}

	logger.Ctx(ctx).Info().Int64("id", id).Msg("reservation cancelled")

	s.afterMutation(ctx, id)
	s.publish(ctx, model.NewEvent(model.EventCancelled, id, record))

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey, cached := s.cacheKey(ctx, cacheGetReservation, id)

	if cached && s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	record, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		return res, failure.StorageFailure(fmt.Errorf("failed to get reservation: %w", err))
	}

	res.FromModel(record)
	s.save(ctx, cached, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, equipment string) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	equipment = strings.TrimSpace(equipment)
	if equipment != constant.Empty && !s.catalog.Contains(equipment) {
		return res, failure.Rejected(failure.ReasonUnknownEquipment, "unknown equipment: "+equipment, equipment)
	}

	cacheKey, cached := s.cacheKey(ctx, cacheGetAllReservation, params.Page, params.Limit, equipment)

	if cached && s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.count(ctx, equipment)
	if err != nil {
		return res, err
	}

	records, err := s.repo.ListAll(ctx, params, equipment)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservations")

		return res, failure.StorageFailure(fmt.Errorf("failed to list reservations: %w", err))
	}

	res.FromModels(records, total, params.Limit)
	s.save(ctx, cached, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, equipment string) (res int, err error) {
	cacheKey, cached := s.cacheKey(ctx, cacheCountReservation, equipment)

	if cached && s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, equipment)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, failure.StorageFailure(fmt.Errorf("failed to count reservations: %w", err))
	}

	s.save(ctx, cached, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) ProjectDay(ctx context.Context, date time.Time) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ProjectDay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	loc := timezone.GetLocation()
	day := model.DayInterval(date, loc)
	cacheKey, cached := s.cacheKey(ctx, cacheSchedule, day.Start.Format(constant.DayFormat))

	if cached && s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for schedule")

		return res, nil
	}

	records, err := s.repo.ListOverlapping(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservations for schedule")

		return res, failure.StorageFailure(fmt.Errorf("failed to list reservations for schedule: %w", err))
	}

	res.FromRows(day.Start, view.ProjectDay(day.Start, loc, records, s.catalog))
	s.save(ctx, cached, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Catalog() []string {
	return s.catalog.Items()
}

// cacheKey builds a read key under the cache generation current before the
// store is read. Every mutation bumps the generation, so a read that raced a
// write stores its result under a key no later read looks up. cached is false
// when the generation cannot be read; the caller then bypasses the cache.
func (s *serviceImpl) cacheKey(ctx context.Context, prefix string, parts ...any) (key string, cached bool) {
	generation := "0"

	err := s.cache.Get(ctx, cacheGeneration, &generation)
	if err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Msg("failed to read cache generation")

		return constant.Empty, false
	}

	return shared.BuildCacheKey(prefix, append([]any{generation}, parts...)...), true
}

func (s *serviceImpl) save(ctx context.Context, cached bool, key string, value any) {
	if !cached {
		return
	}

	if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("failed to save to cache")
	}
}

// afterMutation retires every cached read by bumping the cache generation, then
// drops the old entries. It runs after the commit and before the mutation
// returns.
func (s *serviceImpl) afterMutation(ctx context.Context, id int64) {
	c := context.WithoutCancel(ctx)

	if _, err := s.cache.Incr(c, cacheGeneration); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to bump cache generation")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetReservation+":")
	shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
	shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	shared.InvalidateCaches(c, s.cache, cacheSchedule)
}

func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	if !s.cfg.Kafka.Enable {
		return
	}

	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+string(event.Type))
	defer scope.End()

	message := kafka.Message{
		Key:   strconv.FormatInt(event.ReservationID, 10),
		Value: event,
	}

	scope.SetAttribute(attributeID, event.ReservationID)

	if err := s.events.SendMessages(context.WithoutCancel(ctx), message); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", string(event.Type)).Int64("id", event.ReservationID).Msg("failed to publish reservation event")
	}
}
