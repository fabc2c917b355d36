package service_test

import (
	"context"
	"equiplend/catalog"
	"equiplend/config"
	kafkaMocks "equiplend/infras/kafka/mocks"
	"equiplend/infras/otel/mocks"
	reservationMocks "equiplend/internal/domains/reservation/mocks"
	"equiplend/internal/domains/reservation/model"
	"equiplend/internal/domains/reservation/repository"
	"equiplend/internal/domains/reservation/service"
	"equiplend/shared/cache"
	cacheMocks "equiplend/shared/cache/mocks"
	"equiplend/shared/constant"
	gDto "equiplend/shared/dto"
	"equiplend/shared/failure"
	"equiplend/shared/timezone"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var equipment = catalog.New("Projector1", "Projector2", "Laptop1", "Tripod1", "Zoom")

type fixture struct {
	svc    service.Reservation
	repo   repository.Reservation
	cache  *cacheMocks.MockRedisCache
	events *kafkaMocks.MockClient
	cfg    *config.Config
}

func newFixture(t *testing.T, repo repository.Reservation) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Incr(gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	events := kafkaMocks.NewMockClient(ctrl)

	return &fixture{
		svc:    service.New(repo, equipment, cfg, mockCache, events, mocks.NewOtel()),
		repo:   repo,
		cache:  mockCache,
		events: events,
		cfg:    cfg,
	}
}

func instant(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := timezone.Parse(constant.DateTimeFormat, value)
	require.NoError(t, err)

	return parsed
}

func request(t *testing.T, requester string, items []string, start, end string) model.Request {
	t.Helper()

	return model.Request{
		Requester: requester,
		Items:     items,
		Interval:  model.Interval{Start: instant(t, start), End: instant(t, end)},
	}
}

func snapshot(t *testing.T, repo repository.Reservation) []model.Reservation {
	t.Helper()

	records, err := repo.ListAll(context.Background(), gDto.QueryParams{}, "")
	require.NoError(t, err)

	return records
}

func TestReservationService_Create_Validation(t *testing.T) {
	f := newFixture(t, repository.NewMemory())

	tests := []struct {
		name       string
		req        model.Request
		wantReason failure.Reason
		wantItems  []string
	}{
		{
			name:       "blank requester",
			req:        request(t, "   ", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"),
			wantReason: failure.ReasonMissingRequester,
		},
		{
			name:       "requester checked before items",
			req:        request(t, "", nil, "2024-01-01T10:00", "2024-01-01T09:00"),
			wantReason: failure.ReasonMissingRequester,
		},
		{
			name:       "no equipment",
			req:        request(t, "Ann", []string{" "}, "2024-01-01T09:00", "2024-01-01T10:00"),
			wantReason: failure.ReasonNoEquipmentSelected,
		},
		{
			name:       "unknown equipment listed",
			req:        request(t, "Ann", []string{"Zoom", "Whiteboard"}, "2024-01-01T09:00", "2024-01-01T10:00"),
			wantReason: failure.ReasonUnknownEquipment,
			wantItems:  []string{"Whiteboard"},
		},
		{
			name:       "equal bounds",
			req:        request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T09:00"),
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name:       "reversed bounds",
			req:        request(t, "Ann", []string{"Zoom"}, "2024-01-01T10:00", "2024-01-01T09:00"),
			wantReason: failure.ReasonInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := f.svc.Create(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, model.NoReservation, id)
			assert.Equal(t, tt.wantReason, failure.GetReason(err))
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.True(t, failure.IsRejection(err))

			var fail *failure.Failure
			require.ErrorAs(t, err, &fail)
			assert.Equal(t, tt.wantItems, fail.Items)
		})
	}

	assert.Empty(t, snapshot(t, f.repo))
}

func TestReservationService_Create_NormalizesItems(t *testing.T) {
	f := newFixture(t, repository.NewMemory())

	id, err := f.svc.Create(context.Background(), request(t, "  Ann ", []string{"Zoom", "Projector1", "Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)

	res, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Ann", res.Requester)
	assert.Equal(t, []string{"Projector1", "Zoom"}, res.Items)
}

func TestReservationService_ScenarioOne(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	ctx := context.Background()

	id, err := f.svc.Create(ctx, request(t, "Ann", []string{"Projector1"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = f.svc.Create(ctx, request(t, "Bob", []string{"Projector1"}, "2024-01-01T09:30", "2024-01-01T10:30"))
	require.Error(t, err)
	assert.Equal(t, model.NoReservation, id)
	assert.Equal(t, failure.ReasonConflict, failure.GetReason(err))
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	var fail *failure.Failure
	require.ErrorAs(t, err, &fail)
	assert.Equal(t, []string{"Projector1"}, fail.Items)
}

func TestReservationService_ScenarioTwo(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	ctx := context.Background()

	id, err := f.svc.Create(ctx, request(t, "Ann", []string{"Projector1"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)

	err = f.svc.Update(ctx, id, request(t, "Ann", []string{"Projector1"}, "2024-01-01T10:00", "2024-01-01T11:00"))
	require.NoError(t, err)

	schedule, err := f.svc.ProjectDay(ctx, instant(t, "2024-01-01T00:00"))
	require.NoError(t, err)

	require.Len(t, schedule.Rows, 1)
	assert.Equal(t, "2024-01-01", schedule.Date)
	assert.Equal(t, id, schedule.Rows[0].ReservationID)
	assert.Equal(t, "Projector1", schedule.Rows[0].Item)
	assert.Equal(t, "10:00 - 11:00", schedule.Rows[0].Time)
}

func TestReservationService_Update_SelfExclusion(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	ctx := context.Background()

	req := request(t, "Ann", []string{"Projector1", "Laptop1"}, "2024-01-01T09:00", "2024-01-01T10:00")

	id, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	req.Remarks = "bring adapters"
	require.NoError(t, f.svc.Update(ctx, id, req))

	res, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "bring adapters", res.Remarks)
}

func TestReservationService_Update_ConflictWithOther(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	ctx := context.Background()

	first, err := f.svc.Create(ctx, request(t, "Ann", []string{"Projector1"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)

	second, err := f.svc.Create(ctx, request(t, "Bob", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)

	before := snapshot(t, f.repo)

	err = f.svc.Update(ctx, second, request(t, "Bob", []string{"Zoom", "Projector1"}, "2024-01-01T09:30", "2024-01-01T10:30"))
	assert.Equal(t, failure.ReasonConflict, failure.GetReason(err))
	assert.Equal(t, before, snapshot(t, f.repo))

	res, err := f.svc.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, []string{"Projector1"}, res.Items)
}

func TestReservationService_Update_NotFound(t *testing.T) {
	f := newFixture(t, repository.NewMemory())

	err := f.svc.Update(context.Background(), 99, request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))

	assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Empty(t, snapshot(t, f.repo))
}

func TestReservationService_Create_AtomicMultiItemReject(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	ctx := context.Background()

	_, err := f.svc.Create(ctx, request(t, "Ann", []string{"Tripod1"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)

	before := snapshot(t, f.repo)

	_, err = f.svc.Create(ctx, request(t, "Bob", []string{"Laptop1", "Tripod1"}, "2024-01-01T09:59", "2024-01-01T11:00"))

	var fail *failure.Failure
	require.ErrorAs(t, err, &fail)
	assert.Equal(t, []string{"Tripod1"}, fail.Items)
	assert.Equal(t, before, snapshot(t, f.repo))

	laptops, err := f.repo.ListByEquipment(ctx, "Laptop1")
	require.NoError(t, err)
	assert.Empty(t, laptops)
}

func TestReservationService_Create_TouchingIsAllowed(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	ctx := context.Background()

	_, err := f.svc.Create(ctx, request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, request(t, "Bob", []string{"Zoom"}, "2024-01-01T10:00", "2024-01-01T11:00"))
	assert.NoError(t, err)
}

func TestReservationService_Cancel_Idempotent(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	ctx := context.Background()

	keep, err := f.svc.Create(ctx, request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)

	drop, err := f.svc.Create(ctx, request(t, "Bob", []string{"Laptop1"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(ctx, drop))
	after := snapshot(t, f.repo)

	err = f.svc.Cancel(ctx, drop)
	assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	assert.Equal(t, after, snapshot(t, f.repo))

	require.Len(t, after, 1)
	assert.Equal(t, keep, after[0].ID)
}

func TestReservationService_Cancel_FreesEquipment(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	ctx := context.Background()

	id, err := f.svc.Create(ctx, request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(ctx, id))

	next, err := f.svc.Create(ctx, request(t, "Bob", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)
	assert.NotEqual(t, id, next)
}

func TestReservationService_GetAll(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	ctx := context.Background()

	_, err := f.svc.Create(ctx, request(t, "Ann", []string{"Zoom"}, "2024-01-02T09:00", "2024-01-02T10:00"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, request(t, "Bob", []string{"Laptop1"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)

	all, err := f.svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, "")
	require.NoError(t, err)
	require.Len(t, all.Reservations, 2)
	assert.Equal(t, "Bob", all.Reservations[0].Requester)
	assert.Equal(t, 2, all.TotalData)

	zoom, err := f.svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, "Zoom")
	require.NoError(t, err)
	require.Len(t, zoom.Reservations, 1)
	assert.Equal(t, "Ann", zoom.Reservations[0].Requester)

	_, err = f.svc.GetAll(ctx, gDto.QueryParams{}, "Whiteboard")
	assert.Equal(t, failure.ReasonUnknownEquipment, failure.GetReason(err))
}

func TestReservationService_Get_NotFound(t *testing.T) {
	f := newFixture(t, repository.NewMemory())

	_, err := f.svc.Get(context.Background(), 1)

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestReservationService_Catalog(t *testing.T) {
	f := newFixture(t, repository.NewMemory())

	assert.Equal(t, equipment.Items(), f.svc.Catalog())
}

func TestReservationService_PublishesEvents(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	f.cfg.Kafka.Enable = true
	ctx := context.Background()

	f.events.EXPECT().SendMessages(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	id, err := f.svc.Create(ctx, request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	require.NoError(t, err)
	require.NoError(t, f.svc.Update(ctx, id, request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T11:00")))
	require.NoError(t, f.svc.Cancel(ctx, id))
}

func TestReservationService_PublishFailureIgnored(t *testing.T) {
	f := newFixture(t, repository.NewMemory())
	f.cfg.Kafka.Enable = true

	f.events.EXPECT().SendMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := f.svc.Create(context.Background(), request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	assert.NoError(t, err)
}

func TestReservationService_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeErr := errors.New("connection refused")

	repo := reservationMocks.NewMockReservation(ctrl)
	f := newFixture(t, repo)
	ctx := context.Background()

	repo.EXPECT().Atomic(gomock.Any(), []string{"Zoom"}, gomock.Any()).Return(storeErr)

	_, err := f.svc.Create(ctx, request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	assert.Equal(t, failure.ReasonStorageFailure, failure.GetReason(err))
	assert.False(t, failure.IsRejection(err))
	assert.ErrorIs(t, err, storeErr)

	repo.EXPECT().Get(gomock.Any(), int64(3)).Return(model.Reservation{}, storeErr)

	_, err = f.svc.Get(ctx, 3)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.ErrorIs(t, err, storeErr)
}

func TestReservationService_ConflictCheckStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeErr := errors.New("read timeout")

	repo := reservationMocks.NewMockReservation(ctrl)
	tx := reservationMocks.NewMockTx(ctrl)
	f := newFixture(t, repo)

	repo.EXPECT().
		Atomic(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ []string, fn func(context.Context, repository.Tx) error) error {
			return fn(ctx, tx)
		})
	tx.EXPECT().ListByEquipment(gomock.Any(), "Zoom").Return(nil, storeErr)

	_, err := f.svc.Create(context.Background(), request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))

	assert.Equal(t, failure.ReasonStorageFailure, failure.GetReason(err))
	assert.ErrorIs(t, err, storeErr)
}

func TestReservationService_InvalidatesCacheOnMutation(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	svc := service.New(repository.NewMemory(), equipment, cfg, mockCache, kafkaMocks.NewMockClient(ctrl), mocks.NewOtel())

	mockCache.EXPECT().Incr(gomock.Any(), "reservation:generation").Return(int64(0), errors.New("redis down"))
	mockCache.EXPECT().Clear(gomock.Any(), "reservation:get:").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "reservation:gets").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "reservation:count").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "reservation:schedule").Return(errors.New("redis down"))

	_, err := svc.Create(context.Background(), request(t, "Ann", []string{"Zoom"}, "2024-01-01T09:00", "2024-01-01T10:00"))
	assert.NoError(t, err)
}

func TestReservationService_ConcurrentCreates(t *testing.T) {
	f := newFixture(t, repository.NewMemory())

	const workers = 16

	results := make(chan error, workers)

	req := request(t, "worker", []string{"Projector2"}, "2024-01-01T09:00", "2024-01-01T10:00")

	for range workers {
		go func() {
			_, err := f.svc.Create(context.Background(), req)
			results <- err
		}()
	}

	created := 0

	for range workers {
		err := <-results
		if err == nil {
			created++

			continue
		}

		assert.Equal(t, failure.ReasonConflict, failure.GetReason(err))
	}

	assert.Equal(t, 1, created)
	assert.Len(t, snapshot(t, f.repo), 1)
}
