package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"equiplend/infras/otel"
	"equiplend/infras/postgres"
	"equiplend/internal/domains/reservation/model"
	"equiplend/shared"
	"equiplend/shared/constant"
	gDto "equiplend/shared/dto"
	"equiplend/shared/logger"
	gRepo "equiplend/shared/repository"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const lockEquipmentQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

var ErrNotFound = errors.New("reservation not found")

// Reader is the read side of the store. Every call sees a consistent snapshot.
type Reader interface {
	// Get returns ErrNotFound when id does not exist.
	Get(ctx context.Context, id int64) (model.Reservation, error)
	// ListByEquipment returns every reservation holding item, ordered by start then id.
	ListByEquipment(ctx context.Context, item string) ([]model.Reservation, error)
}

// Tx is handed to the function run by Atomic. Its writes become visible
// to other callers only when that function returns nil.
type Tx interface {
	Reader
	Insert(ctx context.Context, record model.Reservation) (int64, error)
	Update(ctx context.Context, id int64, record model.Reservation) error
	Delete(ctx context.Context, id int64) error
}

type Reservation interface {
	Reader
	// ListAll pages through reservations ordered by start then id. An empty equipment matches all.
	ListAll(ctx context.Context, params gDto.QueryParams, equipment string) ([]model.Reservation, error)
	Count(ctx context.Context, equipment string) (int, error)
	// ListOverlapping returns reservations sharing at least one instant with interval.
	ListOverlapping(ctx context.Context, interval model.Interval) ([]model.Reservation, error)
	// Atomic runs fn while holding exclusive access to items. Other sections
	// touching any of the same items wait until fn has committed or rolled back.
	Atomic(ctx context.Context, items []string, fn func(ctx context.Context, tx Tx) error) error
}

type repositoryImpl struct {
	table gRepo.Repository[model.Reservation]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		table: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:    db,
		otel:  otel,
	}
}

func byStart() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldStart, SortDir: gDto.SortDirAsc}
}

func byEquipment(item string) gDto.FilterGroup {
	if item == constant.Empty {
		return gDto.FilterGroup{}
	}

	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "item",
				Field:    model.FieldItems,
				Value:    item,
				Operator: gDto.FilterOperatorAny,
				Table:    model.TableName,
			},
		},
	}
}

func byInterval(interval model.Interval) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "window_end",
				Field:    model.FieldStart,
				Value:    interval.End,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "window_start",
				Field:    model.FieldEnd,
				Value:    interval.Start,
				Operator: gDto.FilterOperatorGreater,
				Table:    model.TableName,
			},
		},
	}
}

func (r *repositoryImpl) Get(ctx context.Context, id int64) (model.Reservation, error) {
	res, err := r.table.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	if res.ID == model.NoReservation {
		return res, ErrNotFound
	}

	return res, nil
}

func (r *repositoryImpl) ListByEquipment(ctx context.Context, item string) ([]model.Reservation, error) {
	return r.table.GetAll(ctx, byStart(), byEquipment(item))
}

func (r *repositoryImpl) ListAll(ctx context.Context, params gDto.QueryParams, equipment string) ([]model.Reservation, error) {
	ordered := byStart()
	ordered.Page = params.Page
	ordered.Limit = params.Limit

	return r.table.GetAll(ctx, ordered, byEquipment(equipment))
}

func (r *repositoryImpl) Count(ctx context.Context, equipment string) (int, error) {
	return r.table.Count(ctx, byEquipment(equipment))
}

func (r *repositoryImpl) ListOverlapping(ctx context.Context, interval model.Interval) ([]model.Reservation, error) {
	return r.table.GetAll(ctx, byStart(), byInterval(interval))
}

// Atomic takes a transaction scoped advisory lock per item. Locks are taken
// in sorted order so two sections never wait on each other in a cycle.
func (r *repositoryImpl) Atomic(ctx context.Context, items []string, fn func(ctx context.Context, tx Tx) error) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Atomic")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sqltx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := sqltx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}
	}()

	for _, item := range slices.Sorted(slices.Values(items)) {
		if _, err = sqltx.ExecContext(ctx, lockEquipmentQuery, item); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock equipment %q: %w", item, err)
		}
	}

	if err = fn(ctx, &postgresTx{repo: r, tx: sqltx}); err != nil {
		return err
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

type postgresTx struct {
	repo *repositoryImpl
	tx   *sqlx.Tx
}

func (t *postgresTx) Get(ctx context.Context, id int64) (model.Reservation, error) {
	res, err := t.repo.table.GetTx(ctx, t.tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	if res.ID == model.NoReservation {
		return res, ErrNotFound
	}

	return res, nil
}

func (t *postgresTx) ListByEquipment(ctx context.Context, item string) ([]model.Reservation, error) {
	return t.repo.table.GetAllTx(ctx, t.tx, byStart(), byEquipment(item))
}

func (t *postgresTx) Insert(ctx context.Context, record model.Reservation) (int64, error) {
	now := time.Now()
	record.CreatedAt = now
	record.ModifiedAt = now

	return t.repo.table.InsertReturningTx(ctx, t.tx, record)
}

func (t *postgresTx) Update(ctx context.Context, id int64, record model.Reservation) error {
	fields := map[string]any{
		model.FieldRequester:     record.Requester,
		model.FieldDepartment:    record.Department,
		model.FieldItems:         pq.StringArray(record.Items),
		model.FieldStart:         record.Start,
		model.FieldEnd:           record.End,
		model.FieldRemarks:       record.Remarks,
		constant.FieldModifiedAt: time.Now(),
	}

	affected, err := t.repo.table.UpdateTx(ctx, t.tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (t *postgresTx) Delete(ctx context.Context, id int64) error {
	affected, err := t.repo.table.DeleteTx(ctx, t.tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
