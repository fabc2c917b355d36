package repository_test

import (
	"context"
	"equiplend/infras/otel/mocks"
	"equiplend/infras/postgres"
	"equiplend/shared/dto"
	"equiplend/shared/model"
	"equiplend/shared/repository"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int64  `db:"id"   insert:"-"`
	Name string `db:"name"`
	model.Metadata
}

func newWidgets(t *testing.T) (repository.Repository[widget], *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[widget]("widget", "widgets", "id", postgres.NewFromDB(sqlxDB), mocks.NewOtel()), sqlxDB, mock
}

func byName(name string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "name", Value: name, Operator: dto.FilterOperatorEq, Table: "widgets"},
		},
	}
}

func byID(id int64) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "widgets"},
		},
	}
}

func TestRepository_GetAllPaginatesAndBreaksTies(t *testing.T) {
	repo, _, mock := newWidgets(t)

	query := regexp.QuoteMeta("SELECT widgets.id, widgets.name, widgets.created_at, widgets.modified_at FROM widgets WHERE") +
		".*" + regexp.QuoteMeta("ORDER BY widgets.name ASC, widgets.id ASC LIMIT $2 OFFSET $3")

	mock.ExpectPrepare(query).
		ExpectQuery().
		WithArgs("bolt", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(11, "bolt"))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "name"}, byName("bolt"))

	require.NoError(t, err)
	assert.Equal(t, []widget{{ID: 11, Name: "bolt"}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNoRows(t *testing.T) {
	repo, _, mock := newWidgets(t)

	mock.ExpectPrepare("SELECT (.+) FROM widgets").
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := repo.Get(context.Background(), byName("nut"))

	require.NoError(t, err)
	assert.Equal(t, widget{}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertSkipsDatabaseColumns(t *testing.T) {
	repo, db, mock := newWidgets(t)

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO widgets (name, created_at, modified_at) VALUES ($1, $2, $3) RETURNING id")).
		ExpectQuery().
		WithArgs("bolt", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	id, err := repo.InsertReturningTx(context.Background(), tx, widget{Name: "bolt", Metadata: model.Metadata{CreatedAt: now, ModifiedAt: now}})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, int64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateWritesColumnsInOrder(t *testing.T) {
	repo, db, mock := newWidgets(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET modified_at = $1, name = $2 WHERE")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	affected, err := repo.UpdateTx(context.Background(), tx, map[string]any{"name": "nut", "modified_at": time.Now()}, byID(5))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WritesRequireFilter(t *testing.T) {
	repo, db, mock := newWidgets(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	_, err = repo.DeleteTx(context.Background(), tx, dto.FilterGroup{})
	assert.EqualError(t, err, "required filter")

	_, err = repo.UpdateTx(context.Background(), tx, map[string]any{"name": "nut"}, dto.FilterGroup{})
	assert.EqualError(t, err, "required filter")

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
