package shared_test

import (
	"context"
	"equiplend/shared"
	cacheMocks "equiplend/shared/cache/mocks"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no data", total: 0, limit: 10, expected: 1},
		{name: "no limit", total: 25, limit: 0, expected: 1},
		{name: "exact pages", total: 20, limit: 10, expected: 2},
		{name: "partial last page", total: 21, limit: 10, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID(int64(42), "id", "reservations")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(reservations.id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(42)}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "reservation:get:7", shared.BuildCacheKey("reservation:get", int64(7)))
	assert.Equal(t, "reservation:day", shared.BuildCacheKey("reservation:day"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), "reservation:gets").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "reservation:day").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "reservation:gets")
	shared.InvalidateCaches(context.Background(), mockCache, "reservation:day")
}
