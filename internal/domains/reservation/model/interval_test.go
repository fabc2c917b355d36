package model_test

import (
	"equiplend/internal/domains/reservation/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Valid(t *testing.T) {
	assert.True(t, model.Interval{Start: clock(9, 0), End: clock(9, 1)}.Valid())
	assert.False(t, model.Interval{Start: clock(9, 0), End: clock(9, 0)}.Valid())
	assert.False(t, model.Interval{Start: clock(10, 0), End: clock(9, 0)}.Valid())
}

func TestOverlaps(t *testing.T) {
	base := model.Interval{Start: clock(10, 0), End: clock(11, 0)}

	tests := []struct {
		name  string
		other model.Interval
		want  bool
	}{
		{name: "identical", other: base, want: true},
		{name: "partial before", other: model.Interval{Start: clock(9, 30), End: clock(10, 30)}, want: true},
		{name: "partial after", other: model.Interval{Start: clock(10, 59), End: clock(12, 0)}, want: true},
		{name: "contained", other: model.Interval{Start: clock(10, 15), End: clock(10, 45)}, want: true},
		{name: "containing", other: model.Interval{Start: clock(8, 0), End: clock(12, 0)}, want: true},
		{name: "touching end", other: model.Interval{Start: clock(11, 0), End: clock(12, 0)}, want: false},
		{name: "touching start", other: model.Interval{Start: clock(9, 0), End: clock(10, 0)}, want: false},
		{name: "disjoint", other: model.Interval{Start: clock(13, 0), End: clock(14, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Overlaps(base, tt.other))
			assert.Equal(t, tt.want, model.Overlaps(tt.other, base), "overlap must be symmetric")
		})
	}
}

func TestDayInterval(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	day := model.DayInterval(time.Date(2024, time.March, 4, 15, 30, 0, 0, jakarta), jakarta)

	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, jakarta), day.Start)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, jakarta), day.End)
}

func TestDayInterval_DaylightSaving(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	day := model.DayInterval(time.Date(2024, time.March, 10, 12, 0, 0, 0, newYork), newYork)

	assert.Equal(t, 23*time.Hour, day.End.Sub(day.Start))
}

func TestReservation_Clone(t *testing.T) {
	original := model.Reservation{ID: 1, Items: []string{"Zoom"}}

	clone := original.Clone()
	clone.Items[0] = "Laptop1"

	assert.Equal(t, "Zoom", original.Items[0])
	assert.True(t, original.HasItem("Zoom"))
	assert.False(t, original.HasItem("Laptop1"))
}
