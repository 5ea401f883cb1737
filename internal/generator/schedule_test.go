package generator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vuelachile/schedgen/internal/domain"
)

func testRoute(origin, dest string, frequency int) domain.RouteTemplate {
	return domain.RouteTemplate{
		Origin:         domain.Airport{ID: 1, Code: origin, Country: "CL"},
		Destination:    domain.Airport{ID: 2, Code: dest, Country: "CL"},
		BaseFare:       decimal.NewFromInt(75000),
		Duration:       90 * time.Minute,
		DailyFrequency: frequency,
	}
}

func TestExpand_InvalidHorizon(t *testing.T) {
	_, err := Expand([]domain.RouteTemplate{testRoute("SCL", "LSC", 3)}, 0)
	var horizonErr *domain.InvalidHorizonError
	require.ErrorAs(t, err, &horizonErr)
	assert.Equal(t, 0, horizonErr.HorizonDays)

	_, err = Expand(nil, -5)
	require.ErrorAs(t, err, &horizonErr)
}

func TestSchedule_Volume(t *testing.T) {
	routes := []domain.RouteTemplate{
		testRoute("SCL", "LSC", 3),
		testRoute("SCL", "CCP", 2),
	}

	schedule, err := Expand(routes, 4)
	require.NoError(t, err)
	assert.Equal(t, 4*3+4*2, schedule.Len())

	count := 0
	for _, ok := schedule.Next(); ok; _, ok = schedule.Next() {
		count++
	}
	assert.Equal(t, schedule.Len(), count)
}

func TestSchedule_EnumerationOrder(t *testing.T) {
	routes := []domain.RouteTemplate{
		testRoute("SCL", "LSC", 2),
		testRoute("SCL", "CCP", 1),
	}

	schedule, err := Expand(routes, 2)
	require.NoError(t, err)

	type coord struct {
		dest      string
		day, slot int
	}
	var got []coord
	for occ, ok := schedule.Next(); ok; occ, ok = schedule.Next() {
		got = append(got, coord{occ.Route.Destination.Code, occ.DayOffset, occ.Slot})
	}

	want := []coord{
		{"LSC", 0, 0}, {"LSC", 0, 1},
		{"LSC", 1, 0}, {"LSC", 1, 1},
		{"CCP", 0, 0},
		{"CCP", 1, 0},
	}
	assert.Equal(t, want, got)
}

func TestSchedule_SeqIsSequential(t *testing.T) {
	schedule, err := Expand([]domain.RouteTemplate{testRoute("SCL", "LSC", 3)}, 2)
	require.NoError(t, err)

	expected := 0
	for occ, ok := schedule.Next(); ok; occ, ok = schedule.Next() {
		assert.Equal(t, expected, occ.Seq)
		expected++
	}
}

func TestSchedule_Reset(t *testing.T) {
	schedule, err := Expand([]domain.RouteTemplate{testRoute("SCL", "LSC", 2)}, 3)
	require.NoError(t, err)

	var first []Occurrence
	for occ, ok := schedule.Next(); ok; occ, ok = schedule.Next() {
		first = append(first, occ)
	}

	schedule.Reset()

	var second []Occurrence
	for occ, ok := schedule.Next(); ok; occ, ok = schedule.Next() {
		second = append(second, occ)
	}

	assert.Equal(t, first, second)
}
