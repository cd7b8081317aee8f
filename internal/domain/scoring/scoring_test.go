package scoring

import (
	"testing"

	"insight/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func makePoints(walking, driving int) []entity.Amenity {
	points := make([]entity.Amenity, 0, walking+driving)
	for i := 0; i < walking; i++ {
		points = append(points, entity.Amenity{Type: "cafe", Walking: true})
	}
	for i := 0; i < driving; i++ {
		points = append(points, entity.Amenity{Type: "fuel", Walking: false})
	}

	return points
}

func TestCalculate_WalkingScoreScaling(t *testing.T) {
	tests := []struct {
		name     string
		walkable int
		want     float64
	}{
		{name: "empty", walkable: 0, want: 0},
		{name: "five points give one", walkable: 5, want: 1},
		{name: "thirty points give six", walkable: 30, want: 6},
		{name: "caps at fifty", walkable: 50, want: 10},
		{name: "stays capped above fifty", walkable: 120, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(makePoints(tt.walkable, 0), 2000)
			assert.InDelta(t, tt.want, result.WalkingScore, 1e-9)
		})
	}
}

func TestCalculate_WalkingScoreMonotonic(t *testing.T) {
	prev := -1.0
	for n := 0; n <= 60; n += 3 {
		result := Calculate(makePoints(n, 0), 2000)
		assert.GreaterOrEqual(t, result.WalkingScore, prev, "walking score must not decrease at n=%d", n)
		prev = result.WalkingScore
	}
}

func TestCalculate_DrivingScoreCaps(t *testing.T) {
	result := Calculate(makePoints(0, 100), 2000)
	assert.InDelta(t, 10.0, result.DrivingScore, 1e-9)

	result = Calculate(makePoints(0, 250), 2000)
	assert.InDelta(t, 10.0, result.DrivingScore, 1e-9)

	result = Calculate(makePoints(0, 80), 2000)
	assert.InDelta(t, 8.0, result.DrivingScore, 1e-9)
}

func TestCalculate_DensityClassification(t *testing.T) {
	// With a 2000m driving radius the denominator is pi*4 km^2.
	tests := []struct {
		name  string
		total int
		want  entity.DensityClass
	}{
		{name: "ten points is rural", total: 10, want: entity.DensityRural},
		{name: "fifty points is suburban", total: 50, want: entity.DensitySuburban},
		{name: "two hundred points is urban", total: 200, want: entity.DensityUrban},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(makePoints(0, tt.total), 2000)
			assert.Equal(t, tt.want, result.UrbanSuburbanIndex)
		})
	}
}

func TestCalculate_EndToEndScenario(t *testing.T) {
	// 30 walking + 80 driving points around a committed location.
	result := Calculate(makePoints(30, 80), 2000)

	assert.InDelta(t, 6.0, result.WalkingScore, 1e-9)
	assert.InDelta(t, 8.0, result.DrivingScore, 1e-9)
	assert.Equal(t, entity.DensitySuburban, result.UrbanSuburbanIndex)
}

func TestDensity(t *testing.T) {
	assert.InDelta(t, 8.75, Density(110, 2000)*1.0, 0.05)
	assert.InDelta(t, 0.8, Density(10, 2000), 0.01)
}
