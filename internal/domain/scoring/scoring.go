// Package scoring derives walkability numbers from a point set.
// It is pure: no I/O, deterministic for a given input.
package scoring

import (
	"math"

	"insight/internal/domain/entity"
)

const (
	// Every 5 walkable points add one walking-score point, capped at 10.
	walkingPointsPerUnit = 5
	// Every 10 drivable points add one driving-score point, capped at 10.
	drivingPointsPerUnit = 10
	maxScore             = 10

	// Density thresholds in points per square kilometer of the driving
	// circle. Above urbanDensity classifies Urban, below ruralDensity
	// classifies Rural, anything between is Suburban.
	urbanDensity = 15
	ruralDensity = 1
)

// Calculate partitions points into walkable and drivable subsets and derives
// the score triple. drivingRadiusMeters is the radius of the circle whose
// area is the density denominator.
func Calculate(points []entity.Amenity, drivingRadiusMeters float64) entity.ScoreResult {
	var walkable, drivable int
	for _, p := range points {
		if p.Walking {
			walkable++
		} else {
			drivable++
		}
	}

	walkingScore := math.Min(maxScore, float64(walkable)/walkingPointsPerUnit)
	drivingScore := math.Min(maxScore, float64(drivable)/drivingPointsPerUnit)

	return entity.ScoreResult{
		WalkingScore:       walkingScore,
		DrivingScore:       drivingScore,
		UrbanSuburbanIndex: classify(Density(len(points), drivingRadiusMeters)),
	}
}

// Density returns total points per square kilometer of the driving circle.
func Density(totalPoints int, drivingRadiusMeters float64) float64 {
	radiusKm := drivingRadiusMeters / 1000
	area := math.Pi * radiusKm * radiusKm

	return float64(totalPoints) / area
}

func classify(density float64) entity.DensityClass {
	switch {
	case density > urbanDensity:
		return entity.DensityUrban
	case density < ruralDensity:
		return entity.DensityRural
	default:
		return entity.DensitySuburban
	}
}
