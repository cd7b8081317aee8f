package entity

// DensityClass is the coarse urban/suburban/rural classification derived
// from POI count per square kilometer of the driving circle.
type DensityClass string

const (
	DensityUrban    DensityClass = "Urban"
	DensitySuburban DensityClass = "Suburban"
	DensityRural    DensityClass = "Rural"
)

// ScoreResult holds the derived walkability numbers for a location.
// Values are recomputed wholesale on each new location, never mutated.
type ScoreResult struct {
	WalkingScore       float64      `json:"walking_score"`  // 0-10
	DrivingScore       float64      `json:"driving_score"`  // 0-10
	UrbanSuburbanIndex DensityClass `json:"urban_suburban_index"`
}
