package models

import "time"

// FlockStatusCounts is the farm-wide bird tally by health bucket. Buckets are
// mutually exclusive: a sold flock contributes only to Sold.
type FlockStatusCounts struct {
	Healthy int `json:"healthy"`
	Sick    int `json:"sick"`
	Dead    int `json:"dead"`
	Sold    int `json:"sold"`
}

// FeedConsumptionStats is a fixed Monday-to-Sunday series of summed feed
// quantities in kilograms.
type FeedConsumptionStats struct {
	Labels []string  `json:"labels"`
	Series []float64 `json:"series"`
}

// FarmStatistics is the per-request derived KPI set for one farm. All rate
// fields are pre-formatted, zero-guarded strings.
type FarmStatistics struct {
	FlocksCount         int        `json:"flocksCount"`
	TotalBirds          int        `json:"totalBirds"`
	MortalityRate       string     `json:"mortalityRate"`
	VaccinationCoverage string     `json:"vaccinationCoverage"`
	AvgDailyFeed        string     `json:"avgDailyFeed"`
	EggProductionRate   string     `json:"eggProductionRate"`
	LastVaccination     *time.Time `json:"lastVaccination,omitempty"`
}

// FarmSnapshot is the nightly persisted copy of a farm's statistics, kept for
// trend history. The live statistics path never reads these back.
type FarmSnapshot struct {
	FarmID     string         `bson:"farm_id" json:"farmId"`
	Date       time.Time      `bson:"date" json:"date"`
	Statistics FarmStatistics `bson:"statistics" json:"statistics"`
	CreatedAt  time.Time      `bson:"created_at" json:"createdAt"`
}
