package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one tick window.
type WindowStats struct {
	WindowStart uint64 `csv:"-"`
	Step        uint64 `csv:"step"`
	Winter      bool   `csv:"winter"`

	// Population at window end
	Population int `csv:"population"`
	FoodCount  int `csv:"food"`

	// Events during the window
	Births       int `csv:"births"`
	Deaths       int `csv:"deaths"`
	Attacks      int `csv:"attacks"`
	EnergyStolen int `csv:"energy_stolen"`
	Heals        int `csv:"heals"`
	EnergyGiven  int `csv:"energy_given"`
	FoodEaten    int `csv:"food_eaten"`
	MovesBlocked int `csv:"moves_blocked"`

	// Energy distribution sampled at window end
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	GenerationMean float64 `csv:"gen_mean"`
	GenerationMax  int     `csv:"gen_max"`
	BodySizeMean   float64 `csv:"body_mean"`
}

// Distribution returns the mean and the 10th/50th/90th percentiles of values.
// Returns zeros for an empty slice.
func Distribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// Log emits the window to the default structured logger.
func (s WindowStats) Log() {
	slog.Info("window stats",
		"step", s.Step,
		"winter", s.Winter,
		"population", s.Population,
		"food", s.FoodCount,
		"births", s.Births,
		"deaths", s.Deaths,
		"attacks", s.Attacks,
		"heals", s.Heals,
		"food_eaten", s.FoodEaten,
		"energy_mean", s.EnergyMean,
		"gen_max", s.GenerationMax,
	)
}
