package activity

import (
	"time"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
)

// DefaultBackupSeries is a hand-curated monthly manufacturing index record,
// January 2020 through September 2025.
var DefaultBackupSeries = []float64{
	50.9, 50.1, 49.1, 41.5, 43.1, 52.6, 54.2, 56.0, 55.4, 59.3, 57.5, 60.7,
	58.7, 60.8, 64.7, 60.7, 61.2, 60.6, 59.5, 59.9, 61.1, 60.8, 61.1, 58.7,
	57.6, 58.6, 57.1, 55.4, 56.1, 53.0, 52.8, 52.8, 50.9, 50.2, 49.0, 48.4,
	47.4, 47.7, 46.3, 47.1, 46.9, 46.0, 46.4, 47.6, 49.0, 46.7, 46.7, 47.4,
	49.1, 47.8, 50.3, 49.2, 48.7, 48.5, 46.8, 47.2, 47.2, 46.5, 48.4, 49.3,
	50.9, 50.3, 49.0, 48.7, 48.5, 49.0, 48.0, 48.7, 49.1,
}

// DefaultTrendTemplate is the recent shape a scraped reading is spliced onto.
var DefaultTrendTemplate = []float64{
	47.4, 47.7, 46.3, 47.1, 46.9, 46.0, 46.4, 47.6, 49.0, 46.7, 46.7, 47.4,
	49.1, 47.8, 50.3, 49.2, 48.7, 48.5, 46.8, 47.2, 47.2, 46.5, 48.4, 49.3,
}

// tile lays data onto grid so that the last value of data falls on the last
// grid month, repeating data backward as often as needed.
func tile(id string, data []float64, grid []time.Time) models.Series {
	if len(data) == 0 || len(grid) == 0 {
		return models.Series{ID: id}
	}
	m, n := len(data), len(grid)
	pts := make([]models.Point, n)
	for i, d := range grid {
		j := ((m-n+i)%m + m) % m
		pts[i] = models.Point{Date: d, Value: data[j]}
	}
	return models.NewSeries(id, pts)
}
