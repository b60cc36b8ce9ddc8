package collector

import (
	"time"

	"github.com/davichuder/volatility-explorer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Points []model.PricePoint
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ string, _, _ time.Time) ([]model.PricePoint, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Points, nil
}

// GenerateMockPoints builds count daily closes ending today, drifting around
// basePrice.
func GenerateMockPoints(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		points[i] = model.PricePoint{
			Time:  time.Now().UTC().AddDate(0, 0, -(count - i)),
			Close: p,
		}
	}
	return points
}

// PointsFromCloses builds consecutive daily points from raw close values,
// starting at the given day.
func PointsFromCloses(start time.Time, closes []float64) []model.PricePoint {
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Time: start.AddDate(0, 0, i), Close: c}
	}
	return points
}
