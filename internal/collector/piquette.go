package collector

import (
	"fmt"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"github.com/davichuder/volatility-explorer/internal/model"
)

// PiquetteFetcher implements Fetcher using the piquette/finance-go client.
type PiquetteFetcher struct{}

// NewPiquetteFetcher creates a new finance-go based fetcher.
func NewPiquetteFetcher() *PiquetteFetcher { return &PiquetteFetcher{} }

func (f *PiquetteFetcher) Name() string { return "piquette" }

// FetchDailyCloses iterates the chart API for daily bars in [start, end).
func (f *PiquetteFetcher) FetchDailyCloses(ticker string, start, end time.Time) ([]model.PricePoint, error) {
	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	var points []model.PricePoint
	for iter.Next() {
		bar := iter.Bar()
		if bar.Close.Equal(decimal.Zero) {
			continue // null bar (holidays etc.)
		}
		c, _ := bar.Close.Float64()
		points = append(points, model.PricePoint{
			Time:  time.Unix(int64(bar.Timestamp), 0).UTC(),
			Close: c,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("piquette fetch: %w", err)
	}
	if len(points) == 0 {
		return nil, nil
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}
