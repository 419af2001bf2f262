package measure

import (
	"github.com/burrscurr/linesman/stats"
)

// An Aggregator reduces the deviations of all track points to a single
// score.
type Aggregator interface {
	// Fails with ErrNoPoints for an empty slice.
	Aggregate(deviations []float64) (float64, error)
	// Human readable name of the score, e.g. for printing it.
	Description() string
}

// MaxDeviation is the largest deviation in meters.
type MaxDeviation struct{}

func (MaxDeviation) Aggregate(deviations []float64) (float64, error) {
	s, err := summarize(deviations)
	if err != nil {
		return 0, err
	}
	return s.Max(), nil
}

func (MaxDeviation) Description() string {
	return "Maximum deviation in meters"
}

// AvgDeviation is the arithmetic mean of the deviations in meters.
type AvgDeviation struct{}

func (AvgDeviation) Aggregate(deviations []float64) (float64, error) {
	s, err := summarize(deviations)
	if err != nil {
		return 0, err
	}
	return s.Mean(), nil
}

func (AvgDeviation) Description() string {
	return "Average deviation in meters"
}

// SquareDeviationAvg is the mean of the squared deviations, in square
// meters. Large deviations weigh more than small ones.
type SquareDeviationAvg struct{}

func (SquareDeviationAvg) Aggregate(deviations []float64) (float64, error) {
	s, err := summarize(deviations)
	if err != nil {
		return 0, err
	}
	return s.MeanSquare(), nil
}

func (SquareDeviationAvg) Description() string {
	return "Average squared deviation"
}

func summarize(deviations []float64) (*stats.Running1DStats, error) {
	if len(deviations) == 0 {
		return nil, ErrNoPoints
	}
	s := &stats.Running1DStats{}
	s.AddAll(deviations)
	return s, nil
}
