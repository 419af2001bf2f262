package stats

import (
	"fmt"
	"math"
)

// Based on https://en.wikipedia.org/wiki/Kahan_summation_algorithm
type KahanSum struct {
	Sum float64
	// A running compensation for lost low-order bits.
	c float64
}

func (p *KahanSum) Add(v float64) {
	y := v - p.c
	t := p.Sum + y
	// (t - Sum) is the high-order part of y; subtracting y leaves minus the
	// part that didn't make it into t.
	p.c = (t - p.Sum) - y
	p.Sum = t
}

// Running1DStats accumulates summary statistics of a stream of values
// without keeping them.
type Running1DStats struct {
	count          int64
	min, max       float64
	sum, sumSquare KahanSum
}

func (p *Running1DStats) String() string {
	return fmt.Sprintf(
		"{Mean: %v; MeanSquare: %v; Range: %v to %v; Count: %d}",
		p.Mean(), p.MeanSquare(), p.min, p.max, p.count)
}

func (p *Running1DStats) Add(v float64) {
	if p.count == 0 {
		p.min = v
		p.max = v
	} else {
		p.min = math.Min(p.min, v)
		p.max = math.Max(p.max, v)
	}
	p.sum.Add(v)
	p.sumSquare.Add(v * v)
	p.count++
}

func (p *Running1DStats) AddAll(values []float64) {
	for _, v := range values {
		p.Add(v)
	}
}

func (p *Running1DStats) Count() int64 {
	return p.count
}
func (p *Running1DStats) Min() float64 {
	return p.min
}
func (p *Running1DStats) Max() float64 {
	return p.max
}

// Mean is NaN when no values were added.
func (p *Running1DStats) Mean() float64 {
	return p.sum.Sum / float64(p.count)
}

// MeanSquare is the average of the squared values.
func (p *Running1DStats) MeanSquare() float64 {
	return p.sumSquare.Sum / float64(p.count)
}

func (p *Running1DStats) Variance() float64 {
	mean := p.Mean()
	return p.MeanSquare() - mean*mean
}

func (p *Running1DStats) StandardDeviation() float64 {
	return math.Sqrt(math.Max(p.Variance(), 0))
}
