package measure

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burrscurr/linesman/geo"
	"github.com/burrscurr/linesman/geom"
)

var (
	rngSource = rand.NewSource(12345)
	rng       = rand.New(rngSource)

	scenarioPoints = []geom.Vector{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}

	scenarioMax   = 78433.68568649939
	scenarioAvg   = 26144.561895499795
	scenarioSqAvg = 2050614350.1228597
)

func scenarioLine(t *testing.T) geom.Line {
	ln, err := geom.NewPlanarLine(geom.Vector{X: 1, Y: 1}, geom.Vector{X: 2, Y: 2})
	require.NoError(t, err)
	return ln
}

func TestMeasureScenario(t *testing.T) {
	tests := []struct {
		kind Kind
		want float64
		desc string
	}{
		{Max, scenarioMax, "Maximum deviation in meters"},
		{Avg, scenarioAvg, "Average deviation in meters"},
		{SquareAvg, scenarioSqAvg, "Average squared deviation"},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			m, err := New(tc.kind, scenarioPoints, scenarioLine(t), Options{})
			require.NoError(t, err)
			assert.InEpsilon(t, tc.want, m.Calculate(), 1e-9)
			assert.Equal(t, tc.desc, m.Description())
			assert.Equal(t, tc.kind, m.Kind())
		})
	}
}

func TestMeasureDeviations(t *testing.T) {
	m, err := New(Max, scenarioPoints, scenarioLine(t), Options{})
	require.NoError(t, err)

	dev := m.Deviations()
	require.Len(t, dev, 3)
	assert.Zero(t, dev[0])
	assert.InEpsilon(t, scenarioMax, dev[1], 1e-9)
	assert.Zero(t, dev[2])

	feet := m.Feet()
	assert.True(t, feet[1].NearlyEqual(geom.Vector{X: 1.5, Y: 1.5}))
	assert.Equal(t, scenarioPoints, m.Points())

	// Accessors return copies.
	dev[1] = -1
	assert.InEpsilon(t, scenarioMax, m.Deviations()[1], 1e-9)
}

func TestMeasureGeodesic(t *testing.T) {
	ln, err := geo.NewGeodesicLine(geom.Vector{X: 1, Y: 1}, geom.Vector{X: 2, Y: 2})
	require.NoError(t, err)
	m, err := New(Max, scenarioPoints, ln, Options{})
	require.NoError(t, err)

	dev := m.Deviations()
	assert.InDelta(t, 0, dev[0], geo.ContainsTolerance)
	assert.InDelta(t, 0, dev[2], geo.ContainsTolerance)
	assert.InEpsilon(t, scenarioMax, m.Calculate(), 1e-2)
	assert.Same(t, ln, m.RefLine())
}

func TestMeasureErrors(t *testing.T) {
	_, err := New(Max, nil, scenarioLine(t), Options{})
	assert.ErrorIs(t, err, ErrNoPoints)

	_, err = New(Avg, scenarioPoints, scenarioLine(t), Options{Resample: true})
	assert.ErrorIs(t, err, ErrNotImplemented)

	ln, err := geo.NewGeodesicLine(geom.Vector{X: 1, Y: 1}, geom.Vector{X: 2, Y: 2})
	require.NoError(t, err)
	_, err = New(Avg, scenarioPoints, ln, Options{Resample: true})
	assert.ErrorIs(t, err, ErrNotImplemented)

	_, err = New(Avg, scenarioPoints, nil, Options{})
	assert.Error(t, err)
}

func randomTrack(n int) []geom.Vector {
	rng := rand.New(rand.NewSource(42))
	points := make([]geom.Vector, n)
	for i := range points {
		points[i] = geom.Vector{
			X: 13 + float64(i)*0.001 + (rng.Float64()-0.5)*0.002,
			Y: 52 + (rng.Float64()-0.5)*0.002,
		}
	}
	return points
}

func TestMeasureOrdering(t *testing.T) {
	points := randomTrack(200)
	ln, err := geom.NewPlanarLine(points[0], points[len(points)-1])
	require.NoError(t, err)

	score := func(k Kind) float64 {
		m, err := New(k, points, ln, Options{})
		require.NoError(t, err)
		return m.Calculate()
	}
	maxScore, avg, sq := score(Max), score(Avg), score(SquareAvg)
	assert.GreaterOrEqual(t, maxScore, avg)
	assert.GreaterOrEqual(t, avg, 0.0)
	assert.GreaterOrEqual(t, sq, avg*avg)
}

func TestMeasureSummary(t *testing.T) {
	m, err := New(Avg, scenarioPoints, scenarioLine(t), Options{})
	require.NoError(t, err)
	s := m.Summary()
	assert.Equal(t, int64(3), s.Count())
	assert.Zero(t, s.Min())
	assert.InEpsilon(t, scenarioMax, s.Max(), 1e-12)
	assert.InEpsilon(t, m.Calculate(), s.Mean(), 1e-12)
	assert.InEpsilon(t, scenarioSqAvg-scenarioAvg*scenarioAvg, s.Variance(), 1e-9)
	assert.Contains(t, s.String(), "Count: 3")
}

func TestMeasureWorkers(t *testing.T) {
	points := randomTrack(1001)
	ln, err := geom.NewPlanarLine(points[0], points[len(points)-1])
	require.NoError(t, err)

	serial, err := New(SquareAvg, points, ln, Options{})
	require.NoError(t, err)
	for _, workers := range []int{2, 3, 8, 2000} {
		parallel, err := New(SquareAvg, points, ln, Options{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, serial.Deviations(), parallel.Deviations(), "workers=%d", workers)
		assert.Equal(t, serial.Feet(), parallel.Feet(), "workers=%d", workers)
		assert.Equal(t, serial.Calculate(), parallel.Calculate(), "workers=%d", workers)
	}
}

func TestAggregators(t *testing.T) {
	for _, k := range Kinds() {
		_, err := k.Aggregator().Aggregate(nil)
		assert.ErrorIs(t, err, ErrNoPoints, "%v", k)
	}

	dev := []float64{1, 2, 3, 6}
	v, err := MaxDeviation{}.Aggregate(dev)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
	v, err = AvgDeviation{}.Aggregate(dev)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	v, err = SquareDeviationAvg{}.Aggregate(dev)
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)
}

func aggregate(t *testing.T, a Aggregator, dev []float64) float64 {
	t.Helper()
	v, err := a.Aggregate(dev)
	require.NoError(t, err)
	return v
}

func TestAggregatorInequalities(t *testing.T) {
	for i := 0; i < 1000; i++ {
		dev := make([]float64, 1+rng.Intn(50))
		for j := range dev {
			dev[j] = rng.Float64() * 1e5
		}
		maxScore := aggregate(t, MaxDeviation{}, dev)
		avg := aggregate(t, AvgDeviation{}, dev)
		sq := aggregate(t, SquareDeviationAvg{}, dev)

		assert.GreaterOrEqual(t, maxScore, avg, "%v", dev)
		assert.GreaterOrEqual(t, avg, 0.0, "%v", dev)
		// Jensen's inequality, up to rounding.
		assert.GreaterOrEqual(t, sq, avg*avg*(1-1e-12), "%v", dev)
	}
}

func TestAggregatorsConstantDeviation(t *testing.T) {
	// All values are exact in binary, so are their sums.
	for _, c := range []float64{0, 0.25, 1234.5, 78433.5} {
		for _, n := range []int{1, 2, 7, 50} {
			dev := make([]float64, n)
			for j := range dev {
				dev[j] = c
			}
			avg := aggregate(t, AvgDeviation{}, dev)
			assert.Equal(t, c, aggregate(t, MaxDeviation{}, dev))
			assert.Equal(t, c, avg)
			assert.Equal(t, avg*avg, aggregate(t, SquareDeviationAvg{}, dev), "c=%v n=%d", c, n)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("avg")
	assert.ErrorContains(t, err, "MAX, AVG, SQ-AVG")
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
