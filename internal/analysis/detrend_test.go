// internal/analysis/detrend_test.go
package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pulse(n int, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		ts := float64(i) / 50
		out[i] = offset + 800*math.Cos(2*math.Pi*1.2*ts) + 40*ts*ts - 150*ts
	}
	return out
}

func TestDetrend_RemovesDCOffset(t *testing.T) {
	base := pulse(WindowSize, 30000)
	shifted := pulse(WindowSize, 30000+1234.5)

	for _, order := range []int{1, 2, 5, 7} {
		a, err := Detrend(base, order)
		require.NoError(t, err, "order=%d", order)
		b, err := Detrend(shifted, order)
		require.NoError(t, err, "order=%d", order)

		require.Len(t, a, WindowSize)
		for i := range a {
			assert.InDelta(t, a[i], b[i], 1e-3, "order=%d i=%d", order, i)
		}
	}
}

func TestDetrend_RemovesExactPolynomial(t *testing.T) {
	y := make([]float64, WindowSize)
	for i := range y {
		x := float64(i + 1)
		y[i] = 12000 - 35*x + 0.75*x*x
	}

	out, err := Detrend(y, 2)
	require.NoError(t, err)
	for i, v := range out {
		assert.InDelta(t, 0, v, 1e-3, "i=%d", i)
	}
}

func TestDetrend_UsesFirstWindowOnly(t *testing.T) {
	y := pulse(WindowSize+50, 1000)

	a, err := Detrend(y, 2)
	require.NoError(t, err)
	b, err := Detrend(y[:WindowSize], 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDetrend_RoundsToFourDecimals(t *testing.T) {
	out, err := Detrend(pulse(WindowSize, 500), 2)
	require.NoError(t, err)
	for _, v := range out {
		assert.InDelta(t, v, math.Round(v*1e4)/1e4, 1e-9)
	}
}

func TestDetrend_HighOrderSolves(t *testing.T) {
	out, err := Detrend(pulse(WindowSize, 30000), 25)
	require.NoError(t, err)
	require.Len(t, out, WindowSize)
	for _, v := range out {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestDetrend_InsufficientHistory(t *testing.T) {
	_, err := Detrend(make([]float64, WindowSize-1), 2)
	assert.True(t, errors.Is(err, ErrInsufficientHistory), "err=%v", err)
}

func TestDetrend_SingularFit(t *testing.T) {
	_, err := Detrend(pulse(WindowSize, 1), WindowSize)
	assert.True(t, errors.Is(err, ErrSingularFit), "err=%v", err)

	_, err = Detrend(pulse(WindowSize, 1), -1)
	assert.True(t, errors.Is(err, ErrSingularFit), "err=%v", err)
}

func TestSelectOrder(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		noise, hr float64
		want      int
	}{
		{0, 70, 2},
		{4.99, 150, 2},
		{5, 70, 5},
		{9.99, 150, 5},
		{10, 150, 7},
		{14.99, 150, 7},
		{15, 139.9, 7},
		{15, 140, 25},
		{40, 180, 25},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, SelectOrder(tc.noise, tc.hr, th), "noise=%v hr=%v", tc.noise, tc.hr)
	}
}

func TestNoiseScore(t *testing.T) {
	still := make([][3]float64, 50)
	for i := range still {
		still[i] = [3]float64{0.1, -0.98, 0.05}
	}
	assert.InDelta(t, 0, NoiseScore(still), 1e-12)

	// x alternates ±1 (stddev 1), y alternates ±2 (stddev 2), z constant
	moving := make([][3]float64, 50)
	for i := range moving {
		s := 1.0
		if i%2 == 1 {
			s = -1
		}
		moving[i] = [3]float64{s, 2 * s, 7}
	}
	assert.InDelta(t, 3, NoiseScore(moving), 1e-12)
}
