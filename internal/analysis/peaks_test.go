// internal/analysis/peaks_test.go
package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPeaks_Basic(t *testing.T) {
	data := []float64{0, 5, 0, 3, 0, 9, 0, 1, 0}

	assert.Equal(t, []int{1, 3, 5, 7}, FindPeaks(data, 0, 1, 0))
	assert.Equal(t, []int{1, 5}, FindPeaks(data, 4, 1, 0))
}

func TestFindPeaks_TallestWinsWithinDistance(t *testing.T) {
	data := []float64{0, 5, 0, 8, 0, 4, 0, 0, 0, 6, 0}

	// 3 (8) taken first; 1 and 5 are within 3; 9 is far enough
	assert.Equal(t, []int{3, 9}, FindPeaks(data, 0, 3, 0))
}

func TestFindPeaks_MaxNumKeepsTallest(t *testing.T) {
	data := []float64{0, 1, 0, 7, 0, 3, 0, 9, 0}
	assert.Equal(t, []int{3, 7}, FindPeaks(data, 0, 1, 2))
}

func TestFindPeaks_EdgesAndPlateausExcluded(t *testing.T) {
	data := []float64{9, 1, 4, 4, 1, 2, 9}
	assert.Empty(t, FindPeaks(data, 0, 1, 0))
}

func TestFindPeaks_ShortInput(t *testing.T) {
	assert.Empty(t, FindPeaks(nil, 0, 1, 8))
	assert.Empty(t, FindPeaks([]float64{1, 2}, 0, 1, 8))
}

func TestFindPeaks_NeverViolatesDistanceOrMaxNum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		n := 3 + rng.Intn(200)
		data := make([]float64, n)
		for i := range data {
			data[i] = rng.NormFloat64() * 100
		}
		distance := 1 + rng.Intn(20)
		maxNum := 1 + rng.Intn(10)

		peaks := FindPeaks(data, PeakHeight(data), distance, maxNum)

		require.LessOrEqual(t, len(peaks), maxNum)
		for i := 1; i < len(peaks); i++ {
			require.Greater(t, peaks[i], peaks[i-1], "not ascending: %v", peaks)
			require.GreaterOrEqual(t, peaks[i]-peaks[i-1], distance, "peaks=%v distance=%d", peaks, distance)
		}
	}
}

func TestPeakHeight(t *testing.T) {
	// mean 0, population stddev 2
	assert.InDelta(t, 1.0, PeakHeight([]float64{2, -2, 2, -2}), 1e-12)
}
