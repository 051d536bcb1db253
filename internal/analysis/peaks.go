// internal/analysis/peaks.go
package analysis

import "sort"

// FindPeaks returns ascending indices of strict local maxima above height.
//
// Candidates are taken tallest first; a candidate is kept only if it is at least
// distance indices from every kept peak. At most maxNum peaks are kept
// (maxNum <= 0 means no limit).
func FindPeaks(data []float64, height float64, distance, maxNum int) []int {
	var cand []int
	for i := 1; i < len(data)-1; i++ {
		if data[i] > data[i-1] && data[i] > data[i+1] && data[i] > height {
			cand = append(cand, i)
		}
	}

	sort.SliceStable(cand, func(a, b int) bool {
		return data[cand[a]] > data[cand[b]]
	})

	peaks := make([]int, 0, len(cand))
	for _, idx := range cand {
		if maxNum > 0 && len(peaks) >= maxNum {
			break
		}
		if farFromAll(idx, peaks, distance) {
			peaks = append(peaks, idx)
		}
	}

	sort.Ints(peaks)
	return peaks
}

// PeakHeight is the canonical height threshold: mean + 0.5·stddev.
func PeakHeight(data []float64) float64 {
	return mean(data) + 0.5*stdDev(data)
}

func farFromAll(idx int, peaks []int, distance int) bool {
	for _, p := range peaks {
		d := idx - p
		if d < 0 {
			d = -d
		}
		if d < distance {
			return false
		}
	}
	return true
}
