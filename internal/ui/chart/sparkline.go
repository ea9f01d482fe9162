// Package chart draws small text charts.
package chart

import (
	"math"
	"strings"
)

var blocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a single row of block characters, resampled
// to width columns. A flat series and non-finite samples render at mid
// height.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	samples := Resample(values, width)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range samples {
		if !finite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range samples {
		level := len(blocks) / 2
		if finite(v) && hi > lo {
			level = int(math.Round((v - lo) / (hi - lo) * float64(len(blocks)-1)))
			level = max(0, min(level, len(blocks)-1))
		}
		b.WriteRune(blocks[level])
	}
	return b.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Resample linearly interpolates values onto n evenly spaced points that
// include both ends.
func Resample(values []float64, n int) []float64 {
	if n <= 0 || len(values) == 0 {
		return nil
	}
	out := make([]float64, n)
	if len(values) == 1 || n == 1 {
		for i := range out {
			out[i] = values[0]
		}
		if n == 1 {
			out[0] = values[len(values)-1]
		}
		return out
	}
	step := float64(len(values)-1) / float64(n-1)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = values[j] + (values[j+1]-values[j])*frac
	}
	return out
}

// Trend reports whether the series ended at or above its first value.
func Trend(values []float64) bool {
	if len(values) < 2 {
		return true
	}
	return values[len(values)-1] >= values[0]
}
