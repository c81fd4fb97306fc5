package stats

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/wangjohn/quickselect"
)

var ErrInvalidSummarizer = merry.New("invalid summarizer")

// SupportedSummarizers lists the reduction names Summarize accepts, in
// addition to pNN / pNN.N percentile names.
var SupportedSummarizers = []string{"sum", "total", "avg", "average", "avg_zero", "max", "min", "last", "current", "first", "range", "median", "count", "stddev"}

var percentileNameRe = regexp.MustCompile(`^p([0-9]*[.])?[0-9]+$`)

// CheckSummarizer validates a reduction name, including the pNN form.
func CheckSummarizer(name string) error {
	for _, s := range SupportedSummarizers {
		if s == name {
			return nil
		}
	}
	if percentileNameRe.MatchString(name) {
		return nil
	}
	return ErrInvalidSummarizer.WithMessage("invalid summarizer " + name)
}

// NearestRank returns the percent-th percentile (percent in [0, 100]) of
// data using partial selection rather than a full sort. NaN points are
// skipped. With interpolate false the result is always one of the input
// values. Returns NaN for empty input or percent outside [0, 100].
//
// Note the convention differs from Estimate: the rank here is
// (n-1)*percent/100, matching graphite-style consolidation.
func NearestRank(data []float64, percent float64, interpolate bool) float64 {
	filtered := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			filtered = append(filtered, v)
		}
	}

	if len(filtered) == 0 || percent < 0 || percent > 100 {
		return math.NaN()
	}
	if len(filtered) == 1 {
		return filtered[0]
	}

	k := (float64(len(filtered)-1) * percent) / 100
	length := int(math.Ceil(k)) + 1

	_ = quickselect.Float64QuickSelect(filtered, length)
	top, secondTop := math.Inf(-1), math.Inf(-1)
	for _, val := range filtered[0:length] {
		if val > top {
			secondTop = top
			top = val
		} else if val > secondTop {
			secondTop = val
		}
	}
	remainder := k - float64(int(k))
	if remainder == 0 || !interpolate {
		return top
	}
	return (top * remainder) + (secondTop * (1 - remainder))
}

// Mean computes the mean of values, excluding NaN points.
func Mean(v []float64) float64 {
	var sum float64
	var n int
	for _, vv := range v {
		if !math.IsNaN(vv) {
			sum += vv
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// MeanZero computes sum(v)/len(v), counting NaN points as 0.
func MeanZero(v []float64) float64 {
	var sum float64
	n2 := 0
	for _, vv := range v {
		if !math.IsNaN(vv) {
			sum += vv
			n2++
		}
	}
	if n2 == 0 {
		return math.NaN()
	}
	return sum / float64(len(v))
}

// Max computes the maximum of values, excluding NaN points.
func Max(v []float64) float64 {
	var m = math.Inf(-1)
	var abs = true
	for _, vv := range v {
		if !math.IsNaN(vv) {
			abs = false
			if m < vv {
				m = vv
			}
		}
	}
	if abs {
		return math.NaN()
	}
	return m
}

// Min computes the minimum of values, excluding NaN points.
func Min(v []float64) float64 {
	var m = math.Inf(1)
	var abs = true
	for _, vv := range v {
		if !math.IsNaN(vv) {
			abs = false
			if m > vv {
				m = vv
			}
		}
	}
	if abs {
		return math.NaN()
	}
	return m
}

// Sum computes the sum of values, excluding NaN points.
func Sum(v []float64) float64 {
	var sum float64
	var abs = true
	for _, vv := range v {
		if !math.IsNaN(vv) {
			sum += vv
			abs = false
		}
	}
	if abs {
		return math.NaN()
	}
	return sum
}

// Count counts non-NaN points. Returns NaN when none remain.
func Count(v []float64) float64 {
	n := 0
	for _, vv := range v {
		if !math.IsNaN(vv) {
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return float64(n)
}

// First returns the first point, NaN included.
func First(v []float64) float64 {
	if len(v) > 0 {
		return v[0]
	}
	return math.NaN()
}

// Last returns the last non-NaN point.
func Last(v []float64) float64 {
	for i := len(v) - 1; i >= 0; i-- {
		if !math.IsNaN(v[i]) {
			return v[i]
		}
	}
	return math.NaN()
}

// Variance computes the population variance, excluding NaN points.
func Variance(v []float64) float64 {
	var squareSum float64
	var n int

	mean := Mean(v)
	if math.IsNaN(mean) {
		return mean
	}

	for _, vv := range v {
		if math.IsNaN(vv) {
			continue
		}
		n++
		squareSum += (mean - vv) * (mean - vv)
	}
	return squareSum / float64(n)
}

// Stddev computes the population standard deviation, excluding NaN
// points.
func Stddev(v []float64) float64 {
	return math.Sqrt(Variance(v))
}

// Summarize reduces values with the named function. Unknown names and
// empty input yield NaN. Percentile names of the form pNN or pNN.N use
// NearestRank with interpolation.
func Summarize(name string, values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	switch name {
	case "sum", "total":
		return Sum(values)
	case "avg", "average":
		return Mean(values)
	case "avg_zero":
		return MeanZero(values)
	case "max":
		return Max(values)
	case "min":
		return Min(values)
	case "last", "current":
		return Last(values)
	case "first":
		return First(values)
	case "range":
		vMax := Max(values)
		vMin := Min(values)
		if math.IsNaN(vMax) || math.IsNaN(vMin) {
			return math.NaN()
		}
		return vMax - vMin
	case "median":
		return NearestRank(values, 50, true)
	case "count":
		return Count(values)
	case "stddev":
		return Stddev(values)
	}

	// pNN / pNN.N percentile names. Anything else is NaN.
	if strings.HasPrefix(name, "p") {
		if percent, err := strconv.ParseFloat(name[1:], 64); err == nil {
			return NearestRank(values, percent, true)
		}
	}
	return math.NaN()
}
