// Package stats implements percentile estimation and NaN-aware
// aggregation over numeric samples. All functions treat NaN points as
// missing values and never mutate their input slices.
package stats

import (
	"math"
	"sort"

	"github.com/ansel1/merry"
)

var (
	// ErrInvalidArgument is returned for a malformed percentile, range
	// or sample. Detected before any computation starts.
	ErrInvalidArgument = merry.New("invalid argument")

	// ErrInsufficientData is returned when fewer than MinSampleSize
	// valid values remain after missing-value filtering.
	ErrInsufficientData = merry.New("insufficient data")
)

// MinSampleSize is the smallest number of valid values a percentile can
// be estimated from.
const MinSampleSize = 3

// Range is an inclusive interval of valid sample values. Values outside
// it are treated as missing and excluded from all statistics.
type Range struct {
	Lower float64
	Upper float64
}

// Contains reports whether v lies within the range. NaN is never
// contained.
func (r Range) Contains(v float64) bool {
	return v >= r.Lower && v <= r.Upper
}

// Options control how Estimate treats its sample.
type Options struct {
	// ValidRange enables missing-value filtering. nil keeps every
	// non-NaN element.
	ValidRange *Range

	// PreSorted promises the sample is already ascending. Honored only
	// when no filtering took place; any dropped value forces a sort.
	PreSorted bool

	// HighPrecision selects float64 rank arithmetic. The default is
	// single precision, matching the historical estimators this package
	// descends from.
	HighPrecision bool
}

// Result holds the outputs of a percentile estimate. Min, Max and Count
// are computed over valid values only.
type Result struct {
	Threshold float64
	Min       float64
	Max       float64
	Count     int
}

// errResult is what failed calls return. The values are sentinels,
// callers must not assign meaning to them.
func errResult() Result {
	return Result{
		Threshold: math.NaN(),
		Min:       math.NaN(),
		Max:       math.NaN(),
	}
}

// Estimate computes the value at the given percentile fraction of the
// sample, using the rank = p*(n+1) convention with linear interpolation
// between neighboring order statistics. percentile must lie in [0, 1]
// (0 = minimum, 0.5 = median, 1 = maximum). The sample needs at least
// MinSampleSize raw elements, and at least that many must survive
// filtering. A nil opt is equivalent to the zero Options.
func Estimate(sample []float64, percentile float64, opt *Options) (Result, error) {
	if opt == nil {
		opt = &Options{}
	}
	if math.IsNaN(percentile) || percentile < 0 || percentile > 1 {
		return errResult(), ErrInvalidArgument.WithMessagef("percentile %g outside [0, 1]", percentile)
	}
	if len(sample) < MinSampleSize {
		return errResult(), ErrInvalidArgument.WithMessagef("sample of %d values, need at least %d", len(sample), MinSampleSize)
	}
	if opt.ValidRange != nil && opt.ValidRange.Lower > opt.ValidRange.Upper {
		return errResult(), ErrInvalidArgument.WithMessagef("range lower bound %g above upper bound %g", opt.ValidRange.Lower, opt.ValidRange.Upper)
	}

	if opt.HighPrecision {
		return estimateIn[float64](sample, percentile, opt)
	}
	return estimateIn[float32](sample, percentile, opt)
}

type floating interface {
	~float32 | ~float64
}

// estimateIn performs the whole computation in F so that single and
// double precision runs truncate identically at every step: sample
// values, percentile and range bounds are converted before any
// comparison or arithmetic.
func estimateIn[F floating](sample []float64, percentile float64, opt *Options) (Result, error) {
	valid := make([]F, 0, len(sample))
	if r := opt.ValidRange; r != nil {
		lower, upper := F(r.Lower), F(r.Upper)
		for _, v := range sample {
			fv := F(v)
			if fv >= lower && fv <= upper { // NaN never passes
				valid = append(valid, fv)
			}
		}
	} else {
		for _, v := range sample {
			if !math.IsNaN(v) {
				valid = append(valid, F(v))
			}
		}
	}

	count := len(valid)
	if count < MinSampleSize {
		return errResult(), ErrInsufficientData.WithMessagef("%d valid values of %d, need at least %d", count, len(sample), MinSampleSize)
	}

	// Filtering may have reordered validity, so the pre-sorted hint
	// only holds when every raw element survived.
	if !(opt.PreSorted && opt.ValidRange == nil && count == len(sample)) {
		sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
	}

	rank := F(percentile) * F(count+1)
	var threshold F
	switch {
	case rank < 1:
		threshold = valid[0]
	case rank > F(count):
		threshold = valid[count-1]
	default:
		k := int(rank)
		frac := rank - F(k)
		if frac == 0 {
			threshold = valid[k-1]
		} else {
			threshold = valid[k-1] + frac*(valid[k]-valid[k-1])
		}
	}

	return Result{
		Threshold: float64(threshold),
		Min:       float64(valid[0]),
		Max:       float64(valid[count-1]),
		Count:     count,
	}, nil
}
