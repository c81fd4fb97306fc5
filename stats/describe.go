package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary is a dispersion summary of a sample: central moments plus a
// ladder of percentile thresholds. All fields are computed over valid
// values only.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
	Skew   float64 `json:"skew"`
	Kurt   float64 `json:"kurtosis"`

	P05    float64 `json:"p05"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	P95    float64 `json:"p95"`
}

var describeLadder = []struct {
	p   float64
	set func(*Summary, float64)
}{
	{0.05, func(s *Summary, v float64) { s.P05 = v }},
	{0.25, func(s *Summary, v float64) { s.P25 = v }},
	{0.50, func(s *Summary, v float64) { s.Median = v }},
	{0.75, func(s *Summary, v float64) { s.P75 = v }},
	{0.95, func(s *Summary, v float64) { s.P95 = v }},
}

// Describe computes a dispersion summary of the sample. validRange has
// the same meaning as in Estimate; the same validity rules apply
// (at least MinSampleSize raw and valid values). Moments are unweighted
// sample statistics; percentiles use Estimate in high precision.
func Describe(sample []float64, validRange *Range) (Summary, error) {
	opt := &Options{ValidRange: validRange, HighPrecision: true}

	// The first Estimate call performs all validation.
	var s Summary
	for i, rung := range describeLadder {
		res, err := Estimate(sample, rung.p, opt)
		if err != nil {
			return Summary{}, err
		}
		rung.set(&s, res.Threshold)
		if i == 0 {
			s.Count = res.Count
			s.Min = res.Min
			s.Max = res.Max
		}
	}

	valid := make([]float64, 0, len(sample))
	for _, v := range sample {
		if validRange != nil {
			if validRange.Contains(v) {
				valid = append(valid, v)
			}
		} else if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	s.Mean = stat.Mean(valid, nil)
	s.Stddev = stat.StdDev(valid, nil)
	s.Skew = stat.Skew(valid, nil)
	s.Kurt = stat.ExKurtosis(valid, nil)
	return s, nil
}
