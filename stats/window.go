package stats

import (
	"math"

	"github.com/JaderDias/movingmedian"
)

// Window is a fixed-size moving-median window over a stream of values.
// NaN pushes are dropped so a burst of missing points does not poison
// the median. Not safe for concurrent use.
type Window struct {
	data   movingmedian.MovingMedian
	pushed int
}

// NewWindow returns a moving-median window over the last size values.
func NewWindow(size int) (*Window, error) {
	if size <= 0 {
		return nil, ErrInvalidArgument.WithMessagef("window size %d, need at least 1", size)
	}
	return &Window{data: movingmedian.NewMovingMedian(size)}, nil
}

// Push adds a value to the window. NaN values are ignored.
func (w *Window) Push(v float64) {
	if math.IsNaN(v) {
		return
	}
	w.data.Push(v)
	w.pushed++
}

// Median returns the median of the values currently in the window, or
// NaN before the first non-NaN push.
func (w *Window) Median() float64 {
	if w.pushed == 0 {
		return math.NaN()
	}
	return w.data.Median()
}

// MovingMedian applies a moving-median window of the given size across
// values, producing one output point per input point. Output point i is
// the median of the last size non-NaN values seen up to and including
// input i.
func MovingMedian(values []float64, size int) ([]float64, error) {
	w, err := NewWindow(size)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i, v := range values {
		w.Push(v)
		out[i] = w.Median()
	}
	return out, nil
}
