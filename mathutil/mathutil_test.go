package mathutil

import (
	"math"
	"testing"
)

func TestLogBase(t *testing.T) {
	tests := []struct {
		name     string
		x, base  float64
		expected float64
	}{
		{"log2 of 8", 8, 2, 3},
		{"log10 of 1000", 1000, 10, 3},
		{"log of 1 is 0", 1, 7, 0},
		{"fractional base", 16, 4, 2},
		{"zero x", 0, 2, math.NaN()},
		{"negative x", -4, 2, math.NaN()},
		{"base 1", 10, 1, math.NaN()},
		{"zero base", 10, 0, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogBase(tt.x, tt.base)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("got %v, want NaN", got)
				}
				return
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expectedKm             float64
		tolKm                  float64
	}{
		{"same point", 52.2296756, 21.0122287, 52.2296756, 21.0122287, 0, 1e-9},
		{"warsaw to rome", 52.2296756, 21.0122287, 41.8919300, 12.5113300, 1315.5, 1.0},
		{"equator quarter turn", 0, 0, 0, 90, math.Pi / 2 * EarthRadiusKm, 1e-6},
		{"pole to pole", 90, 0, -90, 0, math.Pi * EarthRadiusKm, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expectedKm) > tt.tolKm {
				t.Errorf("got %v km, want %v km (±%v)", got, tt.expectedKm, tt.tolKm)
			}
		})
	}
}

func TestRadiansDegreesRoundTrip(t *testing.T) {
	for _, deg := range []float64{-180, -90, 0, 45, 90, 180, 360} {
		if got := Degrees(Radians(deg)); math.Abs(got-deg) > 1e-12 {
			t.Errorf("round trip of %v: got %v", deg, got)
		}
	}
}
