// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate_Endpoints(t *testing.T) {
	t.Parallel()

	points := [][4]float64{
		{0, 1, 2, 3},
		{0.5, 0.9, 0.7, 0.3},
		{-1, -0.5, 0.5, 1},
		{1, -1, 1, -1},
	}

	for _, p := range points {
		if got := CubicInterpolate(p[0], p[1], p[2], p[3], 0); got != p[1] {
			t.Errorf("CubicInterpolate(%v, t=0) = %v, want %v", p, got, p[1])
		}
		if got := CubicInterpolate(p[0], p[1], p[2], p[3], 1); math.Abs(got-p[2]) > 1e-12 {
			t.Errorf("CubicInterpolate(%v, t=1) = %v, want %v", p, got, p[2])
		}
	}
}

func TestCubicInterpolate_Midpoint(t *testing.T) {
	t.Parallel()

	tests := [][4]float64{
		{0, 0, 0, 0},
		{0, 1, 2, 3},
		{0.5, 0.9, 0.7, 0.3},
		{-1, -0.5, 0.5, 1},
	}

	for _, p := range tests {
		// Catmull-Rom at t = 0.5 is the 4 point (-1, 9, 9, -1) / 16 filter
		want := (-p[0] + 9*p[1] + 9*p[2] - p[3]) / 16
		if got := CubicInterpolate(p[0], p[1], p[2], p[3], 0.5); math.Abs(got-want) > 1e-12 {
			t.Errorf("CubicInterpolate(%v, t=0.5) = %v, want %v", p, got, want)
		}
	}
}

func TestCubicInterpolate_Linear(t *testing.T) {
	t.Parallel()

	for step := range 11 {
		x := float64(step) / 10
		want := 2 + x
		if got := CubicInterpolate(1, 2, 3, 4, x); math.Abs(got-want) > 1e-12 {
			t.Errorf("t=%v: got %v, want %v", x, got, want)
		}
	}
}

func TestCubicInterpolate_Symmetric(t *testing.T) {
	t.Parallel()

	p0, p1, p2, p3 := 0.1, 0.5, 0.3, -0.2
	for step := range 11 {
		x := float64(step) / 10
		forward := CubicInterpolate(p0, p1, p2, p3, x)
		backward := CubicInterpolate(p3, p2, p1, p0, 1-x)
		if math.Abs(forward-backward) > 1e-12 {
			t.Errorf("t=%v: forward %v, backward %v", x, forward, backward)
		}
	}
}

func TestCubicInterpolate_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	})
	if allocs > 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	out := make([]float64, 8000)

	b.ReportAllocs()
	for b.Loop() {
		for j := range out {
			out[j] = CubicInterpolate(0.1, 0.5, 0.3, -0.2, float64(j%100)/100)
		}
	}
}
