// Package schedule maps level indexes to generation templates and evaluated
// parameters. A schedule is an ordered list of segments, each covering a
// level range with a template name and per-parameter curves evaluated at the
// segment-local progress fraction.
package schedule

import "math"

// Curve maps normalized progress in [0, 1] to a parameter value.
type Curve interface {
	Eval(t float64) float64
}

// Constant is a curve that ignores progress.
type Constant float64

// Eval returns the constant value.
func (c Constant) Eval(t float64) float64 { return float64(c) }

// Linear interpolates from Start at progress 0 to End at progress 1.
type Linear struct {
	Start, End float64
}

// Eval returns the interpolated value.
func (c Linear) Eval(t float64) float64 {
	return c.Start + t*(c.End-c.Start)
}

// Noise oscillates around Base with the given Amplitude, completing
// Frequency full cycles across the segment.
type Noise struct {
	Base, Amplitude, Frequency float64
}

// Eval returns the modulated value at progress t.
func (c Noise) Eval(t float64) float64 {
	return c.Base + c.Amplitude*math.Sin(2*math.Pi*c.Frequency*t)
}
