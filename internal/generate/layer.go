// Package generate builds dungeon layouts by running ordered sequences of
// grid-mutating layers. A strategy is a named layer list; the registry hands
// out fresh strategy instances per level so no state leaks across
// generations.
package generate

import "warren/internal/grid"

// Layer is one composable generation step. Apply mutates the grid in place.
// A layer holds only constructor configuration; everything per-level comes
// from the context, so the same instance run twice with equal contexts
// produces identical grids.
type Layer interface {
	Apply(g *grid.Grid, ctx *Context)
}

// ParamType describes the value kind of a tunable strategy parameter.
type ParamType uint8

const (
	ParamFloat ParamType = iota
	ParamInt
	ParamString
)

// ParamSpec documents one tunable parameter of a strategy for external
// tooling: its name, type, bounds, and default.
type ParamSpec struct {
	Name     string
	Type     ParamType
	Min, Max float64
	Default  any
}

// StairPlan holds stair coordinates chosen by a strategy that places its own
// stairs (the maze family). Strategies without a plan leave Placed false and
// the level generator falls back to the generic policy.
type StairPlan struct {
	Placed   bool
	Up, Down grid.Point
}

// Strategy is an ordered layer sequence implementing one generation style.
type Strategy struct {
	Name   string
	Layers []Layer
	Specs  []ParamSpec

	// stairs is populated during Run by strategies with their own stair
	// placement; see StairPlan.
	stairs StairPlan
}

// Run executes every layer in sequence against the grid.
func (s *Strategy) Run(g *grid.Grid, ctx *Context) {
	for _, l := range s.Layers {
		l.Apply(g, ctx)
	}
}

// Stairs returns the strategy's own stair plan, if it made one.
func (s *Strategy) Stairs() StairPlan {
	return s.stairs
}

// Params returns the strategy's tunable parameter specs.
func (s *Strategy) Params() []ParamSpec {
	return s.Specs
}
