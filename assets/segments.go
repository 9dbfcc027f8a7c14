package assets

import "warren/internal/schedule"

// DefaultSchedule is the compiled-in progression used when no schedule file
// is supplied or the supplied one fails to parse. Depths 0-9 open in the
// forest, the mid game alternates built rooms and raw caves, and everything
// past 30 is maze territory.
func DefaultSchedule() *schedule.Schedule {
	return &schedule.Schedule{Segments: []schedule.Segment{
		{
			From: 0, To: 10, Template: "forest",
			Curves: map[string]schedule.Curve{
				"enemy_density":    schedule.Linear{Start: 0.2, End: 0.5},
				"wall_probability": schedule.Constant(0.42),
				"tree_ratio":       schedule.Linear{Start: 0.5, End: 0.2},
			},
		},
		{
			From: 10, To: 20, Template: "rooms",
			Curves: map[string]schedule.Curve{
				"enemy_density":   schedule.Linear{Start: 0.4, End: 0.8},
				"min_rooms":       schedule.Constant(5),
				"max_rooms":       schedule.Constant(8),
				"extra_corridors": schedule.Constant(1),
			},
		},
		{
			From: 20, To: 30, Template: "cave",
			Curves: map[string]schedule.Curve{
				"enemy_density":    schedule.Noise{Base: 0.7, Amplitude: 0.2, Frequency: 3},
				"wall_probability": schedule.Linear{Start: 0.42, End: 0.48},
				"ca_iterations":    schedule.Constant(4),
			},
		},
		{
			From: 30, To: 50, Template: "maze",
			Curves: map[string]schedule.Curve{
				"enemy_density":    schedule.Linear{Start: 0.6, End: 1.2},
				"max_rooms":        schedule.Constant(3),
				"interconnections": schedule.Linear{Start: 0, End: 6},
			},
		},
	}}
}
