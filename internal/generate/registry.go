package generate

import (
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"warren/internal/grid"
)

// DefaultTemplate is resolved when a requested template name is unknown.
const DefaultTemplate = "rooms"

// builders maps lower-cased template names to strategy constructors. Each
// call returns a fresh instance: strategies carry per-invocation state
// (room lists, stair plans) that must not leak across levels.
var builders = map[string]func() *Strategy{}

// Register adds a strategy constructor under name (case-insensitive).
func Register(name string, build func() *Strategy) {
	if name == "" || build == nil {
		return
	}
	builders[strings.ToLower(name)] = build
}

// NewStrategy returns a fresh strategy for name, falling back to the
// default template when the name is unknown.
func NewStrategy(name string) *Strategy {
	if build, ok := builders[strings.ToLower(name)]; ok {
		return build()
	}
	return builders[DefaultTemplate]()
}

// Templates lists the registered template names in sorted order.
func Templates() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newCaveStrategy(name string, treeRatio float64) *Strategy {
	layers := []Layer{
		&NoiseLayer{WallProb: 0.45},
		&AutomataLayer{Iterations: 4, BirthLimit: 4, DeathLimit: 3},
		&ConnectivityLayer{Bias: 0.7},
	}
	if treeRatio > 0 {
		layers = append(layers, &TreeLayer{Ratio: treeRatio})
	}
	// Top and bottom rows only: the west/east edges hold the cave openings.
	layers = append(layers, &BorderLayer{Top: true, Bottom: true})

	return &Strategy{
		Name:   name,
		Layers: layers,
		Specs: []ParamSpec{
			{Name: "wall_probability", Type: ParamFloat, Min: 0, Max: 1, Default: 0.45},
			{Name: "ca_iterations", Type: ParamInt, Min: 0, Max: 10, Default: 4},
			{Name: "birth_limit", Type: ParamInt, Min: 0, Max: 8, Default: 4},
			{Name: "death_limit", Type: ParamInt, Min: 0, Max: 8, Default: 3},
			{Name: "tree_ratio", Type: ParamFloat, Min: 0, Max: 1, Default: treeRatio},
			{Name: "enemy_density", Type: ParamFloat, Min: 0, Max: 2, Default: 0.4},
		},
	}
}

func newMazeStrategy(name string, maxRooms, interconnections int) *Strategy {
	s := &Strategy{Name: name}
	st := &mazeState{
		roomCells: mapset.New[grid.Point](),
		plan:      &s.stairs,
	}
	s.Layers = []Layer{
		&RoomCarveLayer{state: st, MaxRooms: maxRooms},
		&BacktrackLayer{state: st},
		&MazeStairsLayer{state: st},
		&InterconnectLayer{state: st, Count: interconnections},
		&MazeBorderLayer{state: st},
	}
	s.Specs = []ParamSpec{
		{Name: "rooms", Type: ParamInt, Min: 0, Max: 9, Default: -1},
		{Name: "max_rooms", Type: ParamInt, Min: 0, Max: 9, Default: maxRooms},
		{Name: "interconnections", Type: ParamInt, Min: 0, Max: 20, Default: interconnections},
		{Name: "enemy_density", Type: ParamFloat, Min: 0, Max: 2, Default: 0.3},
	}
	return s
}

func newRoomStrategy(name string) *Strategy {
	st := &roomState{}
	return &Strategy{
		Name: name,
		Layers: []Layer{
			&CellRoomLayer{state: st, MinRooms: 4, MaxRooms: 8, MinSize: 4, MaxSize: 8},
			&CorridorLayer{state: st, ExtraLoops: 1},
			&DoorLayer{state: st},
			FullBorder(),
		},
		Specs: []ParamSpec{
			{Name: "min_rooms", Type: ParamInt, Min: 1, Max: 9, Default: 4},
			{Name: "max_rooms", Type: ParamInt, Min: 1, Max: 9, Default: 8},
			{Name: "min_room_size", Type: ParamInt, Min: 3, Max: 12, Default: 4},
			{Name: "max_room_size", Type: ParamInt, Min: 3, Max: 20, Default: 8},
			{Name: "extra_corridors", Type: ParamInt, Min: 0, Max: 10, Default: 1},
			{Name: "enemy_density", Type: ParamFloat, Min: 0, Max: 2, Default: 0.5},
		},
	}
}

func init() {
	Register("cave", func() *Strategy { return newCaveStrategy("cave", 0) })
	Register("forest", func() *Strategy { return newCaveStrategy("forest", 0.35) })
	Register("maze", func() *Strategy { return newMazeStrategy("maze", 3, 0) })
	Register("warren", func() *Strategy { return newMazeStrategy("warren", 2, 4) })
	Register("rooms", func() *Strategy { return newRoomStrategy("rooms") })
	Register("catacombs", func() *Strategy { return newRoomStrategy("catacombs") })
}
