package generate

import (
	"testing"

	"warren/internal/grid"
)

// runMaze runs a fresh maze strategy and returns the grid plus its stair
// plan.
func runMaze(seed int64, w, h int, params map[string]any, up *grid.Point) (*grid.Grid, StairPlan) {
	ctx := NewContext(0, seed, w, h, params)
	ctx.UpStairs = up
	s := NewStrategy("maze")
	g := grid.New(w, h)
	s.Run(g, ctx)
	return g, s.Stairs()
}

// countGraph returns the number of walkable cells and the number of
// orthogonal walkable adjacencies. A connected layout is a tree exactly
// when edges == vertices-1.
func countGraph(g *grid.Grid) (vertices, edges int) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.IsWalkable(x, y) {
				continue
			}
			vertices++
			if g.IsWalkable(x+1, y) {
				edges++
			}
			if g.IsWalkable(x, y+1) {
				edges++
			}
		}
	}
	return vertices, edges
}

// TestMazeSeed42Scenario pins the documented scenario: a 21×15 maze with
// zero rooms and no upstairs supplied places the downstairs on the deepest
// dead end, and a re-run with the same seed reproduces the coordinate.
func TestMazeSeed42Scenario(t *testing.T) {
	params := map[string]any{"rooms": 0.0}
	g, plan := runMaze(42, 21, 15, params, nil)
	if !plan.Placed {
		t.Fatal("maze strategy must place its own stairs")
	}

	// The downstairs cell must be a dead end: exactly one walkable
	// orthogonal neighbor.
	exits := 0
	for _, d := range grid.CardinalDirs {
		if g.IsWalkable(plan.Down.X+d.X, plan.Down.Y+d.Y) {
			exits++
		}
	}
	if exits != 1 {
		t.Errorf("downstairs %v has %d exits, want a dead end with 1", plan.Down, exits)
	}

	_, again := runMaze(42, 21, 15, params, nil)
	if again.Down != plan.Down || again.Up != plan.Up {
		t.Errorf("seed 42 re-run moved the stairs: %v/%v vs %v/%v",
			plan.Up, plan.Down, again.Up, again.Down)
	}
}

// TestMazePerfection verifies the spanning-tree property: with zero rooms
// and zero interconnections there is exactly one simple path between any
// two corridor cells.
func TestMazePerfection(t *testing.T) {
	params := map[string]any{"rooms": 0.0, "interconnections": 0.0}
	for seed := int64(0); seed < 10; seed++ {
		g, plan := runMaze(seed, 21, 15, params, nil)

		v, e := countGraph(g)
		if e != v-1 {
			t.Errorf("seed=%d: %d vertices and %d edges, want a tree (e = v-1)", seed, v, e)
		}
		if reached := g.WalkableFrom(plan.Up.X, plan.Up.Y); len(reached) != v {
			t.Errorf("seed=%d: only %d of %d cells reachable from upstairs", seed, len(reached), v)
		}
	}
}

// TestMazeInterconnectionsBoundCycles verifies that K requested loops add
// at most K independent cycles.
func TestMazeInterconnectionsBoundCycles(t *testing.T) {
	const k = 5.0
	params := map[string]any{"rooms": 0.0, "interconnections": k}
	for seed := int64(0); seed < 10; seed++ {
		g, _ := runMaze(seed, 31, 21, params, nil)
		v, e := countGraph(g)
		if cycles := e - v + 1; cycles < 0 || cycles > k {
			t.Errorf("seed=%d: %d independent cycles, want 0..%d", seed, cycles, int(k))
		}
	}
}

// TestMazeBorderSolid verifies the border enforcement pass.
func TestMazeBorderSolid(t *testing.T) {
	params := map[string]any{"rooms": 2.0}
	for seed := int64(0); seed < 10; seed++ {
		g, _ := runMaze(seed, 23, 17, params, nil)
		for x := 0; x < g.Width; x++ {
			if !g.IsWall(x, 0) || !g.IsWall(x, g.Height-1) {
				t.Errorf("seed=%d: open border tile in row 0 or %d at x=%d", seed, g.Height-1, x)
			}
		}
		for y := 0; y < g.Height; y++ {
			if !g.IsWall(0, y) || !g.IsWall(g.Width-1, y) {
				t.Errorf("seed=%d: open border tile in column 0 or %d at y=%d", seed, g.Width-1, y)
			}
		}
	}
}

// TestMazeRoomsGetDoors verifies each carved room has a closed door on its
// wall ring and the maze stays fully connected through it.
func TestMazeRoomsGetDoors(t *testing.T) {
	params := map[string]any{"rooms": 2.0}
	for seed := int64(0); seed < 10; seed++ {
		g, plan := runMaze(seed, 31, 21, params, nil)

		doors := 0
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if g.Kind(x, y) == grid.TileDoorClosed {
					doors++
					if g.At(x, y).Props["orientation"] == "" {
						t.Errorf("seed=%d: door at (%d,%d) missing orientation", seed, x, y)
					}
				}
			}
		}
		// Zero doors is legal only when no room fit, which these
		// dimensions always allow; two were requested.
		if doors == 0 {
			t.Errorf("seed=%d: no doors placed for requested rooms", seed)
		}

		v, _ := countGraph(g)
		if reached := g.WalkableFrom(plan.Up.X, plan.Up.Y); len(reached) != v {
			t.Errorf("seed=%d: %d of %d cells reachable, rooms are cut off", seed, len(reached), v)
		}
	}
}

// TestMazeTwoRoomStairPolicy verifies that with two rooms the stairs land
// in two different rooms.
func TestMazeTwoRoomStairPolicy(t *testing.T) {
	params := map[string]any{"rooms": 2.0}
	for seed := int64(0); seed < 10; seed++ {
		ctx := NewContext(0, seed, 31, 21, params)
		s := NewStrategy("maze")
		g := grid.New(31, 21)
		s.Run(g, ctx)
		plan := s.Stairs()

		// Recover the room rectangles from the strategy's shared state.
		carve := s.Layers[0].(*RoomCarveLayer)
		rooms := carve.state.rooms
		if len(rooms) != 2 {
			continue // placement can fail on unlucky seeds; not under test
		}

		upRoom, downRoom := -1, -1
		for i, r := range rooms {
			if r.Contains(plan.Up.X, plan.Up.Y) {
				upRoom = i
			}
			if r.Contains(plan.Down.X, plan.Down.Y) {
				downRoom = i
			}
		}
		if upRoom == -1 || downRoom == -1 {
			t.Errorf("seed=%d: stairs not inside rooms (up room %d, down room %d)", seed, upRoom, downRoom)
		}
		if upRoom == downRoom {
			t.Errorf("seed=%d: both stairs in room %d", seed, upRoom)
		}
	}
}

// TestMazeStairsConnectedWithRooms runs the two-room maze on a small grid,
// where the walk start regularly lands inside a carved room. Stair
// placement must still succeed and leave the down stairs reachable.
func TestMazeStairsConnectedWithRooms(t *testing.T) {
	params := map[string]any{"rooms": 2.0}
	for seed := int64(0); seed < 10; seed++ {
		g, plan := runMaze(seed, 23, 17, params, nil)
		if !plan.Placed {
			t.Fatalf("seed=%d: no stair plan", seed)
		}
		if plan.Up == plan.Down {
			t.Errorf("seed=%d: both stairs on %v", seed, plan.Up)
		}
		if !g.WalkableFrom(plan.Up.X, plan.Up.Y)[plan.Down] {
			t.Errorf("seed=%d: down stairs %v unreachable from up %v", seed, plan.Down, plan.Up)
		}
	}
}

// TestMazeSuppliedUpstairsInsideRoom pins the descent case where the
// previous level's down stairs land inside a carved room: the walk must
// still grow corridors outward so the whole level stays connected.
func TestMazeSuppliedUpstairsInsideRoom(t *testing.T) {
	params := map[string]any{"rooms": 2.0}
	for seed := int64(0); seed < 10; seed++ {
		// First pass discovers this seed's room geometry; the room draws
		// repeat identically on the second pass.
		ctx := NewContext(0, seed, 41, 21, params)
		s := NewStrategy("maze")
		s.Run(grid.New(41, 21), ctx)
		rooms := s.Layers[0].(*RoomCarveLayer).state.rooms
		if len(rooms) == 0 {
			continue
		}
		cx, cy := rooms[0].Center()
		up := grid.Point{X: cx, Y: cy}

		g, plan := runMaze(seed, 41, 21, params, &up)
		if plan.Up != up {
			t.Fatalf("seed=%d: up stairs moved from %v to %v", seed, up, plan.Up)
		}
		reached := g.WalkableFrom(up.X, up.Y)
		if !reached[plan.Down] {
			t.Errorf("seed=%d: down stairs %v unreachable from in-room up %v", seed, plan.Down, up)
		}
		// The walk must have left the room: some reached cell lies outside it.
		outside := false
		for p := range reached {
			if !rooms[0].Contains(p.X, p.Y) {
				outside = true
				break
			}
		}
		if !outside {
			t.Errorf("seed=%d: no corridor carved out of the starting room", seed)
		}
	}
}

// TestMazeHonorsSuppliedUpstairs verifies the cross-level contract: the
// supplied coordinate comes back exactly and is walkable.
func TestMazeHonorsSuppliedUpstairs(t *testing.T) {
	up := grid.Point{X: 7, Y: 5}
	for seed := int64(0); seed < 10; seed++ {
		g, plan := runMaze(seed, 21, 15, map[string]any{"rooms": 0.0}, &up)
		if plan.Up != up {
			t.Fatalf("seed=%d: upstairs moved from %v to %v", seed, up, plan.Up)
		}
		if g.Kind(up.X, up.Y) != grid.TileStairsUp {
			t.Errorf("seed=%d: supplied upstairs tile is %v", seed, g.Kind(up.X, up.Y))
		}
	}
}
