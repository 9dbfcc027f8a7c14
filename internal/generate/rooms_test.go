package generate

import (
	"testing"

	"warren/internal/grid"
)

// runRooms runs a fresh rooms strategy and exposes its shared state for
// inspection.
func runRooms(seed int64, w, h int, params map[string]any) (*grid.Grid, *roomState) {
	ctx := NewContext(0, seed, w, h, params)
	s := NewStrategy("rooms")
	g := grid.New(w, h)
	s.Run(g, ctx)
	return g, s.Layers[0].(*CellRoomLayer).state
}

func TestRoomsCountWithinBounds(t *testing.T) {
	params := map[string]any{"min_rooms": 5.0, "max_rooms": 7.0}
	for seed := int64(0); seed < 20; seed++ {
		_, st := runRooms(seed, 45, 23, params)
		if n := len(st.rooms); n < 5 || n > 7 {
			t.Errorf("seed=%d: %d rooms, want 5..7", seed, n)
		}
	}
}

func TestRoomsStayInsideCells(t *testing.T) {
	const w, h = 45, 23
	cellW, cellH := w/3, h/3
	for seed := int64(0); seed < 20; seed++ {
		_, st := runRooms(seed, w, h, nil)
		for _, room := range st.rooms {
			col, row := room.Cell%3, room.Cell/3
			x0, y0 := col*cellW, row*cellH
			x1, y1 := x0+cellW-1, y0+cellH-1
			if col == 2 {
				x1 = w - 1
			}
			if row == 2 {
				y1 = h - 1
			}
			cell := grid.Rect{X1: x0, Y1: y0, X2: x1, Y2: y1}
			if room.X1 <= cell.X1 || room.Y1 <= cell.Y1 || room.X2 >= cell.X2 || room.Y2 >= cell.Y2 {
				t.Errorf("seed=%d: room %v leaves the interior of cell %d (%v)", seed, room.Rect, room.Cell, cell)
			}
		}
	}
}

func TestRoomsFullyConnected(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g, st := runRooms(seed, 45, 23, nil)
		if len(st.rooms) == 0 {
			t.Fatalf("seed=%d: no rooms carved", seed)
		}

		walkable := 0
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if g.IsWalkable(x, y) {
					walkable++
				}
			}
		}
		cx, cy := st.rooms[0].Center()
		if reached := g.WalkableFrom(cx, cy); len(reached) != walkable {
			t.Errorf("seed=%d: %d of %d walkable tiles reachable", seed, len(reached), walkable)
		}
	}
}

func TestRoomsEachRoomHasDoor(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g, st := runRooms(seed, 45, 23, nil)
		if len(st.rooms) < 2 {
			t.Fatalf("seed=%d: need at least two rooms", seed)
		}

		var doors []grid.Point
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if g.Kind(x, y) == grid.TileDoorClosed {
					doors = append(doors, grid.Point{X: x, Y: y})
					if g.At(x, y).Props["orientation"] == "" {
						t.Errorf("seed=%d: door at (%d,%d) missing orientation", seed, x, y)
					}
				}
			}
		}

		for i, room := range st.rooms {
			found := false
			for _, d := range doors {
				if room.Touches(d.X, d.Y) && !room.Contains(d.X, d.Y) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("seed=%d: room %d (%v) has no adjacent door", seed, i, room.Rect)
			}
		}
	}
}

func TestRoomsNoDuplicateCorridors(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		_, st := runRooms(seed, 45, 23, map[string]any{"extra_corridors": 3.0})
		type pair struct{ a, b int }
		seen := map[pair]bool{}
		for _, c := range st.corridors {
			a, b := c.A, c.B
			if a > b {
				a, b = b, a
			}
			if seen[pair{a, b}] {
				t.Errorf("seed=%d: rooms %d and %d joined by two corridors", seed, a, b)
			}
			seen[pair{a, b}] = true
		}
		// A spanning pass over n rooms carves n-1 corridors; loops add more.
		if len(st.corridors) < len(st.rooms)-1 {
			t.Errorf("seed=%d: %d corridors for %d rooms", seed, len(st.corridors), len(st.rooms))
		}
	}
}

func TestRoomsBorderSolid(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g, _ := runRooms(seed, 45, 23, nil)
		for x := 0; x < g.Width; x++ {
			if !g.IsWall(x, 0) || !g.IsWall(x, g.Height-1) {
				t.Fatalf("seed=%d: open tile on horizontal border at x=%d", seed, x)
			}
		}
		for y := 0; y < g.Height; y++ {
			if !g.IsWall(0, y) || !g.IsWall(g.Width-1, y) {
				t.Fatalf("seed=%d: open tile on vertical border at y=%d", seed, y)
			}
		}
	}
}

func TestRoomsDeterministic(t *testing.T) {
	a := runStrategy("catacombs", 99, 45, 23, nil)
	b := runStrategy("catacombs", 99, 45, 23, nil)
	if !gridsEqual(a, b) {
		t.Error("same seed produced different room layouts")
	}
}

func TestRegistryFallback(t *testing.T) {
	if s := NewStrategy("no-such-template"); s.Name != DefaultTemplate {
		t.Errorf("unknown template resolved to %q, want %q", s.Name, DefaultTemplate)
	}
	if s := NewStrategy("MAZE"); s.Name != "maze" {
		t.Errorf("template lookup is not case-insensitive, got %q", s.Name)
	}
	names := Templates()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Templates() not sorted: %v", names)
		}
	}
}
