package grid

import "testing"

func TestNewFillsWalls(t *testing.T) {
	g := New(10, 6)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.IsWall(x, y) {
				t.Errorf("tile (%d,%d) should start as wall", x, y)
			}
		}
	}
}

// TestKindWallConsistency verifies the tile invariant: kind and IsWall agree
// for every constructor the generator can emit.
func TestKindWallConsistency(t *testing.T) {
	walls := []TileKind{TileWall, TileTree, TileTreeDead}
	open := []TileKind{TileFloor, TileDoorClosed, TileDoorOpen, TileStairsUp, TileStairsDown}

	for _, k := range walls {
		if tile := Make(k); !tile.IsWall || tile.Kind != k {
			t.Errorf("Make(%v) should produce a wall of that kind, got %+v", k, tile)
		}
	}
	for _, k := range open {
		if tile := Make(k); tile.IsWall || tile.Kind != k {
			t.Errorf("Make(%v) should produce a non-wall of that kind, got %+v", k, tile)
		}
	}
}

func TestRuntimeFlagsStartFalse(t *testing.T) {
	tile := MakeFloor()
	if tile.Visible || tile.Explored || tile.Lit || tile.Penumbra || tile.Interesting {
		t.Errorf("fresh tile must have all runtime flags false: %+v", tile)
	}
}

func TestOutOfBoundsIsWall(t *testing.T) {
	g := New(5, 5)
	if !g.IsWall(-1, 0) || !g.IsWall(0, -1) || !g.IsWall(5, 0) || !g.IsWall(0, 5) {
		t.Error("out-of-bounds must read as wall")
	}
	if g.IsWalkable(-1, 2) {
		t.Error("out-of-bounds must not be walkable")
	}
}

func TestWalkableFrom(t *testing.T) {
	g := New(7, 5)
	// Two floor pockets: (1,1)-(2,1) connected, (5,3) isolated.
	g.SetKind(1, 1, TileFloor)
	g.SetKind(2, 1, TileFloor)
	g.SetKind(5, 3, TileFloor)

	reached := g.WalkableFrom(1, 1)
	if len(reached) != 2 {
		t.Fatalf("expected 2 reachable tiles, got %d", len(reached))
	}
	if reached[Point{5, 3}] {
		t.Error("isolated pocket must not be reachable")
	}
}

func TestRectCenterAndIntersects(t *testing.T) {
	r := RectAt(2, 3, 5, 5)
	cx, cy := r.Center()
	if cx != 4 || cy != 5 {
		t.Errorf("center of %+v should be (4,5), got (%d,%d)", r, cx, cy)
	}
	if !r.Intersects(RectAt(6, 7, 3, 3)) {
		t.Error("touching rectangles should intersect (inclusive edges)")
	}
	if r.Intersects(RectAt(8, 3, 2, 2)) {
		t.Error("separated rectangles should not intersect")
	}
	if !r.Expand(2).Intersects(RectAt(8, 3, 2, 2)) {
		t.Error("expansion by 2 should reach the separated rectangle")
	}
}

func TestRectTouches(t *testing.T) {
	r := RectAt(3, 3, 3, 3)
	if !r.Touches(2, 2) {
		t.Error("(2,2) is diagonal to the corner and should touch")
	}
	if r.Touches(1, 3) {
		t.Error("(1,3) is two tiles away and should not touch")
	}
}
