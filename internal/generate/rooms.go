package generate

import "warren/internal/grid"

// Room is a carved rectangle plus the 3×3 placement cell it was assigned.
type Room struct {
	grid.Rect
	Cell int // 0..8, row-major over the placement grid
}

// Corridor joins two rooms with the ordered coordinate path carved between
// them.
type Corridor struct {
	A, B int // indexes into the shared room list
	Path []grid.Point
}

// roomState is shared by the room-and-corridor layers.
type roomState struct {
	rooms     []Room
	corridors []Corridor
}

// connected reports whether rooms a and b already share a direct corridor.
func (s *roomState) connected(a, b int) bool {
	for _, c := range s.corridors {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return true
		}
	}
	return false
}

// CellRoomLayer divides the grid into a 3×3 cell grid (remainder tiles fold
// into the last row and column), resets everything to wall, and carves one
// room at a random offset inside each of a random subset of cells.
type CellRoomLayer struct {
	state              *roomState
	MinRooms, MaxRooms int
	MinSize, MaxSize   int
}

// Apply places the rooms. Parameters "min_rooms", "max_rooms",
// "min_room_size", and "max_room_size" override the constructor values.
func (l *CellRoomLayer) Apply(g *grid.Grid, ctx *Context) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Set(x, y, grid.MakeWall())
		}
	}

	minRooms := ctx.Int("min_rooms", l.MinRooms)
	maxRooms := ctx.Int("max_rooms", l.MaxRooms)
	minSize := ctx.Int("min_room_size", l.MinSize)
	maxSize := ctx.Int("max_room_size", l.MaxSize)
	if maxRooms > 9 {
		maxRooms = 9
	}
	if minRooms > maxRooms {
		minRooms = maxRooms
	}
	count := ctx.RandRange(minRooms, maxRooms)

	cellW, cellH := g.Width/3, g.Height/3
	if cellW < minSize+2 || cellH < minSize+2 {
		return // grid too small for even one minimum room per cell
	}

	cells := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	ctx.Rand.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	for _, cell := range cells[:count] {
		col, row := cell%3, cell/3
		x0, y0 := col*cellW, row*cellH
		cw, ch := cellW, cellH
		if col == 2 {
			cw = g.Width - 2*cellW
		}
		if row == 2 {
			ch = g.Height - 2*cellH
		}

		rw := ctx.RandRange(minSize, min(maxSize, cw-2))
		rh := ctx.RandRange(minSize, min(maxSize, ch-2))
		rx := x0 + ctx.RandRange(1, cw-rw-1)
		ry := y0 + ctx.RandRange(1, ch-rh-1)

		room := Room{Rect: grid.RectAt(rx, ry, rw, rh), Cell: cell}
		for y := room.Y1; y <= room.Y2; y++ {
			for x := room.X1; x <= room.X2; x++ {
				g.Set(x, y, grid.MakeFloor())
			}
		}
		l.state.rooms = append(l.state.rooms, room)
	}
}

// CorridorLayer connects every room with a greedy minimum-spanning-tree
// pass — repeatedly joining the nearest unconnected room to the connected
// set by Manhattan center distance — then carves a configurable number of
// extra corridors between random unconnected pairs for loops.
type CorridorLayer struct {
	state      *roomState
	ExtraLoops int
}

// Apply carves the spanning corridors and the extra loops. The
// "extra_corridors" parameter overrides the constructor loop count.
func (l *CorridorLayer) Apply(g *grid.Grid, ctx *Context) {
	rooms := l.state.rooms
	if len(rooms) < 2 {
		return
	}

	inTree := make([]bool, len(rooms))
	inTree[0] = true
	for joined := 1; joined < len(rooms); joined++ {
		bestA, bestB, bestDist := -1, -1, int(^uint(0)>>1)
		for a := range rooms {
			if !inTree[a] {
				continue
			}
			for b := range rooms {
				if inTree[b] {
					continue
				}
				if d := centerDistance(rooms[a], rooms[b]); d < bestDist {
					bestA, bestB, bestDist = a, b, d
				}
			}
		}
		l.carveCorridor(g, ctx, bestA, bestB)
		inTree[bestB] = true
	}

	extra := ctx.Int("extra_corridors", l.ExtraLoops)
	for i := 0; i < extra; i++ {
		for attempt := 0; attempt < 10; attempt++ {
			a := ctx.Rand.Intn(len(rooms))
			b := ctx.Rand.Intn(len(rooms))
			if a == b || l.state.connected(a, b) {
				continue
			}
			l.carveCorridor(g, ctx, a, b)
			break
		}
	}
}

func centerDistance(a, b Room) int {
	ax, ay := a.Center()
	bx, by := b.Center()
	return abs(ax-bx) + abs(ay-by)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// carveCorridor picks an edge point on each room's boundary facing the
// other room and carves an L-shaped path between them, recording the
// ordered coordinates.
func (l *CorridorLayer) carveCorridor(g *grid.Grid, ctx *Context, a, b int) {
	ra, rb := l.state.rooms[a], l.state.rooms[b]
	pa := edgePoint(ra, rb)
	pb := edgePoint(rb, ra)

	var path []grid.Point
	if ctx.Rand.Intn(2) == 0 {
		path = lPath(pa, pb, true)
	} else {
		path = lPath(pa, pb, false)
	}
	for _, p := range path {
		carveNonStair(g, p.X, p.Y)
	}
	l.state.corridors = append(l.state.corridors, Corridor{A: a, B: b, Path: path})
}

// edgePoint returns the boundary point of room facing toward other: the
// midpoint of whichever side faces the larger axis gap.
func edgePoint(room, other Room) grid.Point {
	cx, cy := room.Center()
	ox, oy := other.Center()
	if abs(ox-cx) >= abs(oy-cy) {
		if ox > cx {
			return grid.Point{X: room.X2, Y: cy}
		}
		return grid.Point{X: room.X1, Y: cy}
	}
	if oy > cy {
		return grid.Point{X: cx, Y: room.Y2}
	}
	return grid.Point{X: cx, Y: room.Y1}
}

// lPath builds the ordered coordinates of an L-shaped path from a to b,
// horizontal leg first when hFirst is set.
func lPath(a, b grid.Point, hFirst bool) []grid.Point {
	path := []grid.Point{a}
	cur := a
	legs := [2]bool{hFirst, !hFirst}
	for _, horizontal := range legs {
		if horizontal {
			for cur.X != b.X {
				cur.X += sign(b.X - cur.X)
				path = append(path, cur)
			}
		} else {
			for cur.Y != b.Y {
				cur.Y += sign(b.Y - cur.Y)
				path = append(path, cur)
			}
		}
	}
	return path
}

// DoorLayer marks a closed door at each end of every corridor: the first
// path coordinate outside the endpoint room but 4-adjacent to it.
type DoorLayer struct {
	state *roomState
}

// Apply walks each corridor path from both ends and places the doors. Door
// orientation is recorded in the tile properties.
func (l *DoorLayer) Apply(g *grid.Grid, ctx *Context) {
	for _, c := range l.state.corridors {
		l.placeDoor(g, l.state.rooms[c.A], c.Path, false)
		l.placeDoor(g, l.state.rooms[c.B], c.Path, true)
	}
}

func (l *DoorLayer) placeDoor(g *grid.Grid, room Room, path []grid.Point, reverse bool) {
	for i := range path {
		p := path[i]
		if reverse {
			p = path[len(path)-1-i]
		}
		if room.Contains(p.X, p.Y) {
			continue
		}
		orient, ok := doorOrientation(room, p)
		if !ok {
			continue
		}
		// Another corridor may already have claimed this cell as a door.
		if g.Kind(p.X, p.Y) == grid.TileDoorClosed {
			return
		}
		door := grid.MakeDoorClosed()
		door.Props = map[string]string{"orientation": orient}
		g.Set(p.X, p.Y, door)
		return
	}
}

// doorOrientation reports how a door at p meets the room: "v" when the room
// lies east or west of the door, "h" when north or south. ok is false when
// p does not touch the room 4-adjacently.
func doorOrientation(room Room, p grid.Point) (string, bool) {
	if room.Contains(p.X-1, p.Y) || room.Contains(p.X+1, p.Y) {
		return "v", true
	}
	if room.Contains(p.X, p.Y-1) || room.Contains(p.X, p.Y+1) {
		return "h", true
	}
	return "", false
}
