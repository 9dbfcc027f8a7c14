package generate

import (
	"github.com/zyedidia/generic/mapset"

	"warren/internal/grid"
)

// The maze family works on an odd-coordinate lattice: even coordinates are
// always walls, odd coordinates are corridor cells. Corners and junctions
// land on odd cells and the outer ring stays solid.
//
// The layers share a mazeState so room geometry, the backtracker's
// last-visited cell, and the stair plan flow through the sequence without
// re-deriving anything from the grid.
type mazeState struct {
	rooms     []grid.Rect
	roomCells mapset.Set[grid.Point]
	start     grid.Point
	last      grid.Point
	plan      *StairPlan
}

// oddBelow returns the largest odd value <= n, at least 1.
func oddBelow(n int) int {
	if n%2 == 0 {
		n--
	}
	if n < 1 {
		return 1
	}
	return n
}

// clampOdd snaps v onto the odd lattice within [1, limit-2].
func clampOdd(v, limit int) int {
	hi := oddBelow(limit - 2)
	if v > hi {
		v = hi
	}
	if v < 1 {
		v = 1
	}
	if v%2 == 0 {
		v--
	}
	return v
}

// RoomCarveLayer places up to MaxRooms odd-aligned, odd-sized square rooms
// before maze carving begins, punching exactly one closed door through each
// room's wall ring.
type RoomCarveLayer struct {
	state    *mazeState
	MaxRooms int
}

// Apply rejection-samples room placements with a two-tile spacing so
// corridors can pass between rooms. The "rooms" parameter fixes the target
// count; otherwise it is drawn from [0, MaxRooms].
func (l *RoomCarveLayer) Apply(g *grid.Grid, ctx *Context) {
	maxSize := oddBelow(min(7, min(g.Width, g.Height)-4))
	if maxSize < 3 {
		return // grid too small for any room
	}

	target := ctx.Int("rooms", -1)
	if target < 0 {
		target = ctx.RandRange(0, ctx.Int("max_rooms", l.MaxRooms))
	}

	for placed := 0; placed < target; placed++ {
		room, ok := l.sampleRoom(g, ctx, maxSize)
		if !ok {
			break
		}
		for y := room.Y1; y <= room.Y2; y++ {
			for x := room.X1; x <= room.X2; x++ {
				g.Set(x, y, grid.MakeFloor())
				l.state.roomCells.Put(grid.Point{X: x, Y: y})
			}
		}
		l.punchDoor(g, ctx, room)
		l.state.rooms = append(l.state.rooms, room)
	}
}

// sampleRoom tries up to 30 placements for one room, rejecting candidates
// that crowd an existing room or leave no side where a door could reach the
// corridor lattice.
func (l *RoomCarveLayer) sampleRoom(g *grid.Grid, ctx *Context, maxSize int) (grid.Rect, bool) {
	const attempts = 30
	for i := 0; i < attempts; i++ {
		size := 3 + 2*ctx.Rand.Intn((maxSize-3)/2+1)
		x := clampOdd(1+ctx.Rand.Intn(g.Width-size-1), g.Width)
		y := clampOdd(1+ctx.Rand.Intn(g.Height-size-1), g.Height)
		room := grid.RectAt(x, y, size, size)
		if room.X2 > g.Width-2 || room.Y2 > g.Height-2 {
			continue
		}
		if len(doorSides(g, room)) == 0 {
			continue
		}
		crowded := false
		for _, other := range l.state.rooms {
			if room.Expand(2).Intersects(other) {
				crowded = true
				break
			}
		}
		if !crowded {
			return room, true
		}
	}
	return grid.Rect{}, false
}

type doorSide uint8

const (
	sideNorth doorSide = iota
	sideSouth
	sideWest
	sideEast
)

// doorSides lists the sides of room where a punched door would both stay off
// the outer border and open onto a corridor lattice cell.
func doorSides(g *grid.Grid, room grid.Rect) []doorSide {
	var sides []doorSide
	if room.Y1 >= 3 {
		sides = append(sides, sideNorth)
	}
	if room.Y2 <= g.Height-4 {
		sides = append(sides, sideSouth)
	}
	if room.X1 >= 3 {
		sides = append(sides, sideWest)
	}
	if room.X2 <= g.Width-4 {
		sides = append(sides, sideEast)
	}
	return sides
}

// punchDoor opens one closed door through the room's wall ring on a random
// valid side, at a random odd position so the outside cell is a lattice
// node the backtracker will reach.
func (l *RoomCarveLayer) punchDoor(g *grid.Grid, ctx *Context, room grid.Rect) {
	sides := doorSides(g, room)
	if len(sides) == 0 {
		return
	}
	side := sides[ctx.Rand.Intn(len(sides))]

	oddIn := func(lo, hi int) int {
		n := (hi-lo)/2 + 1
		return lo + 2*ctx.Rand.Intn(n)
	}

	var x, y int
	var orient string
	switch side {
	case sideNorth:
		x, y = oddIn(room.X1, room.X2), room.Y1-1
		orient = "h"
	case sideSouth:
		x, y = oddIn(room.X1, room.X2), room.Y2+1
		orient = "h"
	case sideWest:
		x, y = room.X1-1, oddIn(room.Y1, room.Y2)
		orient = "v"
	case sideEast:
		x, y = room.X2+1, oddIn(room.Y1, room.Y2)
		orient = "v"
	}

	door := grid.MakeDoorClosed()
	door.Props = map[string]string{"orientation": orient}
	g.Set(x, y, door)
}

// BacktrackLayer carves a randomized depth-first maze over the odd lattice.
// Already-carved room cells count as visited and are never overwritten. The
// last cell pushed during the walk is recorded: it is the deepest dead end
// and the natural downward-stairs candidate when the walk starts at the
// upward stairs.
type BacktrackLayer struct {
	state *mazeState
}

// Apply runs the backtracker. When the context supplies an upward-stairs
// coordinate the carve starts from the lattice cell nearest to it and the
// coordinate itself is forced open.
func (l *BacktrackLayer) Apply(g *grid.Grid, ctx *Context) {
	start := grid.Point{X: 1, Y: 1}
	if up := ctx.UpStairs; up != nil {
		start = grid.Point{X: clampOdd(up.X, g.Width), Y: clampOdd(up.Y, g.Height)}
		// Force the supplied coordinate open and join it to the lattice.
		carveNonStair(g, up.X, up.Y)
		carveManhattan(g, *up, start)
	}
	l.state.start = start

	walk := start
	if l.state.roomCells.Has(start) {
		// The start landed inside a carved room, where every jump target is
		// already open and the walk would stall without carving a single
		// corridor. Hop to the nearest lattice cell that is still wall and
		// open a path to it through the room ring.
		if alt, ok := nearestWallLattice(g, start); ok {
			carveManhattan(g, start, alt)
			walk = alt
		}
	}
	l.state.last = walk

	g.Set(walk.X, walk.Y, grid.MakeFloor())
	stack := []grid.Point{walk}
	jumps := [4]grid.Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]

		candidates := make([]grid.Point, 0, 4)
		for _, d := range jumps {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx >= 1 && nx <= g.Width-2 && ny >= 1 && ny <= g.Height-2 && g.IsWall(nx, ny) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[ctx.Rand.Intn(len(candidates))]
		g.Set(curr.X+d.X/2, curr.Y+d.Y/2, grid.MakeFloor())
		next := grid.Point{X: curr.X + d.X, Y: curr.Y + d.Y}
		g.Set(next.X, next.Y, grid.MakeFloor())
		stack = append(stack, next)
		l.state.last = next
	}
}

// nearestWallLattice returns the uncarved lattice cell closest to from by
// Manhattan distance, scan order breaking ties. ok is false when the whole
// lattice is already open.
func nearestWallLattice(g *grid.Grid, from grid.Point) (grid.Point, bool) {
	var best grid.Point
	bestDist := -1
	for y := 1; y < g.Height-1; y += 2 {
		for x := 1; x < g.Width-1; x += 2 {
			if !g.IsWall(x, y) {
				continue
			}
			d := abs(x-from.X) + abs(y-from.Y)
			if bestDist < 0 || d < bestDist {
				best = grid.Point{X: x, Y: y}
				bestDist = d
			}
		}
	}
	return best, bestDist >= 0
}

// MazeStairsLayer places both staircases using the maze's structure, before
// interconnections so the loop carver can keep clear of them.
//
// With no rooms the stairs use the raw dead-end logic; with one room, one
// stair anchors inside the room and the other in a corridor cell; with two
// or more rooms the stairs go into two different rooms.
type MazeStairsLayer struct {
	state *mazeState
}

// Apply chooses the stair cells and writes them to the grid.
func (l *MazeStairsLayer) Apply(g *grid.Grid, ctx *Context) {
	st := l.state
	up := st.start
	if ctx.UpStairs != nil {
		up = *ctx.UpStairs
	}

	var down grid.Point
	switch {
	case len(st.rooms) == 0:
		down = st.last
	case len(st.rooms) == 1:
		if st.rooms[0].Contains(up.X, up.Y) {
			down = st.last // up took the room, send down to a corridor
		} else {
			cx, cy := st.rooms[0].Center()
			down = grid.Point{X: cx, Y: cy}
		}
	default:
		if ctx.UpStairs == nil {
			// Both stair rooms come from the full list. Filtering against
			// the walk start first could leave the pool empty when a room
			// swallowed that cell.
			i := ctx.Rand.Intn(len(st.rooms))
			j := ctx.Rand.Intn(len(st.rooms) - 1)
			if j >= i {
				j++
			}
			cx, cy := st.rooms[i].Center()
			up = grid.Point{X: cx, Y: cy}
			cx, cy = st.rooms[j].Center()
			down = grid.Point{X: cx, Y: cy}
			break
		}
		// A supplied up stair sits inside at most one room, so at least one
		// other room remains to hold the down stairs.
		others := make([]grid.Rect, 0, len(st.rooms))
		for _, r := range st.rooms {
			if !r.Contains(up.X, up.Y) {
				others = append(others, r)
			}
		}
		pick := others[ctx.Rand.Intn(len(others))]
		cx, cy := pick.Center()
		down = grid.Point{X: cx, Y: cy}
	}

	if down == up {
		down = l.anyOtherFloor(g, up)
	}

	g.SetKind(up.X, up.Y, grid.TileStairsUp)
	g.SetKind(down.X, down.Y, grid.TileStairsDown)
	*st.plan = StairPlan{Placed: true, Up: up, Down: down}
}

// anyOtherFloor returns the first walkable cell that is not avoid. Only
// reachable on degenerate grids where the dead end equals the start.
func (l *MazeStairsLayer) anyOtherFloor(g *grid.Grid, avoid grid.Point) grid.Point {
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if g.IsWalkable(x, y) && (x != avoid.X || y != avoid.Y) {
				return grid.Point{X: x, Y: y}
			}
		}
	}
	return avoid
}

// InterconnectLayer knocks out up to Count wall cells to add tactical loops
// to the otherwise perfect maze.
//
// A candidate wall is eligible only if it is off the border, separates two
// open cells along one axis, is not a lattice corner (both coordinates
// even), is not 8-adjacent to a staircase, and is not 8-adjacent to a room.
type InterconnectLayer struct {
	state *mazeState
	Count int
}

// Apply removes eligible walls until the requested count is reached or the
// attempt budget runs out. "interconnections" overrides the constructor
// count.
func (l *InterconnectLayer) Apply(g *grid.Grid, ctx *Context) {
	want := ctx.Int("interconnections", l.Count)
	if want <= 0 {
		return
	}

	attempts := want * 20
	for added := 0; added < want && attempts > 0; attempts-- {
		x := ctx.RandRange(1, g.Width-2)
		y := ctx.RandRange(1, g.Height-2)
		if !l.eligible(g, x, y) {
			continue
		}
		g.Set(x, y, grid.MakeFloor())
		added++
	}
}

func (l *InterconnectLayer) eligible(g *grid.Grid, x, y int) bool {
	if !g.IsWall(x, y) {
		return false
	}
	if x%2 == 0 && y%2 == 0 {
		return false // lattice corner, removing one breeds open plazas
	}
	// Must join two open cells across exactly one axis.
	horizontal := g.IsWalkable(x-1, y) && g.IsWalkable(x+1, y)
	vertical := g.IsWalkable(x, y-1) && g.IsWalkable(x, y+1)
	if !horizontal && !vertical {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			k := g.Kind(x+dx, y+dy)
			if k == grid.TileStairsUp || k == grid.TileStairsDown {
				return false
			}
			if l.state.roomCells.Has(grid.Point{X: x + dx, Y: y + dy}) {
				return false
			}
		}
	}
	return true
}

// MazeBorderLayer re-forces the outer ring to wall, skipping cells claimed
// by a carved room and the staircases, so the safety pass cannot clip
// either. An up stair inherited from a cave level can sit on the very edge.
type MazeBorderLayer struct {
	state *mazeState
}

// Apply walls the border ring.
func (l *MazeBorderLayer) Apply(g *grid.Grid, ctx *Context) {
	wall := func(x, y int) {
		if l.state.roomCells.Has(grid.Point{X: x, Y: y}) {
			return
		}
		if k := g.Kind(x, y); k == grid.TileStairsUp || k == grid.TileStairsDown {
			return
		}
		g.Set(x, y, grid.MakeWall())
	}
	for x := 0; x < g.Width; x++ {
		wall(x, 0)
		wall(x, g.Height-1)
	}
	for y := 0; y < g.Height; y++ {
		wall(0, y)
		wall(g.Width-1, y)
	}
}
