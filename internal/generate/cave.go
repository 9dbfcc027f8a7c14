package generate

import "warren/internal/grid"

// NoiseLayer seeds the grid with walls at a fixed probability — one
// Bernoulli draw per tile, scanned row by row.
type NoiseLayer struct {
	WallProb float64
}

// Apply fills every tile with wall or floor from a single draw each.
// The "wall_probability" context parameter overrides the constructor value.
func (l *NoiseLayer) Apply(g *grid.Grid, ctx *Context) {
	p := ctx.Float("wall_probability", l.WallProb)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if ctx.Rand.Float64() < p {
				g.Set(x, y, grid.MakeWall())
			} else {
				g.Set(x, y, grid.MakeFloor())
			}
		}
	}
}

// AutomataLayer smooths the noise field with a birth/death cellular
// automaton. Every iteration reads neighbor counts from a snapshot of the
// previous grid, never from tiles written in the same pass.
type AutomataLayer struct {
	Iterations int
	BirthLimit int
	DeathLimit int
}

// Apply runs the configured number of automaton iterations. Context
// parameters "ca_iterations", "birth_limit", and "death_limit" override the
// constructor values.
func (l *AutomataLayer) Apply(g *grid.Grid, ctx *Context) {
	iterations := ctx.Int("ca_iterations", l.Iterations)
	birth := ctx.Int("birth_limit", l.BirthLimit)
	death := ctx.Int("death_limit", l.DeathLimit)

	for i := 0; i < iterations; i++ {
		snap := g.WallSnapshot()
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				walls := countWallNeighbors(snap, x, y)
				if snap[y][x] {
					// A wall survives only with enough wall neighbors.
					if walls >= death {
						g.Set(x, y, grid.MakeWall())
					} else {
						g.Set(x, y, grid.MakeFloor())
					}
				} else if walls > birth {
					g.Set(x, y, grid.MakeWall())
				} else {
					g.Set(x, y, grid.MakeFloor())
				}
			}
		}
	}
}

// countWallNeighbors counts walls among the eight neighbors of (x, y) in the
// snapshot. Out-of-bounds neighbors count as walls so the automaton pulls
// the cave away from the map edge.
func countWallNeighbors(snap [][]bool, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if ny < 0 || ny >= len(snap) || nx < 0 || nx >= len(snap[0]) {
				count++
			} else if snap[ny][nx] {
				count++
			}
		}
	}
	return count
}

// ConnectivityLayer guarantees a walkable route across the cave from the
// west edge to the east edge by finding or carving an opening on each edge
// and then carving a biased random walk between them.
type ConnectivityLayer struct {
	// Bias is the probability of stepping directly toward the target
	// instead of taking a uniformly random cardinal step.
	Bias float64
}

// Apply carves the west and east openings and the connecting walk.
func (l *ConnectivityLayer) Apply(g *grid.Grid, ctx *Context) {
	bias := ctx.Float("walk_bias", l.Bias)
	if bias <= 0 {
		bias = 0.7
	}

	westY := l.edgeOpening(g, ctx, 1)
	eastY := l.edgeOpening(g, ctx, g.Width-2)

	// Open the edge cells themselves so the route reaches the map border.
	g.Set(0, westY, grid.MakeFloor())
	g.Set(g.Width-1, eastY, grid.MakeFloor())

	l.carveWalk(g, ctx, grid.Point{X: 1, Y: westY}, grid.Point{X: g.Width - 2, Y: eastY}, bias)

	// Seal off any floor pocket the walk did not reach. The automaton leaves
	// isolated bubbles; walling them keeps every open tile reachable.
	reached := g.WalkableFrom(0, westY)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.IsWalkable(x, y) && !reached[grid.Point{X: x, Y: y}] {
				g.Set(x, y, grid.MakeWall())
			}
		}
	}
}

// edgeOpening picks a floor tile in the given interior column, or carves one
// at a random row when the column is solid wall.
func (l *ConnectivityLayer) edgeOpening(g *grid.Grid, ctx *Context, x int) int {
	var open []int
	for y := 1; y < g.Height-1; y++ {
		if g.IsWalkable(x, y) {
			open = append(open, y)
		}
	}
	if len(open) > 0 {
		return open[ctx.Rand.Intn(len(open))]
	}
	y := ctx.RandRange(1, g.Height-2)
	g.Set(x, y, grid.MakeFloor())
	return y
}

// carveWalk walks from start to target carving floor, stepping toward the
// target with probability bias and randomly otherwise. The walk stays off
// the outer border. A step budget guards against pathological wander; when
// it runs out the rest of the route is carved directly.
func (l *ConnectivityLayer) carveWalk(g *grid.Grid, ctx *Context, start, target grid.Point, bias float64) {
	cur := start
	g.Set(cur.X, cur.Y, grid.MakeFloor())

	budget := g.Width * g.Height * 20
	for cur != target && budget > 0 {
		budget--
		var step grid.Point
		if ctx.Rand.Float64() < bias {
			step = stepToward(cur, target)
		} else {
			step = grid.CardinalDirs[ctx.Rand.Intn(4)]
		}
		nx, ny := cur.X+step.X, cur.Y+step.Y
		if nx < 1 || nx > g.Width-2 || ny < 1 || ny > g.Height-2 {
			continue
		}
		cur = grid.Point{X: nx, Y: ny}
		g.Set(cur.X, cur.Y, grid.MakeFloor())
	}

	if cur != target {
		carveManhattan(g, cur, target)
	}
}

// stepToward returns a unit step that closes the distance to target,
// preferring the horizontal axis while it still differs.
func stepToward(cur, target grid.Point) grid.Point {
	switch {
	case cur.X < target.X:
		return grid.Point{X: 1}
	case cur.X > target.X:
		return grid.Point{X: -1}
	case cur.Y < target.Y:
		return grid.Point{Y: 1}
	default:
		return grid.Point{Y: -1}
	}
}

// ForceConnect carves a direct path between two points as a last-resort
// connectivity fix, e.g. when no reachable down-stairs candidate was found
// within the attempt budget. Stair tiles along the way are left untouched.
func ForceConnect(g *grid.Grid, a, b grid.Point) {
	carveManhattan(g, a, b)
}

// carveManhattan carves a direct greedy path from a to b, horizontal leg
// first, never touching stair tiles so forced connectivity cannot destroy a
// placed staircase.
func carveManhattan(g *grid.Grid, a, b grid.Point) {
	cur := a
	for cur.X != b.X {
		cur.X += sign(b.X - cur.X)
		carveNonStair(g, cur.X, cur.Y)
	}
	for cur.Y != b.Y {
		cur.Y += sign(b.Y - cur.Y)
		carveNonStair(g, cur.X, cur.Y)
	}
}

func carveNonStair(g *grid.Grid, x, y int) {
	k := g.Kind(x, y)
	if k == grid.TileStairsUp || k == grid.TileStairsDown {
		return
	}
	g.Set(x, y, grid.MakeFloor())
}

func sign(n int) int {
	if n > 0 {
		return 1
	}
	if n < 0 {
		return -1
	}
	return 0
}

// TreeLayer dresses cave walls that face open floor with tree tiles. Used by
// the forest biome; a ratio of 0 makes it a no-op.
type TreeLayer struct {
	Ratio float64
}

// Apply converts eligible interior walls to trees with probability Ratio
// ("tree_ratio" overrides). Roughly one tree in five becomes the dead
// variant.
func (l *TreeLayer) Apply(g *grid.Grid, ctx *Context) {
	ratio := ctx.Float("tree_ratio", l.Ratio)
	if ratio <= 0 {
		return
	}
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if !g.IsWall(x, y) || !hasFloorNeighbor(g, x, y) {
				continue
			}
			if ctx.Rand.Float64() < ratio {
				if ctx.Rand.Intn(5) == 0 {
					g.Set(x, y, grid.MakeTreeDead())
				} else {
					g.Set(x, y, grid.MakeTree())
				}
			}
		}
	}
}

func hasFloorNeighbor(g *grid.Grid, x, y int) bool {
	for _, d := range grid.CardinalDirs {
		if g.IsWalkable(x+d.X, y+d.Y) {
			return true
		}
	}
	return false
}

// BorderLayer forces the selected edges of the grid to solid wall. It runs
// last in its strategy so earlier layers cannot reopen the border.
type BorderLayer struct {
	Top, Bottom, Left, Right bool
}

// FullBorder returns a BorderLayer covering all four edges.
func FullBorder() *BorderLayer {
	return &BorderLayer{Top: true, Bottom: true, Left: true, Right: true}
}

// Apply walls off the configured edges.
func (l *BorderLayer) Apply(g *grid.Grid, ctx *Context) {
	if l.Top {
		for x := 0; x < g.Width; x++ {
			g.Set(x, 0, grid.MakeWall())
		}
	}
	if l.Bottom {
		for x := 0; x < g.Width; x++ {
			g.Set(x, g.Height-1, grid.MakeWall())
		}
	}
	if l.Left {
		for y := 0; y < g.Height; y++ {
			g.Set(0, y, grid.MakeWall())
		}
	}
	if l.Right {
		for y := 0; y < g.Height; y++ {
			g.Set(g.Width-1, y, grid.MakeWall())
		}
	}
}
