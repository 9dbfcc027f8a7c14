package grid

// Point is a map coordinate.
type Point struct {
	X, Y int
}

// Grid holds the tile matrix for one dungeon level under construction.
type Grid struct {
	Width, Height int
	Tiles         [][]Tile
}

// New creates a Grid filled with walls.
func New(width, height int) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) is within the grid boundaries.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (g *Grid) At(x, y int) *Tile {
	return &g.Tiles[y][x]
}

// Set replaces the tile at (x, y). Out-of-bounds sets are ignored so layer
// carve loops do not need their own bounds checks.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.Tiles[y][x] = t
}

// SetKind replaces the tile at (x, y) with the canonical tile for kind,
// discarding any properties the old tile carried.
func (g *Grid) SetKind(x, y int, kind TileKind) {
	g.Set(x, y, Make(kind))
}

// Kind returns the tile kind at (x, y), treating out-of-bounds as wall.
func (g *Grid) Kind(x, y int) TileKind {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x].Kind
}

// IsWall reports whether (x, y) is a wall; out-of-bounds counts as wall.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.Tiles[y][x].IsWall
}

// IsWalkable reports whether (x, y) is in bounds and not a wall.
func (g *Grid) IsWalkable(x, y int) bool {
	return g.InBounds(x, y) && !g.Tiles[y][x].IsWall
}

// WallSnapshot copies the current wall layout into a fresh boolean matrix.
// Cellular automata iterations read neighbor counts from a snapshot so
// in-place writes within the same iteration cannot skew the counts.
func (g *Grid) WallSnapshot() [][]bool {
	snap := make([][]bool, g.Height)
	for y := range snap {
		snap[y] = make([]bool, g.Width)
		for x := range snap[y] {
			snap[y][x] = g.Tiles[y][x].IsWall
		}
	}
	return snap
}

// WalkableFrom flood-fills 4-directionally from (x, y) and returns the set
// of reachable walkable coordinates. Returns an empty map when the start
// tile itself is not walkable.
func (g *Grid) WalkableFrom(x, y int) map[Point]bool {
	reached := make(map[Point]bool)
	if !g.IsWalkable(x, y) {
		return reached
	}
	queue := []Point{{x, y}}
	reached[Point{x, y}] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range CardinalDirs {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			p := Point{nx, ny}
			if reached[p] || !g.IsWalkable(nx, ny) {
				continue
			}
			reached[p] = true
			queue = append(queue, p)
		}
	}
	return reached
}

// CardinalDirs lists the four orthogonal step offsets in a fixed order so
// that walks over them stay deterministic.
var CardinalDirs = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
