package grid

// TileKind identifies the terrain type of a map tile.
type TileKind uint8

const (
	TileWall       TileKind = iota
	TileFloor
	TileDoorClosed
	TileDoorOpen
	TileStairsUp
	TileStairsDown
	TileTree
	TileTreeDead
)

// String returns a short name for the tile kind, used in logs and diagnostics.
func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDoorClosed:
		return "door_closed"
	case TileDoorOpen:
		return "door_open"
	case TileStairsUp:
		return "stairs_up"
	case TileStairsDown:
		return "stairs_down"
	case TileTree:
		return "tree"
	case TileTreeDead:
		return "tree_dead"
	default:
		return "unknown"
	}
}

// Tile holds the kind, blocking state, and runtime flags for one map cell.
// Generation initializes every runtime flag to false; gameplay mutates them
// after the level is handed over.
type Tile struct {
	Kind        TileKind
	IsWall      bool
	Transparent bool

	// FOV / runtime flags, always false when generation returns.
	Visible     bool
	Explored    bool
	Lit         bool
	Penumbra    bool
	Interesting bool

	// Props carries open-ended per-tile data, e.g. door orientation.
	// Nil for tiles with no extra properties.
	Props map[string]string
}

// MakeWall returns a blocking, opaque wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall, IsWall: true, Transparent: false}
}

// MakeFloor returns a passable, transparent floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, IsWall: false, Transparent: true}
}

// MakeDoorClosed returns a closed door: passable for generation purposes
// but opaque until opened.
func MakeDoorClosed() Tile {
	return Tile{Kind: TileDoorClosed, IsWall: false, Transparent: false}
}

// MakeDoorOpen returns an open door tile.
func MakeDoorOpen() Tile {
	return Tile{Kind: TileDoorOpen, IsWall: false, Transparent: true}
}

// MakeStairsUp returns an upward staircase tile.
func MakeStairsUp() Tile {
	return Tile{Kind: TileStairsUp, IsWall: false, Transparent: true}
}

// MakeStairsDown returns a downward staircase tile.
func MakeStairsDown() Tile {
	return Tile{Kind: TileStairsDown, IsWall: false, Transparent: true}
}

// MakeTree returns a blocking tree tile used by forest biomes.
func MakeTree() Tile {
	return Tile{Kind: TileTree, IsWall: true, Transparent: false}
}

// MakeTreeDead returns a blocking dead-tree variant.
func MakeTreeDead() Tile {
	return Tile{Kind: TileTreeDead, IsWall: true, Transparent: false}
}

// Make returns the canonical tile for kind, keeping Kind and IsWall
// consistent for every tile the generator can emit.
func Make(kind TileKind) Tile {
	switch kind {
	case TileFloor:
		return MakeFloor()
	case TileDoorClosed:
		return MakeDoorClosed()
	case TileDoorOpen:
		return MakeDoorOpen()
	case TileStairsUp:
		return MakeStairsUp()
	case TileStairsDown:
		return MakeStairsDown()
	case TileTree:
		return MakeTree()
	case TileTreeDead:
		return MakeTreeDead()
	default:
		return MakeWall()
	}
}
