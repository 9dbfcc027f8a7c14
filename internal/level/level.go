// Package level orchestrates dungeon generation: it resolves the template
// and parameters for a depth, runs the layer pipeline, places and validates
// stairs, converts special tiles into caller-owned entities, and selects
// creature spawns.
package level

import "warren/internal/grid"

// EntityID is an opaque identifier minted by the caller's conversion
// callbacks. The generation core stores it and nothing more.
type EntityID uint64

// ConvertFunc turns a special tile into a game entity. Registered per tile
// kind; invoked during special-tile conversion after the layout is final.
type ConvertFunc func(x, y int, kind grid.TileKind) EntityID

// CreatureSpawn describes one creature the caller should create.
type CreatureSpawn struct {
	X, Y int
	Key  string
	Name string
}

// DungeonLevel is the generation output, owned by the caller once returned.
type DungeonLevel struct {
	ID            int
	Width, Height int
	Grid          *grid.Grid

	// Entities lists the ids minted by special-tile conversion.
	Entities []EntityID

	// Spawns lists the creatures selected for this level with their
	// positions.
	Spawns []CreatureSpawn

	UpStairs   grid.Point
	DownStairs grid.Point
}
