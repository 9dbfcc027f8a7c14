package level

import (
	"github.com/zyedidia/generic/mapset"

	"warren/assets"
	"warren/internal/generate"
	"warren/internal/grid"
	"warren/internal/logger"
	"warren/internal/schedule"
)

// stairAttempts bounds the search for a reachable down-stairs candidate
// before falling back to forced path carving.
const stairAttempts = 50

// Generator builds dungeon levels on demand. One Generator serves a whole
// run; each Generate call derives its own seeded random source, so calls
// are pure functions of (base seed, level id, turn count).
type Generator struct {
	BaseSeed      int64
	Width, Height int
	Schedule      *schedule.Schedule

	converters map[grid.TileKind]ConvertFunc
}

// NewGenerator creates a Generator for the given grid size and progression.
func NewGenerator(baseSeed int64, width, height int, sched *schedule.Schedule) *Generator {
	return &Generator{
		BaseSeed:   baseSeed,
		Width:      width,
		Height:     height,
		Schedule:   sched,
		converters: map[grid.TileKind]ConvertFunc{},
	}
}

// RegisterConverter maps a tile kind to the callback that turns it into a
// game entity during special-tile conversion.
func (gen *Generator) RegisterConverter(kind grid.TileKind, fn ConvertFunc) {
	gen.converters[kind] = fn
}

// Generate builds the level at levelID. upStairs, when non-nil, is the
// previous level's down-stairs coordinate and is honored exactly so
// adjacent levels line up.
func (gen *Generator) Generate(levelID, turnCount int, upStairs *grid.Point) *DungeonLevel {
	template, params := gen.Schedule.ParamsAt(levelID)
	seed := gen.BaseSeed + int64(turnCount) + int64(levelID)*1000

	ctx := generate.NewContext(levelID, seed, gen.Width, gen.Height, params)
	ctx.UpStairs = upStairs

	strat := generate.NewStrategy(template)
	g := grid.New(gen.Width, gen.Height)
	strat.Run(g, ctx)

	lvl := &DungeonLevel{
		ID:     levelID,
		Width:  gen.Width,
		Height: gen.Height,
		Grid:   g,
	}

	if plan := strat.Stairs(); plan.Placed {
		lvl.UpStairs, lvl.DownStairs = plan.Up, plan.Down
	} else {
		lvl.UpStairs, lvl.DownStairs = gen.placeStairs(g, ctx, upStairs)
	}

	gen.convertSpecialTiles(g, lvl)
	gen.spawnCreatures(g, ctx, lvl, strat.Name)

	logger.Log.WithFields(map[string]any{
		"level":    levelID,
		"seed":     seed,
		"template": strat.Name,
		"up":       lvl.UpStairs,
		"down":     lvl.DownStairs,
		"spawns":   len(lvl.Spawns),
	}).Info("generated level")

	return lvl
}

// Descend generates the level below cur, connected through cur's down
// stairs. A mismatch between the two stair coordinates is a logic defect in
// stair forcing, never a data problem, so it is fatal.
func (gen *Generator) Descend(cur *DungeonLevel, turnCount int) *DungeonLevel {
	up := cur.DownStairs
	next := gen.Generate(cur.ID+1, turnCount, &up)
	if next.UpStairs != cur.DownStairs {
		logger.Log.WithFields(map[string]any{
			"level":     cur.ID,
			"down":      cur.DownStairs,
			"nextUp":    next.UpStairs,
			"nextLevel": next.ID,
		}).Fatal("stair coordinates diverged between adjacent levels")
	}
	return next
}

// placeStairs is the generic stair policy for strategies without their own
// plan. The supplied up coordinate, when present, is forced walkable and
// used exactly; otherwise up goes on a random floor tile. Down-stairs
// candidates are drawn at random and the first one reachable from the up
// stairs wins; after the attempt budget the last candidate is taken and a
// path is carved to it.
func (gen *Generator) placeStairs(g *grid.Grid, ctx *generate.Context, upStairs *grid.Point) (grid.Point, grid.Point) {
	var up grid.Point
	if upStairs != nil {
		up = *upStairs
	} else {
		floors := walkablePoints(g)
		if len(floors) == 0 {
			// Nothing open at all; strategies never produce this, but a
			// degenerate parameter set could. Open the center.
			up = grid.Point{X: g.Width / 2, Y: g.Height / 2}
		} else {
			up = floors[ctx.Rand.Intn(len(floors))]
		}
	}
	g.SetKind(up.X, up.Y, grid.TileStairsUp)

	reached := g.WalkableFrom(up.X, up.Y)
	candidates := walkablePoints(g)

	var down grid.Point
	found := false
	for i := 0; i < stairAttempts && len(candidates) > 0; i++ {
		down = candidates[ctx.Rand.Intn(len(candidates))]
		if down == up {
			continue
		}
		if reached[down] {
			found = true
			break
		}
	}
	if down == up || (!found && (down == grid.Point{})) {
		// Only one open tile (or none drawn at all): force a neighbor open.
		down = grid.Point{X: up.X + 1, Y: up.Y}
		if !g.InBounds(down.X, down.Y) {
			down = grid.Point{X: up.X - 1, Y: up.Y}
		}
		found = false
	}
	if !found {
		logger.Log.WithFields(map[string]any{
			"level": ctx.ChunkID,
			"up":    up,
			"down":  down,
		}).Debug("no reachable down-stairs candidate, forcing a path")
		generate.ForceConnect(g, up, down)
	}
	g.SetKind(down.X, down.Y, grid.TileStairsDown)
	return up, down
}

// convertSpecialTiles scans for registered convertible tile kinds, then —
// only after the scan completes — invokes the creation callbacks and resets
// each converted tile to plain floor. Deferring the mutation keeps the scan
// from revisiting tiles it already handled.
func (gen *Generator) convertSpecialTiles(g *grid.Grid, lvl *DungeonLevel) {
	if len(gen.converters) == 0 {
		return
	}

	type pending struct {
		x, y int
		kind grid.TileKind
		fn   ConvertFunc
	}
	var queue []pending
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			kind := g.Kind(x, y)
			if fn, ok := gen.converters[kind]; ok {
				queue = append(queue, pending{x: x, y: y, kind: kind, fn: fn})
			}
		}
	}

	for _, p := range queue {
		id := p.fn(p.x, p.y, p.kind)
		lvl.Entities = append(lvl.Entities, id)
		g.SetKind(p.x, p.y, grid.TileFloor)
	}
	if len(queue) > 0 {
		logger.Log.WithFields(map[string]any{
			"level": lvl.ID,
			"count": len(queue),
		}).Debug("converted special tiles")
	}
}

// spawnCreatures asks the scheduler for this level's creature picks and
// assigns each a free floor coordinate — never a wall, a staircase, or a
// tile another creature already claimed.
func (gen *Generator) spawnCreatures(g *grid.Grid, ctx *generate.Context, lvl *DungeonLevel, template string) {
	density := ctx.Float("enemy_density", 0)
	picks := schedule.PickSpawns(density, ctx.Rand, assets.Creatures(template))
	if len(picks) == 0 {
		return
	}

	var open []grid.Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			k := g.Kind(x, y)
			if g.IsWalkable(x, y) && k != grid.TileStairsUp && k != grid.TileStairsDown {
				open = append(open, grid.Point{X: x, Y: y})
			}
		}
	}
	if len(open) == 0 {
		return
	}

	occupied := mapset.New[grid.Point]()
	for _, c := range picks {
		var pos grid.Point
		placed := false
		for attempt := 0; attempt < 20; attempt++ {
			pos = open[ctx.Rand.Intn(len(open))]
			if !occupied.Has(pos) {
				placed = true
				break
			}
		}
		if !placed {
			continue // level is packed solid, drop the spawn
		}
		occupied.Put(pos)
		lvl.Spawns = append(lvl.Spawns, CreatureSpawn{X: pos.X, Y: pos.Y, Key: c.Key, Name: c.Name})
	}
}

// walkablePoints collects every walkable coordinate in scan order.
func walkablePoints(g *grid.Grid) []grid.Point {
	var points []grid.Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.IsWalkable(x, y) {
				points = append(points, grid.Point{X: x, Y: y})
			}
		}
	}
	return points
}
