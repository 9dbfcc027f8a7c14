package generate

import (
	"math/rand"

	"warren/internal/grid"
)

// Context carries everything one generation call needs: the target size, the
// seed-derived random source, and the named parameters the scheduler resolved
// for this level. It is built once per generation and never reused.
type Context struct {
	ChunkID int
	Seed    int64
	Width   int
	Height  int

	// Rand is the only source of randomness for every layer. Layers must
	// consume draws in a fixed order so a seed fully determines the output.
	Rand *rand.Rand

	// Params maps parameter names to float64 or string values.
	Params map[string]any

	// UpStairs is the coordinate connecting to the previous level's down
	// stairs, or nil when entering fresh (level 0).
	UpStairs *grid.Point
}

// NewContext derives a Context, seeding a private random source from seed.
func NewContext(chunkID int, seed int64, width, height int, params map[string]any) *Context {
	if params == nil {
		params = map[string]any{}
	}
	return &Context{
		ChunkID: chunkID,
		Seed:    seed,
		Width:   width,
		Height:  height,
		Rand:    rand.New(rand.NewSource(seed)),
		Params:  params,
	}
}

// Float returns the named parameter as a float64, or def when absent or not
// numeric. Scheduler curves always evaluate to float64; ints are accepted
// for hand-built parameter tables.
func (c *Context) Float(name string, def float64) float64 {
	switch v := c.Params[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

// Int returns the named parameter rounded to an int, or def when absent.
func (c *Context) Int(name string, def int) int {
	switch v := c.Params[name].(type) {
	case float64:
		if v >= 0 {
			return int(v + 0.5)
		}
		return int(v - 0.5)
	case int:
		return v
	default:
		return def
	}
}

// String returns the named parameter as a string, or def when absent.
func (c *Context) String(name, def string) string {
	if v, ok := c.Params[name].(string); ok {
		return v
	}
	return def
}

// RandRange returns a uniform int in [lo, hi] inclusive.
func (c *Context) RandRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + c.Rand.Intn(hi-lo+1)
}
