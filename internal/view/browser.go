// Package view renders generated levels in a terminal so layouts can be
// inspected without wiring the generator into a game.
package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"warren/internal/grid"
	"warren/internal/level"
)

// Browser is an interactive level inspector: it bakes one level at a time
// and rebakes on demand as the user moves through the progression.
type Browser struct {
	screen  tcell.Screen
	gen     *level.Generator
	levelID int
	turn    int
	lvl     *level.DungeonLevel
}

// NewBrowser creates a Browser starting at level 0.
func NewBrowser(screen tcell.Screen, gen *level.Generator) *Browser {
	b := &Browser{screen: screen, gen: gen}
	b.bake()
	return b
}

// bake regenerates the current level. Levels above 0 descend through their
// predecessor so the stair chain stays authentic.
func (b *Browser) bake() {
	if b.levelID == 0 {
		b.lvl = b.gen.Generate(0, b.turn, nil)
		return
	}
	prev := b.gen.Generate(b.levelID-1, b.turn, nil)
	b.lvl = b.gen.Descend(prev, b.turn)
}

// Run drives the event loop until the user quits.
func (b *Browser) Run() {
	for {
		b.draw()
		ev := b.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch {
		case key.Key() == tcell.KeyEscape || key.Rune() == 'q':
			return
		case key.Key() == tcell.KeyDown || key.Rune() == '+':
			b.levelID++
			b.bake()
		case (key.Key() == tcell.KeyUp || key.Rune() == '-') && b.levelID > 0:
			b.levelID--
			b.bake()
		case key.Rune() == 'r':
			// A fresh turn count rebakes the same depth with a new seed.
			b.turn++
			b.bake()
		}
	}
}

// tileGlyph returns the rune and style for one tile kind.
func tileGlyph(kind grid.TileKind) (rune, tcell.Style) {
	def := tcell.StyleDefault
	switch kind {
	case grid.TileWall:
		return '#', def.Foreground(tcell.ColorGray)
	case grid.TileFloor:
		return '.', def.Foreground(tcell.ColorDarkGray)
	case grid.TileDoorClosed:
		return '+', def.Foreground(tcell.ColorSaddleBrown)
	case grid.TileDoorOpen:
		return '\'', def.Foreground(tcell.ColorSaddleBrown)
	case grid.TileStairsUp:
		return '<', def.Foreground(tcell.ColorWhite).Bold(true)
	case grid.TileStairsDown:
		return '>', def.Foreground(tcell.ColorWhite).Bold(true)
	case grid.TileTree:
		return '♣', def.Foreground(tcell.ColorGreen)
	case grid.TileTreeDead:
		return '♠', def.Foreground(tcell.ColorOlive)
	default:
		return '?', def.Foreground(tcell.ColorRed)
	}
}

// draw renders the current level with a one-line HUD underneath.
func (b *Browser) draw() {
	b.screen.Clear()

	for y := 0; y < b.lvl.Height; y++ {
		for x := 0; x < b.lvl.Width; x++ {
			r, style := tileGlyph(b.lvl.Grid.Kind(x, y))
			b.screen.SetContent(x, y, r, nil, style)
		}
	}

	// Spawn markers over the terrain.
	spawnStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for _, s := range b.lvl.Spawns {
		marker := 'c'
		if len(s.Key) > 0 {
			marker = rune(s.Key[0])
		}
		b.screen.SetContent(s.X, s.Y, marker, nil, spawnStyle)
	}

	hud := fmt.Sprintf("depth %d  up %d,%d  down %d,%d  spawns %d   [↑/↓ depth  r rebake  q quit]",
		b.levelID,
		b.lvl.UpStairs.X, b.lvl.UpStairs.Y,
		b.lvl.DownStairs.X, b.lvl.DownStairs.Y,
		len(b.lvl.Spawns))
	b.drawText(0, b.lvl.Height+1, hud, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	b.screen.Show()
}

// drawText writes a string with rune-width awareness so wide glyphs keep
// the rest of the line aligned.
func (b *Browser) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		b.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}
