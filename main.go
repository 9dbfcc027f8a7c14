// warren generates roguelike dungeon levels and opens a terminal browser
// for inspecting them. Use --schedule to point at a YAML progression file;
// without one the compiled-in default progression is used.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"warren/assets"
	"warren/internal/level"
	"warren/internal/logger"
	"warren/internal/schedule"
	"warren/internal/view"
)

func main() {
	width := flag.Int("width", 60, "Level width in tiles")
	height := flag.Int("height", 30, "Level height in tiles")
	seed := flag.Int64("seed", 0, "Base seed (0 = time-derived)")
	schedulePath := flag.String("schedule", "", "Path to a YAML progression schedule")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	sched := loadSchedule(*schedulePath)
	gen := level.NewGenerator(*seed, *width, *height, sched)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	view.NewBrowser(screen, gen).Run()
}

// loadSchedule resolves the progression: the YAML file when given and
// valid, the compiled-in default otherwise.
func loadSchedule(path string) *schedule.Schedule {
	if path == "" {
		return assets.DefaultSchedule()
	}
	sched, err := schedule.LoadFile(path, assets.DefaultSchedule())
	if err != nil {
		logger.Log.WithField("path", path).WithError(err).
			Warn("schedule file unusable, using default progression")
	}
	return sched
}
