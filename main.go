package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/strider/logger"
	"github.com/milk9111/strider/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes and probe rays")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	backend := flag.String("backend", "", "physics backend: volume or chipmunk")
	script := flag.String("script", "", "drive the player from a script in prefabs/scripts instead of the keyboard")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	watch := flag.Bool("watch", true, "reload prefabs and scripts when they change on disk")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: "console"})

	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		logger.L().Warn("world spec: using defaults", "err", err)
		spec = prefabs.DefaultWorldSpec()
	}
	if *levelName != "" {
		spec.Level = *levelName
	}
	if *backend != "" {
		spec.Backend = *backend
	}

	game, err := NewGame(spec, Options{Debug: *debug, Script: *script, Watch: *watch})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("strider")
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
