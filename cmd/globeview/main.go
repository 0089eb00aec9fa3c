// globeview is an interactive viewer for the conflict overlay engine: an
// orthographic globe with the frontline layer, marker glyphs, battle
// popups, and the parallax starfield clipped to the globe silhouette.
//
// Controls: arrows pan, wheel zooms, Q/E rotate, W/S pitch, G toggles
// globe/flat projection, T toggles troops, O toggles the overlay, click a
// battle star for its popup.
package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/conflictwatch/overlay/internal/config"
	"github.com/conflictwatch/overlay/internal/logging"
)

const (
	screenWidth  = 1280
	screenHeight = 800
)

func main() {
	logManager := logging.NewManager()
	if err := config.Load("."); err != nil {
		logManager.Logger.Fatal().Err(err).Msg("Failed to load config")
	}
	if err := logManager.Setup("globeview", time.Now()); err != nil {
		logManager.Logger.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer logManager.Close()

	view, err := newView(logManager.Logger)
	if err != nil {
		logManager.Logger.Fatal().Err(err).Msg("Failed to build view")
	}

	ebiten.SetWindowTitle("Conflict Watch")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	if err := ebiten.RunGame(view); err != nil {
		log.Fatal(err)
	}
}
