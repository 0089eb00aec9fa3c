// overlay-sim drives the conflict overlay engine headlessly: it seeds a
// demo conflict, animates the built-in camera, samples the globe radius on
// every render event, composes the overlay layer stack, runs the starfield
// loop, and ships frame telemetry to InfluxDB.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/conflictwatch/overlay/internal/camera"
	"github.com/conflictwatch/overlay/internal/config"
	"github.com/conflictwatch/overlay/internal/demo"
	"github.com/conflictwatch/overlay/internal/dispatcher"
	"github.com/conflictwatch/overlay/internal/globe"
	"github.com/conflictwatch/overlay/internal/lod"
	"github.com/conflictwatch/overlay/internal/logging"
	"github.com/conflictwatch/overlay/internal/overlay"
	"github.com/conflictwatch/overlay/internal/recency"
	"github.com/conflictwatch/overlay/internal/starfield"
	"github.com/conflictwatch/overlay/internal/store"
	"github.com/conflictwatch/overlay/internal/telemetry"
	"github.com/conflictwatch/overlay/pkg/core"
)

const appName = "overlay_sim"

// countingCanvas tallies draw calls; the headless run has nothing to paint.
type countingCanvas struct {
	circles int
}

func (c *countingCanvas) FillCircle(x, y, r float64, color string, alpha float64) {
	c.circles++
}

func main() {
	var (
		configDir = flag.String("config", ".", "directory containing overlay.cfg.json")
		frames    = flag.Int("frames", 600, "number of simulated frames")
		conflict  = flag.String("conflict", demo.ConflictID, "conflict id to display")
	)
	flag.Parse()

	logManager := logging.NewManager()
	if err := config.Load(*configDir); err != nil {
		logManager.Logger.Fatal().Err(err).Msg("Failed to load config")
	}
	if err := logManager.Setup(appName, time.Now()); err != nil {
		logManager.Logger.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer logManager.Close()
	log := logManager.Logger

	// storage
	dbManager := store.NewManager(log)
	if err := dbManager.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbManager.Close()

	bundleStore := store.New(dbManager.DB)
	if err := bundleStore.SaveBundle(demo.Bundle(time.Now())); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed demo conflict")
	}
	bundle, err := bundleStore.LoadBundle(*conflict)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load conflict bundle")
	}
	log.Info().Str("conflict", bundle.ConflictID).
		Int("segments", len(bundle.Frontline)).
		Int("units", len(bundle.Units)).
		Msg("Conflict bundle loaded")

	// telemetry
	influx := telemetry.NewManager(log, "./influx_backup.gz")
	if err := influx.Connect(); err != nil {
		log.Warn().Err(err).Msg("Telemetry disabled")
		influx = nil
	} else {
		defer influx.Close()
	}

	// engine
	classifier := recency.New()
	gate := lod.NewGate(config.GetFloat64("lod.detailZoom"), config.GetFloat64("lod.labelZoom"))
	composer := overlay.NewComposer(overlay.Dependencies{
		Cache:      overlay.NewBundleCache(),
		Classifier: classifier,
		Gate:       gate,
		EpsilonKm:  config.GetFloat64("lod.colocationEpsilonKm"),
		Logger:     log,
	})
	composer.UseBundle(bundle)
	composer.SetVisible(true)
	composer.SetShowTroops(true)
	composer.SetTroopClickFunc(func(u core.Unit) {
		log.Info().Str("unit", u.Name).Str("sector", u.Sector).Msg("Troop clicked")
	})

	cam := camera.New(camera.ModeGlobe, 1280, 800)
	sampler := globe.NewSampler(
		config.GetFloat64("globe.sampleOffsetDeg"),
		config.GetFloat64("globe.minRadiusPx"),
		config.GetFloat64("globe.maxRadiusPx"),
		log,
	)

	canvas := &countingCanvas{}
	var stars *starfield.Engine
	if config.GetBool("starfield.enabled") {
		stars = starfield.NewEngine(starfield.Config{
			Layers:        starfield.DefaultLayers,
			Map:           cam,
			Radius:        sampler.Radius,
			Canvas:        canvas,
			ReducedMotion: config.GetBool("starfield.reducedMotion"),
			Logger:        log,
		})
		stars.Resize(1280, 800, config.GetFloat64("starfield.maxPixelRatio"))
	}

	// event plumbing
	d, err := dispatcher.New(logging.NewDispatcherLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create dispatcher")
	}
	d.Register(dispatcher.EventRender, func(e dispatcher.Event) error {
		sampler.Sample(cam)
		return nil
	})
	d.Register(dispatcher.EventZoom, func(e dispatcher.Event) error {
		composer.SetZoom(e.Zoom)
		return nil
	})
	sub := cam.OnRender(func() {
		d.Dispatch(dispatcher.Event{Name: dispatcher.EventRender, Timestamp: time.Now()})
	})
	defer sub.Cancel()

	runSimulation(log, *frames, cam, d, composer, stars, sampler, influx, canvas)

	cam.Teardown()
	os.Exit(0)
}
