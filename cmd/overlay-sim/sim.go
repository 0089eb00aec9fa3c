package main

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/conflictwatch/overlay/internal/camera"
	"github.com/conflictwatch/overlay/internal/dispatcher"
	"github.com/conflictwatch/overlay/internal/globe"
	"github.com/conflictwatch/overlay/internal/overlay"
	"github.com/conflictwatch/overlay/internal/starfield"
	"github.com/conflictwatch/overlay/internal/telemetry"
	"github.com/conflictwatch/overlay/pkg/core"
)

// runSimulation animates the camera through a slow orbit-and-zoom pass,
// recomposing the overlay on zoom changes and advancing the starfield each
// frame. The two triggers stay decoupled: camera render events drive the
// radius sampler, the frame loop drives the particles.
func runSimulation(
	log zerolog.Logger,
	frames int,
	cam *camera.Camera,
	d *dispatcher.Dispatcher,
	composer *overlay.Composer,
	stars *starfield.Engine,
	sampler *globe.Sampler,
	influx *telemetry.Manager,
	canvas starfield.Canvas,
) {
	const frameInterval = time.Second / 60

	cam.SetCenter(core.Position{Lon: 31.0, Lat: 49.0})

	start := time.Now()
	for i := 0; i < frames; i++ {
		frameStart := time.Now()

		// camera drift: slow rotation plus a zoom sweep across the LOD
		// thresholds so both gate regimes get exercised
		cam.SetBearing(float64(i) * 0.05)
		zoom := 2.0 + 5.0*float64(i)/float64(frames)
		cam.SetZoom(zoom)
		d.Dispatch(dispatcher.Event{Name: dispatcher.EventZoom, Zoom: zoom, Timestamp: frameStart})

		composeStart := time.Now()
		stack := composer.Compose()
		composeDur := time.Since(composeStart)

		starCount := 0
		if stars != nil {
			stars.Advance(frameInterval)
			stars.Render(canvas)
			starCount = stars.StarCount()
		}

		if influx != nil {
			radius := sampler.Radius.Load()
			if err := influx.WriteFrameSample(radius, starCount, time.Since(frameStart)); err != nil {
				log.Debug().Err(err).Msg("Frame telemetry write failed")
			}
			if err := influx.WriteComposeSample(composer.SelectedConflictID(), zoom, len(stack.Markers), composeDur); err != nil {
				log.Debug().Err(err).Msg("Compose telemetry write failed")
			}
		}
	}

	log.Info().
		Int("frames", frames).
		Dur("elapsed", time.Since(start)).
		Float64("finalRadiusPx", sampler.Radius.Load()).
		Msg("Simulation complete")
}
