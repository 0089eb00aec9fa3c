// Package globe derives the on-screen pixel radius of the 3D globe from
// the host map's projection, the value that clips the starfield to the
// space around the globe silhouette.
package globe

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/conflictwatch/overlay/internal/signal"
	"github.com/conflictwatch/overlay/pkg/core"
)

// Map is the host map surface the sampler needs: a projection, the view
// center, and the camera scalars the starfield parallax reads.
type Map interface {
	// Project maps a geographic coordinate to screen pixels. An error means
	// the projection is unavailable (teardown, reinitialization).
	Project(lon, lat float64) (x, y float64, err error)
	Center() core.Position
	Bearing() float64
	Pitch() float64
	// IsGlobe reports whether the 3D globe projection is active.
	IsGlobe() bool
}

// Sampler measures the globe radius by projecting points offset a fixed
// large angle from the view center. The min/max guard rails reject
// degenerate projections near the antimeridian and poles; they are
// empirical and configurable, not derived from a documented invariant.
type Sampler struct {
	OffsetDeg   float64
	MinRadiusPx float64
	MaxRadiusPx float64
	Logger      zerolog.Logger

	// Radius receives every sample; 0 means "no mask".
	Radius *signal.Cell[float64]
}

// NewSampler builds a sampler with the given guard rails publishing into a
// fresh radius cell.
func NewSampler(offsetDeg, minPx, maxPx float64, logger zerolog.Logger) *Sampler {
	return &Sampler{
		OffsetDeg:   offsetDeg,
		MinRadiusPx: minPx,
		MaxRadiusPx: maxPx,
		Logger:      logger,
		Radius:      signal.New(0.0),
	}
}

// Sample measures the globe's screen radius and publishes it. Called on
// every host render event; does at most 5 projection calls. Any projection
// error or panic degrades to 0 (stars unmasked) rather than propagating.
func (s *Sampler) Sample(m Map) (radius float64) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Debug().Interface("panic", r).Msg("Projection panicked during radius sample")
			radius = 0
		}
		s.Radius.Publish(radius)
	}()

	if m == nil || !m.IsGlobe() {
		return 0
	}

	center := m.Center()
	cx, cy, err := m.Project(center.Lon, center.Lat)
	if err != nil {
		return 0
	}

	probes := [4]core.Position{
		{Lon: center.Lon + s.OffsetDeg, Lat: center.Lat},
		{Lon: center.Lon - s.OffsetDeg, Lat: center.Lat},
		{Lon: center.Lon, Lat: clampLat(center.Lat + s.OffsetDeg)},
		{Lon: center.Lon, Lat: clampLat(center.Lat - s.OffsetDeg)},
	}

	max := 0.0
	for _, p := range probes {
		x, y, err := m.Project(p.Lon, p.Lat)
		if err != nil {
			continue
		}
		d := math.Hypot(x-cx, y-cy)
		// wrap-around projections land absurdly far away
		if d > s.MaxRadiusPx {
			continue
		}
		if d > max {
			max = d
		}
	}

	// below the floor means flat mode or a globe too small to mask
	if max <= s.MinRadiusPx {
		return 0
	}
	return max
}

func clampLat(lat float64) float64 {
	if lat > 90 {
		return 90
	}
	if lat < -90 {
		return -90
	}
	return lat
}
