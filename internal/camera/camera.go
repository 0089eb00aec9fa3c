// Package camera is the built-in host map: an orthographic globe
// projection with a flat web-mercator fallback, plus the render event
// stream the overlay and radius sampler subscribe to. The engine itself
// only depends on the globe.Map interface; this implementation backs the
// commands and the tests.
package camera

import (
	"errors"
	"math"

	"github.com/wroge/wgs84"

	"github.com/conflictwatch/overlay/pkg/core"
)

// ErrTornDown is returned by Project after Teardown, modelling a host map
// mid-destruction.
var ErrTornDown = errors.New("camera torn down")

// Mode selects the projection.
type Mode int

const (
	ModeGlobe Mode = iota
	ModeFlat
)

// webMercatorExtent is the half-width of the EPSG:3857 plane in meters.
const webMercatorExtent = 20037508.342789244

// Handle detaches a render subscription.
type Handle struct {
	cancel func()
}

// Cancel detaches the listener. Idempotent.
func (h Handle) Cancel() {
	if h.cancel != nil {
		h.cancel()
	}
}

// Camera holds the view state and emits a render event on every change,
// the way a host map redraws on pan/zoom/rotate.
type Camera struct {
	mode    Mode
	center  core.Position
	zoom    float64
	bearing float64
	pitch   float64
	width   float64
	height  float64

	tornDown  bool
	toMerc    func(a, b, c float64) (float64, float64, float64)
	nextSub   int
	listeners map[int]func()
}

// New builds a camera over a screen of the given pixel size.
func New(mode Mode, width, height float64) *Camera {
	return &Camera{
		mode:      mode,
		zoom:      2,
		width:     width,
		height:    height,
		toMerc:    wgs84.EPSG().Transform(4326, 3857),
		listeners: make(map[int]func()),
	}
}

// OnRender subscribes fn to render events. Events fire synchronously on
// every view change.
func (c *Camera) OnRender(fn func()) Handle {
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	return Handle{cancel: func() { delete(c.listeners, id) }}
}

func (c *Camera) emitRender() {
	for _, fn := range c.listeners {
		fn()
	}
}

// Teardown invalidates the projection and drops all listeners.
func (c *Camera) Teardown() {
	c.tornDown = true
	c.listeners = make(map[int]func())
}

// SetCenter pans the view.
func (c *Camera) SetCenter(p core.Position) { c.center = p; c.emitRender() }

// SetZoom sets the zoom level (web map convention: world width 256*2^zoom px).
func (c *Camera) SetZoom(z float64) { c.zoom = z; c.emitRender() }

// SetBearing rotates the view (degrees).
func (c *Camera) SetBearing(b float64) { c.bearing = b; c.emitRender() }

// SetPitch tilts the view (degrees).
func (c *Camera) SetPitch(p float64) { c.pitch = p; c.emitRender() }

// SetMode switches between globe and flat projection.
func (c *Camera) SetMode(m Mode) { c.mode = m; c.emitRender() }

// Resize updates the screen size.
func (c *Camera) Resize(width, height float64) { c.width = width; c.height = height; c.emitRender() }

// Center returns the view center.
func (c *Camera) Center() core.Position { return c.center }

// Zoom returns the zoom level.
func (c *Camera) Zoom() float64 { return c.zoom }

// Bearing returns the view rotation in degrees.
func (c *Camera) Bearing() float64 { return c.bearing }

// Pitch returns the view tilt in degrees.
func (c *Camera) Pitch() float64 { return c.pitch }

// IsGlobe reports whether the globe projection is active.
func (c *Camera) IsGlobe() bool { return c.mode == ModeGlobe }

// GlobeRadiusPx returns the globe's theoretical screen radius at the
// current zoom: the circumference of the projected world equals the flat
// world width.
func (c *Camera) GlobeRadiusPx() float64 {
	worldPx := 256 * math.Exp2(c.zoom)
	return worldPx / (2 * math.Pi)
}

// Project maps a geographic coordinate to screen pixels, origin top-left.
func (c *Camera) Project(lon, lat float64) (x, y float64, err error) {
	if c.tornDown {
		return 0, 0, ErrTornDown
	}
	if c.mode == ModeFlat {
		return c.projectFlat(lon, lat)
	}
	return c.projectGlobe(lon, lat)
}

// projectFlat is plain web mercator scaled to the zoom level.
func (c *Camera) projectFlat(lon, lat float64) (float64, float64, error) {
	mx, my, _ := c.toMerc(lon, lat, 0)
	cx, cy, _ := c.toMerc(c.center.Lon, c.center.Lat, 0)
	worldPx := 256 * math.Exp2(c.zoom)
	scale := worldPx / (2 * webMercatorExtent)
	// mercator north is up, screen y grows down
	return c.width/2 + (mx-cx)*scale, c.height/2 + (cy-my)*scale, nil
}

// projectGlobe is an orthographic projection around the view center.
// Points beyond the horizon clamp to the limb, matching the host-map
// behavior the radius sampler relies on.
func (c *Camera) projectGlobe(lon, lat float64) (float64, float64, error) {
	r := c.GlobeRadiusPx()
	lam := (lon - c.center.Lon) * math.Pi / 180
	phi := lat * math.Pi / 180
	phi0 := c.center.Lat * math.Pi / 180

	px := math.Cos(phi) * math.Sin(lam)
	py := math.Cos(phi0)*math.Sin(phi) - math.Sin(phi0)*math.Cos(phi)*math.Cos(lam)

	cosc := math.Sin(phi0)*math.Sin(phi) + math.Cos(phi0)*math.Cos(phi)*math.Cos(lam)
	if cosc < 0 {
		// behind the globe: project onto the silhouette
		n := math.Hypot(px, py)
		if n == 0 {
			px, py = 0, 1
		} else {
			px, py = px/n, py/n
		}
	}

	// view rotation
	b := c.bearing * math.Pi / 180
	rx := px*math.Cos(b) - py*math.Sin(b)
	ry := px*math.Sin(b) + py*math.Cos(b)

	return c.width/2 + r*rx, c.height/2 - r*ry, nil
}
