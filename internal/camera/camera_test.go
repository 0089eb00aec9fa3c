package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conflictwatch/overlay/pkg/core"
)

func TestNew_Defaults(t *testing.T) {
	c := New(ModeGlobe, 1280, 800)

	assert.True(t, c.IsGlobe())
	assert.Equal(t, 2.0, c.Zoom())
	assert.Zero(t, c.Bearing())
	assert.Zero(t, c.Pitch())
}

func TestCamera_GlobeRadiusPx(t *testing.T) {
	c := New(ModeGlobe, 1280, 800)

	c.SetZoom(2)
	assert.InDelta(t, 256*4/(2*math.Pi), c.GlobeRadiusPx(), 1e-9)

	// one zoom level doubles the radius
	r2 := c.GlobeRadiusPx()
	c.SetZoom(3)
	assert.InDelta(t, 2*r2, c.GlobeRadiusPx(), 1e-9)
}

func TestCamera_Project_CenterMapsToScreenCenter(t *testing.T) {
	for _, mode := range []Mode{ModeGlobe, ModeFlat} {
		c := New(mode, 1280, 800)
		c.SetCenter(core.Position{Lon: 31, Lat: 49})

		x, y, err := c.Project(31, 49)
		require.NoError(t, err)
		assert.InDelta(t, 640.0, x, 1e-6)
		assert.InDelta(t, 400.0, y, 1e-6)
	}
}

func TestCamera_Project_GlobeOrientation(t *testing.T) {
	c := New(ModeGlobe, 1280, 800)
	c.SetCenter(core.Position{Lon: 0, Lat: 0})

	// east of center lands right of center, north lands above
	x, y, err := c.Project(10, 0)
	require.NoError(t, err)
	assert.Greater(t, x, 640.0)
	assert.InDelta(t, 400.0, y, 1e-6)

	x, y, err = c.Project(0, 10)
	require.NoError(t, err)
	assert.InDelta(t, 640.0, x, 1e-6)
	assert.Less(t, y, 400.0)
}

func TestCamera_Project_BehindHorizonClampsToLimb(t *testing.T) {
	c := New(ModeGlobe, 1280, 800)
	c.SetCenter(core.Position{Lon: 0, Lat: 0})
	r := c.GlobeRadiusPx()

	// the antipode-side point sits exactly on the silhouette
	x, y, err := c.Project(170, 0)
	require.NoError(t, err)
	d := math.Hypot(x-640, y-400)
	assert.InDelta(t, r, d, 1e-6)
}

func TestCamera_Project_OffsetProbesMeasureRadius(t *testing.T) {
	// the contract the radius sampler depends on: an 85-degree offset
	// probe lands within the globe disc, near the limb
	c := New(ModeGlobe, 1280, 800)
	c.SetCenter(core.Position{Lon: 31, Lat: 49})
	r := c.GlobeRadiusPx()

	cx, cy, err := c.Project(31, 49)
	require.NoError(t, err)

	x, y, err := c.Project(31+85, 49)
	require.NoError(t, err)
	d := math.Hypot(x-cx, y-cy)
	assert.Greater(t, d, 0.9*r*math.Sin(85*math.Pi/180)*math.Cos(49*math.Pi/180))
	assert.LessOrEqual(t, d, r+1e-6)
}

func TestCamera_Project_BearingRotates(t *testing.T) {
	c := New(ModeGlobe, 1280, 800)
	c.SetCenter(core.Position{Lon: 0, Lat: 0})

	x0, y0, err := c.Project(10, 0)
	require.NoError(t, err)

	c.SetBearing(90)
	x1, y1, err := c.Project(10, 0)
	require.NoError(t, err)

	// rotation preserves distance from center but moves the point
	d0 := math.Hypot(x0-640, y0-400)
	d1 := math.Hypot(x1-640, y1-400)
	assert.InDelta(t, d0, d1, 1e-6)
	assert.NotEqual(t, [2]float64{x0, y0}, [2]float64{x1, y1})
}

func TestCamera_Project_FlatMercator(t *testing.T) {
	c := New(ModeFlat, 1280, 800)
	c.SetCenter(core.Position{Lon: 0, Lat: 0})
	c.SetZoom(2)

	// east is right, north is up, scaled by the world width
	x, y, err := c.Project(90, 0)
	require.NoError(t, err)
	assert.InDelta(t, 640+256*4/4, x, 0.01)
	assert.InDelta(t, 400.0, y, 0.01)

	_, y, err = c.Project(0, 45)
	require.NoError(t, err)
	assert.Less(t, y, 400.0)
}

func TestCamera_Teardown(t *testing.T) {
	c := New(ModeGlobe, 1280, 800)

	fired := 0
	c.OnRender(func() { fired++ })

	c.Teardown()
	_, _, err := c.Project(0, 0)
	assert.ErrorIs(t, err, ErrTornDown)

	// listeners are gone too
	c.SetZoom(5)
	assert.Zero(t, fired)
}

func TestCamera_OnRender(t *testing.T) {
	c := New(ModeGlobe, 1280, 800)

	fired := 0
	h := c.OnRender(func() { fired++ })

	c.SetZoom(3)
	c.SetBearing(10)
	c.SetCenter(core.Position{Lon: 1, Lat: 1})
	c.SetPitch(5)
	c.SetMode(ModeFlat)
	c.Resize(800, 600)
	assert.Equal(t, 6, fired, "every view change emits a render event")

	h.Cancel()
	c.SetZoom(4)
	assert.Equal(t, 6, fired, "cancelled handles stop receiving")

	// cancelling twice is safe
	h.Cancel()
}

func TestCamera_OnRender_MultipleListeners(t *testing.T) {
	c := New(ModeGlobe, 1280, 800)

	var a, b int
	c.OnRender(func() { a++ })
	hb := c.OnRender(func() { b++ })

	c.SetZoom(3)
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	hb.Cancel()
	c.SetZoom(4)
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)
}
