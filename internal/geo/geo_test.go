package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conflictwatch/overlay/pkg/core"
)

func TestLineString_PreservesOrder(t *testing.T) {
	points := []core.Position{
		{Lon: 30.0, Lat: 50.0},
		{Lon: 30.5, Lat: 50.2},
		{Lon: 31.0, Lat: 49.9},
	}

	ls, err := LineString(points)
	require.NoError(t, err)

	seq := ls.Coordinates()
	require.Equal(t, len(points), seq.Length())
	for i, p := range points {
		xy := seq.GetXY(i)
		assert.Equal(t, p.Lon, xy.X, "lon at index %d", i)
		assert.Equal(t, p.Lat, xy.Y, "lat at index %d", i)
	}
}

func TestLineString_TooFewPoints(t *testing.T) {
	_, err := LineString(nil)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = LineString([]core.Position{{Lon: 30, Lat: 50}})
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestPoint(t *testing.T) {
	p, err := Point(core.Position{Lon: 30.52, Lat: 50.45})
	require.NoError(t, err)
	coord, ok := p.Coordinates()
	require.True(t, ok)
	assert.Equal(t, 30.52, coord.XY.X)
	assert.Equal(t, 50.45, coord.XY.Y)
}

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name    string
		a, b    core.Position
		wantKm  float64
		within  float64
	}{
		{
			name:   "identical points",
			a:      core.Position{Lon: 30, Lat: 50},
			b:      core.Position{Lon: 30, Lat: 50},
			wantKm: 0,
			within: 0.001,
		},
		{
			name:   "one degree latitude",
			a:      core.Position{Lon: 30, Lat: 50},
			b:      core.Position{Lon: 30, Lat: 51},
			wantKm: 111.2,
			within: 1.0,
		},
		{
			name:   "one degree longitude at 60N is half scale",
			a:      core.Position{Lon: 30, Lat: 60},
			b:      core.Position{Lon: 31, Lat: 60},
			wantKm: 55.6,
			within: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantKm, DistanceKm(tt.a, tt.b), tt.within)
		})
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := core.Position{Lon: 30.52, Lat: 50.45}
	b := core.Position{Lon: 36.23, Lat: 49.99}
	assert.Equal(t, DistanceKm(a, b), DistanceKm(b, a))
}

func TestSameLocation(t *testing.T) {
	base := core.Position{Lon: 30.5234, Lat: 50.4501}
	near := core.Position{Lon: 30.5240, Lat: 50.4505} // tens of meters away
	far := core.Position{Lon: 30.62, Lat: 50.45}      // several km away

	assert.True(t, SameLocation(base, near, 1.0))
	assert.False(t, SameLocation(base, far, 1.0))

	// widening epsilon pulls the far point in
	assert.True(t, SameLocation(base, far, 10.0))
}
