package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conflictwatch/overlay/pkg/core"
)

var (
	siteA = &core.BattleSite{ID: "b-1", Name: "Battle A", Lat: 48.5, Lon: 37.9}
	siteB = &core.BattleSite{ID: "b-2", Name: "Battle B", Lat: 47.1, Lon: 37.5}
)

func TestSelection_ZeroValueIsIdle(t *testing.T) {
	var s Selection
	assert.Nil(t, s.Selected())
}

func TestSelection_ClickSelects(t *testing.T) {
	var s Selection

	s.Click(siteA)
	require.NotNil(t, s.Selected())
	assert.Equal(t, "b-1", s.Selected().ID)
}

func TestSelection_ClickSameSiteCloses(t *testing.T) {
	var s Selection

	s.Click(siteA)
	s.Click(siteA)
	assert.Nil(t, s.Selected())
}

func TestSelection_ClickOtherSiteSwaps(t *testing.T) {
	var s Selection

	s.Click(siteA)
	s.Click(siteB)

	require.NotNil(t, s.Selected())
	assert.Equal(t, "b-2", s.Selected().ID)

	// swap lands in the normal selected state: clicking again closes
	s.Click(siteB)
	assert.Nil(t, s.Selected())
}

func TestSelection_SwapMatchesByID(t *testing.T) {
	var s Selection

	s.Click(siteA)

	// a distinct pointer with the same ID still counts as the same site
	copyOfA := &core.BattleSite{ID: "b-1", Name: "Battle A"}
	s.Click(copyOfA)
	assert.Nil(t, s.Selected())
}

func TestSelection_Close(t *testing.T) {
	var s Selection

	s.Close() // idle close is a no-op
	assert.Nil(t, s.Selected())

	s.Click(siteA)
	s.Close()
	assert.Nil(t, s.Selected())
}

func TestSelection_Anchor(t *testing.T) {
	var s Selection

	project := func(lon, lat float64) (float64, float64) {
		return lon * 10, lat * 10
	}

	_, _, ok := s.Anchor(project)
	assert.False(t, ok, "idle selection must not produce an anchor")

	s.Click(siteA)
	x, y, ok := s.Anchor(project)
	require.True(t, ok)
	assert.Equal(t, siteA.Lon*10, x)
	assert.Equal(t, siteA.Lat*10, y)

	// a different projection moves the anchor with the view
	zoomed := func(lon, lat float64) (float64, float64) {
		return lon * 20, lat * 20
	}
	x2, _, ok := s.Anchor(zoomed)
	require.True(t, ok)
	assert.Equal(t, 2*x, x2)
}

func TestSelection_Anchor_NilProject(t *testing.T) {
	var s Selection
	s.Click(siteA)

	_, _, ok := s.Anchor(nil)
	assert.False(t, ok)
}

func TestSelection_ConsumeClick(t *testing.T) {
	var s Selection

	// no popup open, nothing consumes
	assert.False(t, s.ConsumeClick(10, 10, 0, 0, 100, 100))

	s.Click(siteA)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 50, true},
		{"top-left corner", 0, 0, true},
		{"right edge exclusive", 100, 50, false},
		{"bottom edge exclusive", 50, 100, false},
		{"outside", 150, 150, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ConsumeClick(tt.x, tt.y, 0, 0, 100, 100))
		})
	}
}
