package overlay

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conflictwatch/overlay/internal/lod"
	"github.com/conflictwatch/overlay/internal/recency"
	"github.com/conflictwatch/overlay/pkg/core"
)

var overlayNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func testBundle() *core.ConflictBundle {
	return &core.ConflictBundle{
		ConflictID: "test-east",
		Name:       "Test Conflict",
		Frontline: []core.FrontlineSegment{
			{
				ID:     "fl-fresh",
				Label:  "Northern axis",
				AsOf:   overlayNow.AddDate(0, 0, -3),
				Status: core.StatusActive,
				Points: []core.Position{{Lon: 30, Lat: 51}, {Lon: 31, Lat: 51.2}},
			},
			{
				ID:     "fl-aging",
				Label:  "Southern axis",
				AsOf:   overlayNow.AddDate(0, 0, -28),
				Status: core.StatusStable,
				Points: []core.Position{{Lon: 35, Lat: 47}, {Lon: 36, Lat: 46.8}},
			},
		},
		Units: []core.Unit{
			{ID: "u-1", Side: core.SideA, Type: core.UnitInfantry, Echelon: core.EchelonBrigade, Name: "1st Bde", Lat: 50.0, Lon: 30.2},
			{ID: "u-2", Side: core.SideB, Type: core.UnitArmor, Echelon: core.EchelonDivision, Name: "2nd Div", Lat: 48.0, Lon: 38.0},
		},
		Battles: []core.BattleSite{
			{ID: "b-1", Name: "Battle One", Lat: 48.5, Lon: 37.9},
			{ID: "b-2", Name: "Battle Two", Lat: 47.1, Lon: 37.5},
		},
		Infrastructure: []core.InfrastructureItem{
			{ID: "i-1", Side: core.SideA, Type: "rail", Name: "Rail hub", Lat: 50.4505, Lon: 30.5240},
		},
		Naval: []core.NavalPosition{
			{ID: "n-1", Side: core.SideB, Type: "fleet", Name: "Fleet", Lat: 44.6, Lon: 33.5},
		},
		NuclearPlants: []core.NuclearPlant{
			{ID: "np-1", Name: "Plant", Lat: 47.5, Lon: 34.6},
		},
		Cities: []core.CityMarker{
			// co-located with i-1: label suppressed, icon kept
			{ID: "c-1", Name: "Kyiv", Lat: 50.4501, Lon: 30.5234},
			{ID: "c-2", Name: "Kharkiv", Lat: 49.99, Lon: 36.23},
		},
		Capitals: []core.CapitalMarker{
			{ID: "cap-1", Name: "Capital", Lat: 50.45, Lon: 30.52},
		},
	}
}

func newTestComposer() (*Composer, *recency.Classifier) {
	classifier := &recency.Classifier{Now: func() time.Time { return overlayNow }}
	c := NewComposer(Dependencies{
		Cache:      NewBundleCache(),
		Classifier: classifier,
		Gate:       lod.NewGate(4, 6),
		EpsilonKm:  1.0,
		Logger:     zerolog.Nop(),
	})
	return c, classifier
}

func markersByCategory(stack *LayerStack) map[Category][]PlacedGlyph {
	out := make(map[Category][]PlacedGlyph)
	for _, m := range stack.Markers {
		out[m.Category] = append(out[m.Category], m)
	}
	return out
}

func TestComposer_Compose_HiddenOrEmpty(t *testing.T) {
	c, _ := newTestComposer()

	// no bundle yet
	c.SetVisible(true)
	stack := c.Compose()
	assert.Empty(t, stack.Markers)
	assert.Empty(t, stack.Frontline)

	// bundle loaded but overlay hidden
	c.UseBundle(testBundle())
	c.SetVisible(false)
	stack = c.Compose()
	assert.Empty(t, stack.Markers)
	assert.Empty(t, stack.Frontline)
}

func TestComposer_Compose_WorldZoom(t *testing.T) {
	c, _ := newTestComposer()
	c.UseBundle(testBundle())
	c.SetVisible(true)
	c.SetZoom(2)

	stack := c.Compose()

	// frontline and capitals always render
	assert.Len(t, stack.Frontline, 2)
	byCat := markersByCategory(stack)
	assert.Len(t, byCat[CategoryCapital], 1)

	// everything gated is absent below the detail zoom
	assert.Empty(t, byCat[CategoryCity])
	assert.Empty(t, byCat[CategoryInfrastructure])
	assert.Empty(t, byCat[CategoryNaval])
	assert.Empty(t, byCat[CategoryBattle])
	assert.Empty(t, byCat[CategoryNuclear])
	assert.Empty(t, byCat[CategoryUnit])

	// labels are off for the capital too
	assert.False(t, byCat[CategoryCapital][0].ShowLabel)
}

func TestComposer_Compose_DetailZoom(t *testing.T) {
	c, _ := newTestComposer()
	c.UseBundle(testBundle())
	c.SetVisible(true)
	c.SetShowTroops(true)
	c.SetZoom(5)

	byCat := markersByCategory(c.Compose())

	assert.Len(t, byCat[CategoryCity], 2)
	assert.Len(t, byCat[CategoryInfrastructure], 1)
	assert.Len(t, byCat[CategoryNaval], 1)
	assert.Len(t, byCat[CategoryBattle], 2)
	assert.Len(t, byCat[CategoryNuclear], 1)
	assert.Len(t, byCat[CategoryUnit], 2)

	// zoom 5 sits between detail and label thresholds
	for _, m := range byCat[CategoryCity] {
		assert.False(t, m.ShowLabel)
	}
}

func TestComposer_Compose_LabelZoomSuppressesColocatedCity(t *testing.T) {
	c, _ := newTestComposer()
	c.UseBundle(testBundle())
	c.SetVisible(true)
	c.SetZoom(7)

	byCat := markersByCategory(c.Compose())

	labels := map[string]bool{}
	for _, m := range byCat[CategoryCity] {
		labels[m.Glyph.Label] = m.ShowLabel
	}
	// the icon renders either way; only the duplicate text goes
	require.Len(t, labels, 2)
	assert.False(t, labels["Kyiv"], "city co-located with infrastructure drops its label")
	assert.True(t, labels["Kharkiv"])

	// the infrastructure label itself stays
	require.Len(t, byCat[CategoryInfrastructure], 1)
	assert.True(t, byCat[CategoryInfrastructure][0].ShowLabel)
}

func TestComposer_Compose_TroopToggle(t *testing.T) {
	c, _ := newTestComposer()
	c.UseBundle(testBundle())
	c.SetVisible(true)
	c.SetZoom(7)

	c.SetShowTroops(false)
	byCat := markersByCategory(c.Compose())
	assert.Empty(t, byCat[CategoryUnit])
	assert.NotEmpty(t, byCat[CategoryBattle], "other categories are unaffected")

	c.SetShowTroops(true)
	byCat = markersByCategory(c.Compose())
	assert.Len(t, byCat[CategoryUnit], 2)
}

func TestComposer_Compose_RecencyReactsToClock(t *testing.T) {
	c, classifier := newTestComposer()
	c.UseBundle(testBundle())
	c.SetVisible(true)
	c.SetZoom(2)

	colorOf := func(stack *LayerStack, id string) string {
		for _, f := range stack.Frontline {
			if f.ID == id {
				return f.Properties["color"].(string)
			}
		}
		t.Fatalf("segment %s not composed", id)
		return ""
	}

	stack := c.Compose()
	assert.Equal(t, recency.TokenWeek.Hex(), colorOf(stack, "fl-fresh"))
	assert.Equal(t, recency.TokenMonth.Hex(), colorOf(stack, "fl-aging"))

	// four days later fl-aging crosses the 30-day boundary; fl-fresh, now
	// exactly 7 days old, stays in its bucket
	classifier.Now = func() time.Time { return overlayNow.AddDate(0, 0, 4) }
	stack = c.Compose()
	assert.Equal(t, recency.TokenWeek.Hex(), colorOf(stack, "fl-fresh"))
	assert.Equal(t, recency.TokenTwoMonths.Hex(), colorOf(stack, "fl-aging"))
}

func TestComposer_Compose_StrokesPerSegment(t *testing.T) {
	c, _ := newTestComposer()
	c.UseBundle(testBundle())
	c.SetVisible(true)

	stack := c.Compose()
	require.Contains(t, stack.Strokes, "fl-fresh")
	require.Contains(t, stack.Strokes, "fl-aging")

	// core pass carries each segment's own recency color
	assert.Equal(t, recency.TokenWeek.Hex(), stack.Strokes["fl-fresh"][2].Color)
	assert.Equal(t, recency.TokenMonth.Hex(), stack.Strokes["fl-aging"][2].Color)
}

func TestComposer_UseBundle_SwapsAtomically(t *testing.T) {
	c, _ := newTestComposer()
	first := testBundle()
	c.UseBundle(first)
	c.SetVisible(true)
	c.SetZoom(7)

	// expand a battle from the first conflict
	c.ClickBattle(&first.Battles[0])
	require.NotNil(t, c.SelectedBattle())

	second := &core.ConflictBundle{
		ConflictID: "other",
		Capitals:   []core.CapitalMarker{{ID: "cap-x", Name: "Other Capital"}},
	}
	c.UseBundle(second)

	assert.Nil(t, c.SelectedBattle(), "selection from the old conflict must not survive the swap")
	assert.Equal(t, "other", c.SelectedConflictID())

	byCat := markersByCategory(c.Compose())
	require.Len(t, byCat[CategoryCapital], 1)
	assert.Equal(t, "Other Capital", byCat[CategoryCapital][0].Glyph.Label)
	assert.Empty(t, byCat[CategoryBattle], "no markers from the old conflict may remain")
}

func TestComposer_UseCached(t *testing.T) {
	c, _ := newTestComposer()
	c.UseBundle(testBundle())

	other := &core.ConflictBundle{ConflictID: "other"}
	c.UseBundle(other)
	require.Equal(t, "other", c.SelectedConflictID())

	// switching back hits the cache
	assert.True(t, c.UseCached("test-east"))
	assert.Equal(t, "test-east", c.SelectedConflictID())

	assert.False(t, c.UseCached("never-loaded"))
	assert.Equal(t, "test-east", c.SelectedConflictID(), "a cache miss must not disturb the active bundle")
}

func TestComposer_BattleSelection(t *testing.T) {
	c, _ := newTestComposer()
	bundle := testBundle()
	c.UseBundle(bundle)

	b1 := &bundle.Battles[0]
	b2 := &bundle.Battles[1]

	c.ClickBattle(b1)
	require.NotNil(t, c.SelectedBattle())
	assert.Equal(t, "b-1", c.SelectedBattle().ID)

	// clicking another site swaps directly
	c.ClickBattle(b2)
	assert.Equal(t, "b-2", c.SelectedBattle().ID)

	// clicking the expanded site closes it
	c.ClickBattle(b2)
	assert.Nil(t, c.SelectedBattle())

	c.ClickBattle(b1)
	c.CloseBattle()
	assert.Nil(t, c.SelectedBattle())
}

func TestComposer_PopupAnchor(t *testing.T) {
	c, _ := newTestComposer()
	bundle := testBundle()
	c.UseBundle(bundle)

	project := func(lon, lat float64) (float64, float64) { return lon * 2, lat * 2 }

	_, _, ok := c.PopupAnchor(project)
	assert.False(t, ok)

	c.ClickBattle(&bundle.Battles[0])
	x, y, ok := c.PopupAnchor(project)
	require.True(t, ok)
	assert.Equal(t, bundle.Battles[0].Lon*2, x)
	assert.Equal(t, bundle.Battles[0].Lat*2, y)
}

func TestComposer_ConsumeClick(t *testing.T) {
	c, _ := newTestComposer()
	bundle := testBundle()
	c.UseBundle(bundle)

	// no popup open, nothing to consume
	assert.False(t, c.ConsumeClick(50, 50, 0, 0, 280, 128))

	c.ClickBattle(&bundle.Battles[0])
	assert.True(t, c.ConsumeClick(50, 50, 0, 0, 280, 128))
	assert.False(t, c.ConsumeClick(300, 50, 0, 0, 280, 128), "outside the rect")

	c.CloseBattle()
	assert.False(t, c.ConsumeClick(50, 50, 0, 0, 280, 128))
}

func TestComposer_BattleAt(t *testing.T) {
	c, _ := newTestComposer()
	bundle := testBundle()
	c.UseBundle(bundle)

	// identity-ish projection: 10px per degree
	project := func(lon, lat float64) (float64, float64) { return lon * 10, lat * 10 }

	// exactly on b-1
	site := c.BattleAt(project, 379, 485, 8)
	require.NotNil(t, site)
	assert.Equal(t, "b-1", site.ID)

	// nothing within tolerance
	assert.Nil(t, c.BattleAt(project, 100, 100, 8))

	// both sites in range: the closer one wins
	site = c.BattleAt(project, 376, 478, 10000)
	require.NotNil(t, site)
	assert.Equal(t, "b-2", site.ID)
}

func TestComposer_UnitAt(t *testing.T) {
	c, _ := newTestComposer()
	bundle := testBundle()
	c.UseBundle(bundle)
	c.SetShowTroops(true)

	project := func(lon, lat float64) (float64, float64) { return lon * 10, lat * 10 }

	u, ok := c.UnitAt(project, 302, 500, 8)
	require.True(t, ok)
	assert.Equal(t, "u-1", u.ID)

	// hidden troops are not clickable
	c.SetShowTroops(false)
	_, ok = c.UnitAt(project, 302, 500, 8)
	assert.False(t, ok)
}

func TestComposer_ClickTroop(t *testing.T) {
	c, _ := newTestComposer()

	var clicked []string
	c.SetTroopClickFunc(func(u core.Unit) { clicked = append(clicked, u.ID) })

	c.ClickTroop(core.Unit{ID: "u-9"})
	assert.Equal(t, []string{"u-9"}, clicked)

	// no callback installed is a no-op
	c.SetTroopClickFunc(nil)
	assert.NotPanics(t, func() { c.ClickTroop(core.Unit{ID: "u-9"}) })
}

func TestBundleCache(t *testing.T) {
	cache := NewBundleCache()

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	b := &core.ConflictBundle{ConflictID: "one"}
	cache.Put(b)

	got, ok := cache.Get("one")
	require.True(t, ok)
	assert.Same(t, b, got)

	cache.Invalidate("one")
	_, ok = cache.Get("one")
	assert.False(t, ok)

	cache.Put(b)
	cache.Put(&core.ConflictBundle{ConflictID: "two"})
	cache.Reset()
	_, ok = cache.Get("one")
	assert.False(t, ok)
	_, ok = cache.Get("two")
	assert.False(t, ok)
}
