// Package overlay orchestrates the conflict layer stack: frontline
// geometry colored by recency, marker glyphs gated by zoom, labels with
// co-location suppression, and the battle popup state.
package overlay

import (
	"math"
	"sync"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/rs/zerolog"

	"github.com/conflictwatch/overlay/internal/compose"
	"github.com/conflictwatch/overlay/internal/interaction"
	"github.com/conflictwatch/overlay/internal/lod"
	"github.com/conflictwatch/overlay/internal/recency"
	"github.com/conflictwatch/overlay/internal/symbol"
	"github.com/conflictwatch/overlay/pkg/core"
)

// Category tags a placed glyph with its marker category, the unit of LOD
// gating.
type Category string

const (
	CategoryCapital        Category = "capital"
	CategoryCity           Category = "city"
	CategoryInfrastructure Category = "infrastructure"
	CategoryNaval          Category = "naval"
	CategoryBattle         Category = "battle"
	CategoryNuclear        Category = "nuclear"
	CategoryUnit           Category = "unit"
)

// PlacedGlyph is one marker ready to draw: the glyph descriptor plus the
// gate's label verdict.
type PlacedGlyph struct {
	Category  Category
	Glyph     symbol.Glyph
	ShowLabel bool
}

// LayerStack is the composed, ephemeral view state for one frame of the
// overlay. It holds derived values only; the underlying records stay
// untouched.
type LayerStack struct {
	Frontline geom.GeoJSONFeatureCollection
	// Strokes maps segment id to its four render passes.
	Strokes map[string][4]compose.StrokePass
	Markers []PlacedGlyph
}

// Dependencies holds the composer's collaborators.
type Dependencies struct {
	Cache      *BundleCache
	Classifier *recency.Classifier
	Gate       lod.Gate
	// EpsilonKm is the co-location threshold for label suppression.
	EpsilonKm float64
	Logger    zerolog.Logger
}

// Composer owns the live overlay state and reacts to externally supplied
// zoom/visibility signals.
type Composer struct {
	deps       Dependencies
	compositor *compose.Compositor

	mu         sync.RWMutex
	bundle     *core.ConflictBundle
	visible    bool
	zoom       float64
	showTroops bool
	troopClick func(core.Unit)
	selection  interaction.Selection
}

// NewComposer creates a composer. The overlay starts hidden with no bundle.
func NewComposer(deps Dependencies) *Composer {
	return &Composer{
		deps:       deps,
		compositor: compose.New(deps.Classifier, deps.Logger),
	}
}

// UseBundle swaps in a conflict's entity set atomically and caches it.
// Any battle selection from the previous conflict is cleared; markers from
// two conflicts never mix.
func (c *Composer) UseBundle(b *core.ConflictBundle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundle = b
	c.selection.Close()
	if b != nil && c.deps.Cache != nil {
		c.deps.Cache.Put(b)
	}
}

// UseCached activates a previously loaded conflict from the cache.
func (c *Composer) UseCached(conflictID string) bool {
	if c.deps.Cache == nil {
		return false
	}
	b, ok := c.deps.Cache.Get(conflictID)
	if !ok {
		return false
	}
	c.UseBundle(b)
	return true
}

// SelectedConflictID returns the active conflict's id, empty when no
// bundle is loaded.
func (c *Composer) SelectedConflictID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bundle == nil {
		return ""
	}
	return c.bundle.ConflictID
}

// SetVisible toggles the whole overlay.
func (c *Composer) SetVisible(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = v
}

// SetZoom feeds the externally supplied zoom signal.
func (c *Composer) SetZoom(zoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
}

// SetShowTroops toggles the unit symbol category.
func (c *Composer) SetShowTroops(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showTroops = v
}

// SetTroopClickFunc installs the host's unit click callback.
func (c *Composer) SetTroopClickFunc(fn func(core.Unit)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.troopClick = fn
}

// ClickTroop forwards a unit click to the host callback.
func (c *Composer) ClickTroop(u core.Unit) {
	c.mu.RLock()
	fn := c.troopClick
	c.mu.RUnlock()
	if fn != nil {
		fn(u)
	}
}

// ClickBattle applies a click on a battle site to the selection machine.
func (c *Composer) ClickBattle(site *core.BattleSite) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Click(site)
}

// CloseBattle clears the battle selection.
func (c *Composer) CloseBattle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Close()
}

// SelectedBattle exposes the expanded site for popup rendering by the host.
func (c *Composer) SelectedBattle() *core.BattleSite {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection.Selected()
}

// ConsumeClick reports whether a click lands inside the popup rect and
// must not propagate to the map.
func (c *Composer) ConsumeClick(x, y, popupX, popupY, popupW, popupH float64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection.ConsumeClick(x, y, popupX, popupY, popupW, popupH)
}

// PopupAnchor re-projects the popup anchor; called on every view change.
func (c *Composer) PopupAnchor(project interaction.ProjectFunc) (x, y float64, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection.Anchor(project)
}

// FrontlineSegments exposes the active bundle's frontline for renderers
// that draw geometry directly rather than through GeoJSON.
func (c *Composer) FrontlineSegments() []core.FrontlineSegment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bundle == nil {
		return nil
	}
	return c.bundle.Frontline
}

// BattleAt hit-tests the battle sites against a screen point, returning the
// closest site within tolerancePx or nil.
func (c *Composer) BattleAt(project interaction.ProjectFunc, x, y, tolerancePx float64) *core.BattleSite {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bundle == nil || project == nil {
		return nil
	}
	var best *core.BattleSite
	bestDist := tolerancePx
	for i := range c.bundle.Battles {
		site := &c.bundle.Battles[i]
		sx, sy := project(site.Lon, site.Lat)
		d := math.Hypot(sx-x, sy-y)
		if d <= bestDist {
			best = site
			bestDist = d
		}
	}
	return best
}

// UnitAt hit-tests the troop markers against a screen point.
func (c *Composer) UnitAt(project interaction.ProjectFunc, x, y, tolerancePx float64) (core.Unit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bundle == nil || project == nil || !c.showTroops {
		return core.Unit{}, false
	}
	for _, u := range c.bundle.Units {
		sx, sy := project(u.Lon, u.Lat)
		if math.Hypot(sx-x, sy-y) <= tolerancePx {
			return u, true
		}
	}
	return core.Unit{}, false
}

// Compose builds the layer stack for the current signals. Returns an empty
// stack when the overlay is hidden or no conflict is loaded.
func (c *Composer) Compose() *LayerStack {
	c.mu.RLock()
	bundle, visible, zoom, showTroops := c.bundle, c.visible, c.zoom, c.showTroops
	c.mu.RUnlock()

	stack := &LayerStack{Strokes: make(map[string][4]compose.StrokePass)}
	if !visible || bundle == nil {
		return stack
	}

	vis := c.deps.Gate.Visibility(zoom)

	// frontline and capitals anchor orientation; never gated
	stack.Frontline = c.compositor.Compose(bundle.Frontline)
	for _, seg := range bundle.Frontline {
		stack.Strokes[seg.ID] = compose.StrokePasses(c.deps.Classifier.Classify(seg.AsOf))
	}
	for _, capital := range bundle.Capitals {
		stack.Markers = append(stack.Markers, PlacedGlyph{
			Category:  CategoryCapital,
			Glyph:     symbol.Capital(capital),
			ShowLabel: vis.Labels,
		})
	}

	if !vis.Detail {
		return stack
	}

	for _, city := range bundle.Cities {
		showLabel := vis.Labels &&
			!lod.SuppressCityLabel(city, bundle.Infrastructure, c.deps.EpsilonKm)
		stack.Markers = append(stack.Markers, PlacedGlyph{
			Category:  CategoryCity,
			Glyph:     symbol.City(city),
			ShowLabel: showLabel,
		})
	}
	for _, item := range bundle.Infrastructure {
		stack.Markers = append(stack.Markers, PlacedGlyph{
			Category:  CategoryInfrastructure,
			Glyph:     symbol.Infrastructure(item),
			ShowLabel: vis.Labels,
		})
	}
	for _, n := range bundle.Naval {
		stack.Markers = append(stack.Markers, PlacedGlyph{
			Category:  CategoryNaval,
			Glyph:     symbol.Naval(n),
			ShowLabel: vis.Labels,
		})
	}
	for _, b := range bundle.Battles {
		stack.Markers = append(stack.Markers, PlacedGlyph{
			Category:  CategoryBattle,
			Glyph:     symbol.Battle(b),
			ShowLabel: vis.Labels,
		})
	}
	for _, p := range bundle.NuclearPlants {
		stack.Markers = append(stack.Markers, PlacedGlyph{
			Category:  CategoryNuclear,
			Glyph:     symbol.NuclearPlant(p),
			ShowLabel: vis.Labels,
		})
	}
	if showTroops {
		for _, u := range bundle.Units {
			stack.Markers = append(stack.Markers, PlacedGlyph{
				Category:  CategoryUnit,
				Glyph:     symbol.Unit(u),
				ShowLabel: vis.Labels,
			})
		}
	}

	return stack
}
