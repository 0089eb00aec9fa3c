package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

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
	"github.com/conflictwatch/overlay/internal/symbol"
	"github.com/conflictwatch/overlay/pkg/core"
)

const frameDelta = time.Second / 60

var (
	backgroundColor = color.RGBA{R: 8, G: 10, B: 26, A: 255}
	globeColor      = color.RGBA{R: 13, G: 27, B: 42, A: 255}
	popupBgColor    = color.RGBA{R: 20, G: 24, B: 40, A: 235}
	popupEdgeColor  = color.RGBA{R: 110, G: 130, B: 200, A: 255}
)

// View is the ebiten game driving the overlay engine interactively.
type View struct {
	log      zerolog.Logger
	cam      *camera.Camera
	sampler  *globe.Sampler
	composer *overlay.Composer
	stars    *starfield.Engine
	events   *dispatcher.Dispatcher

	stack         *overlay.LayerStack
	troops        bool
	overlayOn     bool
	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
}

func newView(log zerolog.Logger) (*View, error) {
	classifier := recency.New()
	gate := lod.NewGate(config.GetFloat64("lod.detailZoom"), config.GetFloat64("lod.labelZoom"))

	composer := overlay.NewComposer(overlay.Dependencies{
		Cache:      overlay.NewBundleCache(),
		Classifier: classifier,
		Gate:       gate,
		EpsilonKm:  config.GetFloat64("lod.colocationEpsilonKm"),
		Logger:     log,
	})
	composer.UseBundle(demo.Bundle(time.Now()))
	composer.SetVisible(true)
	composer.SetShowTroops(true)
	composer.SetTroopClickFunc(func(u core.Unit) {
		log.Info().Str("unit", u.Name).Str("sector", u.Sector).Msg("Troop clicked")
	})

	cam := camera.New(camera.ModeGlobe, screenWidth, screenHeight)
	cam.SetCenter(core.Position{Lon: 31.0, Lat: 49.0})
	cam.SetZoom(2.5)

	sampler := globe.NewSampler(
		config.GetFloat64("globe.sampleOffsetDeg"),
		config.GetFloat64("globe.minRadiusPx"),
		config.GetFloat64("globe.maxRadiusPx"),
		log,
	)

	events, err := dispatcher.New(logging.NewDispatcherLogger(log))
	if err != nil {
		return nil, err
	}
	events.Register(dispatcher.EventRender, func(e dispatcher.Event) error {
		sampler.Sample(cam)
		return nil
	})
	events.Register(dispatcher.EventZoom, func(e dispatcher.Event) error {
		composer.SetZoom(e.Zoom)
		return nil
	})
	cam.OnRender(func() {
		events.Dispatch(dispatcher.Event{Name: dispatcher.EventRender, Timestamp: time.Now()})
	})

	var stars *starfield.Engine
	if config.GetBool("starfield.enabled") {
		stars = starfield.NewEngine(starfield.Config{
			Layers:        starfield.DefaultLayers,
			Map:           cam,
			Radius:        sampler.Radius,
			ReducedMotion: config.GetBool("starfield.reducedMotion"),
			Logger:        log,
		})
		stars.Resize(screenWidth, screenHeight, 1)
	}

	v := &View{
		log:       log,
		cam:       cam,
		sampler:   sampler,
		composer:  composer,
		stars:     stars,
		events:    events,
		troops:    true,
		overlayOn: true,
		prevKeys:  make(map[ebiten.Key]bool),
	}
	composer.SetZoom(cam.Zoom())
	sampler.Sample(cam)
	return v, nil
}

// project adapts the camera to the interaction.ProjectFunc shape, hiding
// the error (hits outside a live projection just miss).
func (v *View) project(lon, lat float64) (float64, float64) {
	x, y, err := v.cam.Project(lon, lat)
	if err != nil {
		return math.Inf(1), math.Inf(1)
	}
	return x, y
}

// keyPressedOnce is edge-triggered key detection.
func (v *View) keyPressedOnce(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := v.prevKeys[k]
	v.prevKeys[k] = down
	return down && !was
}

func (v *View) Update() error {
	panStep := 2.0 / math.Exp2(v.cam.Zoom()-2)
	center := v.cam.Center()
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		center.Lon -= panStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		center.Lon += panStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		center.Lat = math.Min(center.Lat+panStep, 85)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		center.Lat = math.Max(center.Lat-panStep, -85)
	}
	if center != v.cam.Center() {
		v.cam.SetCenter(center)
	}

	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		v.cam.SetBearing(v.cam.Bearing() - 0.5)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		v.cam.SetBearing(v.cam.Bearing() + 0.5)
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		v.cam.SetPitch(math.Min(v.cam.Pitch()+0.5, 60))
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		v.cam.SetPitch(math.Max(v.cam.Pitch()-0.5, 0))
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		zoom := math.Min(math.Max(v.cam.Zoom()+wy*0.15, 1), 10)
		v.cam.SetZoom(zoom)
		v.events.Dispatch(dispatcher.Event{Name: dispatcher.EventZoom, Zoom: zoom, Timestamp: time.Now()})
	}

	if v.keyPressedOnce(ebiten.KeyG) {
		if v.cam.IsGlobe() {
			v.cam.SetMode(camera.ModeFlat)
		} else {
			v.cam.SetMode(camera.ModeGlobe)
		}
	}
	if v.keyPressedOnce(ebiten.KeyT) {
		v.troops = !v.troops
		v.composer.SetShowTroops(v.troops)
	}
	if v.keyPressedOnce(ebiten.KeyO) {
		v.overlayOn = !v.overlayOn
		v.composer.SetVisible(v.overlayOn)
	}
	if v.keyPressedOnce(ebiten.KeyEscape) {
		v.composer.CloseBattle()
	}

	v.handleClick()

	if v.stars != nil {
		v.stars.Advance(frameDelta)
	}
	v.stack = v.composer.Compose()
	return nil
}

func (v *View) handleClick() {
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	clicked := down && !v.prevMouseLeft
	v.prevMouseLeft = down
	if !clicked {
		return
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	// clicks inside the popup never reach the map
	if px, py, w, h, ok := v.popupRect(); ok && v.composer.ConsumeClick(x, y, px, py, w, h) {
		return
	}

	if site := v.composer.BattleAt(v.project, x, y, 10); site != nil {
		v.composer.ClickBattle(site)
		return
	}
	if unit, ok := v.composer.UnitAt(v.project, x, y, 10); ok {
		v.composer.ClickTroop(unit)
	}
}

func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	// globe disc beneath the overlay; the starfield clips itself to the
	// same sampled radius
	radius := v.sampler.Radius.Load()
	if radius > 0 {
		vector.FillCircle(screen, screenWidth/2, screenHeight/2, float32(radius), globeColor, true)
	}

	if v.stars != nil {
		v.stars.Render(&ebitenCanvas{dst: screen})
	}

	if v.stack != nil {
		v.drawFrontline(screen)
		v.drawMarkers(screen)
	}
	v.drawPopup(screen)

	mode := "globe"
	if !v.cam.IsGlobe() {
		mode = "flat"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"zoom %.2f  bearing %.0f  pitch %.0f  mode %s  radius %.0fpx",
		v.cam.Zoom(), v.cam.Bearing(), v.cam.Pitch(), mode, radius))
}

// drawFrontline renders every segment four times: glow, side accents at
// symmetric pixel offsets, and the recency-colored core.
func (v *View) drawFrontline(screen *ebiten.Image) {
	for _, seg := range v.composer.FrontlineSegments() {
		passes, ok := v.stack.Strokes[seg.ID]
		if !ok {
			continue
		}
		// one unprojectable point drops this segment, not the frame
		pts, ok := projectPolyline(v.cam.Project, seg.Points)
		if !ok {
			continue
		}
		for _, pass := range passes {
			clr := hexColor(pass.Color, pass.Alpha)
			for i := 0; i+1 < len(pts); i++ {
				x0, y0 := pts[i][0], pts[i][1]
				x1, y1 := pts[i+1][0], pts[i+1][1]
				// perpendicular screen-pixel offset, never baked into geometry
				nx, ny := perpendicular(x0, y0, x1, y1)
				ox, oy := nx*pass.OffsetPx, ny*pass.OffsetPx
				vector.StrokeLine(screen,
					float32(x0+ox), float32(y0+oy),
					float32(x1+ox), float32(y1+oy),
					float32(pass.WidthPx), clr, true)
			}
		}
	}
}

func (v *View) drawMarkers(screen *ebiten.Image) {
	for _, m := range v.stack.Markers {
		x, y, err := v.cam.Project(m.Glyph.Lon, m.Glyph.Lat)
		if err != nil {
			continue
		}
		drawGlyph(screen, m.Glyph, float32(x), float32(y))
		if m.ShowLabel && m.Glyph.Label != "" {
			ebitenutil.DebugPrintAt(screen, m.Glyph.Label, int(x)+8, int(y)-6)
		}
	}
}

// drawGlyph paints one marker with the primitive set that covers every
// shape: rects, circles, and stroked outlines.
func drawGlyph(screen *ebiten.Image, g symbol.Glyph, x, y float32) {
	fill := hexColor(g.Scheme.Fill, 1)
	border := hexColor(g.Scheme.Border, 1)

	switch g.Shape {
	case symbol.ShapeRect:
		vector.FillRect(screen, x-8, y-5, 16, 10, fill, true)
		vector.StrokeRect(screen, x-8, y-5, 16, 10, 1, border, true)
		if g.Pips != "" {
			ebitenutil.DebugPrintAt(screen, g.Pips, int(x)-4, int(y)-22)
		}
	case symbol.ShapeCircle:
		vector.FillCircle(screen, x, y, 4, fill, true)
		vector.StrokeCircle(screen, x, y, 4, 1, border, true)
	case symbol.ShapeDiamond:
		vector.StrokeLine(screen, x, y-6, x+6, y, 1.5, border, true)
		vector.StrokeLine(screen, x+6, y, x, y+6, 1.5, border, true)
		vector.StrokeLine(screen, x, y+6, x-6, y, 1.5, border, true)
		vector.StrokeLine(screen, x-6, y, x, y-6, 1.5, border, true)
		vector.FillCircle(screen, x, y, 2.5, fill, true)
	case symbol.ShapeTriangle:
		vector.StrokeLine(screen, x-5, y+4, x+5, y+4, 1.5, border, true)
		vector.StrokeLine(screen, x+5, y+4, x, y-5, 1.5, border, true)
		vector.StrokeLine(screen, x, y-5, x-5, y+4, 1.5, border, true)
		vector.FillCircle(screen, x, y, 2, fill, true)
	case symbol.ShapeStar:
		vector.FillCircle(screen, x, y, 3, fill, true)
		vector.StrokeLine(screen, x-6, y, x+6, y, 1, border, true)
		vector.StrokeLine(screen, x, y-6, x, y+6, 1, border, true)
		vector.StrokeLine(screen, x-4, y-4, x+4, y+4, 1, border, true)
		vector.StrokeLine(screen, x-4, y+4, x+4, y-4, 1, border, true)
	}
}

// popupRect computes the popup's screen rect from the selected site's
// re-projected anchor.
func (v *View) popupRect() (x, y, w, h float64, ok bool) {
	ax, ay, ok := v.composer.PopupAnchor(v.project)
	if !ok {
		return 0, 0, 0, 0, false
	}
	const pw, ph = 280, 128
	return ax + 12, ay - ph/2, pw, ph, true
}

func (v *View) drawPopup(screen *ebiten.Image) {
	site := v.composer.SelectedBattle()
	if site == nil {
		return
	}
	x, y, w, h, ok := v.popupRect()
	if !ok {
		return
	}
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), popupBgColor, true)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, popupEdgeColor, true)

	lines := []string{
		site.Name,
		site.Date.Format("2006-01-02") + "  " + site.Result,
		"A: " + site.SideA.Commander + "  " + site.SideA.Troops + "  (" + site.SideA.Casualties + ")",
		"B: " + site.SideB.Commander + "  " + site.SideB.Troops + "  (" + site.SideB.Casualties + ")",
		site.Significance,
		site.Note,
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(x)+8, int(y)+6+i*18)
	}
}

func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// perpendicular returns the unit normal of the segment (x0,y0)-(x1,y1).
// projectPolyline projects every point of a segment to screen space.
// Returns ok=false when any point fails to project, so the caller skips
// just that segment.
func projectPolyline(project func(lon, lat float64) (float64, float64, error), points []core.Position) ([][2]float64, bool) {
	pts := make([][2]float64, 0, len(points))
	for _, p := range points {
		x, y, err := project(p.Lon, p.Lat)
		if err != nil {
			return nil, false
		}
		pts = append(pts, [2]float64{x, y})
	}
	return pts, true
}

func perpendicular(x0, y0, x1, y1 float64) (float64, float64) {
	dx, dy := x1-x0, y1-y0
	n := math.Hypot(dx, dy)
	if n == 0 {
		return 0, 0
	}
	return -dy / n, dx / n
}

// ebitenCanvas adapts an ebiten image to the starfield Canvas.
type ebitenCanvas struct {
	dst *ebiten.Image
}

func (c *ebitenCanvas) FillCircle(x, y, r float64, clr string, alpha float64) {
	vector.FillCircle(c.dst, float32(x), float32(y), float32(r), hexColor(clr, alpha), false)
}

// hexColor parses "#rrggbb" into a premultiplied RGBA with the given alpha.
func hexColor(s string, alpha float64) color.RGBA {
	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		r = hexByte(s[1], s[2])
		g = hexByte(s[3], s[4])
		b = hexByte(s[5], s[6])
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(r) * alpha),
		G: uint8(float64(g) * alpha),
		B: uint8(float64(b) * alpha),
		A: uint8(255 * alpha),
	}
}

func hexByte(hi, lo byte) uint8 {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
