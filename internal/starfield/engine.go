package starfield

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/conflictwatch/overlay/internal/globe"
	"github.com/conflictwatch/overlay/internal/signal"
)

// Canvas is the drawing surface the engine paints stars onto. Coordinates
// are device pixels.
type Canvas interface {
	FillCircle(x, y, r float64, color string, alpha float64)
}

// FrameHandle cancels a pending scheduled frame.
type FrameHandle interface {
	Cancel()
}

// Scheduler schedules one animation frame. The engine reschedules itself
// after every frame; tests supply a synchronous scheduler.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
}

// parallaxScale converts camera bearing/pitch degrees into pixel drift
// before the per-layer speed factor is applied.
const parallaxScale = 2.0

// maxPixelRatio caps the device pixel ratio the engine renders at.
const maxPixelRatio = 2.0

// Config wires the engine's collaborators.
type Config struct {
	Layers        [4]LayerTemplate
	Map           globe.Map              // bearing/pitch/globe-mode source
	Radius        signal.Reader[float64] // sampled globe radius, 0 = no mask
	Canvas        Canvas
	Scheduler     Scheduler
	ReducedMotion bool // checked once at Start; the loop never begins when set
	Seed          int64
	Logger        zerolog.Logger
}

// Engine owns all particle state. Single-threaded and frame-synchronized:
// every method is expected on the animation goroutine.
type Engine struct {
	cfg    Config
	layers [4][]Star
	width  float64 // device px
	height float64
	rng    *rand.Rand

	running   bool
	pending   FrameHandle
	timeAccum float64
	lastFrame time.Time
}

// NewEngine builds an engine; Resize must run before the first frame.
func NewEngine(cfg Config) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Resize regenerates every layer for a new container size. Previous
// particle state is discarded outright; nothing is interpolated across a
// resize. pixelRatio is capped at 2x.
func (e *Engine) Resize(width, height int, pixelRatio float64) {
	if pixelRatio > maxPixelRatio {
		pixelRatio = maxPixelRatio
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	e.width = float64(width) * pixelRatio
	e.height = float64(height) * pixelRatio
	for i, tpl := range e.cfg.Layers {
		e.layers[i] = generate(tpl, e.width, e.height, e.rng)
	}
}

// Start begins the self-rescheduling loop. It does not start at all under
// a reduced-motion preference. Idempotent while running.
func (e *Engine) Start() {
	if e.running || e.cfg.ReducedMotion || e.cfg.Scheduler == nil {
		return
	}
	e.running = true
	e.lastFrame = time.Time{}
	e.schedule()
}

// Stop cancels any pending frame and halts the loop. Idempotent, and
// required on unmount so a dead overlay stops consuming CPU.
func (e *Engine) Stop() {
	e.running = false
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
}

// Running reports whether the loop is live.
func (e *Engine) Running() bool {
	return e.running
}

// StarCount returns the total active star count across layers.
func (e *Engine) StarCount() int {
	n := 0
	for _, l := range e.layers {
		n += len(l)
	}
	return n
}

func (e *Engine) schedule() {
	e.pending = e.cfg.Scheduler.RequestFrame(e.frame)
}

// frame runs one animation step and reschedules. A panicking frame stops
// the loop instead of spinning on a repeating exception.
func (e *Engine) frame(now time.Time) {
	if !e.running {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.cfg.Logger.Error().Interface("panic", r).Msg("Starfield frame panicked, stopping loop")
			e.Stop()
			return
		}
		if e.running {
			e.schedule()
		}
	}()

	if !e.lastFrame.IsZero() {
		e.timeAccum += now.Sub(e.lastFrame).Seconds()
	}
	e.lastFrame = now

	e.Render(e.cfg.Canvas)
}

// Render draws the current particle state. Exposed separately from the
// loop so a host that already owns a draw cycle (the ebiten viewer) can
// drive it directly.
func (e *Engine) Render(canvas Canvas) {
	if canvas == nil || e.width <= 0 || e.height <= 0 {
		return
	}

	offBase := e.parallaxBase()
	radius := 0.0
	if e.cfg.Radius != nil {
		radius = e.cfg.Radius.Load()
	}
	cx, cy := e.width/2, e.height/2

	for li, stars := range e.layers {
		speed := e.cfg.Layers[li].Speed
		offX := offBase.x * speed
		offY := offBase.y * speed
		for i := range stars {
			s := &stars[i]
			x := wrap(s.X+offX, e.width)
			y := wrap(s.Y+offY, e.height)

			// never leak onto the globe surface
			if radius > 0 && math.Hypot(x-cx, y-cy) <= radius {
				continue
			}

			twinkle := 0.5 + 0.5*math.Sin(e.timeAccum*s.TwinkleSpeed+s.TwinklePhase)
			canvas.FillCircle(x, y, s.Size, s.Color, s.BaseOpacity*twinkle)
		}
	}
}

type offset struct{ x, y float64 }

// parallaxBase derives the scroll offset from the camera. Flat projection
// mode applies zero offset.
func (e *Engine) parallaxBase() offset {
	m := e.cfg.Map
	if m == nil || !m.IsGlobe() {
		return offset{}
	}
	return offset{
		x: m.Bearing() * parallaxScale,
		y: m.Pitch() * parallaxScale,
	}
}

// Advance bumps the time accumulator without drawing, for hosts that call
// Render themselves.
func (e *Engine) Advance(dt time.Duration) {
	e.timeAccum += dt.Seconds()
}
