// Package starfield owns the decorative star particles drawn around the
// globe silhouette: four parallax layers, sinusoidal twinkle, and a
// cooperative self-rescheduling animation loop.
package starfield

import (
	"math"
	"math/rand"
)

// LayerTemplate is a configuration template for one depth layer, not a
// runtime entity. Depth is approximated by Speed, the parallax factor.
type LayerTemplate struct {
	Count   int
	Speed   float64
	SizeMin float64
	SizeMax float64
	Opacity float64
}

// DefaultLayers are the four fixed layers, farthest (many, slow, faint)
// first.
var DefaultLayers = [4]LayerTemplate{
	{Count: 240, Speed: 0.05, SizeMin: 0.4, SizeMax: 1.1, Opacity: 0.50},
	{Count: 120, Speed: 0.12, SizeMin: 0.8, SizeMax: 1.6, Opacity: 0.65},
	{Count: 48, Speed: 0.22, SizeMin: 1.2, SizeMax: 2.2, Opacity: 0.80},
	{Count: 12, Speed: 0.38, SizeMin: 1.8, SizeMax: 3.0, Opacity: 0.95},
}

// starColors is the small palette stars are drawn from.
var starColors = [...]string{"#ffffff", "#dbe4ff", "#fff9db", "#e5dbff"}

// Star is an ephemeral particle, generated once per canvas (re)size and
// owned exclusively by the engine.
type Star struct {
	X            float64
	Y            float64
	Size         float64
	BaseOpacity  float64
	TwinkleSpeed float64
	TwinklePhase float64
	Color        string
}

// generate builds one layer's stars at random positions inside w x h
// device pixels.
func generate(tpl LayerTemplate, w, h float64, rng *rand.Rand) []Star {
	stars := make([]Star, tpl.Count)
	for i := range stars {
		stars[i] = Star{
			X:            rng.Float64() * w,
			Y:            rng.Float64() * h,
			Size:         tpl.SizeMin + rng.Float64()*(tpl.SizeMax-tpl.SizeMin),
			BaseOpacity:  tpl.Opacity * (0.6 + 0.4*rng.Float64()),
			TwinkleSpeed: 0.5 + rng.Float64()*1.5,
			TwinklePhase: rng.Float64() * 2 * math.Pi,
			Color:        starColors[rng.Intn(len(starColors))],
		}
	}
	return stars
}

// wrap normalizes v into [0, max) for any offset sign or magnitude.
func wrap(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	m := math.Mod(v, max)
	if m < 0 {
		m += max
	}
	return m
}
