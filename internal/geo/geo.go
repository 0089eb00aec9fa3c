// Package geo provides the small amount of geographic math the overlay
// needs: building simplefeatures geometries from coordinate slices and the
// co-location predicate behind the label suppression rule.
package geo

import (
	"errors"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/conflictwatch/overlay/pkg/core"
)

// ErrTooFewPoints is returned when a line geometry has fewer than 2 points.
var ErrTooFewPoints = errors.New("line requires at least 2 points")

// earthRadiusKm is the mean Earth radius.
const earthRadiusKm = 6371.0

// LineString builds a simplefeatures LineString from an ordered point
// sequence. Point order is preserved exactly as supplied.
func LineString(points []core.Position) (geom.LineString, error) {
	if len(points) < 2 {
		return geom.LineString{}, ErrTooFewPoints
	}
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.Lon, p.Lat)
	}
	seq := geom.NewSequence(flat, geom.DimXY)
	return geom.NewLineString(seq)
}

// Point builds a simplefeatures Point from a position.
func Point(p core.Position) (geom.Point, error) {
	return geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: p.Lon, Y: p.Lat},
		Type: geom.DimXY,
	})
}

// DistanceKm is an equirectangular approximation of the distance between
// two positions. Accurate enough at marker-colocation scale; not suitable
// for long-range measurement.
func DistanceKm(a, b core.Position) float64 {
	latRad := (a.Lat + b.Lat) / 2 * math.Pi / 180
	dx := (b.Lon - a.Lon) * math.Pi / 180 * math.Cos(latRad)
	dy := (b.Lat - a.Lat) * math.Pi / 180
	return math.Sqrt(dx*dx+dy*dy) * earthRadiusKm
}

// SameLocation reports whether two positions sit close enough to count as
// one place for labelling purposes. epsilonKm is the visible, adjustable
// precision of the co-location heuristic.
func SameLocation(a, b core.Position, epsilonKm float64) bool {
	return DistanceKm(a, b) <= epsilonKm
}
