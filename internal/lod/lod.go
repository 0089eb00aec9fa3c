// Package lod implements the zoom-based level-of-detail policy: marker
// categories hide below a detail zoom, text labels below a higher label
// zoom. Capitals and the frontline itself are exempt because they anchor
// orientation at any zoom.
package lod

import (
	"github.com/conflictwatch/overlay/internal/geo"
	"github.com/conflictwatch/overlay/pkg/core"
)

// Visibility is the gate's verdict for a zoom level. Labels implies Detail.
type Visibility struct {
	Detail bool
	Labels bool
}

// Gate holds the two zoom thresholds. LabelZoom must be greater than
// DetailZoom.
type Gate struct {
	DetailZoom float64
	LabelZoom  float64
}

// NewGate builds a gate; a LabelZoom at or below DetailZoom is lifted above
// it so the labels-imply-detail invariant cannot be violated by config.
func NewGate(detailZoom, labelZoom float64) Gate {
	if labelZoom <= detailZoom {
		labelZoom = detailZoom + 1
	}
	return Gate{DetailZoom: detailZoom, LabelZoom: labelZoom}
}

// Visibility evaluates the gate at a zoom level. Monotonic: raising zoom
// never hides anything visible at a lower zoom.
func (g Gate) Visibility(zoom float64) Visibility {
	return Visibility{
		Detail: zoom >= g.DetailZoom,
		Labels: zoom >= g.LabelZoom,
	}
}

// SuppressCityLabel reports whether a city's text label should be dropped
// because an infrastructure item occupies the same location. The icon still
// renders; only the duplicate text goes.
func SuppressCityLabel(city core.CityMarker, infra []core.InfrastructureItem, epsilonKm float64) bool {
	cityPos := core.Position{Lon: city.Lon, Lat: city.Lat}
	for _, item := range infra {
		if geo.SameLocation(cityPos, core.Position{Lon: item.Lon, Lat: item.Lat}, epsilonKm) {
			return true
		}
	}
	return false
}
