// Package compose turns frontline segment records into renderable GeoJSON
// features plus the fixed multi-pass stroke plan that encodes a contested
// two-sided boundary.
package compose

import (
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/rs/zerolog"

	"github.com/conflictwatch/overlay/internal/geo"
	"github.com/conflictwatch/overlay/internal/recency"
	"github.com/conflictwatch/overlay/pkg/core"
)

// Compositor builds frontline feature collections. Recency coloring comes
// from the injected classifier so the clock is testable.
type Compositor struct {
	Classifier *recency.Classifier
	Logger     zerolog.Logger
}

// New returns a compositor on the given classifier.
func New(classifier *recency.Classifier, logger zerolog.Logger) *Compositor {
	return &Compositor{Classifier: classifier, Logger: logger}
}

// Compose emits one LineString feature per segment, tagged with id, label,
// status and the recency color. Segments with fewer than two points violate
// the upstream data contract; they are skipped with a warning rather than
// recovered.
func (c *Compositor) Compose(segments []core.FrontlineSegment) geom.GeoJSONFeatureCollection {
	fc := make(geom.GeoJSONFeatureCollection, 0, len(segments))
	for _, seg := range segments {
		ls, err := geo.LineString(seg.Points)
		if err != nil {
			c.Logger.Warn().Err(err).Str("segment", seg.ID).Msg("Skipping malformed frontline segment")
			continue
		}
		tok := c.Classifier.Classify(seg.AsOf)
		fc = append(fc, geom.GeoJSONFeature{
			Geometry: ls.AsGeometry(),
			ID:       seg.ID,
			Properties: map[string]interface{}{
				"id":     seg.ID,
				"label":  seg.Label,
				"status": string(seg.Status),
				"color":  tok.Hex(),
			},
		})
	}
	return fc
}
