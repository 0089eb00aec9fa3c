package store

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/conflictwatch/overlay/pkg/core"
)

// Store loads and saves conflict bundles.
type Store struct {
	db *gorm.DB
}

// New creates a store over an open gorm DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// sideFactsJSON is the JSON shape of BattleSiteRow.SideFacts.
type sideFactsJSON struct {
	SideA core.BattleSideFacts `json:"sideA"`
	SideB core.BattleSideFacts `json:"sideB"`
}

// SaveBundle writes a complete bundle, replacing any previous rows for the
// same conflict id.
func (s *Store) SaveBundle(b *core.ConflictBundle) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.deleteConflict(tx, b.ConflictID); err != nil {
			return err
		}
		if err := tx.Create(&Conflict{ConflictID: b.ConflictID, Name: b.Name}).Error; err != nil {
			return fmt.Errorf("saving conflict: %w", err)
		}

		for _, seg := range b.Frontline {
			points, err := json.Marshal(seg.Points)
			if err != nil {
				return fmt.Errorf("marshaling segment %s points: %w", seg.ID, err)
			}
			row := FrontlineSegmentRow{
				ConflictID: b.ConflictID,
				SegmentID:  seg.ID,
				Label:      seg.Label,
				AsOf:       seg.AsOf,
				Status:     string(seg.Status),
				Points:     points,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("saving segment %s: %w", seg.ID, err)
			}
		}

		for _, u := range b.Units {
			row := UnitRow{
				ConflictID: b.ConflictID,
				UnitID:     u.ID,
				Side:       string(u.Side),
				UnitType:   string(u.Type),
				Echelon:    string(u.Echelon),
				Name:       u.Name,
				Lat:        u.Lat,
				Lon:        u.Lon,
				Sector:     u.Sector,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("saving unit %s: %w", u.ID, err)
			}
		}

		for _, site := range b.Battles {
			facts, err := json.Marshal(sideFactsJSON{SideA: site.SideA, SideB: site.SideB})
			if err != nil {
				return fmt.Errorf("marshaling battle %s facts: %w", site.ID, err)
			}
			row := BattleSiteRow{
				ConflictID:   b.ConflictID,
				SiteID:       site.ID,
				Name:         site.Name,
				Lat:          site.Lat,
				Lon:          site.Lon,
				Date:         site.Date,
				Result:       site.Result,
				Note:         site.Note,
				SideFacts:    facts,
				Significance: site.Significance,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("saving battle %s: %w", site.ID, err)
			}
		}

		sites := make([]SiteRow, 0,
			len(b.Infrastructure)+len(b.Naval)+len(b.NuclearPlants)+len(b.Cities)+len(b.Capitals))
		for _, i := range b.Infrastructure {
			sites = append(sites, SiteRow{
				ConflictID: b.ConflictID, SiteID: i.ID, Kind: KindInfrastructure,
				Side: string(i.Side), Lat: i.Lat, Lon: i.Lon, Type: i.Type, Name: i.Name, Note: i.Note,
			})
		}
		for _, n := range b.Naval {
			sites = append(sites, SiteRow{
				ConflictID: b.ConflictID, SiteID: n.ID, Kind: KindNaval,
				Side: string(n.Side), Lat: n.Lat, Lon: n.Lon, Type: n.Type, Name: n.Name, Note: n.Note,
			})
		}
		for _, p := range b.NuclearPlants {
			sites = append(sites, SiteRow{
				ConflictID: b.ConflictID, SiteID: p.ID, Kind: KindNuclear,
				Country: p.Country, Lat: p.Lat, Lon: p.Lon, Name: p.Name, Note: p.Note,
			})
		}
		for _, city := range b.Cities {
			sites = append(sites, SiteRow{
				ConflictID: b.ConflictID, SiteID: city.ID, Kind: KindCity,
				Country: city.Country, Lat: city.Lat, Lon: city.Lon, Name: city.Name, Note: city.Note,
			})
		}
		for _, capital := range b.Capitals {
			sites = append(sites, SiteRow{
				ConflictID: b.ConflictID, SiteID: capital.ID, Kind: KindCapital,
				Country: capital.Country, Lat: capital.Lat, Lon: capital.Lon, Name: capital.Name, Note: capital.Note,
			})
		}
		if len(sites) > 0 {
			if err := tx.Create(&sites).Error; err != nil {
				return fmt.Errorf("saving sites: %w", err)
			}
		}

		return nil
	})
}

// LoadBundle reads one conflict's complete entity set. The bundle is built
// fresh and never shared with the database layer afterwards.
func (s *Store) LoadBundle(conflictID string) (*core.ConflictBundle, error) {
	var conflict Conflict
	if err := s.db.Where("conflict_id = ?", conflictID).First(&conflict).Error; err != nil {
		return nil, fmt.Errorf("loading conflict %s: %w", conflictID, err)
	}

	bundle := &core.ConflictBundle{
		ConflictID: conflict.ConflictID,
		Name:       conflict.Name,
	}

	var segRows []FrontlineSegmentRow
	if err := s.db.Where("conflict_id = ?", conflictID).Order("id").Find(&segRows).Error; err != nil {
		return nil, fmt.Errorf("loading frontline: %w", err)
	}
	for _, row := range segRows {
		var points []core.Position
		if err := json.Unmarshal(row.Points, &points); err != nil {
			return nil, fmt.Errorf("unmarshaling segment %s points: %w", row.SegmentID, err)
		}
		bundle.Frontline = append(bundle.Frontline, core.FrontlineSegment{
			ID:     row.SegmentID,
			Label:  row.Label,
			AsOf:   row.AsOf,
			Status: core.FrontlineStatus(row.Status),
			Points: points,
		})
	}

	var unitRows []UnitRow
	if err := s.db.Where("conflict_id = ?", conflictID).Order("id").Find(&unitRows).Error; err != nil {
		return nil, fmt.Errorf("loading units: %w", err)
	}
	for _, row := range unitRows {
		bundle.Units = append(bundle.Units, core.Unit{
			ID:      row.UnitID,
			Side:    core.Side(row.Side),
			Type:    core.UnitType(row.UnitType),
			Echelon: core.Echelon(row.Echelon),
			Name:    row.Name,
			Lat:     row.Lat,
			Lon:     row.Lon,
			Sector:  row.Sector,
		})
	}

	var battleRows []BattleSiteRow
	if err := s.db.Where("conflict_id = ?", conflictID).Order("id").Find(&battleRows).Error; err != nil {
		return nil, fmt.Errorf("loading battles: %w", err)
	}
	for _, row := range battleRows {
		var facts sideFactsJSON
		if len(row.SideFacts) > 0 {
			if err := json.Unmarshal(row.SideFacts, &facts); err != nil {
				return nil, fmt.Errorf("unmarshaling battle %s facts: %w", row.SiteID, err)
			}
		}
		bundle.Battles = append(bundle.Battles, core.BattleSite{
			ID:           row.SiteID,
			Name:         row.Name,
			Lat:          row.Lat,
			Lon:          row.Lon,
			Date:         row.Date,
			Result:       row.Result,
			Note:         row.Note,
			SideA:        facts.SideA,
			SideB:        facts.SideB,
			Significance: row.Significance,
		})
	}

	var siteRows []SiteRow
	if err := s.db.Where("conflict_id = ?", conflictID).Order("id").Find(&siteRows).Error; err != nil {
		return nil, fmt.Errorf("loading sites: %w", err)
	}
	for _, row := range siteRows {
		switch row.Kind {
		case KindInfrastructure:
			bundle.Infrastructure = append(bundle.Infrastructure, core.InfrastructureItem{
				ID: row.SiteID, Side: core.Side(row.Side),
				Lat: row.Lat, Lon: row.Lon, Type: row.Type, Name: row.Name, Note: row.Note,
			})
		case KindNaval:
			bundle.Naval = append(bundle.Naval, core.NavalPosition{
				ID: row.SiteID, Side: core.Side(row.Side),
				Lat: row.Lat, Lon: row.Lon, Type: row.Type, Name: row.Name, Note: row.Note,
			})
		case KindNuclear:
			bundle.NuclearPlants = append(bundle.NuclearPlants, core.NuclearPlant{
				ID: row.SiteID, Country: row.Country,
				Lat: row.Lat, Lon: row.Lon, Name: row.Name, Note: row.Note,
			})
		case KindCity:
			bundle.Cities = append(bundle.Cities, core.CityMarker{
				ID: row.SiteID, Country: row.Country,
				Lat: row.Lat, Lon: row.Lon, Name: row.Name, Note: row.Note,
			})
		case KindCapital:
			bundle.Capitals = append(bundle.Capitals, core.CapitalMarker{
				ID: row.SiteID, Country: row.Country,
				Lat: row.Lat, Lon: row.Lon, Name: row.Name, Note: row.Note,
			})
		}
	}

	return bundle, nil
}

// ListConflicts returns the stored conflicts.
func (s *Store) ListConflicts() ([]Conflict, error) {
	var out []Conflict
	if err := s.db.Order("conflict_id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing conflicts: %w", err)
	}
	return out, nil
}

func (s *Store) deleteConflict(tx *gorm.DB, conflictID string) error {
	for _, model := range []interface{}{&FrontlineSegmentRow{}, &UnitRow{}, &BattleSiteRow{}, &SiteRow{}, &Conflict{}} {
		if err := tx.Unscoped().Where("conflict_id = ?", conflictID).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing previous rows: %w", err)
		}
	}
	return nil
}
