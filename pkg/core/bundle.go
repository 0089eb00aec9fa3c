package core

// ConflictBundle is the complete entity set for one conflict. Bundles are
// loaded once per conflict selection and treated as read-only for the rest
// of that selection's display session; switching conflicts replaces the
// whole bundle, never mixes two.
type ConflictBundle struct {
	ConflictID     string               `json:"conflictId"`
	Name           string               `json:"name"`
	Frontline      []FrontlineSegment   `json:"frontline"`
	Units          []Unit               `json:"units"`
	Battles        []BattleSite         `json:"battles"`
	Infrastructure []InfrastructureItem `json:"infrastructure"`
	Naval          []NavalPosition      `json:"naval"`
	NuclearPlants  []NuclearPlant       `json:"nuclearPlants"`
	Cities         []CityMarker         `json:"cities"`
	Capitals       []CapitalMarker      `json:"capitals"`
}
