package core

// InfrastructureItem is a fixed installation marker (bridge, airfield,
// rail hub, depot...). Type selects the icon, Note feeds the label policy.
type InfrastructureItem struct {
	ID   string  `json:"id"`
	Side Side    `json:"side"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type"`
	Name string  `json:"name"`
	Note string  `json:"note"`
}

// NavalPosition is a fleet or vessel-group marker.
type NavalPosition struct {
	ID   string  `json:"id"`
	Side Side    `json:"side"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type"`
	Name string  `json:"name"`
	Note string  `json:"note"`
}

// NuclearPlant is a nuclear power plant marker.
type NuclearPlant struct {
	ID      string  `json:"id"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name"`
	Note    string  `json:"note"`
}

// CityMarker is a populated-place marker, gated by the detail zoom level.
type CityMarker struct {
	ID      string  `json:"id"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name"`
	Note    string  `json:"note"`
}

// CapitalMarker is a capital-city marker. Capitals anchor orientation and
// are exempt from zoom gating.
type CapitalMarker struct {
	ID      string  `json:"id"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name"`
	Note    string  `json:"note"`
}
