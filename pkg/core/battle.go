package core

import "time"

// BattleSideFacts holds the per-side detail fields of a battle site popup.
type BattleSideFacts struct {
	Commander  string `json:"commander"`
	Troops     string `json:"troops"`
	Equipment  string `json:"equipment"`
	Casualties string `json:"casualties"`
}

// BattleSite is a battle marker. Result is free text categorized upstream
// by side prefix ("A: ...", "B: ..."); the engine does not interpret it.
type BattleSite struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Lat          float64         `json:"lat"`
	Lon          float64         `json:"lon"`
	Date         time.Time       `json:"date"`
	Result       string          `json:"result"`
	Note         string          `json:"note"`
	SideA        BattleSideFacts `json:"sideA"`
	SideB        BattleSideFacts `json:"sideB"`
	Significance string          `json:"significance"`
}
