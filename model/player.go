package model

// Player is one player from a league-scoped player query (free agents,
// waiver claims, search results). Key is the composite vendor key
// "<game>.p.<player_id>"; PercentOwned is only present when the vendor was
// asked for ownership data.
type Player struct {
	Key          string   `json:"player_key"`
	ID           string   `json:"player_id"`
	Name         string   `json:"name"`
	Team         string   `json:"team,omitempty"`
	Positions    []string `json:"positions"`
	Status       string   `json:"status,omitempty"`
	PercentOwned *float64 `json:"percent_owned,omitempty"`
}
