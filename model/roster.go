package model

// Roster is a team's lineup for one as-of date.
type Roster struct {
	TeamKey string        `json:"team_id"`
	Date    string        `json:"date"`
	Players []RosterEntry `json:"players"`
}

// RosterEntry is one player on a roster: who they are, which lineup slot
// they currently occupy and which positions they are eligible for.
type RosterEntry struct {
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Slot     string   `json:"slot,omitempty"`
	Eligible []string `json:"positions"`
	Status   string   `json:"status,omitempty"`
}
