package model

// Team is one fantasy team inside a league, identified by the composite
// vendor key "<league_key>.t.<team_id>". LeagueKey is a back-reference,
// not ownership.
type Team struct {
	Key         string `json:"id"`
	LeagueKey   string `json:"league_key"`
	Name        string `json:"name"`
	ManagerGUID string `json:"manager_guid,omitempty"`
	ManagerName string `json:"manager_name,omitempty"`
}

// Standing is a team's position in the league table.
type Standing struct {
	TeamKey    string   `json:"team_key"`
	Name       string   `json:"name"`
	Rank       int      `json:"rank"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	Ties       int      `json:"ties"`
	Percentage *float64 `json:"percentage,omitempty"`
	PointsFor  *float64 `json:"points_for,omitempty"`
}
