package model

// League is a single fantasy league as seen by the logged-in user. It is a
// read model recomputed from the Yahoo API on every request, identified by
// the composite vendor key "<game_key>.l.<league_id>".
type League struct {
	Key         string         `json:"id"`
	Sport       string         `json:"sport"`
	Season      string         `json:"season"`
	Name        string         `json:"name"`
	ScoringType string         `json:"scoring_type"`
	CurrentWeek int            `json:"current_week"`
	Categories  []StatCategory `json:"categories"`
}

// StatCategory is one scored statistic in head-to-head category scoring.
// ID is the vendor's numeric stat id, Code the short display abbreviation
// (e.g. "G", "+/-") and Name the long display name. LowerIsBetter comes
// from the vendor's per-category sort order; it must never be assumed from
// the sport.
type StatCategory struct {
	ID            string `json:"stat_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	LowerIsBetter bool   `json:"lower_is_better"`
}

// Game is one Yahoo fantasy game (a sport + season pair, e.g. nhl/2025).
// Game keys scope every league key.
type Game struct {
	Key    string `json:"key"`
	Code   string `json:"code"`
	Season int    `json:"season"`
}
