package model

// MatchupStatus uses the vendor's own status tokens as the canonical
// vocabulary.
type MatchupStatus string

const (
	StatusPreEvent  MatchupStatus = "preevent"
	StatusMidEvent  MatchupStatus = "midevent"
	StatusPostEvent MatchupStatus = "postevent"
)

// Leader says which side of a matchup currently leads a category. Ties are
// explicit, never attributed to either side.
type Leader int

const (
	LeaderNone Leader = iota
	LeaderMe
	LeaderOpponent
)

func (l Leader) String() string {
	switch l {
	case LeaderMe:
		return "me"
	case LeaderOpponent:
		return "opp"
	default:
		return "none"
	}
}

func (l Leader) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// TeamSide references one side of a matchup.
type TeamSide struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// PointTotals carries per-side point totals. Only present for leagues that
// score by points.
type PointTotals struct {
	Mine   float64 `json:"me"`
	Theirs float64 `json:"opp"`
}

// CategoryResult is one scored category inside a matchup: the raw vendor
// values for both sides plus the side currently leading.
type CategoryResult struct {
	Code   string `json:"name"`
	Mine   string `json:"me"`
	Theirs string `json:"opp"`
	Leader Leader `json:"leader"`
}

// CategoryRecord tallies category wins/losses/ties from my side's point of
// view.
type CategoryRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Matchup is my head-to-head pairing in a league for one week.
type Matchup struct {
	LeagueKey  string           `json:"league_id"`
	Week       int              `json:"week"`
	Status     MatchupStatus    `json:"status"`
	IsPlayoffs bool             `json:"is_playoffs"`
	Me         TeamSide         `json:"team"`
	Opponent   TeamSide         `json:"opponent"`
	Points     *PointTotals     `json:"points,omitempty"`
	Categories []CategoryResult `json:"category_breakdown,omitempty"`
	Record     *CategoryRecord  `json:"categories,omitempty"`
}
