package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
)

// MatchupSide is one team's side of a raw matchup: identity, point total
// when the league scores by points, and raw category values keyed by the
// vendor stat id.
type MatchupSide struct {
	Key    string
	Name   string
	Points *float64
	Stats  map[string]string
}

// TeamMatchup is the normalized matchup for one team before the category
// join. Me is always the requested team's side.
type TeamMatchup struct {
	Week       int
	Status     model.MatchupStatus
	IsPlayoffs bool
	Me         MatchupSide
	Opponent   MatchupSide
}

// MatchupForTeam finds the matchup involving teamKey in a scoreboard
// payload and normalizes both sides. Returns nil when the team has no
// matchup that week (bye).
func MatchupForTeam(payload map[string]any, teamKey string) (*TeamMatchup, error) {
	sb, err := scoreboardNode(payload)
	if err != nil {
		return nil, err
	}
	if sb == nil {
		return nil, nil
	}

	matchups, err := scoreboardMatchups(sb)
	if err != nil {
		return nil, err
	}

	for _, matchupNode := range matchups {
		m, err := flattenMatchup(matchupNode)
		if err != nil {
			return nil, err
		}

		teamsNode := matchupTeamsNode(m)
		if teamsNode == nil {
			return nil, shapeError("matchup teams", matchupNode)
		}
		items, err := Collection("matchup teams", teamsNode)
		if err != nil {
			return nil, err
		}
		if len(items) != 2 {
			return nil, shapeError("matchup teams", teamsNode)
		}

		sides := make([]MatchupSide, 0, 2)
		for _, item := range items {
			teamNode := dig(item, "team")
			if teamNode == nil {
				return nil, shapeError("matchup team", item)
			}
			side, err := matchupSide(teamNode)
			if err != nil {
				return nil, err
			}
			sides = append(sides, *side)
		}

		if sides[0].Key != teamKey && sides[1].Key != teamKey {
			continue
		}

		result := &TeamMatchup{
			Week:       weekOf(m, sb),
			Status:     model.MatchupStatus(str(m["status"])),
			IsPlayoffs: flag(m["is_playoffs"]),
		}
		if sides[0].Key == teamKey {
			result.Me, result.Opponent = sides[0], sides[1]
		} else {
			result.Me, result.Opponent = sides[1], sides[0]
		}
		return result, nil
	}

	return nil, nil
}

// scoreboardNode locates the scoreboard inside a league payload. The
// league node is either a fragment list [meta, {scoreboard}] or a flat
// object.
func scoreboardNode(payload map[string]any) (map[string]any, error) {
	leagueNode := dig(payload, "fantasy_content", "league")
	if leagueNode == nil {
		return nil, shapeError("league scoreboard", payload)
	}
	fields, err := Flatten("league scoreboard", leagueNode)
	if err != nil {
		return nil, err
	}

	sbNode, ok := fields["scoreboard"]
	if !ok {
		sbNode, ok = fields["scoreboards"]
	}
	if !ok {
		return nil, nil
	}
	sb, ok := sbNode.(map[string]any)
	if !ok {
		return nil, shapeError("scoreboard", sbNode)
	}
	return sb, nil
}

// scoreboardMatchups yields the matchup nodes from every serialization the
// vendor uses: matchups nested under scoreboard["0"], a flat "matchups"
// sibling, or numeric siblings each holding a single "matchup".
func scoreboardMatchups(sb map[string]any) ([]any, error) {
	var matchupsNode any

	if inner, ok := sb["0"].(map[string]any); ok {
		matchupsNode = inner["matchups"]
	}
	if matchupsNode == nil {
		matchupsNode = sb["matchups"]
	}

	if matchupsNode != nil {
		items, err := Collection("matchups", matchupsNode)
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			m := dig(item, "matchup")
			if m == nil {
				return nil, shapeError("matchup", item)
			}
			out = append(out, m)
		}
		return out, nil
	}

	// Numeric siblings: scoreboard["1"]["matchup"], ["2"]["matchup"], ...
	var out []any
	items, err := Collection("scoreboard", sb)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if m := dig(item, "matchup"); m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}

// flattenMatchup tolerates the digit-keyed matchup spelling, which Flatten
// rejects; matchupTeamsNode resolves the teams member through the index
// keys afterwards.
func flattenMatchup(node any) (map[string]any, error) {
	if m, ok := node.(map[string]any); ok && Classify(node) == ShapeIndexedMap {
		return m, nil
	}
	return Flatten("matchup", node)
}

// matchupTeamsNode returns the "teams" member of a flattened matchup: flat
// or nested under a stringified index.
func matchupTeamsNode(m map[string]any) any {
	if t, ok := m["teams"].(map[string]any); ok {
		return t
	}
	for k, v := range m {
		if _, err := strconv.Atoi(k); err != nil {
			continue
		}
		if t := dig(v, "teams"); t != nil {
			return t
		}
	}
	return nil
}

// matchupSide normalizes one team node of a matchup into identity, point
// total and stat values.
func matchupSide(teamNode any) (*MatchupSide, error) {
	fields, err := Flatten("matchup team", teamNode)
	if err != nil {
		return nil, err
	}

	side := &MatchupSide{
		Key:   str(fields["team_key"]),
		Name:  teamName(fields),
		Stats: make(map[string]string),
	}
	if side.Key == "" {
		return nil, shapeError("matchup team", teamNode)
	}

	if tp, ok := fields["team_points"].(map[string]any); ok {
		if total, err := numericValue(tp["total"]); err == nil {
			side.Points = &total
		}
	}

	if tsNode, ok := fields["team_stats"]; ok {
		statsNode := dig(tsNode, "stats")
		if statsNode == nil {
			return nil, shapeError("team stats", tsNode)
		}
		items, err := Collection("team stats", statsNode)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			statNode := dig(item, "stat")
			if statNode == nil {
				return nil, shapeError("team stat", item)
			}
			s, err := Flatten("team stat", statNode)
			if err != nil {
				return nil, err
			}
			id := str(s["stat_id"])
			if id == "" {
				return nil, shapeError("team stat", statNode)
			}
			side.Stats[id] = str(s["value"])
		}
	}

	return side, nil
}

func weekOf(m, sb map[string]any) int {
	if w := intval(m["week"]); w != 0 {
		return w
	}
	if w := intval(sb["week"]); w != 0 {
		return w
	}
	if inner, ok := sb["0"].(map[string]any); ok {
		return intval(inner["week"])
	}
	return 0
}

// CategoryLeader compares the two sides' raw values for one category. The
// values may be numeric, numeric strings or signed numeric strings; they
// are normalized to a common numeric form before comparing. When the
// vendor flags the category as lower-is-better the comparison inverts.
// Equal values are a tie (LeaderNone), never attributed to a side.
func CategoryLeader(mine, theirs string, lowerIsBetter bool) (model.Leader, error) {
	a, err := numericValue(mine)
	if err != nil {
		return model.LeaderNone, fmt.Errorf("category value for my side: %w", err)
	}
	b, err := numericValue(theirs)
	if err != nil {
		return model.LeaderNone, fmt.Errorf("category value for opponent side: %w", err)
	}

	if a == b {
		return model.LeaderNone, nil
	}
	mineLeads := a > b
	if lowerIsBetter {
		mineLeads = !mineLeads
	}
	if mineLeads {
		return model.LeaderMe, nil
	}
	return model.LeaderOpponent, nil
}

// Comparable reports whether a raw category value can be normalized to a
// number. The vendor emits "-" (and sometimes an empty string) before a
// category has been played.
func Comparable(v string) bool {
	_, err := numericValue(v)
	return err == nil
}

// numericValue normalizes a raw vendor value (float64, or a numeric string
// possibly carrying an explicit sign) to float64.
func numericValue(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(n, "+"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", v)
	}
}

// LeagueKeyOf reduces a team key like "465.l.34067.t.11" to its league key
// "465.l.34067". League keys pass through unchanged.
func LeagueKeyOf(key string) string {
	if i := strings.Index(key, ".t."); i >= 0 {
		return key[:i]
	}
	return key
}

// GameKeyOf returns the game key prefix of a league or team key, e.g.
// "465" for "465.l.34067".
func GameKeyOf(key string) string {
	if i := strings.Index(key, ".l."); i >= 0 {
		return key[:i]
	}
	return key
}
