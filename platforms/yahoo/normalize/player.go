package normalize

import (
	"strconv"
	"strings"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
)

// Players extracts players from a /league/<key>/players payload: free
// agents, waiver claims or search results, depending on the filters the
// request carried. An absent or empty players node means the query matched
// nobody.
func Players(payload map[string]any) ([]model.Player, error) {
	leagueNode := dig(payload, "fantasy_content", "league")
	if leagueNode == nil {
		return nil, shapeError("league players", payload)
	}
	fields, err := Flatten("league players", leagueNode)
	if err != nil {
		return nil, err
	}

	playersNode, ok := fields["players"]
	if !ok {
		return nil, nil
	}
	items, err := Collection("players", playersNode)
	if err != nil {
		return nil, err
	}

	out := make([]model.Player, 0, len(items))
	for _, item := range items {
		playerNode := dig(item, "player")
		if playerNode == nil {
			return nil, shapeError("player", item)
		}
		p, err := Flatten("player", playerNode)
		if err != nil {
			return nil, err
		}

		player := model.Player{
			Key:          str(p["player_key"]),
			ID:           str(p["player_id"]),
			Name:         playerName(p),
			Team:         str(p["editorial_team_abbr"]),
			Status:       str(p["status"]),
			Positions:    playerPositions(p),
			PercentOwned: percentOwned(p),
		}
		if player.Team == "" {
			player.Team = str(p["editorial_team"])
		}
		if player.Key == "" && player.ID == "" {
			return nil, shapeError("player", playerNode)
		}
		out = append(out, player)
	}
	return out, nil
}

// playerPositions prefers the display listing ("C,LW"), falling back to
// the eligible position set.
func playerPositions(p map[string]any) []string {
	if dp := str(p["display_position"]); dp != "" {
		parts := strings.Split(dp, ",")
		out := make([]string, 0, len(parts))
		for _, s := range parts {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return eligiblePositions(p["eligible_positions"])
}

// percentOwned digs the ownership percentage out of its spellings: a
// {"value": "97"} block, a bare number or string (possibly carrying a "%"
// suffix), or either of those nested under "ownership". Nil when absent or
// unparseable.
func percentOwned(p map[string]any) *float64 {
	raw, ok := p["percent_owned"]
	if !ok {
		raw = dig(p["ownership"], "percent_owned")
	}
	if v := dig(raw, "value"); v != nil {
		raw = v
	}

	s := strings.TrimSuffix(strings.TrimSpace(str(raw)), "%")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
