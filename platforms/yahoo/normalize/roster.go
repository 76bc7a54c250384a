package normalize

import (
	"strings"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
)

// Roster extracts a team's lineup from a /team/<key>/roster payload. The
// roster node hangs off the team fragment list; the as-of date lives on
// the roster itself or on its "0" child, and the selected lineup slot for
// a player lives either inside the player fragments or on the surrounding
// container, depending on the endpoint variant.
func Roster(payload map[string]any, teamKey string) (*model.Roster, error) {
	teamNode := dig(payload, "fantasy_content", "team")
	if teamNode == nil {
		return nil, shapeError("team roster", payload)
	}
	team, err := Flatten("team roster", teamNode)
	if err != nil {
		return nil, err
	}

	rosterNode, ok := team["roster"].(map[string]any)
	if !ok {
		return nil, shapeError("roster", team)
	}

	date := str(rosterNode["date"])
	playersNode := dig(rosterNode, "players")
	if inner, ok := rosterNode["0"].(map[string]any); ok {
		if date == "" {
			date = str(inner["date"])
		}
		if playersNode == nil {
			playersNode = inner["players"]
		}
	}

	result := &model.Roster{TeamKey: teamKey, Date: date}
	if playersNode == nil {
		return result, nil
	}

	items, err := Collection("roster players", playersNode)
	if err != nil {
		return nil, err
	}

	result.Players = make([]model.RosterEntry, 0, len(items))
	for _, item := range items {
		container, ok := item.(map[string]any)
		if !ok {
			return nil, shapeError("roster player", item)
		}
		playerNode, ok := container["player"]
		if !ok {
			return nil, shapeError("roster player", container)
		}
		p, err := Flatten("player", playerNode)
		if err != nil {
			return nil, err
		}

		entry := model.RosterEntry{
			PlayerID: str(p["player_id"]),
			Name:     playerName(p),
			Eligible: eligiblePositions(p["eligible_positions"]),
			Status:   str(p["status"]),
		}
		if entry.PlayerID == "" || entry.Name == "" {
			return nil, shapeError("player", playerNode)
		}

		entry.Slot = selectedSlot(p)
		if entry.Slot == "" {
			entry.Slot = selectedSlot(container)
		}

		result.Players = append(result.Players, entry)
	}

	return result, nil
}

func playerName(p map[string]any) string {
	switch n := p["name"].(type) {
	case string:
		return n
	case map[string]any:
		return str(n["full"])
	default:
		return ""
	}
}

// eligiblePositions handles the three serializations of the eligible
// position set: a list of {"position": ...} wrappers, a single wrapper
// object, or a bare string.
func eligiblePositions(node any) []string {
	switch n := node.(type) {
	case []any:
		out := make([]string, 0, len(n))
		for _, el := range n {
			switch p := el.(type) {
			case map[string]any:
				if pos := str(p["position"]); pos != "" {
					out = append(out, pos)
				}
			case string:
				out = append(out, p)
			}
		}
		return out
	case map[string]any:
		if pos := str(n["position"]); pos != "" {
			return []string{pos}
		}
		return nil
	case string:
		return []string{n}
	default:
		return nil
	}
}

// selectedSlot finds the assigned lineup slot under any of the vendor's
// aliases. The value itself may be a string, an object with a "position"
// member, or a fragment list around one.
func selectedSlot(fields map[string]any) string {
	for _, alias := range []string{"selected_position", "roster_position", "current_position", "slot"} {
		node, ok := fields[alias]
		if !ok {
			continue
		}
		if s, ok := node.(string); ok && s != "" {
			return strings.ToUpper(s)
		}
		flat, err := Flatten("selected position", node)
		if err != nil {
			continue
		}
		if pos := str(flat["position"]); pos != "" {
			return strings.ToUpper(pos)
		}
	}
	return ""
}
