package normalize

import (
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
)

// Teams extracts every team from a /league/<key>/teams style payload. Team
// nodes appear at varying depths depending on the endpoint variant, so the
// payload is walked for "team" keys; each hit is flattened and duplicates
// (the vendor repeats teams across sibling nodes) are dropped.
func Teams(payload map[string]any, leagueKey string) ([]model.Team, error) {
	fc := dig(payload, "fantasy_content")
	if fc == nil {
		return nil, shapeError("fantasy_content", payload)
	}

	var out []model.Team
	var walkErr error
	seen := make(map[string]bool)

	var walk func(node any)
	walk = func(node any) {
		if walkErr != nil {
			return
		}
		switch n := node.(type) {
		case map[string]any:
			if teamNode, ok := n["team"]; ok {
				t, err := teamFromNode(teamNode, leagueKey)
				if err != nil {
					walkErr = err
					return
				}
				if t != nil && !seen[t.Key] {
					seen[t.Key] = true
					out = append(out, *t)
				}
			}
			for _, v := range n {
				walk(v)
			}
		case []any:
			for _, v := range n {
				walk(v)
			}
		}
	}
	walk(fc)

	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// teamFromNode flattens one team node and pulls out its identifying
// fields. Returns nil for nodes that flatten but carry no team key (the
// vendor emits empty placeholder entries).
func teamFromNode(node any, leagueKey string) (*model.Team, error) {
	fields, err := Flatten("team", node)
	if err != nil {
		return nil, err
	}

	key := str(fields["team_key"])
	if key == "" {
		return nil, nil
	}

	t := &model.Team{
		Key:       key,
		LeagueKey: leagueKey,
		Name:      teamName(fields),
	}
	t.ManagerGUID, t.ManagerName = teamManager(fields)
	return t, nil
}

// teamName handles both serializations of the name field: a plain string
// or an object with a "full" member.
func teamName(fields map[string]any) string {
	switch n := fields["name"].(type) {
	case string:
		return n
	case map[string]any:
		return str(n["full"])
	default:
		return ""
	}
}

// teamManager pulls the first manager's GUID and nickname out of the
// managers collection, whichever shape it arrived in.
func teamManager(fields map[string]any) (guid, nickname string) {
	mgrsNode, ok := fields["managers"]
	if !ok {
		return "", ""
	}
	items, err := Collection("managers", mgrsNode)
	if err != nil {
		return "", ""
	}
	for _, item := range items {
		mNode := dig(item, "manager")
		if mNode == nil {
			continue
		}
		m, err := Flatten("manager", mNode)
		if err != nil {
			continue
		}
		g := str(m["guid"])
		n := str(m["nickname"])
		if g != "" || n != "" {
			return g, n
		}
	}
	return "", ""
}

// MyTeamKey finds the logged-in user's team for a league in a
// /users;use_login=1/teams payload by matching each team's league key
// prefix. Returns empty strings when the user has no team in the league.
func MyTeamKey(payload map[string]any, leagueKey string) (key, name string, err error) {
	user, err := loginUser(payload)
	if err != nil {
		return "", "", err
	}

	teamsNode := dig(user, "teams")
	if teamsNode == nil {
		return "", "", nil
	}
	items, err := Collection("teams", teamsNode)
	if err != nil {
		return "", "", err
	}

	for _, item := range items {
		teamNode := dig(item, "team")
		if teamNode == nil {
			continue
		}
		fields, err := Flatten("team", teamNode)
		if err != nil {
			return "", "", err
		}
		tKey := str(fields["team_key"])
		tLeague := str(fields["league_key"])
		if tLeague == "" {
			tLeague = LeagueKeyOf(tKey)
		}
		if tKey != "" && tLeague == leagueKey {
			return tKey, teamName(fields), nil
		}
	}
	return "", "", nil
}

// Standings extracts the league table from a /league/<key>/standings
// payload.
func Standings(payload map[string]any) ([]model.Standing, error) {
	leagueNode := dig(payload, "fantasy_content", "league")
	if leagueNode == nil {
		return nil, shapeError("league standings", payload)
	}
	fields, err := Flatten("league standings", leagueNode)
	if err != nil {
		return nil, err
	}

	standingsNode, ok := fields["standings"]
	if !ok {
		return nil, shapeError("standings", fields)
	}
	teamsNode := dig(standingsNode, "teams")
	if teamsNode == nil {
		// standings may itself be a fragment list around the teams node
		s, err := Flatten("standings", standingsNode)
		if err != nil {
			return nil, err
		}
		teamsNode = dig(s, "teams")
	}
	if teamsNode == nil {
		return nil, shapeError("standings teams", standingsNode)
	}

	items, err := Collection("standings teams", teamsNode)
	if err != nil {
		return nil, err
	}

	out := make([]model.Standing, 0, len(items))
	for _, item := range items {
		teamNode := dig(item, "team")
		if teamNode == nil {
			return nil, shapeError("standings team", item)
		}
		t, err := Flatten("standings team", teamNode)
		if err != nil {
			return nil, err
		}

		s := model.Standing{
			TeamKey: str(t["team_key"]),
			Name:    teamName(t),
		}

		if tsNode, ok := t["team_standings"]; ok {
			ts, err := Flatten("team standings", tsNode)
			if err != nil {
				return nil, err
			}
			s.Rank = intval(ts["rank"])
			if ot, ok := ts["outcome_totals"].(map[string]any); ok {
				s.Wins = intval(ot["wins"])
				s.Losses = intval(ot["losses"])
				s.Ties = intval(ot["ties"])
				if pct, perr := numericValue(ot["percentage"]); perr == nil {
					s.Percentage = &pct
				}
			}
			if pf, perr := numericValue(ts["points_for"]); perr == nil {
				s.PointsFor = &pf
			}
		}

		// Leave percentage empty until games exist; otherwise derive it
		// from the record when the vendor returned a blank.
		if s.Percentage == nil {
			if games := s.Wins + s.Losses + s.Ties; games > 0 {
				pct := (float64(s.Wins) + 0.5*float64(s.Ties)) / float64(games)
				s.Percentage = &pct
			}
		}

		out = append(out, s)
	}
	return out, nil
}
