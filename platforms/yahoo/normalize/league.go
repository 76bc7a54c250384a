package normalize

import (
	"errors"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
)

// Games extracts the user's fantasy games from a /users;use_login=1/games
// payload.
func Games(payload map[string]any) ([]model.Game, error) {
	user, err := loginUser(payload)
	if err != nil {
		return nil, err
	}

	gamesNode := dig(user, "games")
	if gamesNode == nil {
		return nil, nil
	}
	items, err := Collection("games", gamesNode)
	if err != nil {
		return nil, err
	}

	out := make([]model.Game, 0, len(items))
	for _, item := range items {
		gameNode := dig(item, "game")
		if gameNode == nil {
			return nil, shapeError("game", item)
		}
		g, err := Flatten("game", gameNode)
		if err != nil {
			return nil, err
		}
		key := str(g["game_key"])
		if key == "" {
			continue
		}
		out = append(out, model.Game{
			Key:    key,
			Code:   str(g["code"]),
			Season: intval(g["season"]),
		})
	}
	return out, nil
}

// Leagues extracts leagues from a games;game_keys=.../leagues payload. The
// vendor nests leagues either at the top level of fantasy_content or under
// users → games → game; both are handled.
func Leagues(payload map[string]any) ([]model.League, error) {
	fc, ok := dig(payload, "fantasy_content").(map[string]any)
	if !ok {
		return nil, shapeError("fantasy_content", payload)
	}

	var out []model.League

	if top := dig(fc, "leagues"); top != nil {
		leagues, err := leaguesFromNode(top)
		if err != nil {
			return nil, err
		}
		out = append(out, leagues...)
	}

	if user, err := loginUser(payload); err == nil && user != nil {
		gamesNode := dig(user, "games")
		if gamesNode != nil {
			items, err := Collection("games", gamesNode)
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				gameNode := dig(item, "game")
				if gameNode == nil {
					continue
				}
				g, err := Flatten("game", gameNode)
				if err != nil {
					return nil, err
				}
				leaguesNode, ok := g["leagues"]
				if !ok {
					continue
				}
				leagues, err := leaguesFromNode(leaguesNode)
				if err != nil {
					return nil, err
				}
				for i := range leagues {
					if leagues[i].Sport == "" {
						leagues[i].Sport = str(g["code"])
					}
				}
				out = append(out, leagues...)
			}
		}
	}

	return out, nil
}

func leaguesFromNode(node any) ([]model.League, error) {
	items, err := Collection("leagues", node)
	if err != nil {
		return nil, err
	}

	out := make([]model.League, 0, len(items))
	for _, item := range items {
		leagueNode := dig(item, "league")
		if leagueNode == nil {
			return nil, shapeError("league", item)
		}
		fields, err := Flatten("league", leagueNode)
		if err != nil {
			return nil, err
		}

		key := str(fields["league_key"])
		if key == "" {
			key = str(fields["league_id"])
		}
		name := str(fields["name"])
		if key == "" || name == "" {
			continue
		}

		scoring := str(fields["scoring_type"])
		if scoring == "" {
			scoring = str(dig(fields["settings"], "scoring_type"))
		}

		out = append(out, model.League{
			Key:         key,
			Name:        name,
			Sport:       str(fields["game_code"]),
			Season:      str(fields["season"]),
			ScoringType: scoring,
			CurrentWeek: intval(fields["current_week"]),
		})
	}
	return out, nil
}

// LeagueMeta is the league-level metadata carried by a settings payload,
// including the ordered list of the league's active category codes.
type LeagueMeta struct {
	Key         string
	Name        string
	Sport       string
	Season      string
	ScoringType string
	CurrentWeek int
	ActiveCodes []string
}

// LeagueSettings extracts league metadata and the active stat-category
// listing from a /league/<key>/settings payload. The order of ActiveCodes
// is the vendor's display order and is meaningful to users.
func LeagueSettings(payload map[string]any) (*LeagueMeta, error) {
	leagueNode := dig(payload, "fantasy_content", "league")
	if leagueNode == nil {
		return nil, shapeError("league settings", payload)
	}
	fields, err := Flatten("league settings", leagueNode)
	if err != nil {
		return nil, err
	}

	meta := &LeagueMeta{
		Key:         str(fields["league_key"]),
		Name:        str(fields["name"]),
		Sport:       str(fields["game_code"]),
		Season:      str(fields["season"]),
		ScoringType: str(fields["scoring_type"]),
		CurrentWeek: intval(fields["current_week"]),
	}

	settingsNode, ok := fields["settings"]
	if !ok {
		return meta, nil
	}
	settings, err := Flatten("settings", settingsNode)
	if err != nil {
		return nil, err
	}
	if meta.ScoringType == "" {
		meta.ScoringType = str(settings["scoring_type"])
	}
	if meta.CurrentWeek == 0 {
		meta.CurrentWeek = intval(settings["current_week"])
	}

	if scNode, ok := settings["stat_categories"]; ok {
		cats, err := statsFromCategoriesNode("league stat categories", scNode)
		if err != nil {
			return nil, err
		}
		for _, c := range cats {
			meta.ActiveCodes = append(meta.ActiveCodes, c.Code)
		}
	}

	return meta, nil
}

// StatCategories extracts the full category definitions for a sport from a
// /game/<key>/stat_categories payload.
func StatCategories(payload map[string]any) ([]model.StatCategory, error) {
	gameNode := dig(payload, "fantasy_content", "game")
	if gameNode == nil {
		return nil, shapeError("game stat categories", payload)
	}
	fields, err := Flatten("game stat categories", gameNode)
	if err != nil {
		return nil, err
	}

	scNode, ok := fields["stat_categories"]
	if !ok {
		return nil, errors.New("game has no stat categories")
	}
	return statsFromCategoriesNode("game stat categories", scNode)
}

// statsFromCategoriesNode walks a stat_categories node: an object holding
// "stats", which is a collection of {"stat": {...}} wrappers.
func statsFromCategoriesNode(entity string, node any) ([]model.StatCategory, error) {
	statsNode := dig(node, "stats")
	if statsNode == nil {
		return nil, shapeError(entity, node)
	}
	items, err := Collection(entity, statsNode)
	if err != nil {
		return nil, err
	}

	out := make([]model.StatCategory, 0, len(items))
	for _, item := range items {
		statNode := dig(item, "stat")
		if statNode == nil {
			return nil, shapeError(entity, item)
		}
		s, err := Flatten(entity, statNode)
		if err != nil {
			return nil, err
		}

		code := str(s["display_name"])
		if code == "" {
			code = str(s["name"])
		}
		if code == "" {
			continue
		}

		out = append(out, model.StatCategory{
			ID:   str(s["stat_id"]),
			Code: code,
			Name: str(s["name"]),
			// sort_order "1" means the higher value wins; "0" means the
			// lower value wins. Vendor-supplied per category, never a
			// per-sport assumption.
			LowerIsBetter: str(s["sort_order"]) == "0",
		})
	}
	return out, nil
}

// MergeCategories joins the league's active category listing against the
// sport's category definitions. Output order follows the active listing
// (display order is meaningful); definitions absent from the active
// listing are dropped. An active code with no definition is kept as a bare
// category rather than silently dropped.
func MergeCategories(active []string, defs []model.StatCategory) []model.StatCategory {
	byCode := make(map[string]model.StatCategory, len(defs))
	for _, d := range defs {
		byCode[d.Code] = d
	}

	out := make([]model.StatCategory, 0, len(active))
	for _, code := range active {
		if d, ok := byCode[code]; ok {
			out = append(out, d)
		} else {
			out = append(out, model.StatCategory{Code: code, Name: code})
		}
	}
	return out
}

// loginUser returns the fields of the logged-in user from any
// /users;use_login=1 style payload.
func loginUser(payload map[string]any) (map[string]any, error) {
	usersNode := dig(payload, "fantasy_content", "users")
	if usersNode == nil {
		return nil, shapeError("users", payload)
	}
	items, err := Collection("users", usersNode)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	userNode := dig(items[0], "user")
	if userNode == nil {
		return nil, shapeError("user", items[0])
	}
	return Flatten("user", userNode)
}

// UserGUID extracts the logged-in user's GUID from a /users;use_login=1
// payload.
func UserGUID(payload map[string]any) (string, error) {
	user, err := loginUser(payload)
	if err != nil {
		return "", err
	}
	guid := str(user["guid"])
	if guid == "" {
		return "", errors.New("user guid not found")
	}
	return guid, nil
}
