package controller

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo/normalize"
)

// maxGameKeys caps how many game keys get packed into a single leagues
// request. Yahoo rejects overly long key lists, and nobody needs leagues
// beyond their six most recent seasons at once.
const maxGameKeys = 6

func (c *controller) GetLeagues(ctx context.Context, userGUID, sport string, season int) ([]model.League, error) {
	payload, err := c.yahoo.Request(ctx, userGUID, "/users;use_login=1/games", nil)
	if err != nil {
		return nil, err
	}
	games, err := normalize.Games(payload)
	if err != nil {
		return nil, err
	}

	keys := gameKeys(games, sport, season)
	if len(keys) == 0 {
		return []model.League{}, nil
	}

	path := fmt.Sprintf("/users;use_login=1/games;game_keys=%s/leagues", strings.Join(keys, ","))
	payload, err = c.yahoo.Request(ctx, userGUID, path, nil)
	if err != nil {
		return nil, err
	}
	leagues, err := normalize.Leagues(payload)
	if err != nil {
		return nil, err
	}

	// Category definitions are per game, not per league, so one fetch
	// covers every league in the same game.
	defsCache := make(map[string][]model.StatCategory)
	for i := range leagues {
		if err := c.enrichLeague(ctx, userGUID, &leagues[i], defsCache); err != nil {
			return nil, err
		}
	}
	return leagues, nil
}

// gameKeys filters the user's games by sport code and season, orders them
// newest season first and returns at most maxGameKeys keys.
func gameKeys(games []model.Game, sport string, season int) []string {
	filtered := make([]model.Game, 0, len(games))
	for _, g := range games {
		if sport != "" && g.Code != sport {
			continue
		}
		if season != 0 && g.Season != season {
			continue
		}
		filtered = append(filtered, g)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Season > filtered[j].Season
	})

	seen := make(map[string]bool, len(filtered))
	keys := make([]string, 0, len(filtered))
	for _, g := range filtered {
		if seen[g.Key] {
			continue
		}
		seen[g.Key] = true
		keys = append(keys, g.Key)
		if len(keys) == maxGameKeys {
			break
		}
	}
	return keys
}

// enrichLeague fills in the fields the leagues listing leaves blank from
// the league's settings, and resolves the active stat categories against
// the game's category definitions.
func (c *controller) enrichLeague(ctx context.Context, userGUID string, l *model.League, defsCache map[string][]model.StatCategory) error {
	payload, err := c.yahoo.Request(ctx, userGUID, fmt.Sprintf("/league/%s/settings", l.Key), nil)
	if err != nil {
		return err
	}
	meta, err := normalize.LeagueSettings(payload)
	if err != nil {
		return err
	}

	if l.Name == "" {
		l.Name = meta.Name
	}
	if l.Sport == "" {
		l.Sport = meta.Sport
	}
	if l.Season == "" {
		l.Season = meta.Season
	}
	if l.ScoringType == "" {
		l.ScoringType = meta.ScoringType
	}
	if l.CurrentWeek == 0 {
		l.CurrentWeek = meta.CurrentWeek
	}

	if len(meta.ActiveCodes) == 0 {
		return nil
	}
	defs, err := c.statCategoryDefs(ctx, userGUID, normalize.GameKeyOf(l.Key), defsCache)
	if err != nil {
		return err
	}
	l.Categories = normalize.MergeCategories(meta.ActiveCodes, defs)
	return nil
}

func (c *controller) statCategoryDefs(ctx context.Context, userGUID, gameKey string, cache map[string][]model.StatCategory) ([]model.StatCategory, error) {
	if defs, ok := cache[gameKey]; ok {
		return defs, nil
	}
	payload, err := c.yahoo.Request(ctx, userGUID, fmt.Sprintf("/game/%s/stat_categories", gameKey), nil)
	if err != nil {
		return nil, err
	}
	defs, err := normalize.StatCategories(payload)
	if err != nil {
		return nil, err
	}
	cache[gameKey] = defs
	return defs, nil
}
