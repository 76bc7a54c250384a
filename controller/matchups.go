package controller

import (
	"context"
	"fmt"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo/normalize"
)

func (c *controller) GetMatchup(ctx context.Context, userGUID, leagueKey string, week int, includePoints, includeCategories bool) (*model.Matchup, error) {
	// Accept a team key here too, callers shouldn't have to care.
	leagueKey = normalize.LeagueKeyOf(leagueKey)

	payload, err := c.yahoo.Request(ctx, userGUID, fmt.Sprintf("/league/%s/settings", leagueKey), nil)
	if err != nil {
		return nil, err
	}
	meta, err := normalize.LeagueSettings(payload)
	if err != nil {
		return nil, err
	}
	if week == 0 {
		week = meta.CurrentWeek
	}

	payload, err = c.yahoo.Request(ctx, userGUID, "/users;use_login=1/teams", nil)
	if err != nil {
		return nil, err
	}
	myKey, _, err := normalize.MyTeamKey(payload, leagueKey)
	if err != nil {
		return nil, err
	}
	if myKey == "" {
		return nil, ErrTeamNotFound
	}

	path := fmt.Sprintf("/league/%s/scoreboard", leagueKey)
	if week > 0 {
		path = fmt.Sprintf("%s;week=%d", path, week)
	}
	payload, err = c.yahoo.Request(ctx, userGUID, path, nil)
	if err != nil {
		return nil, err
	}

	tm, err := normalize.MatchupForTeam(payload, myKey)
	if err != nil {
		return nil, err
	}
	if tm == nil {
		return nil, ErrNoMatchup
	}

	result := &model.Matchup{
		LeagueKey:  leagueKey,
		Week:       tm.Week,
		Status:     tm.Status,
		IsPlayoffs: tm.IsPlayoffs,
		Me:         model.TeamSide{Key: tm.Me.Key, Name: tm.Me.Name},
		Opponent:   model.TeamSide{Key: tm.Opponent.Key, Name: tm.Opponent.Name},
	}
	if result.Week == 0 {
		result.Week = week
	}

	if includePoints && tm.Me.Points != nil && tm.Opponent.Points != nil {
		result.Points = &model.PointTotals{Mine: *tm.Me.Points, Theirs: *tm.Opponent.Points}
	}

	if includeCategories && len(meta.ActiveCodes) > 0 {
		if err := c.joinCategories(ctx, userGUID, meta.ActiveCodes, tm, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// joinCategories resolves the league's active categories against the game's
// definitions, pairs both sides' raw values by stat id, computes the leader
// per category and tallies the W/L/T record from my side's point of view.
func (c *controller) joinCategories(ctx context.Context, userGUID string, active []string, tm *normalize.TeamMatchup, result *model.Matchup) error {
	defs, err := c.statCategoryDefs(ctx, userGUID, normalize.GameKeyOf(result.LeagueKey), make(map[string][]model.StatCategory))
	if err != nil {
		return err
	}
	cats := normalize.MergeCategories(active, defs)

	record := &model.CategoryRecord{}
	result.Categories = make([]model.CategoryResult, 0, len(cats))
	for _, cat := range cats {
		cr := model.CategoryResult{
			Code:   cat.Code,
			Mine:   tm.Me.Stats[cat.ID],
			Theirs: tm.Opponent.Stats[cat.ID],
			Leader: model.LeaderNone,
		}

		// Before play the vendor sends "-" (or nothing) for both sides.
		// That is not a tie, just no data yet; it stays out of the tally.
		if normalize.Comparable(cr.Mine) || normalize.Comparable(cr.Theirs) {
			leader, err := normalize.CategoryLeader(cr.Mine, cr.Theirs, cat.LowerIsBetter)
			if err != nil {
				return err
			}
			cr.Leader = leader
			switch leader {
			case model.LeaderMe:
				record.Wins++
			case model.LeaderOpponent:
				record.Losses++
			default:
				record.Ties++
			}
		}

		result.Categories = append(result.Categories, cr)
	}

	result.Record = record
	return nil
}
