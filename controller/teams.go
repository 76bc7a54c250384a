package controller

import (
	"context"
	"fmt"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo/normalize"
)

func (c *controller) GetTeams(ctx context.Context, userGUID, leagueKey string) ([]model.Team, error) {
	leagueKey = normalize.LeagueKeyOf(leagueKey)

	payload, err := c.yahoo.Request(ctx, userGUID, fmt.Sprintf("/league/%s/teams", leagueKey), nil)
	if err != nil {
		return nil, err
	}
	return normalize.Teams(payload, leagueKey)
}

func (c *controller) GetMyTeam(ctx context.Context, userGUID, leagueKey string) (*model.Team, error) {
	teams, err := c.GetTeams(ctx, userGUID, leagueKey)
	if err != nil {
		return nil, err
	}

	for i := range teams {
		if teams[i].ManagerGUID == userGUID {
			return &teams[i], nil
		}
	}
	return nil, ErrTeamNotFound
}
