package controller

import (
	"context"
	"fmt"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo/normalize"
)

func (c *controller) GetStandings(ctx context.Context, userGUID, leagueKey string) ([]model.Standing, error) {
	leagueKey = normalize.LeagueKeyOf(leagueKey)

	payload, err := c.yahoo.Request(ctx, userGUID, fmt.Sprintf("/league/%s/standings", leagueKey), nil)
	if err != nil {
		return nil, err
	}
	return normalize.Standings(payload)
}
