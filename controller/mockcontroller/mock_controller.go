package mockcontroller

import (
	"context"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/controller"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) OAuthStart() (string, error) {
	args := c.Called()
	return args.String(0), args.Error(1)
}

func (c *C) OAuthExchange(ctx context.Context, state, code string) (string, error) {
	args := c.Called(ctx, state, code)
	return args.String(0), args.Error(1)
}

func (c *C) GetLeagues(ctx context.Context, userGUID, sport string, season int) ([]model.League, error) {
	args := c.Called(ctx, userGUID, sport, season)

	var res []model.League
	if args.Get(0) != nil {
		res = args.Get(0).([]model.League)
	}

	return res, args.Error(1)
}

func (c *C) GetTeams(ctx context.Context, userGUID, leagueKey string) ([]model.Team, error) {
	args := c.Called(ctx, userGUID, leagueKey)

	var res []model.Team
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Team)
	}

	return res, args.Error(1)
}

func (c *C) GetMyTeam(ctx context.Context, userGUID, leagueKey string) (*model.Team, error) {
	args := c.Called(ctx, userGUID, leagueKey)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}

	return t, args.Error(1)
}

func (c *C) GetRoster(ctx context.Context, userGUID, teamKey, date string) (*model.Roster, error) {
	args := c.Called(ctx, userGUID, teamKey, date)

	var r *model.Roster
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Roster)
	}

	return r, args.Error(1)
}

func (c *C) GetMatchup(ctx context.Context, userGUID, leagueKey string, week int, includePoints, includeCategories bool) (*model.Matchup, error) {
	args := c.Called(ctx, userGUID, leagueKey, week, includePoints, includeCategories)

	var m *model.Matchup
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Matchup)
	}

	return m, args.Error(1)
}

func (c *C) GetStandings(ctx context.Context, userGUID, leagueKey string) ([]model.Standing, error) {
	args := c.Called(ctx, userGUID, leagueKey)

	var res []model.Standing
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Standing)
	}

	return res, args.Error(1)
}

func (c *C) GetPlayers(ctx context.Context, userGUID, leagueKey string, query controller.PlayerQuery) ([]model.Player, error) {
	args := c.Called(ctx, userGUID, leagueKey, query)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}

	return res, args.Error(1)
}
