package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/db"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo"
	"github.com/itbasis/go-clock"
	"golang.org/x/oauth2"
)

// C encapsulates business logic without worrying about any web layers.
// Every operation takes the user GUID explicitly; there is no ambient
// "current user".
type C interface {
	// OAuthStart returns the vendor authorization URL to redirect the
	// user to. The embedded state parameter is recorded and expires
	// after a few minutes.
	OAuthStart() (string, error)
	// OAuthExchange completes the login: validates and consumes the
	// state, exchanges the code for tokens, resolves the user's GUID
	// and persists the credential. Returns the GUID.
	OAuthExchange(ctx context.Context, state, code string) (string, error)

	// GetLeagues lists the user's leagues, optionally filtered by sport
	// code (e.g. "nhl") and season year. Each league is enriched with
	// its active stat categories and current week.
	GetLeagues(ctx context.Context, userGUID, sport string, season int) ([]model.League, error)
	GetTeams(ctx context.Context, userGUID, leagueKey string) ([]model.Team, error)
	// GetMyTeam returns the user's own team in the league, found by
	// matching the manager GUID.
	GetMyTeam(ctx context.Context, userGUID, leagueKey string) (*model.Team, error)
	// GetRoster returns a team's lineup, as of date (YYYY-MM-DD) when
	// given, otherwise the vendor's current roster.
	GetRoster(ctx context.Context, userGUID, teamKey, date string) (*model.Roster, error)
	// GetMatchup returns the user's head-to-head matchup in the league
	// for the given week (the league's current week when 0), with point
	// totals and a per-category breakdown when requested.
	GetMatchup(ctx context.Context, userGUID, leagueKey string, week int, includePoints, includeCategories bool) (*model.Matchup, error)
	GetStandings(ctx context.Context, userGUID, leagueKey string) ([]model.Standing, error)
	// GetPlayers lists players in the league's player pool, filtered by
	// availability status, position and free-text search. Results page by
	// query.Start/Count up to the vendor's page size.
	GetPlayers(ctx context.Context, userGUID, leagueKey string, query PlayerQuery) ([]model.Player, error)
}

var (
	// ErrInvalidState means the OAuth callback carried a state value we
	// never issued, or one that expired or was already used.
	ErrInvalidState = errors.New("oauth state parameter is not valid")

	// ErrOAuthExchange wraps a failed code-for-token exchange.
	ErrOAuthExchange = errors.New("error exchanging oauth code")

	// ErrTeamNotFound means the user has no team in the requested league.
	ErrTeamNotFound = errors.New("no team found for user in league")

	// ErrNoMatchup means the user's team has no matchup that week (a bye).
	ErrNoMatchup = errors.New("no matchup for team this week")
)

type controller struct {
	clock       clock.Clock
	db          db.DB
	yahoo       *yahoo.Client
	yahooConfig *oauth2.Config

	statesMu    sync.Mutex
	oauthStates map[string]time.Time
}

func New(clock clock.Clock, yahooConfig *oauth2.Config, yahoo *yahoo.Client, db db.DB) (C, error) {
	c := &controller{
		clock:       clock,
		db:          db,
		yahoo:       yahoo,
		yahooConfig: yahooConfig,
		oauthStates: make(map[string]time.Time),
	}
	return c, nil
}
