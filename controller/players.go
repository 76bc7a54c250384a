package controller

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo/normalize"
)

// playerPageSize is the vendor's hard cap on players per request.
const playerPageSize = 25

// PlayerQuery filters a league-scoped player listing. Zero values mean no
// filter; Count is clamped to the vendor's page size.
type PlayerQuery struct {
	// Status is the vendor availability filter: "FA" (free agents), "W"
	// (waivers), "T" (taken) or "A" (all).
	Status   string
	Position string
	Search   string
	Start    int
	Count    int
}

func (c *controller) GetPlayers(ctx context.Context, userGUID, leagueKey string, query PlayerQuery) ([]model.Player, error) {
	leagueKey = normalize.LeagueKeyOf(leagueKey)

	if query.Count <= 0 || query.Count > playerPageSize {
		query.Count = playerPageSize
	}

	filters := make([]string, 0, 6)
	if query.Status != "" {
		filters = append(filters, "status="+query.Status)
	}
	if query.Position != "" {
		filters = append(filters, "position="+query.Position)
	}
	if query.Search != "" {
		// Matrix parameters ride in the path, so the free-text term has
		// to be escaped here rather than by the query encoder.
		filters = append(filters, "search="+url.PathEscape(query.Search))
	}
	if query.Start > 0 {
		filters = append(filters, fmt.Sprintf("start=%d", query.Start))
	}
	filters = append(filters, fmt.Sprintf("count=%d", query.Count))
	// Ownership percentages only come back when asked for.
	filters = append(filters, "out=percent_owned")

	path := fmt.Sprintf("/league/%s/players;%s", leagueKey, strings.Join(filters, ";"))
	payload, err := c.yahoo.Request(ctx, userGUID, path, nil)
	if err != nil {
		return nil, err
	}
	return normalize.Players(payload)
}
