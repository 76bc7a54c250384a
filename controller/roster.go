package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo/normalize"
)

// ErrInvalidDate means a roster date was not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

func (c *controller) GetRoster(ctx context.Context, userGUID, teamKey, date string) (*model.Roster, error) {
	path := fmt.Sprintf("/team/%s/roster", teamKey)
	if date != "" {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		path = fmt.Sprintf("%s;date=%s", path, date)
	}

	payload, err := c.yahoo.Request(ctx, userGUID, path, nil)
	if err != nil {
		return nil, err
	}
	return normalize.Roster(payload, teamKey)
}
