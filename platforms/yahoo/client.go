package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/db"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/itbasis/go-clock"
	"golang.org/x/oauth2"
)

const YahooURL = "https://fantasysports.yahooapis.com/fantasy/v2"

const requestTimeout = 30 * time.Second

// Client issues authenticated GET requests against the Yahoo Fantasy API.
// It owns the whole credential lifecycle after login: proactive refresh
// before a request when the recorded expiry has passed, exactly one
// refresh-and-retry when the vendor rejects a token we judged fresh, and
// persisting rotated tokens. No other layer writes credentials.
type Client struct {
	url    string
	client *http.Client
	conf   *oauth2.Config
	db     db.DB
	clock  clock.Clock
}

// New creates a client for the real vendor API. url overrides the API
// base when non-empty, which local fakes and tests use.
func New(url string, conf *oauth2.Config, store db.DB, clock clock.Clock) (*Client, error) {
	if url == "" {
		url = YahooURL
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
		conf:   conf,
		db:     store,
		clock:  clock,
	}, nil
}

func NewForTest(url string, conf *oauth2.Config, store db.DB, clock clock.Clock) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		conf:   conf,
		db:     store,
		clock:  clock,
	}
}

// Request performs an authenticated GET for the given user and returns the
// decoded JSON payload. path is a vendor resource path like
// "/league/465.l.34067/scoreboard;week=1". The retry budget is exactly one
// refresh-and-retry per call: a second authorization failure means the
// refresh token itself is dead and surfaces as ErrReauthRequired.
func (c *Client) Request(ctx context.Context, userGUID, path string, params url.Values) (map[string]any, error) {
	cred, err := c.db.GetCredential(ctx, userGUID)
	if err != nil {
		if errors.Is(err, db.ErrCredentialNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	// Refresh proactively when the recorded expiry has passed; sending the
	// stale token would guarantee a wasted round trip.
	if cred.Expired(c.clock.Now()) {
		cred, err = c.refresh(ctx, cred)
		if err != nil {
			return nil, err
		}
	}

	body, status, err := c.get(ctx, cred.AccessToken, path, params)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		// The vendor can reject a token we judged fresh (clock skew,
		// server-side revocation). One refresh, one retry.
		cred, err = c.refresh(ctx, cred)
		if err != nil {
			return nil, err
		}
		body, status, err = c.get(ctx, cred.AccessToken, path, params)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			return nil, ErrReauthRequired
		}
	}

	if status != http.StatusOK {
		return nil, vendorErrorForStatus(status)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("error parsing response from yahoo: %w", err)
	}
	return payload, nil
}

// UserProfile fetches /users;use_login=1 with a bare access token. Used
// during the OAuth callback, before a credential row exists for the user.
func (c *Client) UserProfile(ctx context.Context, accessToken string) (map[string]any, error) {
	body, status, err := c.get(ctx, accessToken, "/users;use_login=1", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, vendorErrorForStatus(status)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("error parsing response from yahoo: %w", err)
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, accessToken, path string, params url.Values) ([]byte, int, error) {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	if q.Get("format") == "" {
		q.Set("format", "json")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s?%s", c.url, path, q.Encode()), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating yahoo http request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := c.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, 0, &VendorError{Kind: KindTimeout, Message: err.Error()}
		}
		return nil, 0, &VendorError{Kind: KindOther, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading yahoo response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// refresh exchanges the stored refresh token for a new token pair and
// persists the rotation as a single upsert, so a crash mid-rotation never
// leaves a half-updated credential. A vendor rejection of the refresh
// token is terminal for the user (ErrReauthRequired) and never retried.
func (c *Client) refresh(ctx context.Context, cred *model.Credential) (*model.Credential, error) {
	if c.conf == nil {
		return nil, errors.New("yahoo oauth client is not configured")
	}

	log.Printf("refreshing token for user: %s", cred.UserGUID)

	// Hand the token source an already-expired token so it must hit the
	// token endpoint instead of reusing the access token.
	src := c.conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		Expiry:       c.clock.Now().Add(-time.Minute),
	})

	t, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("%w: %v", ErrReauthRequired, err)
		}
		return nil, fmt.Errorf("error refreshing token for user %s: %w", cred.UserGUID, err)
	}

	next := &model.Credential{
		UserGUID:     cred.UserGUID,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
	}
	if next.RefreshToken == "" {
		// The vendor may or may not rotate the refresh token itself.
		next.RefreshToken = cred.RefreshToken
	}

	if err := c.db.SaveCredential(ctx, next); err != nil {
		return nil, fmt.Errorf("error saving refreshed credential for user %s: %w", cred.UserGUID, err)
	}
	return next, nil
}
