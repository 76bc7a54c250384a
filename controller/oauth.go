package controller

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo/normalize"
)

const oauthStateTTL = 5 * time.Minute

func (c *controller) OAuthStart() (string, error) {
	if c.yahooConfig == nil {
		return "", errors.New("yahoo oauth client is not configured")
	}

	state, err := generateRandomState()
	if err != nil {
		return "", fmt.Errorf("error generating oauth state: %w", err)
	}

	c.statesMu.Lock()
	c.pruneStatesLocked()
	c.oauthStates[state] = c.clock.Now().Add(oauthStateTTL)
	c.statesMu.Unlock()

	return c.yahooConfig.AuthCodeURL(state), nil
}

func (c *controller) OAuthExchange(ctx context.Context, state, code string) (string, error) {
	if c.yahooConfig == nil {
		return "", errors.New("yahoo oauth client is not configured")
	}

	// The state is consumed whether or not the exchange succeeds,
	// authorization codes are single use.
	if !c.takeState(state) {
		return "", ErrInvalidState
	}

	token, err := c.yahooConfig.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOAuthExchange, err)
	}

	profile, err := c.yahoo.UserProfile(ctx, token.AccessToken)
	if err != nil {
		return "", fmt.Errorf("error fetching user profile after login: %w", err)
	}
	guid, err := normalize.UserGUID(profile)
	if err != nil {
		return "", fmt.Errorf("error resolving user guid after login: %w", err)
	}

	cred := &model.Credential{
		UserGUID:     guid,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
	if err := c.db.SaveCredential(ctx, cred); err != nil {
		return "", fmt.Errorf("error saving credential for user %s: %w", guid, err)
	}

	return guid, nil
}

// takeState removes the state entry and reports whether it was live.
func (c *controller) takeState(state string) bool {
	c.statesMu.Lock()
	defer c.statesMu.Unlock()

	expiry, ok := c.oauthStates[state]
	if ok {
		delete(c.oauthStates, state)
	}
	return ok && c.clock.Now().Before(expiry)
}

// pruneStatesLocked drops expired entries so abandoned logins don't
// accumulate. Callers must hold statesMu.
func (c *controller) pruneStatesLocked() {
	now := c.clock.Now()
	for s, expiry := range c.oauthStates {
		if now.After(expiry) {
			delete(c.oauthStates, s)
		}
	}
}

func generateRandomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
