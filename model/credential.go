package model

import "time"

// Credential is the stored OAuth token pair for a single Yahoo user. The
// tokens are plaintext here; encrypting them at rest is the db package's
// job. There is at most one live credential per user GUID and every refresh
// replaces the whole row.
type Credential struct {
	UserGUID     string
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	Rotated      time.Time
}

// Expired reports whether the recorded access-token expiry has passed.
func (c *Credential) Expired(now time.Time) bool {
	return !c.Expiry.After(now)
}
