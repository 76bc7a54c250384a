package db

import (
	"context"
	"errors"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
)

var (
	// ErrCredentialNotFound means the user has never completed the OAuth
	// flow (or was manually revoked).
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrCredentialDecrypt means a stored credential exists but its tokens
	// could not be decrypted. This signals a wrong encryption key or
	// corrupted ciphertext, which is a deployment problem. It must never be
	// confused with ErrCredentialNotFound or with an expired token.
	ErrCredentialDecrypt = errors.New("credential decryption failed")
)

type DB interface {
	// GetCredential returns the live credential for a user, decrypted.
	GetCredential(ctx context.Context, userGUID string) (*model.Credential, error)
	// SaveCredential upserts the credential for cred.UserGUID, replacing
	// any prior row in a single atomic statement.
	SaveCredential(ctx context.Context, cred *model.Credential) error
}
