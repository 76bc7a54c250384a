package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

func New(ctx context.Context, connString string, encryptionKey []byte, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	cipher, err := newTokenCipher(encryptionKey)
	if err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, cipher: cipher, clock: clock}, nil
}

type postgresDB struct {
	pool   *pgxpool.Pool
	cipher *tokenCipher
	clock  clock.Clock
}

func (db *postgresDB) GetCredential(ctx context.Context, userGUID string) (*model.Credential, error) {
	const query = `SELECT user_guid, access_token, refresh_token, expiry, rotated
					FROM credentials WHERE user_guid=@guid`

	args := pgx.NamedArgs{
		"guid": userGUID,
	}

	var result model.Credential
	var accessToken, refreshToken []byte
	var expiry, rotated pgtype.Timestamptz

	row := db.pool.QueryRow(ctx, query, args)
	err := row.Scan(&result.UserGUID, &accessToken, &refreshToken, &expiry, &rotated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("error scanning credential for %s: %w", userGUID, err)
	}

	result.AccessToken, err = db.cipher.open(accessToken)
	if err != nil {
		return nil, err
	}
	result.RefreshToken, err = db.cipher.open(refreshToken)
	if err != nil {
		return nil, err
	}
	result.Expiry = expiry.Time
	result.Rotated = rotated.Time

	return &result, nil
}

func (db *postgresDB) SaveCredential(ctx context.Context, cred *model.Credential) error {
	if cred == nil || cred.UserGUID == "" {
		return errors.New("SaveCredential - credential has no user guid")
	}

	// A single upsert statement keeps rotation all-or-nothing. Concurrent
	// refreshes for the same user resolve as last writer wins.
	const query = `INSERT INTO credentials (
			user_guid,
			access_token,
			refresh_token,
			expiry,
			rotated
		) VALUES (
			@guid,
			@accessToken,
			@refreshToken,
			@expiry,
			@rotated
		) ON CONFLICT (user_guid) DO UPDATE SET
			access_token=EXCLUDED.access_token,
			refresh_token=EXCLUDED.refresh_token,
			expiry=EXCLUDED.expiry,
			rotated=EXCLUDED.rotated`

	accessToken, err := db.cipher.seal(cred.AccessToken)
	if err != nil {
		return fmt.Errorf("error encrypting access token: %w", err)
	}
	refreshToken, err := db.cipher.seal(cred.RefreshToken)
	if err != nil {
		return fmt.Errorf("error encrypting refresh token: %w", err)
	}

	args := pgx.NamedArgs{
		"guid":         cred.UserGUID,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"expiry": pgtype.Timestamptz{
			Time:             cred.Expiry.UTC(),
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
		"rotated": pgtype.Timestamptz{
			Time:             db.clock.Now().UTC(),
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
	}

	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting credential for %s: %w", cred.UserGUID, err)
	}
	return nil
}
