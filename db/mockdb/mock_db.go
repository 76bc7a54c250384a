package mockdb

import (
	"context"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetCredential(ctx context.Context, userGUID string) (*model.Credential, error) {
	args := db.Called(ctx, userGUID)

	var c *model.Credential
	if args.Get(0) != nil {
		c = args.Get(0).(*model.Credential)
	}

	return c, args.Error(1)
}

func (db *DB) SaveCredential(ctx context.Context, cred *model.Credential) error {
	args := db.Called(ctx, cred)
	return args.Error(0)
}
