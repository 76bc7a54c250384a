package testutils

import (
	"context"
	"log"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/containers"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/db"
	"github.com/itbasis/go-clock"
)

// TestEncryptionKey is the 32-byte AES key used across tests. Tamper tests
// construct stores with a different key to prove decryption failures are
// detected.
var TestEncryptionKey = []byte("0123456789abcdef0123456789abcdef")

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), TestEncryptionKey, clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) ConnectionString() string {
	return db.container.ConnectionString()
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}
