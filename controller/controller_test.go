package controller_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/testutils"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()
	code := m.Run()
	os.Exit(code)
}

// seedCredential stores an unexpired credential for the fixture user so
// data requests pass authentication.
func seedCredential(t *testing.T, testCtrl *testutils.TestController) {
	t.Helper()
	cred := &model.Credential{
		UserGUID:     testutils.YahooUserGUID,
		AccessToken:  "seeded-access",
		RefreshToken: "seeded-refresh",
		Expiry:       testCtrl.Clock.Now().Add(time.Hour),
	}
	if err := testDB.DB.SaveCredential(context.Background(), cred); err != nil {
		t.Fatalf("error seeding credential: %v", err)
	}
}
