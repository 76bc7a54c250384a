package testutils

import (
	"log"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/controller"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo"
	"github.com/itbasis/go-clock"
)

// TestController wires a controller against the fake vendor servers and a
// containerized database, with a mock clock so tests control token expiry
// and oauth state timeouts.
type TestController struct {
	C         controller.C
	Clock     *clock.Mock
	FakeYahoo *FakeYahooServer
	FakeOAuth *FakeOAuthServer
}

func NewTestController(db *TestDB) *TestController {
	mockClock := clock.NewMock()
	fakeYahoo := NewFakeYahooServer()
	fakeOAuth := NewFakeOAuthServer()

	yahooClient := yahoo.NewForTest(fakeYahoo.URL(), fakeOAuth.Config(), db.DB, mockClock)

	ctrl, err := controller.New(mockClock, fakeOAuth.Config(), yahooClient, db.DB)
	if err != nil {
		log.Fatalf("error creating test controller: %v", err)
	}

	return &TestController{
		C:         ctrl,
		Clock:     mockClock,
		FakeYahoo: fakeYahoo,
		FakeOAuth: fakeOAuth,
	}
}

func (c *TestController) Close() {
	c.FakeYahoo.Close()
	c.FakeOAuth.Close()
}
