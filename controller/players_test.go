package controller_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/controller"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/testutils"
)

func TestGetPlayers(t *testing.T) {
	testCtrl := testutils.NewTestController(testDB)
	defer testCtrl.Close()
	seedCredential(t, testCtrl)

	players, err := testCtrl.C.GetPlayers(context.Background(), testutils.YahooUserGUID,
		testutils.YahooLeagueKey, controller.PlayerQuery{Status: "FA"})
	if err != nil {
		t.Fatalf("error listing players: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}

	p := players[0]
	if p.Key != "465.p.5555" || p.Name != "Quinn Hughes" {
		t.Errorf("unexpected first player: %+v", p)
	}
	if !reflect.DeepEqual(p.Positions, []string{"D"}) {
		t.Errorf("expected positions [D], got %v", p.Positions)
	}
	if p.PercentOwned == nil || *p.PercentOwned != 97.0 {
		t.Errorf("expected 97%% owned, got %v", p.PercentOwned)
	}

	if players[1].Status != "IR" {
		t.Errorf("expected second player on IR, got %+v", players[1])
	}
}

// A team key reduces to its league key, same as the other league-scoped
// operations.
func TestGetPlayers_teamKeyAccepted(t *testing.T) {
	testCtrl := testutils.NewTestController(testDB)
	defer testCtrl.Close()
	seedCredential(t, testCtrl)

	players, err := testCtrl.C.GetPlayers(context.Background(), testutils.YahooUserGUID,
		testutils.YahooMyTeamKey, controller.PlayerQuery{Search: "hughes", Count: 5})
	if err != nil {
		t.Fatalf("error listing players: %v", err)
	}
	if len(players) == 0 {
		t.Errorf("expected players from the reduced league key")
	}
}
