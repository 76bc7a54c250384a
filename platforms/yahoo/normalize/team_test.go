package normalize

import (
	"testing"
)

const teamsPayload = `{"fantasy_content":{"league":[
	{"league_key":"465.l.34067","name":"Frozen Five"},
	{"teams":{
		"0":{"team":[[
			{"team_key":"465.l.34067.t.1"},
			{"name":"Mean Machine"},
			{"managers":[{"manager":{"guid":"GUID1","nickname":"Navdeep"}}]}
		]]},
		"1":{"team":[[
			{"team_key":"465.l.34067.t.2"},
			{"name":{"full":"Puck Hogs"}},
			{"managers":[{"manager":{"guid":"GUID2","nickname":"Sam"}}]}
		]]},
		"count":2
	}}
]}}`

func TestTeams(t *testing.T) {
	payload := parse(t, teamsPayload)

	teams, err := Teams(payload, "465.l.34067")
	if err != nil {
		t.Fatalf("error normalizing teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}

	if teams[0].Key != "465.l.34067.t.1" {
		t.Errorf("expected team t.1 first, got %q", teams[0].Key)
	}
	if teams[0].Name != "Mean Machine" {
		t.Errorf("expected name from string form, got %q", teams[0].Name)
	}
	if teams[0].LeagueKey != "465.l.34067" {
		t.Errorf("expected league key on team, got %q", teams[0].LeagueKey)
	}
	if teams[0].ManagerGUID != "GUID1" || teams[0].ManagerName != "Navdeep" {
		t.Errorf("unexpected manager on team 1: %+v", teams[0])
	}

	// Name serialized as an object with a "full" member.
	if teams[1].Name != "Puck Hogs" {
		t.Errorf("expected name from object form, got %q", teams[1].Name)
	}
	if teams[1].ManagerGUID != "GUID2" {
		t.Errorf("unexpected manager on team 2: %+v", teams[1])
	}
}

func TestMyTeamKey(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"users":{"0":{"user":[
		{"guid":"GUID1"},
		{"teams":{
			"0":{"team":[[{"team_key":"449.l.99.t.4"},{"name":"Other Sport"}]]},
			"1":{"team":[[{"team_key":"465.l.34067.t.1"},{"name":"Mean Machine"}]]},
			"count":2
		}}
	]},"count":1}}}`)

	key, name, err := MyTeamKey(payload, "465.l.34067")
	if err != nil {
		t.Fatalf("error finding my team: %v", err)
	}
	if key != "465.l.34067.t.1" {
		t.Errorf("expected 465.l.34067.t.1, got %q", key)
	}
	if name != "Mean Machine" {
		t.Errorf("expected name 'Mean Machine', got %q", name)
	}
}

func TestMyTeamKey_notInLeague(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"users":{"0":{"user":[
		{"guid":"GUID1"},
		{"teams":{"0":{"team":[[{"team_key":"449.l.99.t.4"},{"name":"Other Sport"}]]},"count":1}}
	]},"count":1}}}`)

	key, _, err := MyTeamKey(payload, "465.l.34067")
	if err != nil {
		t.Fatalf("error finding my team: %v", err)
	}
	if key != "" {
		t.Errorf("expected no team, got %q", key)
	}
}

func TestStandings(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"league":[
		{"league_key":"465.l.34067"},
		{"standings":[{"teams":{
			"0":{"team":[
				[{"team_key":"465.l.34067.t.2"},{"name":"Puck Hogs"}],
				{"team_standings":{"rank":"1","outcome_totals":{"wins":"5","losses":"2","ties":"1","percentage":".688"},"points_for":"41.50"}}
			]},
			"1":{"team":[
				[{"team_key":"465.l.34067.t.1"},{"name":"Mean Machine"}],
				{"team_standings":{"rank":"2","outcome_totals":{"wins":"4","losses":"3","ties":"1","percentage":""},"points_for":"38.00"}}
			]},
			"count":2
		}}]}
	]}}`)

	standings, err := Standings(payload)
	if err != nil {
		t.Fatalf("error normalizing standings: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(standings))
	}

	first := standings[0]
	if first.TeamKey != "465.l.34067.t.2" || first.Rank != 1 {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.Wins != 5 || first.Losses != 2 || first.Ties != 1 {
		t.Errorf("unexpected record: %+v", first)
	}
	if first.Percentage == nil || *first.Percentage != 0.688 {
		t.Errorf("expected percentage .688, got %v", first.Percentage)
	}
	if first.PointsFor == nil || *first.PointsFor != 41.5 {
		t.Errorf("expected points for 41.50, got %v", first.PointsFor)
	}

	// The vendor left the percentage blank; it is derived from the record.
	second := standings[1]
	if second.Percentage == nil || *second.Percentage != (4.0+0.5)/8.0 {
		t.Errorf("expected derived percentage, got %v", second.Percentage)
	}
}
