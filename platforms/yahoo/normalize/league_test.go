package normalize

import (
	"reflect"
	"testing"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
)

func TestGames(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"users":{"0":{"user":[
		{"guid":"GUID1"},
		{"games":{
			"0":{"game":[{"game_key":"465","code":"nhl","season":"2025"}]},
			"1":{"game":[{"game_key":"449","code":"nfl","season":"2024"}]},
			"count":2
		}}
	]},"count":1}}}`)

	games, err := Games(payload)
	if err != nil {
		t.Fatalf("error normalizing games: %v", err)
	}

	expected := []model.Game{
		{Key: "465", Code: "nhl", Season: 2025},
		{Key: "449", Code: "nfl", Season: 2024},
	}
	if !reflect.DeepEqual(games, expected) {
		t.Errorf("expected %+v, got %+v", expected, games)
	}
}

// A user with no fantasy games gets {"count": 0} for the games collection.
func TestGames_none(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"users":{"0":{"user":[
		{"guid":"GUID1"},
		{"games":{"count":0}}
	]},"count":1}}}`)

	games, err := Games(payload)
	if err != nil {
		t.Fatalf("error normalizing empty games: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("expected no games, got %+v", games)
	}
}

func TestLeagues_nestedUnderGames(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"users":{"0":{"user":[
		{"guid":"GUID1"},
		{"games":{"0":{"game":[
			{"game_key":"465","code":"nhl","season":"2025"},
			{"leagues":{"0":{"league":[{
				"league_key":"465.l.34067","name":"Frozen Five","season":"2025",
				"scoring_type":"head","current_week":"1"
			}]},"count":1}}
		]},"count":1}}
	]},"count":1}}}`)

	leagues, err := Leagues(payload)
	if err != nil {
		t.Fatalf("error normalizing leagues: %v", err)
	}
	if len(leagues) != 1 {
		t.Fatalf("expected 1 league, got %d", len(leagues))
	}

	l := leagues[0]
	if l.Key != "465.l.34067" {
		t.Errorf("expected key 465.l.34067, got %q", l.Key)
	}
	if l.Name != "Frozen Five" {
		t.Errorf("expected name 'Frozen Five', got %q", l.Name)
	}
	if l.Sport != "nhl" {
		t.Errorf("expected sport backfilled from the game code, got %q", l.Sport)
	}
	if l.ScoringType != "head" {
		t.Errorf("expected scoring type head, got %q", l.ScoringType)
	}
	if l.CurrentWeek != 1 {
		t.Errorf("expected current week 1, got %d", l.CurrentWeek)
	}
}

func TestLeagueSettings(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"league":[
		{"league_key":"465.l.34067","name":"Frozen Five","season":"2025","game_code":"nhl"},
		{"settings":[{"scoring_type":"head","current_week":"4","stat_categories":{"stats":[
			{"stat":{"stat_id":"1","display_name":"G","name":"Goals","sort_order":"1"}},
			{"stat":{"stat_id":"2","display_name":"A","name":"Assists","sort_order":"1"}},
			{"stat":{"stat_id":"4","display_name":"+/-","name":"Plus/Minus","sort_order":"1"}}
		]}}]}
	]}}`)

	meta, err := LeagueSettings(payload)
	if err != nil {
		t.Fatalf("error normalizing settings: %v", err)
	}

	if meta.Key != "465.l.34067" {
		t.Errorf("expected key 465.l.34067, got %q", meta.Key)
	}
	if meta.ScoringType != "head" {
		t.Errorf("expected scoring type from settings fallback, got %q", meta.ScoringType)
	}
	if meta.CurrentWeek != 4 {
		t.Errorf("expected current week 4, got %d", meta.CurrentWeek)
	}

	expected := []string{"G", "A", "+/-"}
	if !reflect.DeepEqual(meta.ActiveCodes, expected) {
		t.Errorf("expected active codes %v, got %v", expected, meta.ActiveCodes)
	}
}

func TestStatCategories_sortOrder(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"game":[
		{"game_key":"465","code":"nhl"},
		{"stat_categories":{"stats":[
			{"stat":{"stat_id":"1","display_name":"G","name":"Goals","sort_order":"1"}},
			{"stat":{"stat_id":"19","display_name":"GAA","name":"Goals Against Average","sort_order":"0"}}
		]}}
	]}}`)

	defs, err := StatCategories(payload)
	if err != nil {
		t.Fatalf("error normalizing stat categories: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}

	if defs[0].Code != "G" || defs[0].LowerIsBetter {
		t.Errorf("expected G with higher-is-better, got %+v", defs[0])
	}
	if defs[1].Code != "GAA" || !defs[1].LowerIsBetter {
		t.Errorf("expected GAA with lower-is-better, got %+v", defs[1])
	}
}

func TestMergeCategories(t *testing.T) {
	defs := []model.StatCategory{
		{ID: "2", Code: "A", Name: "Assists"},
		{ID: "1", Code: "G", Name: "Goals"},
		{ID: "4", Code: "+/-", Name: "Plus/Minus"},
		{ID: "5", Code: "PIM", Name: "Penalty Minutes", LowerIsBetter: true},
	}

	merged := MergeCategories([]string{"G", "A", "+/-"}, defs)

	codes := make([]string, 0, len(merged))
	for _, c := range merged {
		codes = append(codes, c.Code)
	}
	// Active order wins, non-active definitions are dropped.
	expected := []string{"G", "A", "+/-"}
	if !reflect.DeepEqual(codes, expected) {
		t.Errorf("expected %v, got %v", expected, codes)
	}
	if merged[0].ID != "1" || merged[0].Name != "Goals" {
		t.Errorf("expected the G definition to be joined in, got %+v", merged[0])
	}
}

func TestMergeCategories_missingDefinition(t *testing.T) {
	merged := MergeCategories([]string{"G", "XYZ"}, []model.StatCategory{{ID: "1", Code: "G", Name: "Goals"}})

	if len(merged) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(merged))
	}
	if merged[1].Code != "XYZ" || merged[1].Name != "XYZ" || merged[1].ID != "" {
		t.Errorf("expected a bare category for the unknown code, got %+v", merged[1])
	}
}

func TestUserGUID(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"users":{"0":{"user":[{"guid":"GUID1"}]},"count":1}}}`)

	guid, err := UserGUID(payload)
	if err != nil {
		t.Fatalf("error extracting guid: %v", err)
	}
	if guid != "GUID1" {
		t.Errorf("expected GUID1, got %q", guid)
	}
}

func TestUserGUID_missing(t *testing.T) {
	payload := parse(t, `{"fantasy_content":{"users":{"0":{"user":[{"nickname":"nobody"}]},"count":1}}}`)

	if _, err := UserGUID(payload); err == nil {
		t.Errorf("expected an error when the guid is absent")
	}
}
