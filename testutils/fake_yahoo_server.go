package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Fixture identifiers served by the fake Yahoo API. Everything is scoped
// to one nhl league with two teams.
const (
	YahooUserGUID  = "JT4FACLQZI2OCE"
	YahooGameKey   = "465"
	YahooLeagueKey = "465.l.34067"
	YahooMyTeamKey = "465.l.34067.t.1"
	YahooOppKey    = "465.l.34067.t.2"
)

//go:embed yahoodata
var yahoodata embed.FS

// FakeYahooServer mimics the fantasy API. When a valid token is set, any
// request carrying a different bearer token gets a 401, which is how the
// refresh-and-retry path is exercised. Request counts are recorded so
// tests can assert exact call budgets.
type FakeYahooServer struct {
	s *httptest.Server

	mu           sync.Mutex
	validToken   string
	requests     int
	unauthorized int
}

func NewFakeYahooServer() *FakeYahooServer {
	f := &FakeYahooServer{}

	r := chi.NewRouter()
	// Yahoo paths carry matrix parameters (";week=1", ";use_login=1") that
	// don't fit chi's segment patterns, so dispatch happens on the raw path.
	r.HandleFunc("/*", f.dispatch)

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeYahooServer) Close() {
	f.s.Close()
}

func (f *FakeYahooServer) URL() string {
	return f.s.URL
}

// SetValidToken makes the server reject any other bearer token with a 401.
// An empty value accepts everything.
func (f *FakeYahooServer) SetValidToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validToken = token
}

// Requests returns how many calls the server has seen, including rejected
// ones.
func (f *FakeYahooServer) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

// Unauthorized returns how many calls were rejected for a bad token.
func (f *FakeYahooServer) Unauthorized() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unauthorized
}

func (f *FakeYahooServer) dispatch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests++
	valid := f.validToken
	f.mu.Unlock()

	if valid != "" && r.Header.Get("Authorization") != fmt.Sprintf("Bearer %s", valid) {
		f.mu.Lock()
		f.unauthorized++
		f.mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"token_expired"}}`))
		return
	}

	path := r.URL.Path
	switch {
	case path == "/users;use_login=1":
		serveYahooFile(w, "user_profile.json")
	case path == "/users;use_login=1/games":
		serveYahooFile(w, "games.json")
	case strings.HasPrefix(path, "/users;use_login=1/games;game_keys=") && strings.HasSuffix(path, "/leagues"):
		serveYahooFile(w, "leagues.json")
	case path == "/users;use_login=1/teams":
		serveYahooFile(w, "user_teams.json")
	case path == fmt.Sprintf("/league/%s/settings", YahooLeagueKey):
		serveYahooFile(w, "settings.json")
	case path == fmt.Sprintf("/game/%s/stat_categories", YahooGameKey):
		serveYahooFile(w, "stat_categories.json")
	case path == fmt.Sprintf("/league/%s/teams", YahooLeagueKey):
		serveYahooFile(w, "teams.json")
	case path == fmt.Sprintf("/league/%s/standings", YahooLeagueKey):
		serveYahooFile(w, "standings.json")
	case strings.HasPrefix(path, fmt.Sprintf("/league/%s/scoreboard", YahooLeagueKey)):
		serveYahooFile(w, "scoreboard.json")
	case strings.HasPrefix(path, fmt.Sprintf("/league/%s/players", YahooLeagueKey)):
		serveYahooFile(w, "players.json")
	case strings.HasPrefix(path, fmt.Sprintf("/team/%s/roster", YahooMyTeamKey)):
		serveYahooFile(w, "roster.json")
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"description":"resource not found"}}`))
	}
}

func serveYahooFile(w http.ResponseWriter, name string) {
	b, err := yahoodata.ReadFile(fmt.Sprintf("yahoodata/%s", name))
	if err != nil {
		log.Printf("error reading yahoodata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
