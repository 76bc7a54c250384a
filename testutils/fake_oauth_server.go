package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"golang.org/x/oauth2"
)

// FakeOAuthServer is a stand-in token endpoint. Tests can change the
// tokens it hands out and flip it into a rejecting mode to simulate a
// revoked refresh token.
type FakeOAuthServer struct {
	s *httptest.Server

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	rejecting    bool
	tokenCalls   int
}

func NewFakeOAuthServer() *FakeOAuthServer {
	f := &FakeOAuthServer{
		accessToken:  "access_token",
		refreshToken: "refresh_token",
	}
	f.s = httptest.NewServer(http.HandlerFunc(f.tokenHandler))
	return f
}

func (f *FakeOAuthServer) Close() {
	f.s.Close()
}

// Config returns an oauth2 config pointed at the fake endpoints.
func (f *FakeOAuthServer) Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "fakeClientID",
		ClientSecret: "fakeClientSecret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("%s/auth", f.s.URL),
			TokenURL: fmt.Sprintf("%s/token", f.s.URL),
		},
		RedirectURL: fmt.Sprintf("%s/redirect", f.s.URL),
	}
}

// SetTokens changes the token pair handed out by the endpoint.
func (f *FakeOAuthServer) SetTokens(access, refresh string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessToken = access
	f.refreshToken = refresh
}

// SetRejecting makes the endpoint answer every grant with invalid_grant,
// the way the vendor answers a revoked refresh token.
func (f *FakeOAuthServer) SetRejecting(rejecting bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejecting = rejecting
}

// TokenCalls returns how many times the token endpoint has been hit.
func (f *FakeOAuthServer) TokenCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenCalls
}

func (f *FakeOAuthServer) tokenHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.tokenCalls++
	rejecting := f.rejecting
	access := f.accessToken
	refresh := f.refreshToken
	f.mu.Unlock()

	w.Header().Add("Content-Type", "application/json")
	if rejecting {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{
		"access_token": "%s",
		"refresh_token": "%s",
		"token_type": "bearer",
		"expires_in": 3600
	}`, access, refresh)
}
