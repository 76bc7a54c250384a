package yahoo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/db"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/db/mockdb"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/model"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/testutils"
	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"
)

type clientFixture struct {
	client    *yahoo.Client
	db        *mockdb.DB
	clock     *clock.Mock
	fakeYahoo *testutils.FakeYahooServer
	fakeOAuth *testutils.FakeOAuthServer
}

func newClientFixture(t *testing.T) *clientFixture {
	t.Helper()

	mdb := &mockdb.DB{}
	mockClock := clock.NewMock()
	fakeYahoo := testutils.NewFakeYahooServer()
	fakeOAuth := testutils.NewFakeOAuthServer()
	t.Cleanup(fakeYahoo.Close)
	t.Cleanup(fakeOAuth.Close)

	return &clientFixture{
		client:    yahoo.NewForTest(fakeYahoo.URL(), fakeOAuth.Config(), mdb, mockClock),
		db:        mdb,
		clock:     mockClock,
		fakeYahoo: fakeYahoo,
		fakeOAuth: fakeOAuth,
	}
}

func (f *clientFixture) credential(token string, expiry time.Time) *model.Credential {
	return &model.Credential{
		UserGUID:     testutils.YahooUserGUID,
		AccessToken:  token,
		RefreshToken: "refresh-1",
		Expiry:       expiry,
	}
}

func TestRequest_notAuthenticated(t *testing.T) {
	f := newClientFixture(t)
	f.db.On("GetCredential", mock.Anything, testutils.YahooUserGUID).Return(nil, db.ErrCredentialNotFound)

	_, err := f.client.Request(context.Background(), testutils.YahooUserGUID, "/users;use_login=1/games", nil)
	if !errors.Is(err, yahoo.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if f.fakeYahoo.Requests() != 0 {
		t.Errorf("expected no vendor calls, got %d", f.fakeYahoo.Requests())
	}
}

func TestRequest_success(t *testing.T) {
	f := newClientFixture(t)
	cred := f.credential("access-1", f.clock.Now().Add(time.Hour))
	f.db.On("GetCredential", mock.Anything, testutils.YahooUserGUID).Return(cred, nil)

	payload, err := f.client.Request(context.Background(), testutils.YahooUserGUID, "/users;use_login=1/games", nil)
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	if payload["fantasy_content"] == nil {
		t.Errorf("expected a fantasy_content payload, got %v", payload)
	}

	if f.fakeYahoo.Requests() != 1 {
		t.Errorf("expected exactly 1 vendor call, got %d", f.fakeYahoo.Requests())
	}
	if f.fakeOAuth.TokenCalls() != 0 {
		t.Errorf("expected no token endpoint calls, got %d", f.fakeOAuth.TokenCalls())
	}
}

// An expired credential is refreshed before the request, so the vendor
// only ever sees the new token.
func TestRequest_proactiveRefresh(t *testing.T) {
	f := newClientFixture(t)
	f.fakeYahoo.SetValidToken("access-2")
	f.fakeOAuth.SetTokens("access-2", "refresh-2")

	cred := f.credential("access-1", f.clock.Now().Add(-time.Minute))
	f.db.On("GetCredential", mock.Anything, testutils.YahooUserGUID).Return(cred, nil)

	var saved *model.Credential
	f.db.On("SaveCredential", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*model.Credential)
	}).Return(nil)

	_, err := f.client.Request(context.Background(), testutils.YahooUserGUID, "/users;use_login=1/games", nil)
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}

	if f.fakeYahoo.Unauthorized() != 0 {
		t.Errorf("the stale token reached the vendor %d times", f.fakeYahoo.Unauthorized())
	}
	if f.fakeOAuth.TokenCalls() != 1 {
		t.Errorf("expected exactly 1 token endpoint call, got %d", f.fakeOAuth.TokenCalls())
	}
	if saved == nil {
		t.Fatalf("expected the rotated credential to be persisted")
	}
	if saved.AccessToken != "access-2" || saved.RefreshToken != "refresh-2" {
		t.Errorf("unexpected persisted tokens: %+v", saved)
	}
}

// A token the vendor rejects despite a future expiry gets one refresh and
// one retry.
func TestRequest_retryAfter401(t *testing.T) {
	f := newClientFixture(t)
	f.fakeYahoo.SetValidToken("access-2")
	f.fakeOAuth.SetTokens("access-2", "refresh-2")

	cred := f.credential("access-1", f.clock.Now().Add(time.Hour))
	f.db.On("GetCredential", mock.Anything, testutils.YahooUserGUID).Return(cred, nil)
	f.db.On("SaveCredential", mock.Anything, mock.Anything).Return(nil)

	payload, err := f.client.Request(context.Background(), testutils.YahooUserGUID, "/users;use_login=1/games", nil)
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	if payload["fantasy_content"] == nil {
		t.Errorf("expected a payload after the retry")
	}

	if f.fakeYahoo.Requests() != 2 {
		t.Errorf("expected exactly 2 vendor calls, got %d", f.fakeYahoo.Requests())
	}
	if f.fakeYahoo.Unauthorized() != 1 {
		t.Errorf("expected exactly 1 rejected call, got %d", f.fakeYahoo.Unauthorized())
	}
	if f.fakeOAuth.TokenCalls() != 1 {
		t.Errorf("expected exactly 1 token endpoint call, got %d", f.fakeOAuth.TokenCalls())
	}
	f.db.AssertNumberOfCalls(t, "SaveCredential", 1)
}

// When the refreshed token is rejected too, the retry budget is spent and
// the user has to log in again. Exactly two vendor calls, no more.
func TestRequest_reauthRequired(t *testing.T) {
	f := newClientFixture(t)
	f.fakeYahoo.SetValidToken("something-else")
	f.fakeOAuth.SetTokens("still-bad", "refresh-2")

	cred := f.credential("access-1", f.clock.Now().Add(time.Hour))
	f.db.On("GetCredential", mock.Anything, testutils.YahooUserGUID).Return(cred, nil)
	f.db.On("SaveCredential", mock.Anything, mock.Anything).Return(nil)

	_, err := f.client.Request(context.Background(), testutils.YahooUserGUID, "/users;use_login=1/games", nil)
	if !errors.Is(err, yahoo.ErrReauthRequired) {
		t.Fatalf("expected ErrReauthRequired, got %v", err)
	}

	if f.fakeYahoo.Requests() != 2 {
		t.Errorf("expected exactly 2 vendor calls, got %d", f.fakeYahoo.Requests())
	}
	if f.fakeOAuth.TokenCalls() != 1 {
		t.Errorf("expected exactly 1 token endpoint call, got %d", f.fakeOAuth.TokenCalls())
	}
}

// A rejected refresh token is terminal, the request never reaches the
// vendor.
func TestRequest_refreshRejected(t *testing.T) {
	f := newClientFixture(t)
	f.fakeOAuth.SetRejecting(true)

	cred := f.credential("access-1", f.clock.Now().Add(-time.Minute))
	f.db.On("GetCredential", mock.Anything, testutils.YahooUserGUID).Return(cred, nil)

	_, err := f.client.Request(context.Background(), testutils.YahooUserGUID, "/users;use_login=1/games", nil)
	if !errors.Is(err, yahoo.ErrReauthRequired) {
		t.Fatalf("expected ErrReauthRequired, got %v", err)
	}
	if f.fakeYahoo.Requests() != 0 {
		t.Errorf("expected no vendor calls, got %d", f.fakeYahoo.Requests())
	}
	f.db.AssertNotCalled(t, "SaveCredential", mock.Anything, mock.Anything)
}

// The refresh token is kept when the token endpoint doesn't rotate it.
func TestRequest_refreshKeepsOldRefreshToken(t *testing.T) {
	f := newClientFixture(t)
	f.fakeYahoo.SetValidToken("access-2")
	f.fakeOAuth.SetTokens("access-2", "")

	cred := f.credential("access-1", f.clock.Now().Add(-time.Minute))
	f.db.On("GetCredential", mock.Anything, testutils.YahooUserGUID).Return(cred, nil)

	var saved *model.Credential
	f.db.On("SaveCredential", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*model.Credential)
	}).Return(nil)

	if _, err := f.client.Request(context.Background(), testutils.YahooUserGUID, "/users;use_login=1/games", nil); err != nil {
		t.Fatalf("error making request: %v", err)
	}
	if saved == nil {
		t.Fatalf("expected the rotated credential to be persisted")
	}
	if saved.RefreshToken != "refresh-1" {
		t.Errorf("expected the old refresh token to be kept, got %q", saved.RefreshToken)
	}
}

func TestRequest_vendorErrorKinds(t *testing.T) {
	tests := []struct {
		status   int
		expected yahoo.VendorErrorKind
	}{
		{http.StatusTooManyRequests, yahoo.KindRateLimit},
		{http.StatusNotFound, yahoo.KindNotFound},
		{http.StatusInternalServerError, yahoo.KindServer},
		{http.StatusBadGateway, yahoo.KindServer},
		{http.StatusTeapot, yahoo.KindOther},
	}

	for _, tc := range tests {
		calls := 0
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(tc.status)
		}))

		mdb := &mockdb.DB{}
		mockClock := clock.NewMock()
		cred := &model.Credential{
			UserGUID:    testutils.YahooUserGUID,
			AccessToken: "access-1",
			Expiry:      mockClock.Now().Add(time.Hour),
		}
		mdb.On("GetCredential", mock.Anything, testutils.YahooUserGUID).Return(cred, nil)

		client := yahoo.NewForTest(s.URL, nil, mdb, mockClock)
		_, err := client.Request(context.Background(), testutils.YahooUserGUID, "/league/x/teams", nil)

		var vendorErr *yahoo.VendorError
		if !errors.As(err, &vendorErr) {
			t.Fatalf("status %d: expected a VendorError, got %v", tc.status, err)
		}
		if vendorErr.Kind != tc.expected {
			t.Errorf("status %d: expected kind %s, got %s", tc.status, tc.expected, vendorErr.Kind)
		}
		if vendorErr.StatusCode != tc.status {
			t.Errorf("status %d: expected the status carried, got %d", tc.status, vendorErr.StatusCode)
		}
		// These failures are never retried here; retry policy is the caller's.
		if calls != 1 {
			t.Errorf("status %d: expected exactly 1 call, got %d", tc.status, calls)
		}

		s.Close()
	}
}

func TestUserProfile(t *testing.T) {
	f := newClientFixture(t)

	payload, err := f.client.UserProfile(context.Background(), "any-token")
	if err != nil {
		t.Fatalf("error fetching profile: %v", err)
	}
	if payload["fantasy_content"] == nil {
		t.Errorf("expected a fantasy_content payload, got %v", payload)
	}
}
