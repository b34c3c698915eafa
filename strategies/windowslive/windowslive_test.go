package windowslive

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	tokenauth "github.com/aethelin/go-token-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileFixture = `{
	"id": "8c8ce076ca27823f",
	"name": "Roberto Tamburello",
	"first_name": "Roberto",
	"last_name": "Tamburello",
	"username": "robertot",
	"emails": {
		"preferred": "roberto@example.com",
		"account": "roberto@contoso.com",
		"personal": "roberto@example.com",
		"business": "robertot@fabrikam.com"
	}
}`

func profileServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func tokenRequest(fields url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/auth/windows-live-token", strings.NewReader(fields.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r
}

func TestAuthenticateMissingToken(t *testing.T) {
	s := New(Config{}, func(accessToken, refreshToken string, profile *tokenauth.Profile) (string, tokenauth.Info, error) {
		t.Fatal("verify callback must not run without a token")
		return "", nil, nil
	})

	outcome := s.Authenticate(tokenRequest(url.Values{}))

	failure, ok := outcome.(tokenauth.Failure)
	require.True(t, ok)
	assert.Equal(t, "You should provide access_token", failure.Message)
}

func TestAuthenticateMissingTokenCustomField(t *testing.T) {
	s := New(Config{AccessTokenField: "oauth_token"}, nil)

	outcome := s.Authenticate(tokenRequest(url.Values{"access_token": {"token123"}}))

	failure, ok := outcome.(tokenauth.Failure)
	require.True(t, ok)
	assert.Equal(t, "You should provide oauth_token", failure.Message)
}

func TestAuthenticateSuccess(t *testing.T) {
	server := profileServer(t, http.StatusOK, profileFixture)

	var seenRefresh string
	s := New(Config{ProfileURL: server.URL}, func(accessToken, refreshToken string, profile *tokenauth.Profile) (string, tokenauth.Info, error) {
		assert.Equal(t, "token123", accessToken)
		seenRefresh = refreshToken

		return "user-1", tokenauth.Info{"scope": "wl.basic"}, nil
	})

	outcome := s.Authenticate(tokenRequest(url.Values{
		"access_token":  {"token123"},
		"refresh_token": {"refresh456"},
	}))

	success, ok := outcome.(tokenauth.Success)
	require.True(t, ok)
	assert.Equal(t, "user-1", success.User)
	assert.Equal(t, tokenauth.Info{"scope": "wl.basic"}, success.Info)
	assert.Equal(t, "refresh456", seenRefresh)

	require.NotNil(t, success.Profile)
	assert.Equal(t, "8c8ce076ca27823f", success.Profile.ID)
}

func TestAuthenticateTokenFromQuery(t *testing.T) {
	server := profileServer(t, http.StatusOK, profileFixture)

	s := New(Config{ProfileURL: server.URL}, func(accessToken, refreshToken string, profile *tokenauth.Profile) (string, tokenauth.Info, error) {
		return "user-1", nil, nil
	})

	r := httptest.NewRequest(http.MethodPost, "/api/auth/windows-live-token?access_token=token123", nil)

	_, ok := s.Authenticate(r).(tokenauth.Success)
	assert.True(t, ok)
}

func TestAuthenticateBodyWinsOverQuery(t *testing.T) {
	server := profileServer(t, http.StatusOK, profileFixture)

	s := New(Config{ProfileURL: server.URL}, func(accessToken, refreshToken string, profile *tokenauth.Profile) (string, tokenauth.Info, error) {
		assert.Equal(t, "token123", accessToken)
		return "user-1", nil, nil
	})

	r := httptest.NewRequest(http.MethodPost, "/api/auth/windows-live-token?access_token=fromquery", strings.NewReader("access_token=token123"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, ok := s.Authenticate(r).(tokenauth.Success)
	assert.True(t, ok)
}

func TestAuthenticateVerifyDeclines(t *testing.T) {
	server := profileServer(t, http.StatusOK, profileFixture)

	s := New(Config{ProfileURL: server.URL}, func(accessToken, refreshToken string, profile *tokenauth.Profile) (string, tokenauth.Info, error) {
		return "", tokenauth.Info{"message": "account disabled"}, nil
	})

	outcome := s.Authenticate(tokenRequest(url.Values{"access_token": {"token123"}}))

	failure, ok := outcome.(tokenauth.Failure)
	require.True(t, ok)
	assert.Equal(t, tokenauth.Info{"message": "account disabled"}, failure.Info)
}

func TestAuthenticateVerifyError(t *testing.T) {
	server := profileServer(t, http.StatusOK, profileFixture)

	s := New(Config{ProfileURL: server.URL}, func(accessToken, refreshToken string, profile *tokenauth.Profile) (string, tokenauth.Info, error) {
		return "", nil, errors.New("database unreachable")
	})

	outcome := s.Authenticate(tokenRequest(url.Values{"access_token": {"token123"}}))

	errOutcome, ok := outcome.(tokenauth.Error)
	require.True(t, ok)
	assert.EqualError(t, errOutcome.Err, "database unreachable")
}

func TestAuthenticatePassesRequest(t *testing.T) {
	server := profileServer(t, http.StatusOK, profileFixture)

	s := NewWithRequest(Config{ProfileURL: server.URL}, func(r *http.Request, accessToken, refreshToken string, profile *tokenauth.Profile) (string, tokenauth.Info, error) {
		require.NotNil(t, r)
		assert.Equal(t, "/api/auth/windows-live-token", r.URL.Path)

		return "user-1", nil, nil
	})

	_, ok := s.Authenticate(tokenRequest(url.Values{"access_token": {"token123"}})).(tokenauth.Success)
	assert.True(t, ok)
}

func TestUserProfileNormalization(t *testing.T) {
	server := profileServer(t, http.StatusOK, profileFixture)
	s := New(Config{ProfileURL: server.URL}, nil)

	profile, err := s.UserProfile(context.Background(), "token123")
	require.NoError(t, err)

	assert.Equal(t, StrategyName, profile.Provider)
	assert.Equal(t, "8c8ce076ca27823f", profile.ID)
	assert.Equal(t, "robertot", profile.Username)
	assert.Equal(t, "Roberto Tamburello", profile.DisplayName)
	assert.Equal(t, tokenauth.Name{FamilyName: "Tamburello", GivenName: "Roberto"}, profile.Name)

	assert.Equal(t, []tokenauth.Email{
		{Value: "roberto@contoso.com", Type: tokenauth.EmailAccount},
		{Value: "roberto@example.com", Type: tokenauth.EmailHome, Primary: true},
		{Value: "robertot@fabrikam.com", Type: tokenauth.EmailWork},
	}, profile.Emails)

	assert.Equal(t, []tokenauth.Photo{
		{Value: "https://apis.live.net/v5.0/8c8ce076ca27823f/picture"},
	}, profile.Photos)

	assert.JSONEq(t, profileFixture, string(profile.Raw))
	assert.Equal(t, "8c8ce076ca27823f", profile.Data["id"])
}

func TestUserProfileNoPreferredEmail(t *testing.T) {
	server := profileServer(t, http.StatusOK, `{"id":"1","name":"n","emails":{"account":"a@example.com","business":"b@example.com"}}`)
	s := New(Config{ProfileURL: server.URL}, nil)

	profile, err := s.UserProfile(context.Background(), "token123")
	require.NoError(t, err)

	require.Len(t, profile.Emails, 2)
	for _, email := range profile.Emails {
		assert.False(t, email.Primary)
	}
}

func TestUserProfileNoEmails(t *testing.T) {
	server := profileServer(t, http.StatusOK, `{"id":"1","name":"n"}`)
	s := New(Config{ProfileURL: server.URL}, nil)

	profile, err := s.UserProfile(context.Background(), "token123")
	require.NoError(t, err)
	assert.Empty(t, profile.Emails)
}

func TestUserProfileMalformedBody(t *testing.T) {
	server := profileServer(t, http.StatusOK, "<html>not json</html>")
	s := New(Config{ProfileURL: server.URL}, nil)

	profile, err := s.UserProfile(context.Background(), "token123")
	assert.Nil(t, profile)

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestUserProfileProviderError(t *testing.T) {
	server := profileServer(t, http.StatusUnauthorized, `{"error":{"code":"request_token_invalid","message":"The access token isn't valid."}}`)
	s := New(Config{ProfileURL: server.URL}, nil)

	_, err := s.UserProfile(context.Background(), "token123")

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	assert.Equal(t, "request_token_invalid", providerErr.Code)
	assert.Equal(t, "The access token isn't valid.", providerErr.Message)
}

func TestUserProfileOpaqueError(t *testing.T) {
	server := profileServer(t, http.StatusBadGateway, "upstream exploded")
	s := New(Config{ProfileURL: server.URL}, nil)

	_, err := s.UserProfile(context.Background(), "token123")

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusBadGateway, providerErr.StatusCode)
	assert.Empty(t, providerErr.Code)
	assert.Empty(t, providerErr.Message)
}

func TestUserProfileDeterministic(t *testing.T) {
	server := profileServer(t, http.StatusOK, profileFixture)
	s := New(Config{ProfileURL: server.URL}, nil)

	first, err := s.UserProfile(context.Background(), "token123")
	require.NoError(t, err)

	second, err := s.UserProfile(context.Background(), "token123")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDefaults(t *testing.T) {
	s := New(Config{ClientID: "id", ClientSecret: "secret"}, nil)

	assert.Equal(t, StrategyName, s.Name())
	assert.Equal(t, DefaultProfileURL, s.profileURL)
	assert.Equal(t, DefaultAuthURL, s.Config().Endpoint.AuthURL)
	assert.Equal(t, DefaultTokenURL, s.Config().Endpoint.TokenURL)
	assert.Equal(t, "access_token", s.accessTokenField)
	assert.Equal(t, "refresh_token", s.refreshTokenField)
}
