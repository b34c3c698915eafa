// Package windowslive implements a bearer-token authentication strategy for
// the Windows Live (Live Connect) API. Unlike a redirect-based OAuth flow the
// client presents an already-issued access token in the request body or query
// string; the strategy verifies it against the Live Connect profile endpoint
// and hands the normalized profile to an application-supplied verify callback.
package windowslive

import (
	"fmt"
	"net/http"

	tokenauth "github.com/aethelin/go-token-auth"
	"golang.org/x/oauth2"
)

const StrategyName = "windows-live-token"

const (
	DefaultAuthURL    = "https://login.live.com/oauth20_authorize.srf"
	DefaultTokenURL   = "https://login.live.com/oauth20_token.srf"
	DefaultProfileURL = "https://apis.live.net/v5.0/me"
)

const (
	defaultAccessTokenField  = "access_token"
	defaultRefreshTokenField = "refresh_token"
)

type Config struct {
	ClientID     string
	ClientSecret string

	// Field names the tokens are read from; request body is consulted first,
	// then the query string. Defaults are "access_token" and "refresh_token".
	AccessTokenField  string
	RefreshTokenField string

	// Endpoint overrides, useful for tests. Defaults point at the public
	// Live Connect API.
	AuthURL    string
	TokenURL   string
	ProfileURL string

	Scopes []string
}

// VerifyFunc decides whether a user session should be established for the
// presented token. Returning an error signals an infrastructure failure; an
// empty user declines the sign-in with the supplied info attached.
type VerifyFunc func(accessToken, refreshToken string, profile *tokenauth.Profile) (user string, info tokenauth.Info, err error)

// VerifyRequestFunc is the request-aware variant used by NewWithRequest.
type VerifyRequestFunc func(r *http.Request, accessToken, refreshToken string, profile *tokenauth.Profile) (user string, info tokenauth.Info, err error)

type Strategy struct {
	config     *oauth2.Config
	profileURL string

	accessTokenField  string
	refreshTokenField string

	verify        VerifyFunc
	verifyRequest VerifyRequestFunc
}

func New(config Config, verify VerifyFunc) *Strategy {
	s := newStrategy(config)
	s.verify = verify

	return s
}

// NewWithRequest builds a strategy whose verify callback receives the inbound
// request as its first argument.
func NewWithRequest(config Config, verify VerifyRequestFunc) *Strategy {
	s := newStrategy(config)
	s.verifyRequest = verify

	return s
}

func newStrategy(config Config) *Strategy {
	authURL := config.AuthURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}

	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	profileURL := config.ProfileURL
	if profileURL == "" {
		profileURL = DefaultProfileURL
	}

	accessTokenField := config.AccessTokenField
	if accessTokenField == "" {
		accessTokenField = defaultAccessTokenField
	}

	refreshTokenField := config.RefreshTokenField
	if refreshTokenField == "" {
		refreshTokenField = defaultRefreshTokenField
	}

	return &Strategy{
		config: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
			Scopes: config.Scopes,
		},
		profileURL:        profileURL,
		accessTokenField:  accessTokenField,
		refreshTokenField: refreshTokenField,
	}
}

func (s *Strategy) Name() string {
	return StrategyName
}

func (s *Strategy) Config() *oauth2.Config {
	return s.config
}

func (s *Strategy) Authenticate(r *http.Request) tokenauth.Outcome {
	accessToken := lookupField(r, s.accessTokenField)
	if accessToken == "" {
		return tokenauth.Failure{Message: fmt.Sprintf("You should provide %s", s.accessTokenField)}
	}

	refreshToken := lookupField(r, s.refreshTokenField)

	profile, err := s.UserProfile(r.Context(), accessToken)
	if err != nil {
		return tokenauth.Error{Err: err}
	}

	var user string
	var info tokenauth.Info
	if s.verifyRequest != nil {
		user, info, err = s.verifyRequest(r, accessToken, refreshToken, profile)
	} else {
		user, info, err = s.verify(accessToken, refreshToken, profile)
	}

	if err != nil {
		return tokenauth.Error{Err: err}
	}

	if user == "" {
		return tokenauth.Failure{Info: info}
	}

	return tokenauth.Success{User: user, Info: info, Profile: profile}
}

// lookupField reads a token field from the request body, then from the query
// string; the first non-empty value wins.
func lookupField(r *http.Request, field string) string {
	if value := r.PostFormValue(field); value != "" {
		return value
	}

	return r.URL.Query().Get(field)
}
