package tokenauth

import (
	"net/http"
	"time"
)

type AuthOptions struct {
	SessionCookieName string
	CsrfCookieName    string

	CookieSecure   bool
	CookieDomain   string
	CookieSameSite http.SameSite

	// SessionTTL controls how far in the future sessions created on a
	// successful sign-in expire.
	SessionTTL time.Duration
}

const sessionCookie = "token-auth_session"
const csrfCookie = "token-auth_csrf"
const sessionTTL = 30 * 24 * time.Hour

func (left AuthOptions) withDefaults() AuthOptions {

	// SessionCookieName
	sessionCookieName := left.SessionCookieName
	if len(sessionCookieName) == 0 {
		sessionCookieName = sessionCookie
	}

	// CsrfCookieName
	csrfCookieName := left.CsrfCookieName
	if len(csrfCookieName) == 0 {
		csrfCookieName = csrfCookie
	}

	// CookieSameSite
	sameSite := left.CookieSameSite
	if sameSite == 0 {
		sameSite = http.SameSiteLaxMode
	}

	// SessionTTL
	ttl := left.SessionTTL
	if ttl == 0 {
		ttl = sessionTTL
	}

	defaults := AuthOptions{
		SessionCookieName: sessionCookieName,
		CsrfCookieName:    csrfCookieName,

		CookieSecure:   left.CookieSecure,
		CookieDomain:   left.CookieDomain,
		CookieSameSite: sameSite,

		SessionTTL: ttl,
	}

	return defaults
}
