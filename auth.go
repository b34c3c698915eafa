package tokenauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/oauth2"
)

type Auth struct {
	basePath   string
	adapter    Adapter
	strategies map[string]Strategy
	options    AuthOptions

	stateSecret string
}

func NewAuth(basePath string, adapter Adapter, strategies []Strategy, options ...AuthOptions) *Auth {
	if len(options) > 1 {
		panic("more than one AuthOptions entries provided")
	}

	strategyMap := make(map[string]Strategy)
	for _, strategy := range strategies {
		if _, ok := strategyMap[strategy.Name()]; ok {
			panic(fmt.Sprintf("Strategy with name '%s' already registered", strategy.Name()))
		}

		strategyMap[strategy.Name()] = strategy
	}

	var authOptions AuthOptions
	if len(options) == 1 {
		authOptions = options[0]
	}

	return &Auth{
		basePath:    basePath,
		adapter:     adapter,
		stateSecret: oauth2.GenerateVerifier(),
		strategies:  strategyMap,
		options:     authOptions.withDefaults(),
	}
}

// Adapter returns the used database adapter, which can be used to remove sessions, etc.
func (a *Auth) Adapter() Adapter {
	return a.adapter
}

func (a *Auth) BasePath() string {
	return a.basePath
}

func (a *Auth) Handlers(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path := parsePath(r.URL.Path, a.basePath).(type) {
		case csrf:
			a.csrfHandler(w, r)
		case strategy:
			a.strategyHandler(path, w, r)
		case strategies:
			a.strategiesHandler(w, r)
		case signOut:
			a.signOutHandler(w, r)
		case notFound:
			w.WriteHeader(http.StatusNotFound)
		case unmatched:
			next.ServeHTTP(w, r)
		}
	})
}

// SignOut signs out a user based on the value of the sessionId found in the request's cookies.
// Method **does not** send any status codes on fail, instead returning the encountered error.
// Not CSRF-protected.
func (a *Auth) SignOut(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(a.options.SessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil
		}
		return err
	}

	if err := a.adapter.RemoveSession(cookie.Value); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.options.SessionCookieName,
		Path:     "/",
		Value:    "",
		HttpOnly: true,
		SameSite: a.options.CookieSameSite,
		Domain:   a.options.CookieDomain,
		Expires:  time.Unix(0, 0),
	})

	return nil
}

func (a *Auth) Authenticate(r *http.Request) (string, bool, error) {
	cookie, err := r.Cookie(a.options.SessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", false, nil
		}

		return "", false, err
	}

	return a.AuthenticateSession(cookie.Value)
}

func (a *Auth) AuthenticateSession(sessionId string) (string, bool, error) {
	userId, expiresAt, err := a.adapter.GetSession(sessionId)
	if err != nil {
		return "", false, err
	}

	if expiresAt.Before(time.Now()) {
		_ = a.adapter.RemoveSession(sessionId)

		return "", false, errors.New("session expired")
	}

	return userId, true, nil
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, authenticated, err := a.Authenticate(r)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		if !authenticated {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SignIn resolves a normalized profile to a local user id, creating the
// account and user entries on first sight. It is the default body of a verify
// callback for applications that keep their users in the configured adapter.
func (a *Auth) SignIn(strategyId string, profile *Profile) (string, error) {
	accountId, accountExists, err := a.adapter.GetAccountId(strategyId, profile.ID)
	if err != nil {
		return "", err
	}

	var userId string

	// An account is created using the unique combination of strategy name and
	// provider account ID, the account itself is in relation with a user entry
	// uniquely identified with an email. If the user changes their email (on
	// the provider side) the said change is not reflected here as we default
	// to checking whether the account already exists given its key pair.
	if !accountExists {
		log.Debugf("account for details (%s, %s) does not exist, creating new entry", strategyId, profile.ID)

		email := profile.PrimaryEmail()

		var userExists bool
		userId, userExists, err = a.adapter.GetUserIdByEmail(email)
		if err != nil {
			return "", err
		}

		if !userExists {
			log.Debugf("user with email %s does not exist, creating new entry", email)

			userId, err = a.adapter.CreateUser(email, profile.DisplayName, profile.Avatar())
			if err != nil {
				return "", err
			}
		}

		log.Debugf("user with email %s exists, id: %s", email, userId)

		accountId, err = a.adapter.CreateAccount(userId, strategyId, profile.ID)
		if err != nil {
			return "", err
		}
	} else {
		userId, err = a.adapter.GetConnectedUserId(accountId)
		if err != nil {
			return "", err
		}
	}

	log.Debugf("account for details (%s, %s) exists, id: %s", strategyId, profile.ID, accountId)

	return userId, nil
}

// csrfToken sets a CSRF cookie with a generated random string as value.
// Returns the hashed representation (using a secret) that clients echo back
// in the X-Csrf-Token header.
func (a *Auth) csrfToken(w http.ResponseWriter) string {
	verifier := oauth2.GenerateVerifier()
	hash := generateHMAC(verifier, a.stateSecret)

	http.SetCookie(w, &http.Cookie{
		Name:     a.options.CsrfCookieName,
		Value:    verifier,
		Path:     "/",
		Secure:   a.options.CookieSecure,
		Domain:   a.options.CookieDomain,
		HttpOnly: true,
		SameSite: a.options.CookieSameSite,
	})

	return hash
}

func generateHMAC(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))

	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}
