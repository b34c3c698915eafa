package tokenauth

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func (a *Auth) csrfHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	_, _ = w.Write([]byte(a.csrfToken(w)))
}

func (a *Auth) strategyHandler(path strategy, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	strategy, ok := a.strategies[path.strategyId]
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch outcome := strategy.Authenticate(r).(type) {
	case Success:
		sessionId, err := a.adapter.CreateSession(outcome.User, time.Now().Add(a.options.SessionTTL))
		if err != nil {
			log.Error("error while creating session", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     a.options.SessionCookieName,
			Value:    sessionId,
			Path:     "/",
			Expires:  time.Now().Add(a.options.SessionTTL),
			HttpOnly: true,
			Secure:   a.options.CookieSecure,
			Domain:   a.options.CookieDomain,
			SameSite: a.options.CookieSameSite,
		})

		writeJSON(w, http.StatusOK, map[string]any{
			"user_id": outcome.User,
			"info":    outcome.Info,
		})
	case Failure:
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"message": outcome.Message,
			"info":    outcome.Info,
		})
	case Error:
		log.Error("error while authenticating request", outcome.Err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *Auth) strategiesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	keys := make([]string, 0, len(a.strategies))
	for k := range a.strategies {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	writeJSON(w, http.StatusOK, keys)
}

func (a *Auth) signOutHandler(w http.ResponseWriter, r *http.Request) {
	defer a.removeCookie(a.options.CsrfCookieName, w)

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	csrfHash := r.Header.Get("X-Csrf-Token")
	csrfCookie, err := r.Cookie(a.options.CsrfCookieName)
	if err != nil || generateHMAC(csrfCookie.Value, a.stateSecret) != csrfHash {
		http.Error(w, "Invalid CSRF token", http.StatusForbidden)
		return
	}

	if err := a.SignOut(w, r); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func (a *Auth) removeCookie(name string, w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   a.options.CookieDomain,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	by, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(by)
}
