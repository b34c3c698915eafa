package windowslive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	tokenauth "github.com/aethelin/go-token-auth"
	"golang.org/x/oauth2"
)

// liveUser is the proprietary shape of the Live Connect /me endpoint.
type liveUser struct {
	Id        string      `json:"id"`
	Name      string      `json:"name"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Username  string      `json:"username"`
	Emails    *liveEmails `json:"emails"`
}

type liveEmails struct {
	Preferred string `json:"preferred"`
	Account   string `json:"account"`
	Personal  string `json:"personal"`
	Business  string `json:"business"`
	Other     string `json:"other"`
}

// UserProfile fetches the Live Connect profile authenticated with the given
// bearer token and normalizes it. A non-JSON response body surfaces as a
// *json.SyntaxError; provider error envelopes surface as *ProviderError.
func (s *Strategy) UserProfile(ctx context.Context, accessToken string) (*tokenauth.Profile, error) {
	client := s.config.Client(ctx, &oauth2.Token{AccessToken: accessToken})

	res, err := client.Get(s.profileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user profile response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, parseProviderError(res.StatusCode, body)
	}

	var raw liveUser
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	return newProfile(raw, body), nil
}

func newProfile(raw liveUser, body []byte) *tokenauth.Profile {
	profile := &tokenauth.Profile{
		Provider:    StrategyName,
		ID:          raw.Id,
		Username:    raw.Username,
		DisplayName: raw.Name,
		Name: tokenauth.Name{
			FamilyName: raw.LastName,
			GivenName:  raw.FirstName,
		},
		Photos: []tokenauth.Photo{
			{Value: fmt.Sprintf("https://apis.live.net/v5.0/%s/picture", raw.Id)},
		},
		Raw: body,
	}

	if raw.Emails != nil {
		marked := false
		appendEmail := func(value, kind string) {
			if value == "" {
				return
			}

			primary := !marked && value == raw.Emails.Preferred
			marked = marked || primary

			profile.Emails = append(profile.Emails, tokenauth.Email{
				Value:   value,
				Type:    kind,
				Primary: primary,
			})
		}

		appendEmail(raw.Emails.Account, tokenauth.EmailAccount)
		appendEmail(raw.Emails.Personal, tokenauth.EmailHome)
		appendEmail(raw.Emails.Business, tokenauth.EmailWork)
		appendEmail(raw.Emails.Other, tokenauth.EmailOther)
	}

	// Body parsed once already, so this cannot fail.
	_ = json.Unmarshal(body, &profile.Data)

	return profile
}
