package tokenauth

// Profile is the provider-agnostic shape every strategy normalizes its
// provider's userinfo response into. A Profile is built fresh per request and
// handed to the verify callback; it is never stored by this library.
type Profile struct {
	// Provider is the name of the strategy that produced this profile,
	// e.g. "windows-live-token".
	Provider string

	ID          string
	Username    string
	DisplayName string
	Name        Name
	Emails      []Email
	Photos      []Photo

	// Raw is the unparsed response body of the provider's profile endpoint.
	Raw []byte
	// Data is the same body parsed into a generic map, for fields the
	// normalized shape does not carry.
	Data map[string]any
}

type Name struct {
	FamilyName string
	GivenName  string
}

// Email types follow the portable-contacts convention.
const (
	EmailAccount = "account"
	EmailHome    = "home"
	EmailWork    = "work"
	EmailOther   = "other"
)

type Email struct {
	Value string
	Type  string
	// Primary is set on at most one entry, the one matching the address the
	// provider marked as preferred.
	Primary bool
}

type Photo struct {
	Value string
}

// PrimaryEmail returns the address flagged primary, falling back to the first
// entry when none is flagged.
func (p *Profile) PrimaryEmail() string {
	for _, email := range p.Emails {
		if email.Primary {
			return email.Value
		}
	}

	if len(p.Emails) > 0 {
		return p.Emails[0].Value
	}

	return ""
}

// Avatar returns the first photo URL, nil when the profile has none.
func (p *Profile) Avatar() *string {
	if len(p.Photos) == 0 {
		return nil
	}

	return &p.Photos[0].Value
}

// Info carries auxiliary data supplied by a verify callback alongside its
// decision, e.g. a human-readable reason for declining a user.
type Info map[string]any
