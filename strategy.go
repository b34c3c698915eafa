package tokenauth

import "net/http"

// Strategy authenticates a single inbound request. Implementations hold only
// configuration fixed at construction time and must be safe for concurrent
// use; every Authenticate call is independent.
type Strategy interface {
	Name() string
	Authenticate(r *http.Request) Outcome
}

// Outcome is the result of a Strategy.Authenticate call, one of Success,
// Failure or Error.
type Outcome interface {
	outcome()
}

// Success carries the user accepted by the verify callback, together with
// whatever info the callback supplied and the normalized provider profile.
type Success struct {
	User    string
	Info    Info
	Profile *Profile
}

// Failure is a recoverable authentication failure: missing or bad
// credentials, or a verify callback that declined the user. The caller may
// retry with different credentials.
type Failure struct {
	Message string
	Info    Info
}

// Error is an infrastructure or provider failure, distinct from Failure.
type Error struct {
	Err error
}

func (Success) outcome() {}
func (Failure) outcome() {}
func (Error) outcome()   {}
