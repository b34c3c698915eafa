package windowslive

import (
	"encoding/json"
	"fmt"
)

// ProviderError is a failed response of the Live Connect API. Code and
// Message are filled in when the response body carried the provider's error
// envelope.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("windows live: %s (code %s)", e.Message, e.Code)
	}

	return fmt.Sprintf("windows live: profile request failed with status %d", e.StatusCode)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseProviderError(status int, body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return &ProviderError{StatusCode: status}
	}

	return &ProviderError{
		StatusCode: status,
		Code:       envelope.Error.Code,
		Message:    envelope.Error.Message,
	}
}
