package tokenauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryEmail(t *testing.T) {
	profile := &Profile{Emails: []Email{
		{Value: "account@example.com", Type: EmailAccount},
		{Value: "home@example.com", Type: EmailHome, Primary: true},
	}}

	assert.Equal(t, "home@example.com", profile.PrimaryEmail())
}

func TestPrimaryEmailFallsBackToFirst(t *testing.T) {
	profile := &Profile{Emails: []Email{
		{Value: "account@example.com", Type: EmailAccount},
		{Value: "work@example.com", Type: EmailWork},
	}}

	assert.Equal(t, "account@example.com", profile.PrimaryEmail())
}

func TestPrimaryEmailEmpty(t *testing.T) {
	assert.Empty(t, (&Profile{}).PrimaryEmail())
}

func TestAvatar(t *testing.T) {
	profile := &Profile{Photos: []Photo{{Value: "https://apis.live.net/v5.0/1/picture"}}}

	avatar := profile.Avatar()
	assert.NotNil(t, avatar)
	assert.Equal(t, "https://apis.live.net/v5.0/1/picture", *avatar)

	assert.Nil(t, (&Profile{}).Avatar())
}
