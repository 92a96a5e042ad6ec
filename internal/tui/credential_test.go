package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialFlowResolvesAfterRetries(t *testing.T) {
	flow := newCredentialFlow("Root password")

	entries := []string{"", "ok123", "ok123", "different", "match1", "match1"}

	var password string
	var done bool
	for _, entry := range entries {
		password, done = flow.feed(entry)
	}

	require.True(t, done)
	assert.Equal(t, "match1", password)
}

func TestCredentialFlowEmptyPairRejected(t *testing.T) {
	flow := newCredentialFlow("User password")

	_, done := flow.feed("")
	require.False(t, done)
	assert.Empty(t, flow.errMsg)

	_, done = flow.feed("")
	require.False(t, done)
	assert.Equal(t, "Password cannot be empty", flow.errMsg)
	assert.False(t, flow.confirming)
}

func TestCredentialFlowMismatchRestartsWholeCredential(t *testing.T) {
	flow := newCredentialFlow("User password")

	flow.feed("secret1")
	_, done := flow.feed("secret2")

	require.False(t, done)
	assert.Equal(t, "Passwords do not match", flow.errMsg)
	assert.False(t, flow.confirming)
	assert.Empty(t, flow.first)
}

func TestCredentialFlowEnforcesPolicy(t *testing.T) {
	flow := newCredentialFlow("Root password")

	flow.feed("abc")
	_, done := flow.feed("abc")

	require.False(t, done)
	assert.Contains(t, flow.errMsg, "at least 6 characters")
}

func TestCredentialFlowPrompt(t *testing.T) {
	flow := newCredentialFlow("Root password")
	assert.Equal(t, "Root password", flow.prompt())

	flow.feed("secret1")
	assert.Equal(t, "Confirm Root password", flow.prompt())
}
