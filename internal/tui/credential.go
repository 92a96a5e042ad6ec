package tui

import (
	"github.com/armando-rios/dev-setup/internal/validate"
)

// credentialFlow collects a password and its confirmation, then judges
// the pair as a whole. Any rejection (empty, policy, mismatch) discards
// both entries and restarts the credential; there is no attempt cap.
type credentialFlow struct {
	label      string
	first      string
	confirming bool
	errMsg     string
}

func newCredentialFlow(label string) credentialFlow {
	return credentialFlow{label: label}
}

func (f *credentialFlow) prompt() string {
	if f.confirming {
		return "Confirm " + f.label
	}
	return f.label
}

// feed consumes one submitted entry. done reports that the credential
// resolved; password is meaningful only when done.
func (f *credentialFlow) feed(value string) (password string, done bool) {
	if !f.confirming {
		f.first = value
		f.confirming = true
		f.errMsg = ""
		return "", false
	}

	first := f.first
	f.first = ""
	f.confirming = false

	if first == "" {
		f.errMsg = "Password cannot be empty"
		return "", false
	}
	if ok, reason := validate.Password(first); !ok {
		f.errMsg = reason
		return "", false
	}
	if value != first {
		f.errMsg = "Passwords do not match"
		return "", false
	}

	f.errMsg = ""
	return first, true
}
