package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostname(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		valid    bool
	}{
		{"simple", "arch", true},
		{"with numbers", "arch42", true},
		{"with hyphen", "my-box", true},
		{"empty", "", false},
		{"leading hyphen", "-arch", false},
		{"trailing hyphen", "arch-", false},
		{"underscore", "my_box", false},
		{"dot", "arch.local", false},
		{"too long", strings.Repeat("a", 64), false},
		{"max length", strings.Repeat("a", 63), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Hostname(tt.hostname)
			assert.Equal(t, tt.valid, ok)
			if !tt.valid {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"simple", "user", true},
		{"with underscore", "dev_user", true},
		{"with hyphen", "dev-user", true},
		{"with digits", "user42", true},
		{"empty", "", false},
		{"uppercase", "User", false},
		{"leading digit", "1user", false},
		{"leading hyphen", "-user", false},
		{"reserved root", "root", false},
		{"reserved daemon", "daemon", false},
		{"too long", strings.Repeat("u", 33), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Username(tt.username)
			assert.Equal(t, tt.valid, ok)
			if !tt.valid {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	ok, _ := Password("secret")
	assert.True(t, ok)

	ok, reason := Password("")
	assert.False(t, ok)
	assert.Contains(t, reason, "empty")

	ok, reason = Password("short")
	assert.False(t, ok)
	assert.Contains(t, reason, "at least 6")
}

func TestTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		valid    bool
	}{
		{"new york", "America/New_York", true},
		{"tokyo", "Asia/Tokyo", true},
		{"berlin", "Europe/Berlin", true},
		{"empty", "", false},
		{"no region", "UTC", false},
		{"digits", "Etc/GMT+5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := Timezone(tt.timezone)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestLocale(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		valid  bool
	}{
		{"en us", "en_US.UTF-8", true},
		{"es mx", "es_MX.UTF-8", true},
		{"empty", "", false},
		{"no encoding", "en_US", false},
		{"wrong case", "EN_us.UTF-8", false},
		{"latin1", "en_US.ISO-8859-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := Locale(tt.locale)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestDiskPath(t *testing.T) {
	ok, _ := DiskPath("/dev/sda")
	assert.True(t, ok)

	ok, _ = DiskPath("/dev/nvme0n1")
	assert.True(t, ok)

	ok, _ = DiskPath("")
	assert.False(t, ok)

	ok, _ = DiskPath("sda")
	assert.False(t, ok)
}
