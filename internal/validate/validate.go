package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	usernamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
	timezonePattern = regexp.MustCompile(`^[A-Za-z_]+/[A-Za-z_]+$`)
	localePattern   = regexp.MustCompile(`^[a-z]{2}_[A-Z]{2}\.UTF-8$`)
)

var reservedUsernames = []string{
	"root", "bin", "daemon", "adm", "lp", "sync", "shutdown", "halt", "mail",
}

func Hostname(hostname string) (bool, string) {
	if hostname == "" {
		return false, "Hostname cannot be empty"
	}
	if len(hostname) > 63 {
		return false, "Hostname must be 63 characters or less"
	}
	if strings.HasPrefix(hostname, "-") || strings.HasSuffix(hostname, "-") {
		return false, "Hostname cannot start or end with hyphen"
	}
	if !hostnamePattern.MatchString(hostname) {
		return false, "Hostname can only contain letters, numbers, and hyphens"
	}
	return true, ""
}

func Username(username string) (bool, string) {
	if username == "" {
		return false, "Username cannot be empty"
	}
	if len(username) > 32 {
		return false, "Username must be 32 characters or less"
	}
	if username[0] == '-' || (username[0] >= '0' && username[0] <= '9') {
		return false, "Username cannot start with hyphen or number"
	}
	if !usernamePattern.MatchString(username) {
		return false, "Username can only contain lowercase letters, numbers, underscores, and hyphens"
	}
	if slices.Contains(reservedUsernames, username) {
		return false, fmt.Sprintf("Username '%s' is reserved", username)
	}
	return true, ""
}

func Password(password string) (bool, string) {
	if password == "" {
		return false, "Password cannot be empty"
	}
	if len(password) < 6 {
		return false, "Password must be at least 6 characters long"
	}
	return true, ""
}

func Timezone(timezone string) (bool, string) {
	if timezone == "" {
		return false, "Timezone cannot be empty"
	}
	if !timezonePattern.MatchString(timezone) {
		return false, "Timezone must be in format 'Region/City' (e.g., 'America/New_York')"
	}
	return true, ""
}

func Locale(locale string) (bool, string) {
	if locale == "" {
		return false, "Locale cannot be empty"
	}
	if !localePattern.MatchString(locale) {
		return false, "Locale must be in format 'xx_YY.UTF-8' (e.g., 'en_US.UTF-8')"
	}
	return true, ""
}

func DiskPath(diskPath string) (bool, string) {
	if diskPath == "" {
		return false, "Disk path cannot be empty"
	}
	if !strings.HasPrefix(diskPath, "/dev/") {
		return false, "Disk path must start with '/dev/'"
	}
	return true, ""
}
