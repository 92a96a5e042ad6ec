package config

// TargetRoot is where the new system is mounted for the whole run.
const TargetRoot = "/mnt"

const (
	DefaultHostname = "arch"
	DefaultUsername = "user"
	DefaultTimezone = "America/New_York"
	DefaultLocale   = "en_US.UTF-8"
)

// Install accumulates everything the wizard collects. The controller owns
// it and hands it to the install engine by pointer; phases read it but
// never grow their own copy.
type Install struct {
	UEFI         bool
	Disk         string
	Hostname     string
	Username     string
	Timezone     string
	Locale       string
	RootPassword string
	UserPassword string
}

type Preset struct {
	Label string
	Value string
}

// TimezonePresets backs the timezone menu. The menu appends a free-text
// "Custom timezone" entry after these.
var TimezonePresets = []Preset{
	{Label: "America/New_York (Eastern)", Value: "America/New_York"},
	{Label: "America/Chicago (Central)", Value: "America/Chicago"},
	{Label: "America/Denver (Mountain)", Value: "America/Denver"},
	{Label: "America/Los_Angeles (Pacific)", Value: "America/Los_Angeles"},
	{Label: "Europe/London", Value: "Europe/London"},
	{Label: "Europe/Berlin", Value: "Europe/Berlin"},
	{Label: "Asia/Tokyo", Value: "Asia/Tokyo"},
}

// LocalePresets backs the locale menu, custom entry appended the same way.
var LocalePresets = []Preset{
	{Label: "en_US.UTF-8 (English - US)", Value: "en_US.UTF-8"},
	{Label: "en_GB.UTF-8 (English - UK)", Value: "en_GB.UTF-8"},
	{Label: "es_ES.UTF-8 (Spanish - Spain)", Value: "es_ES.UTF-8"},
	{Label: "es_MX.UTF-8 (Spanish - Mexico)", Value: "es_MX.UTF-8"},
}

// Git sources pulled during the software and dotfiles phases.
const (
	YayRepo      = "https://aur.archlinux.org/yay.git"
	OhMyZshRepo  = "https://github.com/ohmyzsh/ohmyzsh"
	DotfilesRepo = "https://github.com/armando-rios/dotfiles.git"
)

// UserGroups are the supplementary groups for the created user.
var UserGroups = []string{"wheel", "audio", "video", "optical", "storage"}
