package config

// BaseSystemPackages is the pacstrap set for the new root. sudo and
// efibootmgr are required later by the user and bootloader steps.
var BaseSystemPackages = []string{
	"base",
	"linux",
	"linux-firmware",
	"networkmanager",
	"grub",
	"efibootmgr",
	"sudo",
	"wpa_supplicant",
	"dialog",
	"vim",
}

type PackageCategory struct {
	Name     string
	Packages []string
}

// EssentialPackages is the desktop and development set installed in the
// software phase, ordered so installs stay reproducible.
var EssentialPackages = []PackageCategory{
	{Name: "development", Packages: []string{
		"git", "base-devel", "gcc", "neovim", "ripgrep", "fzf",
		"lazygit", "unzip", "stow",
	}},
	{Name: "shell", Packages: []string{
		"zsh", "nvm", "lsd", "kitty", "zoxide",
	}},
	{Name: "wayland", Packages: []string{
		"hyprland", "waybar", "hyprpaper", "hyprsunset", "swaync", "wofi",
	}},
	{Name: "system", Packages: []string{
		"sddm", "network-manager-applet", "wireless_tools", "seatd",
	}},
	{Name: "audio", Packages: []string{
		"pipewire", "pipewire-audio", "pipewire-pulse", "wireplumber",
	}},
	{Name: "applications", Packages: []string{
		"ghostty", "discord", "zed", "nwg-look",
	}},
	{Name: "fonts", Packages: []string{
		"ttf-jetbrains-mono-nerd",
	}},
}

// AllEssentialPackages flattens the catalog preserving category order.
func AllEssentialPackages() []string {
	var packages []string
	for _, category := range EssentialPackages {
		packages = append(packages, category.Packages...)
	}
	return packages
}

var AMDGraphicsPackages = []string{
	"libva-mesa-driver",
	"mesa",
	"vulkan-radeon",
	"xf86-video-amdgpu",
	"xf86-video-ati",
	"xorg-server",
	"xorg-xinit",
}

var AURPackages = []string{
	"zen-browser-bin",
	"wshowkeys-mao-git",
	"hyprshot",
}

// SystemServices are enabled in the target at the end of the software phase.
var SystemServices = []string{
	"sddm",
	"NetworkManager",
	"pipewire",
	"wireplumber",
	"seatd",
}
