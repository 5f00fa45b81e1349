// Package config loads installer settings and the channel → install directory mapping.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/greaterdiscord/installer/internal/messages"
)

// Defaults for the release source and the bundled plugin redirect service.
const (
	DefaultReleaseAPI  = "https://api.github.com/repos/foxypiratecove37350/GreaterDiscord/releases"
	DefaultAssetName   = "greaterdiscord.asar"
	DefaultUserAgent   = "GreaterDiscord Installer"
	DefaultRedirectURL = "https://betterdiscord.app/gh-redirect"
	DefaultTimeout     = 30 * time.Second

	// DefaultFileName is the config file picked up from the working directory.
	DefaultFileName = "gdi.toml"
)

// ErrConfigValidation wraps config validation failures (as opposed to TOML syntax or
// filesystem errors).
var ErrConfigValidation = errors.New("config validation failed")

// InstallConfig maps a release channel name to that channel's install directory.
type InstallConfig map[string]string

// Channels returns the channel names in a stable order.
func (c InstallConfig) Channels() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dirs returns the install directories in the same order as Channels.
func (c InstallConfig) Dirs() []string {
	names := c.Channels()
	dirs := make([]string, 0, len(names))
	for _, name := range names {
		dirs = append(dirs, c[name])
	}
	return dirs
}

// Config is the full gdi.toml document.
type Config struct {
	Channels   InstallConfig    `toml:"channels"`
	Release    ReleaseConfig    `toml:"release"`
	Extensions ExtensionsConfig `toml:"extensions"`
	Paths      PathsConfig      `toml:"paths"`
}

// ReleaseConfig controls where the package is fetched from.
type ReleaseConfig struct {
	APIURL    string `toml:"api_url"`
	AssetName string `toml:"asset_name"`
	UserAgent string `toml:"user_agent"`
	Timeout   string `toml:"timeout"`
}

// ExtensionsConfig controls the bundled plugin downloads.
type ExtensionsConfig struct {
	RedirectURL string `toml:"redirect_url"`
}

// PathsConfig overrides the data directories. Empty values use the OS defaults.
type PathsConfig struct {
	DataRoot   string `toml:"data_root"`
	LegacyRoot string `toml:"legacy_root"`
}

// TimeoutDuration returns the parsed network timeout, or DefaultTimeout when unset.
func (r ReleaseConfig) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(r.Timeout) == "" {
		return DefaultTimeout, nil
	}
	return time.ParseDuration(r.Timeout)
}

// LoadConfig reads a gdi.toml file and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses TOML data, rejects unknown keys, and fills in defaults.
// source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	if err := cfg.applyDefaults(source); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a config with no channels and every other field defaulted.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.applyDefaults("defaults"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeStrict re-decodes the TOML data with unknown-field rejection, catching keys
// that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

func (c *Config) applyDefaults(source string) error {
	if c.Channels == nil {
		c.Channels = InstallConfig{}
	}
	for name, dir := range c.Channels {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return fmt.Errorf(messages.ConfigExpandPathFmt, source, dir, err)
		}
		c.Channels[name] = expanded
	}
	if c.Release.APIURL == "" {
		c.Release.APIURL = DefaultReleaseAPI
	}
	if c.Release.AssetName == "" {
		c.Release.AssetName = DefaultAssetName
	}
	if c.Release.UserAgent == "" {
		c.Release.UserAgent = DefaultUserAgent
	}
	if _, err := c.Release.TimeoutDuration(); err != nil {
		return fmt.Errorf("%w: "+messages.ConfigInvalidTimeoutFmt, ErrConfigValidation, source, c.Release.Timeout, err)
	}
	if c.Extensions.RedirectURL == "" {
		c.Extensions.RedirectURL = DefaultRedirectURL
	}

	var appData string
	if c.Paths.DataRoot == "" || c.Paths.LegacyRoot == "" {
		dir, err := userConfigDir()
		if err != nil {
			return fmt.Errorf(messages.ConfigUserDirFmt, err)
		}
		appData = dir
	}
	root, err := expandOr(c.Paths.DataRoot, filepath.Join(appData, dataDirName), source)
	if err != nil {
		return err
	}
	legacy, err := expandOr(c.Paths.LegacyRoot, filepath.Join(appData, legacyDirName), source)
	if err != nil {
		return err
	}
	c.Paths.DataRoot = root
	c.Paths.LegacyRoot = legacy
	return nil
}

var userConfigDir = os.UserConfigDir

func expandOr(value string, fallback string, source string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	expanded, err := homedir.Expand(value)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, source, value, err)
	}
	return expanded, nil
}
