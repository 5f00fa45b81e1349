package config

import "path/filepath"

const (
	dataDirName   = "GreaterDiscord"
	legacyDirName = "BetterDiscord"

	// LegacyPackageName is the predecessor's main package, pruned after migration.
	LegacyPackageName = "betterdiscord.asar"
	// ShimFileName is the entry point rewritten in every channel directory.
	ShimFileName = "index.js"
)

// Paths holds the resolved install layout.
type Paths struct {
	Root          string
	DataDir       string
	PluginsDir    string
	ThemesDir     string
	PackagePath   string
	LegacyRoot    string
	LegacyPackage string
}

// ResolvePaths derives the install layout from the config.
func (c *Config) ResolvePaths() Paths {
	root := c.Paths.DataRoot
	return Paths{
		Root:          root,
		DataDir:       filepath.Join(root, "data"),
		PluginsDir:    filepath.Join(root, "plugins"),
		ThemesDir:     filepath.Join(root, "themes"),
		PackagePath:   filepath.Join(root, "data", c.Release.AssetName),
		LegacyRoot:    c.Paths.LegacyRoot,
		LegacyPackage: filepath.Join(root, "data", LegacyPackageName),
	}
}

// Directories lists the directories the installer provisions, parents before children.
func (p Paths) Directories() []string {
	return []string{p.Root, p.DataDir, p.ThemesDir, p.PluginsDir}
}
