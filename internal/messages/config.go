package messages

// Config messages for configuration loading and the pre-install sanity check.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "config %s has unrecognized keys: %w"
	ConfigInvalidTimeoutFmt   = "%s: release.timeout %q is not a valid duration: %w"
	ConfigExpandPathFmt       = "%s: cannot expand %s: %w"
	ConfigUserDirFmt          = "resolve user config directory: %w"

	ConfigNoChannels          = "no Discord installation was configured"
	ConfigEmptyChannelName    = "channel name must not be empty"
	ConfigEmptyChannelPathFmt = "channel %s has no install directory"
	ConfigRelativePathFmt     = "channel %s: install directory %s must be absolute"
	ConfigNotDirectoryFmt     = "channel %s: %s is not a directory"
	ConfigStatFailedFmt       = "channel %s: cannot access %s: %w"
	ConfigNotWritableFmt      = "channel %s: %s is not writable: %w"
	ConfigDuplicatePathFmt    = "channels %s and %s share the install directory %s"
)
