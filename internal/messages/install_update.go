package messages

// Install pipeline and release fetch messages.
const (
	// InstallSystemRequired indicates system is required for install.
	InstallSystemRequired    = "install system is required"
	InstallFetcherRequired   = "install fetcher is required"
	InstallPrompterRequired  = "install prompter is required"
	InstallRestarterRequired = "install restarter is required"

	InstallCreateDirFailedFmt = "failed to create directory %s: %w"
	InstallFailedWriteFmt     = "failed to write %s: %w"
	InstallMigrateFailedFmt   = "failed to %s %s: %w"
	InstallInjectFailedFmt    = "could not inject shims to %s: %w"
	InstallSanityFailedFmt    = "install config rejected: %w"
	InstallPromptFailedFmt    = "prompt %q failed: %w"
	InstallExtensionFailedFmt = "install plugin %s: %w"
	InstallDiffTruncatedFmt   = "... (truncated to %d lines)"
	InstallResetFailedFmt     = "failed to clear leftover state in %s: %w"
	InstallShimReadFailedFmt  = "read %s: %w"

	InstallFailureNoticeFmt = "The installation seems to have failed. If this problem is recurring, join our discord community for support. %s"
	InstallSupportURL       = "https://discord.gg/Wv8CQRPj7H"

	// Confirmation prompts.
	InstallMigrateTitle      = "Copy BetterDiscord data?"
	InstallMigrateMessage    = "Do you want to move your installed plugins/themes and your settings from BetterDiscord to GreaterDiscord?"
	InstallExtensionsTitle   = "Install default plugins?"
	InstallExtensionsMessage = "Do you want to install the default plugins:"
	InstallExtensionLineFmt  = "\n- %s by %s"

	// Notices.
	RestartNoticeTitle   = "Restart Discord"
	RestartNoticeMessage = "GreaterDiscord could not restart Discord. Please restart it manually."
	KillNoticeTitle      = "Shutdown Discord"
	KillNoticeMessage    = "GreaterDiscord could not shut down Discord. Please make sure Discord is fully closed, then run the installer again."

	// Transcript lines written to the log sink.
	LogCreatingDirectories = "Creating required directories..."
	LogDirectoryExists     = "Directory exists"
	LogDirectoryCreated    = "Directory created"
	LogDirectoryFailed     = "Failed to create directory"
	LogDirectoriesCreated  = "Directories created"
	LogDownloadingPackage  = "Downloading asar file"
	LogResolveFailed       = "Failed to get asset url"
	LogDownloadFailed      = "Failed to download package"
	LogDownloadedVersion   = "Downloaded GreaterDiscord from GitHub"
	LogPersistFailed       = "Failed to write package to disk"
	LogPackageDownloaded   = "Package downloaded"
	LogLegacyAbsent        = "No BetterDiscord data found"
	LogMigrateDeclined     = "Keeping BetterDiscord data where it is"
	LogCopyingLegacy       = "Copying BetterDiscord data"
	LogMigrateFailed       = "Failed to copy BetterDiscord data"
	LogDataCopied          = "Data copied"
	LogExtensionsDeclined  = "Skipping default plugins"
	LogInstallingPlugins   = "Installing default plugins"
	LogPluginDownloaded    = "Downloaded plugin"
	LogPluginsFailed       = "Failed to install default plugins"
	LogPluginsInstalled    = "Plugins installed"
	LogInjectingShims      = "Injecting shims..."
	LogInjectingInto       = "Injecting into"
	LogInjectionSucceeded  = "Injection successful"
	LogInjectionFailed     = "Could not inject shims"
	LogShimsInjected       = "Shims injected"
	LogRestarting          = "Restarting Discord..."
	LogRestarted           = "Discord restarted"
	LogRestartFailed       = "Could not restart Discord"
	LogNotRunning          = "Discord is not running"
	LogSanityFailed        = "Install config rejected"
	LogResetFailed         = "Could not clear leftover state"

	// Release fetch messages.
	ReleaseCreateRequestErrFmt = "create request for %s: %w"
	ReleaseNoResponse          = "could not get any response"
	ReleaseNoListingBody       = "could not get response body"
	ReleaseNoMatchingAsset     = "could not get asset object"
	ReleaseNoAssetURL          = "could not get the asset url"
	ReleaseErrorFmt            = "release listing %s: %v"
	ReleaseStatusErrorFmt      = "status code did not indicate success: %d"
	ReleaseReadBodyErrFmt      = "read body from %s: %w"

	// Restart messages.
	RestartUnknownChannelFmt = "no Discord executable is known for channel %q"
	RestartListFailedFmt     = "list processes: %w"
	RestartKillFailedFmt     = "stop %s (pid %d): %w"
	RestartLaunchFailedFmt   = "launch %s: %w"
	RestartExeUnknown        = "executable path unknown"
	RestartStillRunningFmt   = "stop %s (pid %d): still running after %s"
)
