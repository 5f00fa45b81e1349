package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "gdi"
	// RootShort is the short description for the root command.
	RootShort       = "GreaterDiscord installer"
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InstallUse is the install command name.
	InstallUse   = "install"
	InstallShort = "Install GreaterDiscord into one or more Discord channels"

	InstallFlagConfig       = "Path to a gdi.toml config file"
	InstallFlagChannel      = "Channel install directory as name=dir (repeatable)"
	InstallFlagYes          = "Answer yes to every confirmation prompt"
	InstallFlagNoMigrate    = "Never migrate BetterDiscord data"
	InstallFlagNoExtensions = "Never install the bundled plugins"
	InstallFlagVerbose      = "Log debug detail to the console"
	InstallFlagNoRestart    = "Do not restart Discord after injecting"

	InstallChannelFlagInvalidFmt = "invalid --channel value %q: expected name=dir"
	InstallSucceeded             = "Installation complete."
	InstallFailed                = "Installation failed."
	InstallLogLocationFmt        = "Full log: %s\n"

	// PlanUse is the plan command name.
	PlanUse           = "plan"
	PlanShort         = "Show what install would change without writing anything"
	PlanDirsHeader    = "Directories:"
	PlanPackageFmt    = "Package: %s\n"
	PlanShimHeaderFmt = "Shim for %s (%s):\n"
	PlanShimUnchanged = "  (already injected)"
	PlanLineFmt       = "  - %s\n"
	PlanDirExists     = "exists"
	PlanDirMissing    = "will be created"
	PlanFlagDiffLines = "Maximum diff lines shown per shim (0 uses the default)"

	// RestartUse is the restart command name.
	RestartUse        = "restart [channel...]"
	RestartShort      = "Restart running Discord processes for the configured channels"
	RestartDone       = "Discord restarted."
	RestartNoChannels = "no channels to restart: pass channel names or configure [channels]"

	// VersionUse is the version command name.
	VersionUse   = "version"
	VersionShort = "Print the installer version"

	PromptYesDefaultFmt   = "%s [Y/n]: "
	PromptNoDefaultFmt    = "%s [y/N]: "
	PromptRetryYesNo      = "Please enter y or n."
	PromptInvalidResponse = "invalid response %q"
	PromptQuestionFmt     = "%s\n%s"

	ProgressLineFmt  = "\r%s %s"
	NoticeFmt        = "\n%s\n%s\n\n"
	StatusInProgress = "installing"
	StatusError      = "error"
	StatusSuccess    = "success"
)
