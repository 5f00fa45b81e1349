package install

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/greaterdiscord/installer/internal/config"
	"github.com/greaterdiscord/installer/internal/fsutil"
	"github.com/greaterdiscord/installer/internal/logging"
	"github.com/greaterdiscord/installer/internal/messages"
)

// State is a stage of the install pipeline.
type State string

// Pipeline states, in execution order, followed by the two terminal states.
const (
	StateReset       State = "reset"
	StateSanityCheck State = "sanity-check"
	StateProvision   State = "provision"
	StateFetch       State = "fetch"
	StateMigrate     State = "migrate"
	StateExtensions  State = "extensions"
	StateInject      State = "inject"
	StateRestart     State = "restart"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// Options configures one install run.
type Options struct {
	Config config.InstallConfig
	Paths  config.Paths
	// AssetName is the release asset to install. Empty uses config.DefaultAssetName.
	AssetName string
	// RedirectURL is the plugin redirect service. Empty uses config.DefaultRedirectURL.
	RedirectURL string
	// Catalog lists the plugins offered. Nil uses DefaultCatalog; an empty, non-nil
	// catalog skips the plugin step without asking.
	Catalog   []ExtensionDescriptor
	Fetcher   Fetcher
	Prompter  Prompter
	Notifier  Notifier
	Restarter Restarter
	Sanity    SanityChecker
	Reporter  Reporter
	Logger    *zap.Logger
	System    System
}

// Result describes how a run ended.
type Result struct {
	State State
	// FailedAt is the step that failed when State is StateFailed.
	FailedAt State
	Err      error
	// Version is the installed release tag.
	Version string
	// Skipped lists the optional steps that did not run.
	Skipped []State
	// RestartErr is the restart failure that was downgraded to a notice.
	RestartErr error
	Progress   float64
}

type installer struct {
	rc          *RunContext
	sys         System
	logger      *zap.Logger
	fetcher     Fetcher
	prompter    Prompter
	notifier    Notifier
	restarter   Restarter
	sanity      SanityChecker
	cfg         config.InstallConfig
	paths       config.Paths
	assetName   string
	redirectURL string
	catalog     []ExtensionDescriptor
}

type nopNotifier struct{}

func (nopNotifier) RestartNotice() {}
func (nopNotifier) KillNotice()    {}

// Run executes the install pipeline:
// reset, sanity check, provision, fetch, migrate, plugins, inject, restart.
// Migrate and plugins are optional and only run when confirmed. Any other failure ends
// the run in StateFailed and is returned. A restart failure only raises a notice.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.System == nil {
		return Result{}, errors.New(messages.InstallSystemRequired)
	}
	if opts.Fetcher == nil {
		return Result{}, errors.New(messages.InstallFetcherRequired)
	}
	if opts.Prompter == nil {
		return Result{}, errors.New(messages.InstallPrompterRequired)
	}
	if opts.Restarter == nil {
		return Result{}, errors.New(messages.InstallRestarterRequired)
	}
	inst := &installer{
		rc:          NewRunContext(opts.Reporter),
		sys:         opts.System,
		logger:      logging.OrNop(opts.Logger),
		fetcher:     opts.Fetcher,
		prompter:    opts.Prompter,
		notifier:    opts.Notifier,
		restarter:   opts.Restarter,
		sanity:      opts.Sanity,
		cfg:         opts.Config,
		paths:       opts.Paths,
		assetName:   opts.AssetName,
		redirectURL: opts.RedirectURL,
		catalog:     opts.Catalog,
	}
	if inst.notifier == nil {
		inst.notifier = nopNotifier{}
	}
	if inst.sanity == nil {
		inst.sanity = DefaultSanity
	}
	if inst.assetName == "" {
		inst.assetName = config.DefaultAssetName
	}
	if inst.redirectURL == "" {
		inst.redirectURL = config.DefaultRedirectURL
	}
	if inst.catalog == nil {
		inst.catalog = DefaultCatalog
	}
	return inst.run(ctx)
}

func (inst *installer) run(ctx context.Context) (Result, error) {
	res := Result{}
	inst.reset()

	if err := inst.sanity.Check(inst.cfg); err != nil {
		inst.logger.Error(messages.LogSanityFailed, zap.Error(err))
		return inst.fail(res, StateSanityCheck, &ValidationError{Err: err})
	}
	inst.clearTempFilesIn(inst.cfg.Dirs()...)

	inst.logger.Info(messages.LogCreatingDirectories, logging.Announce())
	if err := Provision(inst.rc, inst.sys, inst.logger, inst.paths.Directories()...); err != nil {
		return inst.fail(res, StateProvision, err)
	}
	inst.logger.Info(messages.LogDirectoriesCreated)
	inst.rc.Set(MakeDirProgress)

	inst.logger.Info(messages.LogDownloadingPackage, logging.Announce())
	version, err := inst.fetchPackage(ctx)
	if err != nil {
		return inst.fail(res, StateFetch, err)
	}
	res.Version = version
	inst.logger.Info(messages.LogPackageDownloaded)
	inst.rc.Set(DownloadPackageProgress)

	ran, err := inst.migrateStep()
	if err != nil {
		return inst.fail(res, StateMigrate, err)
	}
	if !ran {
		res.Skipped = append(res.Skipped, StateMigrate)
	}

	ran, err = inst.extensionsStep(ctx)
	if err != nil {
		return inst.fail(res, StateExtensions, err)
	}
	if !ran {
		res.Skipped = append(res.Skipped, StateExtensions)
	}

	inst.logger.Info(messages.LogInjectingShims, logging.Announce())
	if err := InjectShims(inst.rc, inst.sys, inst.logger, inst.paths.PackagePath, inst.cfg.Dirs()); err != nil {
		return inst.fail(res, StateInject, err)
	}
	inst.logger.Info(messages.LogShimsInjected)
	inst.rc.Set(InjectShimProgress)

	res.RestartErr = inst.restartStep(ctx)
	inst.rc.Set(RestartProgress)

	inst.rc.SetStatus(StatusSuccess)
	res.State = StateSucceeded
	res.Progress = inst.rc.Progress()
	return res, nil
}

// reset zeroes the run context and clears temp files an interrupted write left in the
// installer's own directories. Channel directories wait until the config is validated.
func (inst *installer) reset() {
	inst.rc.Reset()
	inst.clearTempFilesIn(inst.paths.DataDir, inst.paths.PluginsDir)
}

// clearTempFilesIn removes leftover temp files from dirs. Failures are logged and do
// not stop the run.
func (inst *installer) clearTempFilesIn(dirs ...string) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := inst.clearTempFiles(dir); err != nil {
			inst.logger.Warn(messages.LogResetFailed, zap.String(logging.KeyPath, dir), zap.Error(err))
		}
	}
}

func (inst *installer) clearTempFiles(dir string) error {
	entries, err := inst.sys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf(messages.InstallResetFailedFmt, dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !fsutil.IsTempName(entry.Name()) {
			continue
		}
		if err := inst.sys.Remove(filepath.Join(dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(messages.InstallResetFailedFmt, dir, err)
		}
	}
	return nil
}

func (inst *installer) confirm(title string, message string) (bool, error) {
	ok, err := inst.prompter.Confirm(title, message)
	if err != nil {
		return false, fmt.Errorf(messages.InstallPromptFailedFmt, title, err)
	}
	return ok, nil
}

// migrateStep runs the migration when legacy data is present and the user agrees.
// It reports whether the migration ran.
func (inst *installer) migrateStep() (bool, error) {
	if !inst.legacyPresent() {
		inst.logger.Info(messages.LogLegacyAbsent)
		return false, nil
	}
	ok, err := inst.confirm(messages.InstallMigrateTitle, messages.InstallMigrateMessage)
	if err != nil {
		return false, err
	}
	if !ok {
		inst.logger.Info(messages.LogMigrateDeclined)
		return false, nil
	}
	if err := inst.migrate(); err != nil {
		inst.logger.Error(messages.LogMigrateFailed, zap.Error(err))
		return false, err
	}
	inst.logger.Info(messages.LogDataCopied)
	inst.rc.Set(CopyDataProgress)
	return true, nil
}

// extensionsStep installs the plugin catalog when the user agrees.
// It reports whether the plugins were installed.
func (inst *installer) extensionsStep(ctx context.Context) (bool, error) {
	if len(inst.catalog) == 0 {
		return false, nil
	}
	ok, err := inst.confirm(messages.InstallExtensionsTitle, ExtensionsPrompt(inst.catalog))
	if err != nil {
		return false, err
	}
	if !ok {
		inst.logger.Info(messages.LogExtensionsDeclined)
		return false, nil
	}
	if err := inst.installExtensions(ctx); err != nil {
		inst.logger.Error(messages.LogPluginsFailed, zap.Error(err))
		return false, err
	}
	inst.logger.Info(messages.LogPluginsInstalled)
	inst.rc.Set(CopyDataProgress)
	return true, nil
}

// restartStep restarts every configured channel. A failure is reported to the user once
// and returned for the result, but never fails the run.
func (inst *installer) restartStep(ctx context.Context) error {
	inst.logger.Info(messages.LogRestarting, logging.Announce())
	channels := inst.cfg.Channels()
	step := inst.rc.Apportion(RestartProgress, len(channels))
	if err := inst.restarter.Restart(ctx, channels, step); err != nil {
		inst.logger.Warn(messages.LogRestartFailed, zap.Error(err))
		inst.notifier.RestartNotice()
		return err
	}
	inst.logger.Info(messages.LogRestarted)
	return nil
}

func (inst *installer) fail(res Result, at State, err error) (Result, error) {
	inst.logger.Error(fmt.Sprintf(messages.InstallFailureNoticeFmt, messages.InstallSupportURL),
		zap.String(logging.KeyStep, string(at)), zap.Error(err))
	inst.rc.SetStatus(StatusError)
	res.State = StateFailed
	res.FailedAt = at
	res.Err = err
	res.Progress = inst.rc.Progress()
	return res, err
}
