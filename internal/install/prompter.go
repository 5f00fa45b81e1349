package install

import (
	"context"
	"errors"

	"github.com/greaterdiscord/installer/internal/config"
	"github.com/greaterdiscord/installer/internal/messages"
	"github.com/greaterdiscord/installer/internal/release"
)

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(title string, message string) (bool, error)
}

// PromptFuncs adapts a confirm callback into a Prompter.
type PromptFuncs struct {
	ConfirmFunc func(title string, message string) (bool, error)
}

// Confirm asks the question through ConfirmFunc.
// Returns an error if no ConfirmFunc is configured.
func (p PromptFuncs) Confirm(title string, message string) (bool, error) {
	if p.ConfirmFunc == nil {
		return false, errors.New(messages.InstallPrompterRequired)
	}
	return p.ConfirmFunc(title, message)
}

// Notifier shows informational notices. Calls never block the run on the user.
type Notifier interface {
	RestartNotice()
	KillNotice()
}

// Restarter restarts the Discord processes of the given channels, calling step once
// per channel handled.
type Restarter interface {
	Restart(ctx context.Context, channels []string, step func()) error
}

// Fetcher resolves and downloads release assets. It never writes to disk.
type Fetcher interface {
	Resolve(ctx context.Context, assetName string) (release.Asset, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// SanityChecker validates the install config before any side effect.
type SanityChecker interface {
	Check(cfg config.InstallConfig) error
}

// SanityFunc adapts a function into a SanityChecker.
type SanityFunc func(cfg config.InstallConfig) error

// Check calls f.
func (f SanityFunc) Check(cfg config.InstallConfig) error { return f(cfg) }

// DefaultSanity rejects configs that fail config.InstallConfig.Validate.
var DefaultSanity SanityChecker = SanityFunc(func(cfg config.InstallConfig) error {
	return cfg.Validate()
})
