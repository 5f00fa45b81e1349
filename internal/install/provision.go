package install

import (
	"go.uber.org/zap"

	"github.com/greaterdiscord/installer/internal/logging"
	"github.com/greaterdiscord/installer/internal/messages"
)

// Provision ensures each directory in dirs exists, in order. Directories are created one
// level at a time, so dirs must list parents before children. The budget up to
// MakeDirProgress is split evenly across dirs whether or not each one already existed.
// The first creation error stops provisioning and is returned as a *DirectoryError;
// directories created before it are kept.
func Provision(rc *RunContext, sys System, logger *zap.Logger, dirs ...string) error {
	logger = logging.OrNop(logger)
	step := rc.Apportion(MakeDirProgress, len(dirs))
	for _, dir := range dirs {
		if info, err := sys.Stat(dir); err == nil && info.IsDir() {
			logger.Info(messages.LogDirectoryExists, zap.String(logging.KeyPath, dir))
			step()
			continue
		}
		if err := sys.Mkdir(dir, 0o755); err != nil {
			logger.Error(messages.LogDirectoryFailed, zap.String(logging.KeyPath, dir), zap.Error(err))
			return &DirectoryError{Path: dir, Err: err}
		}
		logger.Info(messages.LogDirectoryCreated, zap.String(logging.KeyPath, dir))
		step()
	}
	return nil
}
