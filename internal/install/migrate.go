package install

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"github.com/greaterdiscord/installer/internal/logging"
	"github.com/greaterdiscord/installer/internal/messages"
)

const (
	opCopy   = "copy"
	opRemove = "remove"
)

// legacyPresent reports whether a predecessor data directory exists.
func (inst *installer) legacyPresent() bool {
	if inst.paths.LegacyRoot == "" {
		return false
	}
	info, err := inst.sys.Stat(inst.paths.LegacyRoot)
	return err == nil && info.IsDir()
}

// migrate copies the legacy tree into the install root, drops the legacy package that
// came along with it and removes the legacy tree. The copy completes before anything is
// removed so a failed copy leaves the legacy data untouched.
func (inst *installer) migrate() error {
	legacy := inst.paths.LegacyRoot
	inst.logger.Info(messages.LogCopyingLegacy, logging.Announce(), zap.String(logging.KeyPath, legacy))
	if err := inst.sys.CopyTree(legacy, inst.paths.Root); err != nil {
		return &MigrationError{Op: opCopy, Path: legacy, Err: err}
	}
	if err := inst.sys.Remove(inst.paths.LegacyPackage); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &MigrationError{Op: opRemove, Path: inst.paths.LegacyPackage, Err: err}
	}
	if err := inst.sys.RemoveAll(legacy); err != nil {
		return &MigrationError{Op: opRemove, Path: legacy, Err: err}
	}
	return nil
}
