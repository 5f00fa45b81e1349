package install

import (
	"fmt"

	"github.com/greaterdiscord/installer/internal/messages"
)

// ValidationError reports an install config rejected by the sanity check.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Errorf(messages.InstallSanityFailedFmt, e.Err).Error()
}
func (e *ValidationError) Unwrap() error { return e.Err }

// DirectoryError reports a directory that could not be created.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Errorf(messages.InstallCreateDirFailedFmt, e.Path, e.Err).Error()
}
func (e *DirectoryError) Unwrap() error { return e.Err }

// WriteError reports a downloaded file that could not be written to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Errorf(messages.InstallFailedWriteFmt, e.Path, e.Err).Error()
}
func (e *WriteError) Unwrap() error { return e.Err }

// MigrationError reports a failed copy or removal while migrating legacy data.
type MigrationError struct {
	Op   string
	Path string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Errorf(messages.InstallMigrateFailedFmt, e.Op, e.Path, e.Err).Error()
}
func (e *MigrationError) Unwrap() error { return e.Err }

// InjectionError reports a channel whose entry point could not be rewritten.
type InjectionError struct {
	Target string
	Err    error
}

func (e *InjectionError) Error() string {
	return fmt.Errorf(messages.InstallInjectFailedFmt, e.Target, e.Err).Error()
}
func (e *InjectionError) Unwrap() error { return e.Err }
