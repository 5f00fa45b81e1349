package install

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/greaterdiscord/installer/internal/logging"
	"github.com/greaterdiscord/installer/internal/messages"
)

// persist writes downloaded bytes to dest.
func persist(sys System, dest string, data []byte) error {
	if err := sys.WriteFileAtomic(dest, data, 0o644); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	return nil
}

// fetchToFile downloads url and persists the body to dest. Nothing is written unless the
// download succeeded.
func fetchToFile(ctx context.Context, fetcher Fetcher, sys System, url string, dest string) error {
	data, err := fetcher.Download(ctx, url)
	if err != nil {
		return err
	}
	return persist(sys, dest, data)
}

// fetchPackage resolves the newest package asset, downloads it and writes it to the
// package path. It returns the release version.
func (inst *installer) fetchPackage(ctx context.Context) (string, error) {
	asset, err := inst.fetcher.Resolve(ctx, inst.assetName)
	if err != nil {
		inst.logger.Error(messages.LogResolveFailed, zap.Error(err))
		return "", err
	}
	if err := fetchToFile(ctx, inst.fetcher, inst.sys, asset.DownloadURL, inst.paths.PackagePath); err != nil {
		var writeErr *WriteError
		if errors.As(err, &writeErr) {
			inst.logger.Error(messages.LogPersistFailed, zap.String(logging.KeyPath, writeErr.Path), zap.Error(err))
		} else {
			inst.logger.Error(messages.LogDownloadFailed, zap.String(logging.KeyURL, asset.DownloadURL), zap.Error(err))
		}
		return "", err
	}
	inst.logger.Info(messages.LogDownloadedVersion, zap.String(logging.KeyVersion, asset.Version))
	return asset.Version, nil
}
