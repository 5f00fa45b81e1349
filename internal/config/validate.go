package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/greaterdiscord/installer/internal/messages"
)

// Validate is the pre-install sanity check: it rejects an empty mapping and any channel
// whose install directory is not an absolute, existing, writable directory.
func (c InstallConfig) Validate() error {
	if len(c) == 0 {
		return errors.New(messages.ConfigNoChannels)
	}
	seen := make(map[string]string, len(c))
	for _, name := range c.Channels() {
		dir := c[name]
		if strings.TrimSpace(name) == "" {
			return errors.New(messages.ConfigEmptyChannelName)
		}
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf(messages.ConfigEmptyChannelPathFmt, name)
		}
		if !filepath.IsAbs(dir) {
			return fmt.Errorf(messages.ConfigRelativePathFmt, name, dir)
		}
		clean := filepath.Clean(dir)
		if other, ok := seen[clean]; ok {
			return fmt.Errorf(messages.ConfigDuplicatePathFmt, other, name, clean)
		}
		seen[clean] = name

		info, err := statFn(clean)
		if err != nil {
			return fmt.Errorf(messages.ConfigStatFailedFmt, name, clean, err)
		}
		if !info.IsDir() {
			return fmt.Errorf(messages.ConfigNotDirectoryFmt, name, clean)
		}
		if err := checkWritable(clean); err != nil {
			return fmt.Errorf(messages.ConfigNotWritableFmt, name, clean, err)
		}
	}
	return nil
}
