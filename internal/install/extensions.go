package install

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/greaterdiscord/installer/internal/logging"
	"github.com/greaterdiscord/installer/internal/messages"
)

const pluginSuffix = ".plugin.js"

// ExtensionDescriptor is a catalog entry for a bundled plugin.
type ExtensionDescriptor struct {
	Name   string
	Author string
	// ID is the identifier the redirect service resolves to the plugin file.
	ID int
}

// FileName is the plugin's file name inside the plugins directory.
func (e ExtensionDescriptor) FileName() string {
	return e.Name + pluginSuffix
}

// DefaultCatalog lists the plugins offered during install, in download order.
var DefaultCatalog = []ExtensionDescriptor{
	{Name: "LaTeX Renderer", Author: "quantumsoul", ID: 1048},
	{Name: "SplitLargeMessages", Author: "DevilBro", ID: 98},
	{Name: "ReadAllNotificationsButton", Author: "DevilBro", ID: 94},
}

// ExtensionURL returns the download URL of ext behind the redirect service at base.
func ExtensionURL(base string, ext ExtensionDescriptor) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("id", strconv.Itoa(ext.ID))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExtensionsPrompt builds the confirmation message listing every catalog entry.
func ExtensionsPrompt(catalog []ExtensionDescriptor) string {
	var b strings.Builder
	b.WriteString(messages.InstallExtensionsMessage)
	for _, ext := range catalog {
		fmt.Fprintf(&b, messages.InstallExtensionLineFmt, ext.Name, ext.Author)
	}
	return b.String()
}

// installExtensions downloads the catalog one entry at a time. The first failure stops
// the remaining entries; files already written are kept.
func (inst *installer) installExtensions(ctx context.Context) error {
	inst.logger.Info(messages.LogInstallingPlugins, logging.Announce())
	for _, ext := range inst.catalog {
		src, err := ExtensionURL(inst.redirectURL, ext)
		if err != nil {
			return fmt.Errorf(messages.InstallExtensionFailedFmt, ext.Name, err)
		}
		dest := filepath.Join(inst.paths.PluginsDir, ext.FileName())
		if err := fetchToFile(ctx, inst.fetcher, inst.sys, src, dest); err != nil {
			return fmt.Errorf(messages.InstallExtensionFailedFmt, ext.Name, err)
		}
		inst.logger.Info(messages.LogPluginDownloaded, zap.String(logging.KeyPlugin, ext.Name))
	}
	return nil
}
