package install

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"go.uber.org/zap"

	"github.com/greaterdiscord/installer/internal/config"
	"github.com/greaterdiscord/installer/internal/logging"
	"github.com/greaterdiscord/installer/internal/messages"
)

// DefaultDiffMaxLines is the default maximum number of diff lines shown per target.
const DefaultDiffMaxLines = 40

// EscapeForLiteral escapes path for embedding in a double-quoted script string.
// Backslashes are escaped before quotes so the added backslashes are not doubled.
func EscapeForLiteral(path string) string {
	escaped := strings.ReplaceAll(path, `\`, `\\`)
	return strings.ReplaceAll(escaped, `"`, `\"`)
}

// ShimContent returns the entry point that loads packagePath and then hands over to the
// host's original core module.
func ShimContent(packagePath string) string {
	return fmt.Sprintf("require(\"%s\");\nmodule.exports = require(\"./core.asar\");", EscapeForLiteral(packagePath))
}

// InjectShims rewrites the entry point of every target directory, in order. The budget up
// to InjectShimProgress is split evenly across targets. The first write failure stops
// injection and is returned as an *InjectionError; later targets are left as they were.
func InjectShims(rc *RunContext, sys System, logger *zap.Logger, packagePath string, targets []string) error {
	logger = logging.OrNop(logger)
	content := []byte(ShimContent(packagePath))
	step := rc.Apportion(InjectShimProgress, len(targets))
	for _, target := range targets {
		logger.Info(messages.LogInjectingInto, logging.Announce(), zap.String(logging.KeyPath, target))
		if err := sys.WriteFileAtomic(filepath.Join(target, config.ShimFileName), content, 0o644); err != nil {
			logger.Error(messages.LogInjectionFailed, zap.String(logging.KeyPath, target), zap.Error(err))
			return &InjectionError{Target: target, Err: err}
		}
		logger.Info(messages.LogInjectionSucceeded)
		step()
	}
	return nil
}

// ShimPreview is the pending change to one target's entry point.
type ShimPreview struct {
	Target      string
	Path        string
	UnifiedDiff string
	Truncated   bool
	Unchanged   bool
}

// PreviewShims diffs each target's current entry point against the shim InjectShims would
// write. A missing entry point diffs against empty content.
func PreviewShims(sys System, packagePath string, targets []string, maxLines int) ([]ShimPreview, error) {
	want := ShimContent(packagePath)
	out := make([]ShimPreview, 0, len(targets))
	for _, target := range targets {
		path := filepath.Join(target, config.ShimFileName)
		current := ""
		data, err := sys.ReadFile(path)
		switch {
		case err == nil:
			current = string(data)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf(messages.InstallShimReadFailedFmt, path, err)
		}
		preview := ShimPreview{Target: target, Path: path}
		if current == want {
			preview.Unchanged = true
		} else {
			preview.UnifiedDiff, preview.Truncated = renderTruncatedUnifiedDiff(path+" (current)", path+" (shim)", ensureTrailingNewline(current), ensureTrailingNewline(want), maxLines)
		}
		out = append(out, preview)
	}
	return out, nil
}

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := normalizeDiffMaxLines(maxLines)
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := append(lines[:limit:limit], fmt.Sprintf(messages.InstallDiffTruncatedFmt, limit))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
