package install

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/greaterdiscord/installer/internal/config"
	"github.com/greaterdiscord/installer/internal/release"
)

// faultSystem is a test helper that allows deterministic error injection for the
// installer System interface without chmod-based permission tricks.
type faultSystem struct {
	base       System
	statErrs   map[string]error
	readErrs   map[string]error
	mkdirErrs  map[string]error
	removeErrs map[string]error
	copyErrs   map[string]error
	writeErrs  map[string]error
	writes     []string
}

func newFaultSystem(base System) *faultSystem {
	return &faultSystem{
		base:       base,
		statErrs:   map[string]error{},
		readErrs:   map[string]error{},
		mkdirErrs:  map[string]error{},
		removeErrs: map[string]error{},
		copyErrs:   map[string]error{},
		writeErrs:  map[string]error{},
	}
}

func normalizePath(path string) string {
	return filepath.Clean(path)
}

func (f *faultSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := f.statErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.Stat(name)
}

func (f *faultSystem) Mkdir(path string, perm os.FileMode) error {
	if err, ok := f.mkdirErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.Mkdir(path, perm)
}

func (f *faultSystem) ReadFile(name string) ([]byte, error) {
	if err, ok := f.readErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.ReadFile(name)
}

func (f *faultSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := f.readErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.ReadDir(name)
}

func (f *faultSystem) Remove(name string) error {
	if err, ok := f.removeErrs[normalizePath(name)]; ok {
		return err
	}
	return f.base.Remove(name)
}

func (f *faultSystem) RemoveAll(path string) error {
	if err, ok := f.removeErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.RemoveAll(path)
}

func (f *faultSystem) CopyTree(src string, dst string) error {
	if err, ok := f.copyErrs[normalizePath(src)]; ok {
		return err
	}
	return f.base.CopyTree(src, dst)
}

func (f *faultSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err, ok := f.writeErrs[normalizePath(filename)]; ok {
		return err
	}
	f.writes = append(f.writes, normalizePath(filename))
	return f.base.WriteFileAtomic(filename, data, perm)
}

// fakeFetcher serves a fixed asset and per-URL download bodies.
type fakeFetcher struct {
	asset        release.Asset
	resolveErr   error
	bodies       map[string][]byte
	downloadErrs map[string]error
	resolves     int
	downloads    []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		asset: release.Asset{
			Name:        config.DefaultAssetName,
			DownloadURL: "https://example.test/assets/1",
			Version:     "v2.0",
		},
		bodies:       map[string][]byte{"https://example.test/assets/1": []byte("package-bytes")},
		downloadErrs: map[string]error{},
	}
}

func (f *fakeFetcher) Resolve(_ context.Context, _ string) (release.Asset, error) {
	f.resolves++
	if f.resolveErr != nil {
		return release.Asset{}, f.resolveErr
	}
	return f.asset, nil
}

func (f *fakeFetcher) Download(_ context.Context, url string) ([]byte, error) {
	f.downloads = append(f.downloads, url)
	if err, ok := f.downloadErrs[url]; ok {
		return nil, err
	}
	if body, ok := f.bodies[url]; ok {
		return body, nil
	}
	return []byte("plugin:" + url), nil
}

func (f *fakeFetcher) calls() int {
	return f.resolves + len(f.downloads)
}

type recordingNotifier struct {
	restarts int
	kills    int
}

func (n *recordingNotifier) RestartNotice() { n.restarts++ }
func (n *recordingNotifier) KillNotice()    { n.kills++ }

type fakeRestarter struct {
	err      error
	channels []string
}

func (r *fakeRestarter) Restart(_ context.Context, channels []string, step func()) error {
	r.channels = append(r.channels, channels...)
	if r.err != nil {
		return r.err
	}
	for range channels {
		step()
	}
	return nil
}

// scriptedPrompter answers by title and records the questions asked.
type scriptedPrompter struct {
	answers map[string]bool
	errs    map[string]error
	asked   []string
}

func (p *scriptedPrompter) Confirm(title string, _ string) (bool, error) {
	p.asked = append(p.asked, title)
	if err, ok := p.errs[title]; ok {
		return false, err
	}
	return p.answers[title], nil
}

// progressLog records every progress and status change.
type progressLog struct {
	values   []float64
	statuses []Status
}

func (l *progressLog) reporter() Reporter {
	return ReporterFuncs{
		ProgressFunc: func(v float64) { l.values = append(l.values, v) },
		StatusFunc:   func(s Status) { l.statuses = append(l.statuses, s) },
	}
}

type fixture struct {
	paths     config.Paths
	channels  config.InstallConfig
	sys       *faultSystem
	fetcher   *fakeFetcher
	prompter  *scriptedPrompter
	notifier  *recordingNotifier
	restarter *fakeRestarter
	progress  *progressLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	base := t.TempDir()
	cfg := &config.Config{}
	cfg.Paths.DataRoot = filepath.Join(base, "GreaterDiscord")
	cfg.Paths.LegacyRoot = filepath.Join(base, "BetterDiscord")
	cfg.Release.AssetName = config.DefaultAssetName

	stable := filepath.Join(base, "app-stable")
	if err := os.Mkdir(stable, 0o755); err != nil {
		t.Fatalf("mkdir stable: %v", err)
	}
	return &fixture{
		paths:     cfg.ResolvePaths(),
		channels:  config.InstallConfig{"stable": stable},
		sys:       newFaultSystem(RealSystem{}),
		fetcher:   newFakeFetcher(),
		prompter:  &scriptedPrompter{answers: map[string]bool{}, errs: map[string]error{}},
		notifier:  &recordingNotifier{},
		restarter: &fakeRestarter{},
		progress:  &progressLog{},
	}
}

func (f *fixture) options() Options {
	return Options{
		Config:    f.channels,
		Paths:     f.paths,
		Fetcher:   f.fetcher,
		Prompter:  f.prompter,
		Notifier:  f.notifier,
		Restarter: f.restarter,
		Reporter:  f.progress.reporter(),
		System:    f.sys,
	}
}
