// Package restart stops and relaunches the Discord processes of each release channel.
package restart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/greaterdiscord/installer/internal/logging"
	"github.com/greaterdiscord/installer/internal/messages"
)

// ErrKill marks failures to stop a running process, as opposed to relaunch failures.
var ErrKill = errors.New("could not stop Discord")

var executables = map[string]string{
	"stable":      "Discord",
	"ptb":         "DiscordPTB",
	"canary":      "DiscordCanary",
	"development": "DiscordDevelopment",
}

// ExecutableName returns the process name used by channel.
func ExecutableName(channel string) (string, bool) {
	name, ok := executables[strings.ToLower(strings.TrimSpace(channel))]
	return name, ok
}

// Process is the subset of a running process the restarter needs.
type Process interface {
	PID() int32
	Name() (string, error)
	Exe() (string, error)
	Kill() error
}

type gopsProcess struct {
	p *process.Process
}

func (g gopsProcess) PID() int32            { return g.p.Pid }
func (g gopsProcess) Name() (string, error) { return g.p.Name() }
func (g gopsProcess) Exe() (string, error)  { return g.p.Exe() }
func (g gopsProcess) Kill() error           { return g.p.Kill() }

func listProcesses(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		out = append(out, gopsProcess{p: p})
	}
	return out, nil
}

func launchDetached(exe string) error {
	cmd := exec.Command(exe) //nolint:gosec // exe is the path of a process we just stopped
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Timing of the wait between stopping a channel and relaunching it.
const (
	DefaultExitTimeout  = 5 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// Restarter stops every process belonging to a channel and relaunches its executable.
type Restarter struct {
	list   func(ctx context.Context) ([]Process, error)
	launch func(exe string) error
	exists func(ctx context.Context, pid int32) (bool, error)
	logger *zap.Logger

	exitTimeout  time.Duration
	pollInterval time.Duration
}

// New returns a Restarter backed by the OS process table.
func New(logger *zap.Logger) *Restarter {
	return &Restarter{
		list:         listProcesses,
		launch:       launchDetached,
		exists:       process.PidExistsWithContext,
		logger:       logging.OrNop(logger),
		exitTimeout:  DefaultExitTimeout,
		pollInterval: DefaultPollInterval,
	}
}

// Restart restarts each channel in order and calls step once per channel handled.
// A channel with no running process counts as handled.
func (r *Restarter) Restart(ctx context.Context, channels []string, step func()) error {
	if step == nil {
		step = func() {}
	}
	procs, err := r.list(ctx)
	if err != nil {
		return fmt.Errorf(messages.RestartListFailedFmt, err)
	}
	for _, channel := range channels {
		if err := ctx.Err(); err != nil {
			return err
		}
		name, ok := ExecutableName(channel)
		if !ok {
			return fmt.Errorf(messages.RestartUnknownChannelFmt, channel)
		}
		if err := r.restartOne(ctx, channel, name, procs); err != nil {
			return err
		}
		step()
	}
	return nil
}

func (r *Restarter) restartOne(ctx context.Context, channel string, name string, procs []Process) error {
	matching := matchProcesses(procs, name)
	if len(matching) == 0 {
		r.logger.Debug(messages.LogNotRunning, zap.String(logging.KeyChannel, channel))
		return nil
	}

	exe := ""
	for _, p := range matching {
		if path, err := p.Exe(); err == nil && path != "" {
			exe = path
			break
		}
	}
	pids := make([]int32, 0, len(matching))
	for _, p := range matching {
		if err := p.Kill(); err != nil && !isGone(err) {
			return fmt.Errorf("%w: "+messages.RestartKillFailedFmt, ErrKill, name, p.PID(), err)
		}
		pids = append(pids, p.PID())
	}
	if err := r.waitExited(ctx, name, pids); err != nil {
		return err
	}
	if exe == "" {
		return fmt.Errorf(messages.RestartLaunchFailedFmt, name, errors.New(messages.RestartExeUnknown))
	}
	if err := r.launch(exe); err != nil {
		return fmt.Errorf(messages.RestartLaunchFailedFmt, exe, err)
	}
	r.logger.Info(messages.LogRestarted, zap.String(logging.KeyChannel, channel), zap.String(logging.KeyPath, exe))
	return nil
}

// isGone reports whether a kill failed only because the process had already exited.
// Helpers usually die with the main process before their own kill is sent.
func isGone(err error) bool {
	return errors.Is(err, process.ErrorProcessNotRunning) ||
		errors.Is(err, syscall.ESRCH) ||
		errors.Is(err, os.ErrProcessDone)
}

// waitExited polls until none of pids exists, so the relaunched instance does not race
// a dying one for the single-instance lock.
func (r *Restarter) waitExited(ctx context.Context, name string, pids []int32) error {
	ctx, cancel := context.WithTimeout(ctx, r.exitTimeout)
	defer cancel()

	for {
		remaining := pids[:0]
		for _, pid := range pids {
			alive, err := r.exists(ctx, pid)
			if err != nil || alive {
				remaining = append(remaining, pid)
			}
		}
		pids = remaining
		if len(pids) == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: "+messages.RestartStillRunningFmt, ErrKill, name, pids[0], r.exitTimeout)
			}
			return ctx.Err()
		case <-time.After(r.pollInterval):
		}
	}
}

func matchProcesses(procs []Process, name string) []Process {
	var out []Process
	for _, p := range procs {
		procName, err := p.Name()
		if err != nil || procName == "" {
			continue
		}
		procName = strings.TrimSuffix(procName, ".exe")
		if strings.EqualFold(procName, name) {
			out = append(out, p)
		}
	}
	return out
}
