package install

// Progress milestones reached when each mandatory step completes.
const (
	MakeDirProgress         = 30
	DownloadPackageProgress = 45
	CopyDataProgress        = 65
	InjectShimProgress      = 90
	RestartProgress         = 100
)

// Status is the run status observed by the surrounding UI.
type Status string

// Run statuses.
const (
	StatusInProgress Status = "in-progress"
	StatusError      Status = "error"
	StatusSuccess    Status = "success"
)

// Reporter receives every progress and status change of a run.
type Reporter interface {
	Progress(value float64)
	Status(status Status)
}

// ReporterFuncs adapts optional callbacks into a Reporter.
type ReporterFuncs struct {
	ProgressFunc func(value float64)
	StatusFunc   func(status Status)
}

// Progress forwards to ProgressFunc when set.
func (r ReporterFuncs) Progress(value float64) {
	if r.ProgressFunc != nil {
		r.ProgressFunc(value)
	}
}

// Status forwards to StatusFunc when set.
func (r ReporterFuncs) Status(status Status) {
	if r.StatusFunc != nil {
		r.StatusFunc(status)
	}
}

// RunContext owns the progress and status of one install run. Progress only moves
// forward within [0,100]; Reset is the only way back to zero.
type RunContext struct {
	progress float64
	status   Status
	reporter Reporter
}

// NewRunContext returns a context reporting to reporter (which may be nil).
func NewRunContext(reporter Reporter) *RunContext {
	if reporter == nil {
		reporter = ReporterFuncs{}
	}
	return &RunContext{status: StatusInProgress, reporter: reporter}
}

// Progress returns the current progress value.
func (rc *RunContext) Progress() float64 { return rc.progress }

// Status returns the current run status.
func (rc *RunContext) Status() Status { return rc.status }

// Reset clears progress and marks the run in progress.
func (rc *RunContext) Reset() {
	rc.progress = 0
	rc.status = StatusInProgress
	rc.reporter.Progress(0)
	rc.reporter.Status(StatusInProgress)
}

// Set moves progress to value. Values below the current progress are ignored.
func (rc *RunContext) Set(value float64) {
	value = clamp(value)
	if value <= rc.progress {
		return
	}
	rc.progress = value
	rc.reporter.Progress(value)
}

// Advance moves progress forward by delta.
func (rc *RunContext) Advance(delta float64) {
	if delta <= 0 {
		return
	}
	rc.Set(rc.progress + delta)
}

// SetStatus records a status change.
func (rc *RunContext) SetStatus(status Status) {
	rc.status = status
	rc.reporter.Status(status)
}

// Apportion divides the budget left before milestone into n equal shares and returns a
// function that advances by one share, never past milestone.
func (rc *RunContext) Apportion(milestone float64, n int) func() {
	share := 0.0
	if n > 0 && milestone > rc.progress {
		share = (milestone - rc.progress) / float64(n)
	}
	return func() {
		next := rc.progress + share
		if next > milestone {
			next = milestone
		}
		rc.Set(next)
	}
}

func clamp(value float64) float64 {
	switch {
	case value < 0:
		return 0
	case value > 100:
		return 100
	default:
		return value
	}
}
