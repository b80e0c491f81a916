package orchestrator

import "time"

type EventKind int

const (
	EventPhaseStarted EventKind = iota
	EventTablePersisted
	EventPhaseRetry
	EventPhaseCompleted
	EventPhaseFailed
)

func (k EventKind) String() string {
	switch k {
	case EventPhaseStarted:
		return "phase_started"
	case EventTablePersisted:
		return "table_persisted"
	case EventPhaseRetry:
		return "phase_retry"
	case EventPhaseCompleted:
		return "phase_completed"
	case EventPhaseFailed:
		return "phase_failed"
	default:
		return "unknown"
	}
}

// Event describes progress of a run. Fields not relevant to Kind are zero.
type Event struct {
	Kind     EventKind
	Phase    int
	Name     string
	Attempt  int
	Database string
	Table    string
	Rows     int
	Elapsed  time.Duration
	Err      error
}

type Reporter interface {
	Report(Event)
}

type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

type nopReporter struct{}

func (nopReporter) Report(Event) {}
