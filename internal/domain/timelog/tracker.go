package timelog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pkarpov/crewdeck/internal/collection"
)

var (
	// ErrTimerRunning indicates a session is already active.
	ErrTimerRunning = errors.New("a timer session is already running")
	// ErrNoTimerRunning indicates there is no session to stop.
	ErrNoTimerRunning = errors.New("no timer session is running")
	// ErrStopInProgress indicates another caller is already stopping the
	// session.
	ErrStopInProgress = errors.New("the timer session is already being stopped")
)

// Tracker owns the single active timer session. Stopping computes the
// wall-clock elapsed time floored to whole minutes and performs exactly
// one create against the time-log collection.
type Tracker struct {
	logs *collection.Controller[TimeLog]
	now  func() time.Time

	mu       sync.Mutex
	active   *Session
	stopping bool
}

// NewTracker creates a tracker writing to the given time-log controller.
// now may be nil to use the wall clock.
func NewTracker(logs *collection.Controller[TimeLog], now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{logs: logs, now: now}
}

// Active returns the running session, or nil.
func (t *Tracker) Active() *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil
	}
	session := *t.active
	return &session
}

// Start begins a session. Only one session may run at a time.
func (t *Tracker) Start(label, project string) (Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		return Session{}, ErrTimerRunning
	}
	t.active = &Session{Label: label, Project: project, StartedAt: t.now()}
	return *t.active, nil
}

// Stop ends the session and creates one time log. A failed create keeps
// the session running so the stop can be retried. The stopping flag
// claims the session before the create, so concurrent stops cannot log
// the same session twice.
func (t *Tracker) Stop(ctx context.Context) (TimeLog, error) {
	t.mu.Lock()
	session := t.active
	if session == nil {
		t.mu.Unlock()
		return TimeLog{}, ErrNoTimerRunning
	}
	if t.stopping {
		t.mu.Unlock()
		return TimeLog{}, ErrStopInProgress
	}
	t.stopping = true
	t.mu.Unlock()

	stoppedAt := t.now()
	minutes := int(stoppedAt.Sub(session.StartedAt).Minutes())

	created, err := t.logs.Create(ctx, TimeLog{
		Label:   session.Label,
		Project: session.Project,
		Minutes: minutes,
		Day:     session.StartedAt,
	})

	t.mu.Lock()
	t.stopping = false
	if err == nil {
		t.active = nil
	}
	t.mu.Unlock()

	if err != nil {
		return TimeLog{}, err
	}
	return created, nil
}
