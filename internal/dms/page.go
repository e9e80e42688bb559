package dms

import (
	"context"
	"errors"
	"sync"
	"time"

	"dms-go/internal/model"
)

// ErrBusy is returned when a mutation is submitted while another is in flight.
var ErrBusy = errors.New("another request is in flight")

// Deps are the collaborators shared by every controller.
type Deps struct {
	Sessions  SessionStore
	Gateway   Gateway
	Navigator Navigator
	Clock     Clock
	Logger    Logger
	Timing    Timing
}

// Timing controls how long success messages stay visible before the
// dialog closes and the message clears.
type Timing struct {
	StatusDelay       time.Duration
	DeleteStatusDelay time.Duration
}

// DefaultTiming matches the delays of the web front-end.
var DefaultTiming = Timing{
	StatusDelay:       2 * time.Second,
	DeleteStatusDelay: 3 * time.Second,
}

// page holds the lifecycle state shared by the authenticated screens.
// All fields below mu are guarded by it.
type page struct {
	deps  Deps
	route Route

	mu       sync.Mutex
	phase    Phase
	status   StatusMessage
	mounted  bool
	gen      int
	ctx      context.Context
	cancel   context.CancelFunc
	timer    Timer
	timerSeq int
	loadErrs []string
}

func newPage(deps Deps, route Route) page {
	if deps.Logger == nil {
		deps.Logger = NewNopLogger()
	}
	if deps.Clock == nil {
		deps.Clock = RealClock{}
	}
	if deps.Timing == (Timing{}) {
		deps.Timing = DefaultTiming
	}
	return page{deps: deps, route: route}
}

// start moves the page into Loading under a fresh mount generation and
// returns the context that in-flight requests must use.
func (p *page) start(parent context.Context) (context.Context, int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	p.stopTimerLocked()
	ctx, cancel := context.WithCancel(parent)
	p.ctx = ctx
	p.cancel = cancel
	p.gen++
	p.mounted = true
	p.phase = PhaseLoading
	p.status = StatusMessage{}
	p.loadErrs = nil
	return ctx, p.gen
}

// apply runs fn under the lock if the mount generation gen is still live.
// Late responses from a previous mount are dropped.
func (p *page) apply(gen int, fn func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted || p.gen != gen {
		return false
	}
	fn()
	return true
}

// loadFailed records a non-fatal fetch failure during mount or refresh.
func (p *page) loadFailed(gen int, op string, err error, text string) {
	p.deps.Logger.Warn("fetch failed", "route", string(p.route), "op", op, "error", err)
	p.apply(gen, func() {
		p.loadErrs = append(p.loadErrs, text)
	})
}

// ready completes the mount.
func (p *page) ready(gen int) {
	p.apply(gen, func() {
		p.phase = PhaseReady
	})
}

// Unmount cancels in-flight requests and discards any that resolve later.
func (p *page) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.mounted = false
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.stopTimerLocked()
	p.phase = PhaseIdle
}

// Phase returns the current lifecycle phase.
func (p *page) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Status returns the current inline message.
func (p *page) Status() StatusMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// beginSubmit re-reads the session, moves to Submitting and clears the
// previous message. The session is re-read because another command may
// have logged out since mount.
func (p *page) beginSubmit() (*model.Session, context.Context, int, error) {
	p.mu.Lock()
	if !p.mounted {
		p.mu.Unlock()
		return nil, nil, 0, ErrNotMounted
	}
	if p.phase == PhaseSubmitting {
		p.mu.Unlock()
		return nil, nil, 0, ErrBusy
	}
	p.mu.Unlock()

	session, ok := p.deps.Sessions.RequireOrRedirect(p.route)
	if !ok {
		p.Unmount()
		return nil, nil, 0, ErrRedirected
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return nil, nil, 0, ErrNotMounted
	}
	if p.phase == PhaseSubmitting {
		return nil, nil, 0, ErrBusy
	}
	p.stopTimerLocked()
	p.phase = PhaseSubmitting
	p.status = StatusMessage{}
	return session, p.ctx, p.gen, nil
}

// failSubmit records an error message and restores interactivity.
// Dialogs and form fields are left untouched.
func (p *page) failSubmit(gen int, op string, err error, text string) {
	p.deps.Logger.Warn("mutation failed", "route", string(p.route), "op", op, "error", err)
	p.apply(gen, func() {
		p.phase = PhaseReady
		p.status = errorStatus(text)
	})
}

// succeedSubmit records a success message, runs reset under the lock, and
// schedules settle to run after delay together with clearing the message.
func (p *page) succeedSubmit(gen int, text string, reset func(), delay time.Duration, settle func()) {
	p.apply(gen, func() {
		p.phase = PhaseReady
		p.status = successStatus(text)
		if reset != nil {
			reset()
		}
		p.stopTimerLocked()
		seq := p.timerSeq
		p.timer = p.deps.Clock.AfterFunc(delay, func() {
			p.apply(gen, func() {
				if p.timerSeq != seq {
					return
				}
				p.timer = nil
				p.status = StatusMessage{}
				if settle != nil {
					settle()
				}
			})
		})
	})
}

// setError shows an error message without a network round trip.
func (p *page) setError(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = errorStatus(text)
}

// stopTimerLocked cancels the pending settle call. Bumping timerSeq also
// neutralizes a callback that already fired and is waiting for the lock.
func (p *page) stopTimerLocked() {
	p.timerSeq++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *page) loadErrors() []string {
	return append([]string(nil), p.loadErrs...)
}
