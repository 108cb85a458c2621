// Package session tracks the lifecycle of user-initiated actions.
//
// Each UI surface (a form, a page, a watched file) owns one Surface. An action moves
// it Idle -> Pending -> Success|Failed -> Idle. Every action gets a request id that
// increases monotonically per surface; a resolution whose id is not the latest one
// issued for that surface is stale and is discarded.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBusy is returned when an action is started on a surface that is still Pending.
var ErrBusy = errors.New("action already pending")

// State is the lifecycle state of a surface.
type State int

const (
	Idle State = iota
	Pending
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of a surface's displayed state.
type Snapshot struct {
	Surface   string
	State     State
	RequestID uint64
	Result    any
	Err       error
}

// Ticket identifies one issued action.
type Ticket struct {
	Surface string
	ID      uint64
}

// Surface is the state owned by one UI surface. Safe for concurrent use.
type Surface struct {
	name       string
	resetDelay time.Duration
	onChange   func(Snapshot)

	mu     sync.Mutex
	state  State
	seq    uint64
	result any
	err    error
	timer  *time.Timer
	closed bool
}

// Option configures a Surface.
type Option func(*Surface)

// WithResetDelay keeps Success/Failed on display for d before returning to Idle.
// Zero means the surface stays in Success/Failed until the next Begin or Reset.
func WithResetDelay(d time.Duration) Option {
	return func(s *Surface) { s.resetDelay = d }
}

// WithOnChange registers fn to receive every state change. fn is called without the
// surface lock held and must not block for long.
func WithOnChange(fn func(Snapshot)) Option {
	return func(s *Surface) { s.onChange = fn }
}

// NewSurface creates an Idle surface.
func NewSurface(name string, opts ...Option) *Surface {
	s := &Surface{name: name}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the surface name.
func (s *Surface) Name() string {
	return s.name
}

// Snapshot returns the current state.
func (s *Surface) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State returns the current state.
func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin issues a new request id and moves the surface to Pending. A surface showing
// Success or Failed is returned to Idle first. Returns ErrBusy while Pending.
func (s *Surface) Begin() (Ticket, error) {
	s.mu.Lock()
	if s.state == Pending {
		s.mu.Unlock()
		return Ticket{}, ErrBusy
	}
	s.stopTimerLocked()
	s.seq++
	s.state = Pending
	s.result, s.err = nil, nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return Ticket{Surface: s.name, ID: snap.RequestID}, nil
}

// Resolve records the outcome of the action identified by t. It reports whether the
// outcome was applied; stale tickets (superseded by Reset or a later Begin) are dropped.
func (s *Surface) Resolve(t Ticket, result any, err error) bool {
	s.mu.Lock()
	if t.ID != s.seq || s.state != Pending {
		s.mu.Unlock()
		return false
	}
	if err != nil {
		s.state = Failed
	} else {
		s.state = Success
	}
	s.result, s.err = result, err
	if s.resetDelay > 0 && !s.closed {
		id := s.seq
		s.timer = time.AfterFunc(s.resetDelay, func() { s.expire(id) })
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return true
}

// Reset returns the surface to Idle and invalidates any in-flight action.
func (s *Surface) Reset() {
	s.mu.Lock()
	s.stopTimerLocked()
	if s.state == Pending {
		s.seq++
	}
	changed := s.state != Idle
	s.state = Idle
	s.result, s.err = nil, nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if changed {
		s.notify(snap)
	}
}

// Close stops the display timer. The surface must not be used afterwards.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimerLocked()
}

func (s *Surface) expire(id uint64) {
	s.mu.Lock()
	if id != s.seq || (s.state != Success && s.state != Failed) {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.state = Idle
	s.result, s.err = nil, nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Surface) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Surface) snapshotLocked() Snapshot {
	return Snapshot{Surface: s.name, State: s.state, RequestID: s.seq, Result: s.result, Err: s.err}
}

func (s *Surface) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}

// Do runs fn as one action on s. applied is false when the outcome was superseded
// while fn ran; the returned value and error are fn's either way.
func Do[T any](ctx context.Context, s *Surface, fn func(context.Context) (T, error)) (v T, applied bool, err error) {
	t, err := s.Begin()
	if err != nil {
		return v, false, err
	}
	v, err = fn(ctx)
	return v, s.Resolve(t, v, err), err
}
