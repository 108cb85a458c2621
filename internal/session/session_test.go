package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSurface_Lifecycle(t *testing.T) {
	s := NewSurface("log")
	assert.Equal(t, Idle, s.State())

	tk, err := s.Begin()
	require.NoError(t, err)
	assert.Equal(t, Pending, s.State())
	assert.Equal(t, uint64(1), tk.ID)
	assert.Equal(t, "log", tk.Surface)

	_, err = s.Begin()
	assert.ErrorIs(t, err, ErrBusy)

	assert.True(t, s.Resolve(tk, "ok", nil))
	snap := s.Snapshot()
	assert.Equal(t, Success, snap.State)
	assert.Equal(t, "ok", snap.Result)

	tk2, err := s.Begin()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), tk2.ID)
	assert.Nil(t, s.Snapshot().Result)

	failure := errors.New("boom")
	assert.True(t, s.Resolve(tk2, nil, failure))
	snap = s.Snapshot()
	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, failure, snap.Err)

	s.Reset()
	assert.Equal(t, Idle, s.State())
}

func TestSurface_StaleResolutionDiscarded(t *testing.T) {
	s := NewSurface("search")
	first, err := s.Begin()
	require.NoError(t, err)

	// The user changes the form while the first request is in flight.
	s.Reset()
	second, err := s.Begin()
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	assert.False(t, s.Resolve(first, "old", nil), "stale resolution must be dropped")
	assert.Equal(t, Pending, s.State())

	assert.True(t, s.Resolve(second, "new", nil))
	assert.Equal(t, "new", s.Snapshot().Result)

	assert.False(t, s.Resolve(second, "again", nil), "a ticket resolves once")
}

func TestSurface_ResetWhilePendingThenLateResolution(t *testing.T) {
	s := NewSurface("ask")
	tk, err := s.Begin()
	require.NoError(t, err)
	s.Reset()
	assert.False(t, s.Resolve(tk, "late", nil))
	assert.Equal(t, Idle, s.State())
}

func TestSurface_ResetDelayReturnsToIdle(t *testing.T) {
	changes := make(chan Snapshot, 8)
	s := NewSurface("log", WithResetDelay(20*time.Millisecond), WithOnChange(func(sn Snapshot) { changes <- sn }))
	defer s.Close()

	tk, err := s.Begin()
	require.NoError(t, err)
	require.True(t, s.Resolve(tk, "saved", nil))

	var states []State
	timeout := time.After(2 * time.Second)
	for len(states) < 3 {
		select {
		case sn := <-changes:
			states = append(states, sn.State)
		case <-timeout:
			t.Fatalf("timed out, saw %v", states)
		}
	}
	assert.Equal(t, []State{Pending, Success, Idle}, states)
}

func TestSurface_BeginCancelsDisplayTimer(t *testing.T) {
	s := NewSurface("log", WithResetDelay(30*time.Millisecond))
	defer s.Close()

	tk, err := s.Begin()
	require.NoError(t, err)
	require.True(t, s.Resolve(tk, nil, nil))

	_, err = s.Begin()
	require.NoError(t, err)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, Pending, s.State(), "old display timer must not clear a new action")
}

func TestSurface_CloseStopsTimer(t *testing.T) {
	s := NewSurface("log", WithResetDelay(10*time.Millisecond))
	tk, err := s.Begin()
	require.NoError(t, err)
	require.True(t, s.Resolve(tk, nil, nil))
	s.Close()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, Success, s.State())
}

func TestSurface_ConcurrentBeginOnlyOneWins(t *testing.T) {
	s := NewSurface("summary")
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Begin(); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestDo(t *testing.T) {
	s := NewSurface("explain")
	v, applied, err := Do(context.Background(), s, func(context.Context) (string, error) {
		return "JWT is...", nil
	})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "JWT is...", v)
	assert.Equal(t, Success, s.State())

	_, applied, err = Do(context.Background(), s, func(context.Context) (int, error) {
		s.Reset()
		return 0, errors.New("superseded")
	})
	assert.Error(t, err)
	assert.False(t, applied)
}

func TestDo_Busy(t *testing.T) {
	s := NewSurface("guidance")
	_, err := s.Begin()
	require.NoError(t, err)
	called := false
	_, applied, err := Do(context.Background(), s, func(context.Context) (int, error) {
		called = true
		return 1, nil
	})
	assert.ErrorIs(t, err, ErrBusy)
	assert.False(t, applied)
	assert.False(t, called)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestBoard(t *testing.T) {
	b := NewBoard(WithResetDelay(time.Hour))
	defer b.Close()

	a := b.Surface("search")
	assert.Same(t, a, b.Surface("search"))
	b.Surface("ask")

	tk, err := a.Begin()
	require.NoError(t, err)
	a.Resolve(tk, 3, nil)

	snaps := b.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "ask", snaps[0].Surface)
	assert.Equal(t, Idle, snaps[0].State)
	assert.Equal(t, "search", snaps[1].Surface)
	assert.Equal(t, Success, snaps[1].State)
}
