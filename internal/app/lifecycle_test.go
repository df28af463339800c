package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/ballchaser/internal/domain"
)

// stateRecorder tracks state change events for testing.
type stateRecorder struct {
	mu     sync.Mutex
	events [][2]State
}

func (r *stateRecorder) OnStateChange(previous, current State, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, [2]State{previous, current})
}

func TestLifecycle_Initial(t *testing.T) {
	l := NewLifecycle(mockLogger{}, nil)
	if l.State() != StateStopped {
		t.Errorf("initial state = %v, want Stopped", l.State())
	}
	if !l.CanStart() || l.CanStop() {
		t.Errorf("CanStart/CanStop = %v/%v, want true/false", l.CanStart(), l.CanStop())
	}
}

func TestState_String(t *testing.T) {
	for s, want := range stateNames {
		if s.String() != want {
			t.Errorf("State(%d).String() = %s, want %s", s, s.String(), want)
		}
	}
	if State(42).String() != "Unknown" {
		t.Errorf("State(42).String() = %s, want Unknown", State(42).String())
	}
}

func TestLifecycle_TransitionTo(t *testing.T) {
	all := []State{StateStopped, StateStarting, StateRunning, StateStopping, StateCrashed}

	for _, from := range all {
		for _, to := range all {
			l := NewLifecycle(mockLogger{}, nil)
			l.state = from

			err := l.TransitionTo(to, "test")
			legal := allowed(from, to)

			if legal && err != nil {
				t.Errorf("%v -> %v: error = %v, want nil", from, to, err)
			}
			if !legal {
				want := domain.ErrAlreadyRunning
				if from == StateStopped || from == StateCrashed {
					want = domain.ErrNotRunning
				}
				if !errors.Is(err, want) {
					t.Errorf("%v -> %v: error = %v, want %v", from, to, err, want)
				}
				if l.State() != from {
					t.Errorf("%v -> %v: state changed to %v on illegal transition", from, to, l.State())
				}
			}
		}
	}
}

func TestLifecycle_FullCycleEmitsEvents(t *testing.T) {
	rec := &stateRecorder{}
	l := NewLifecycle(mockLogger{}, rec)

	path := []State{StateStarting, StateRunning, StateStopping, StateStopped, StateStarting, StateCrashed}
	for _, s := range path {
		if err := l.TransitionTo(s, "cycle"); err != nil {
			t.Fatalf("TransitionTo(%v) error = %v", s, err)
		}
	}

	if len(rec.events) != len(path) {
		t.Fatalf("got %d events, want %d", len(rec.events), len(path))
	}
	prev := StateStopped
	for i, ev := range rec.events {
		if ev[0] != prev || ev[1] != path[i] {
			t.Errorf("event %d = %v->%v, want %v->%v", i, ev[0], ev[1], prev, path[i])
		}
		prev = path[i]
	}
}

func TestLifecycle_WaitWithTimeout(t *testing.T) {
	l := NewLifecycle(mockLogger{}, nil)

	l.Go(func() { time.Sleep(10 * time.Millisecond) })
	if err := l.WaitWithTimeout(time.Second); err != nil {
		t.Errorf("WaitWithTimeout() = %v, want nil", err)
	}

	release := make(chan struct{})
	l.Go(func() { <-release })
	if err := l.WaitWithTimeout(10 * time.Millisecond); !errors.Is(err, domain.ErrShutdownTimeout) {
		t.Errorf("WaitWithTimeout() = %v, want ErrShutdownTimeout", err)
	}
	close(release)
}

func TestLifecycle_ConcurrentReads(t *testing.T) {
	l := NewLifecycle(mockLogger{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = l.State()
				_ = l.CanStart()
				_ = l.CanStop()
			}
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.TransitionTo(StateStarting, "test")
			_ = l.TransitionTo(StateRunning, "test")
		}()
	}
	wg.Wait()
}
