package screen

import (
	"context"
	"errors"
	"sync"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
)

var (
	// ErrJobInactive is returned when a run is requested for an inactive job
	ErrJobInactive = errors.New("job is inactive")
	// ErrJobUnavailable is returned when the job is not loaded on the screen
	ErrJobUnavailable = errors.New("job is not available")
)

// Screen names
const (
	NameDashboard   = "dashboard"
	NameJobsList    = "jobs"
	NameJobDetails  = "job_details"
	NameConnections = "connections"
)

// lifecycle owns a screen's view-state. Every activation bumps the
// generation; responses carry the generation they were issued under and are
// applied only while it is still current.
type lifecycle[T any] struct {
	mu         sync.Mutex
	generation uint64
	partial    uint64
	cancel     context.CancelFunc
	state      model.ViewState[T]
	notify     func()
}

func newLifecycle[T any](notify func()) *lifecycle[T] {
	if notify == nil {
		notify = func() {}
	}
	return &lifecycle[T]{state: model.Loading[T](), notify: notify}
}

// begin starts a new generation in the loading phase and cancels the
// previous one's in-flight requests.
func (l *lifecycle[T]) begin(parent context.Context) (uint64, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	l.cancel = cancel
	l.state = model.Loading[T]()
	token := l.generation
	l.mu.Unlock()

	l.notify()
	return token, ctx, cancel
}

// commit applies fn to the state if token is still current
func (l *lifecycle[T]) commit(token uint64, fn func(state *model.ViewState[T])) bool {
	l.mu.Lock()
	if token != l.generation {
		l.mu.Unlock()
		return false
	}
	fn(&l.state)
	l.mu.Unlock()

	l.notify()
	return true
}

// stamp issues a sequence number for a partial reload within the current
// generation. Only the most recently stamped reload may commit.
func (l *lifecycle[T]) stamp() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.partial++
	return l.partial
}

// commitLatest is commit restricted to the most recently stamped reload
func (l *lifecycle[T]) commitLatest(token, seq uint64, fn func(state *model.ViewState[T])) bool {
	l.mu.Lock()
	if token != l.generation || seq != l.partial {
		l.mu.Unlock()
		return false
	}
	fn(&l.state)
	l.mu.Unlock()

	l.notify()
	return true
}

// end invalidates every outstanding response
func (l *lifecycle[T]) end() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.generation++
}

// peek returns the current token and state under one lock
func (l *lifecycle[T]) peek() (uint64, model.ViewState[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation, l.state
}

func (l *lifecycle[T]) snapshot() model.ViewState[T] {
	_, state := l.peek()
	return state
}
