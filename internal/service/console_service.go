package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmussaku/mongodb-etl-poc/internal/cache"
	"github.com/dmussaku/mongodb-etl-poc/internal/metrics"
	"github.com/dmussaku/mongodb-etl-poc/internal/model"
	"github.com/dmussaku/mongodb-etl-poc/internal/navigation"
	"github.com/dmussaku/mongodb-etl-poc/internal/repository"
	"github.com/dmussaku/mongodb-etl-poc/internal/screen"
)

var (
	// ErrNoScreen is returned when an action does not apply to the mounted screen
	ErrNoScreen = errors.New("action not available on the current screen")
	// ErrNoticeNotFound is returned when dismissing a notice that already expired
	ErrNoticeNotFound = errors.New("notice not found")
)

// Snapshot is everything a UI needs to render the current screen
type Snapshot struct {
	Version   uint64               `json:"version"`
	Selection navigation.Selection `json:"selection"`
	State     any                  `json:"state,omitempty"` // model.ViewState of the mounted screen
	Notices   []model.Notice       `json:"notices"`
}

// ConsoleService composes the screens behind a single navigation surface
type ConsoleService interface {
	Navigate(ctx context.Context, path string) navigation.Selection
	Snapshot() Snapshot
	Refresh(ctx context.Context) error
	RunJob(ctx context.Context) error
	TriggerRun(ctx context.Context, jobID int64) error
	DismissNotice(id string) error
	Subscribe() (<-chan Snapshot, func())
	Wait()
	Close()
}

// mountedScreen is the part every orchestrator shares
type mountedScreen interface {
	Name() string
	Deactivate()
}

// consoleService implements ConsoleService interface
type consoleService struct {
	repo    repository.ETLRepository
	notices *cache.NoticeStore
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	version   uint64
	selection navigation.Selection
	current   mountedScreen

	activations sync.WaitGroup

	subsMu  sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

// NewConsoleService creates a console with nothing mounted. Screen fetches
// run under a context that Close cancels.
func NewConsoleService(repo repository.ETLRepository, notices *cache.NoticeStore, logger *slog.Logger) ConsoleService {
	ctx, cancel := context.WithCancel(context.Background())
	s := &consoleService{
		repo:      repo,
		notices:   notices,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		selection: navigation.Selection{Screen: navigation.ScreenNotFound, Tab: navigation.TabDashboard},
		subs:      make(map[int]chan Snapshot),
	}
	notices.OnExpire(func(model.Notice) { s.publish() })
	return s
}

// Navigate tears down the mounted screen and mounts the one path selects.
// The new screen starts loading in the background.
func (s *consoleService) Navigate(ctx context.Context, path string) navigation.Selection {
	selection := navigation.Select(path)

	s.mu.Lock()
	if s.current != nil {
		s.current.Deactivate()
		s.current = nil
	}
	s.selection = selection

	var activate func(ctx context.Context)
	switch selection.Screen {
	case navigation.ScreenDashboard:
		dashboard := screen.NewDashboard(s.repo, s.logger, s.publish)
		s.current, activate = dashboard, dashboard.Activate
	case navigation.ScreenJobsList:
		jobs := screen.NewJobsList(s.repo, s.logger, s.publish)
		s.current, activate = jobs, jobs.Activate
	case navigation.ScreenJobDetails:
		details := screen.NewJobDetails(s.repo, s.logger, s.publish)
		jobID := selection.JobID
		s.current, activate = details, func(ctx context.Context) { details.Activate(ctx, jobID) }
	case navigation.ScreenConnections:
		connections := screen.NewConnections(s.repo, s.logger, s.publish)
		s.current, activate = connections, connections.Activate
	}

	if activate != nil {
		s.activations.Add(1)
		go func() {
			defer s.activations.Done()
			activate(s.ctx)
		}()
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "screen selected",
		slog.String("route", selection.Route),
		slog.String("screen", string(selection.Screen)),
	)
	s.publish()
	return selection
}

// Snapshot returns the current selection, view-state and live notices
func (s *consoleService) Snapshot() Snapshot {
	s.mu.Lock()
	s.version++
	snapshot := Snapshot{
		Version:   s.version,
		Selection: s.selection,
		State:     stateOf(s.current),
	}
	s.mu.Unlock()

	snapshot.Notices = s.notices.List()
	return snapshot
}

func stateOf(current mountedScreen) any {
	switch mounted := current.(type) {
	case *screen.Dashboard:
		return mounted.State()
	case *screen.JobsList:
		return mounted.State()
	case *screen.JobDetails:
		return mounted.State()
	case *screen.Connections:
		return mounted.State()
	default:
		return nil
	}
}

// Refresh re-fetches the run history of the mounted job details screen
func (s *consoleService) Refresh(ctx context.Context) error {
	details, ok := s.mounted().(*screen.JobDetails)
	if !ok {
		return ErrNoScreen
	}
	return details.Refresh(ctx)
}

// RunJob triggers the job shown on the mounted job details screen
func (s *consoleService) RunJob(ctx context.Context) error {
	details, ok := s.mounted().(*screen.JobDetails)
	if !ok {
		return ErrNoScreen
	}

	jobID, _ := details.JobID()
	err := details.RunJob(ctx)
	s.recordTrigger(jobID, err)
	return err
}

// TriggerRun triggers a job from the mounted jobs list
func (s *consoleService) TriggerRun(ctx context.Context, jobID int64) error {
	jobs, ok := s.mounted().(*screen.JobsList)
	if !ok {
		return ErrNoScreen
	}

	err := jobs.TriggerRun(ctx, jobID)
	s.recordTrigger(jobID, err)
	return err
}

// recordTrigger turns a trigger outcome into a notice. Rejected requests
// never reached the backend and produce none.
func (s *consoleService) recordTrigger(jobID int64, err error) {
	switch {
	case errors.Is(err, screen.ErrJobInactive), errors.Is(err, screen.ErrJobUnavailable):
		return
	case err != nil:
		s.notices.Add(model.NoticeError, fmt.Sprintf("Failed to trigger job %d", jobID), jobID)
	default:
		s.notices.Add(model.NoticeSuccess, fmt.Sprintf("Job %d triggered successfully", jobID), jobID)
	}
	s.publish()
}

// DismissNotice removes a live notice. Subscribers are notified through the
// store's eviction callback.
func (s *consoleService) DismissNotice(id string) error {
	if !s.notices.Dismiss(id) {
		return ErrNoticeNotFound
	}
	return nil
}

func (s *consoleService) mounted() mountedScreen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe returns a channel receiving a snapshot after every change. Slow
// subscribers only see the latest snapshot. The returned func unsubscribes.
func (s *consoleService) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()
	metrics.ViewSubscribers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			metrics.ViewSubscribers.Dec()
		})
	}
}

func (s *consoleService) publish() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	// taken under subsMu so subscribers never receive versions out of order
	snapshot := s.Snapshot()

	for _, ch := range s.subs {
		// drop the pending snapshot in favor of the newer one
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Wait blocks until every started activation has settled
func (s *consoleService) Wait() {
	s.activations.Wait()
}

// Close deactivates the mounted screen and cancels in-flight fetches
func (s *consoleService) Close() {
	s.mu.Lock()
	if s.current != nil {
		s.current.Deactivate()
	}
	s.mu.Unlock()

	s.cancel()
	s.activations.Wait()
}
