package screen

import (
	"context"
	"log/slog"

	"github.com/dmussaku/mongodb-etl-poc/internal/model"
	"github.com/dmussaku/mongodb-etl-poc/internal/repository"
	"github.com/dmussaku/mongodb-etl-poc/internal/viewmodel"
)

// Connections lists configured data source connections
type Connections struct {
	lc     *lifecycle[viewmodel.ConnectionsView]
	repo   repository.ETLRepository
	logger *slog.Logger
}

func NewConnections(repo repository.ETLRepository, logger *slog.Logger, notify func()) *Connections {
	return &Connections{
		lc:     newLifecycle[viewmodel.ConnectionsView](notify),
		repo:   repo,
		logger: logger.With(slog.String("screen", NameConnections)),
	}
}

func (s *Connections) Name() string { return NameConnections }

func (s *Connections) Activate(ctx context.Context) {
	token, ctx, cancel := s.lc.begin(ctx)
	defer cancel()

	list, err := s.repo.FetchConnections(ctx, 0, repository.DefaultConnectionsLimit)
	applied := s.lc.commit(token, func(state *model.ViewState[viewmodel.ConnectionsView]) {
		if err != nil {
			*state = model.Failed[viewmodel.ConnectionsView](viewmodel.MsgConnectionsFailed)
			return
		}
		*state = model.Ready(viewmodel.Connections(list))
	})
	if !applied {
		s.logger.Debug("discarding stale connections response")
		return
	}

	if err != nil {
		s.logger.Error("failed to load connections", slog.String("error", err.Error()))
	}
	recordActivation(NameConnections, err != nil)
}

func (s *Connections) Deactivate() {
	s.lc.end()
}

func (s *Connections) State() model.ViewState[viewmodel.ConnectionsView] {
	return s.lc.snapshot()
}
