package service

import (
	"context"
	"time"

	"formflow-be/internal/dto"
	"formflow-be/internal/pkg/logger"
	"formflow-be/internal/repository/specification"
	"formflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	// GetSessions lists the user's sessions, newest first. A non-positive
	// pageSize returns the full list.
	GetSessions(ctx context.Context, username, domain string, pageSize, offset int) (*dto.ListSessionsResponse, error)
	GetById(ctx context.Context, username, domain string, id uuid.UUID) (*dto.GetSessionResponse, error)
	DeleteById(ctx context.Context, username, domain string, id uuid.UUID) error
	// Purge removes sessions created before the cutoff, across all users.
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, sysLogger logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (s *sessionService) GetSessions(ctx context.Context, username, domain string, pageSize, offset int) (*dto.ListSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.FormSessionRepository().FindAll(ctx,
		specification.OwnedBy{Username: username, Domain: domain},
		specification.Paginated{Limit: pageSize, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListSessionsResponse{Sessions: make([]dto.SessionSummary, 0, len(sessions))}
	for _, session := range sessions {
		resp.Sessions = append(resp.Sessions, dto.SessionSummary{
			Id:          session.Id,
			Title:       session.Title,
			AppId:       session.AppId,
			DateCreated: session.DateCreated,
		})
	}
	return resp, nil
}

func (s *sessionService) GetById(ctx context.Context, username, domain string, id uuid.UUID) (*dto.GetSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.FormSessionRepository().GetById(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Username != username || session.Domain != domain {
		return nil, ErrSessionNotFound
	}

	return &dto.GetSessionResponse{
		Id:               session.Id,
		Title:            session.Title,
		AppId:            session.AppId,
		MenuSessionId:    session.MenuSessionId,
		SessionData:      session.SessionData,
		SubmitStatus:     session.SubmitStatus,
		SuppressAutosync: session.SuppressAutosync,
		DateCreated:      session.DateCreated,
		DateUpdated:      session.DateUpdated,
	}, nil
}

func (s *sessionService) DeleteById(ctx context.Context, username, domain string, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.FormSessionRepository()

	session, err := repo.GetById(ctx, id)
	if err != nil {
		return err
	}
	if session == nil || session.Username != username || session.Domain != domain {
		return ErrSessionNotFound
	}

	return repo.DeleteById(ctx, id)
}

func (s *sessionService) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	removed, err := uow.FormSessionRepository().PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.logger.Info("session", "purged stale form sessions", map[string]interface{}{
		"cutoff":  cutoff.Format(time.RFC3339),
		"removed": removed,
	})
	return removed, nil
}
