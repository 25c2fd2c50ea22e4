package service

import (
	"context"
	"fmt"
	"log/slog"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type scoreService struct {
	store    repository.Store
	notifier NotificationService
	logger   *slog.Logger
}

func NewScoreService(store repository.Store, notifier NotificationService) ScoreService {
	return &scoreService{
		store:    store,
		notifier: notifier,
		logger:   logger.WithService("score"),
	}
}

func (s *scoreService) Append(ctx context.Context, actor domain.Actor, in AppendScoreInput) (*domain.ScoreEntry, error) {
	if !actor.IsOperator() {
		return nil, fmt.Errorf("score adjustments require an operator: %w", domain.ErrForbidden)
	}
	if in.Delta < domain.ScoreDeltaMin || in.Delta > domain.ScoreDeltaMax {
		return nil, fmt.Errorf("delta %d outside [%d, %d]: %w",
			in.Delta, domain.ScoreDeltaMin, domain.ScoreDeltaMax, domain.ErrValidation)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("score adjustment requires a reason: %w", domain.ErrValidation)
	}

	client, err := s.store.Clients().GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if in.ReservationID != 0 {
		if _, err := s.store.Reservations().GetByID(ctx, in.ReservationID); err != nil {
			return nil, err
		}
	}

	entry := &domain.ScoreEntry{
		ClientID:      in.ClientID,
		ReservationID: in.ReservationID,
		Delta:         in.Delta,
		Reason:        in.Reason,
		Comment:       in.Comment,
		CreatedBy:     actor,
	}
	if err := s.store.Scores().Create(ctx, entry); err != nil {
		return nil, err
	}

	// The cached score is always a full recompute from the ledger, never an
	// increment of the previous cache.
	sum, err := s.store.Scores().SumByClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	score := domain.ComputeScore(sum)
	if err := s.store.Clients().UpdateScore(ctx, in.ClientID, score); err != nil {
		return nil, err
	}

	s.logger.Info("score entry appended", "client_id", in.ClientID, "delta", in.Delta, "new_score", score)
	s.notifier.Notify(ctx, &domain.Notification{
		Recipient: domain.Actor{Kind: domain.ActorKindClient, ID: client.ID},
		Type:      domain.NotificationScoreAdded,
		Title:     "Score updated",
		Message:   fmt.Sprintf("Your score changed by %+d (%s). New score: %d.", in.Delta, in.Reason, score),
		Data:      map[string]string{"score": fmt.Sprint(score)},
	})
	return entry, nil
}

func (s *scoreService) CurrentScore(ctx context.Context, clientID int32) (int32, error) {
	client, err := s.store.Clients().GetByID(ctx, clientID)
	if err != nil {
		return 0, err
	}
	return client.Score, nil
}

func (s *scoreService) History(ctx context.Context, clientID, page, pageSize int32) ([]domain.ScoreEntry, int32, error) {
	return s.store.Scores().ListByClient(ctx, clientID, page, pageSize)
}
