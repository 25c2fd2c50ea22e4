package service

import (
	"context"
	"fmt"
	"log/slog"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/security"
)

type authService struct {
	store  repository.Store
	tokens *security.TokenManager
	logger *slog.Logger
}

func NewAuthService(store repository.Store, tokens *security.TokenManager) AuthService {
	return &authService{
		store:  store,
		tokens: tokens,
		logger: logger.WithService("auth"),
	}
}

func (s *authService) ClientLogin(ctx context.Context, email, password string) (string, *domain.Client, error) {
	client, err := s.store.Clients().GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}
	if !security.CheckPassword(client.PasswordHash, password) {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}
	if client.IsBlocked {
		return "", nil, fmt.Errorf("account is blocked: %w", domain.ErrForbidden)
	}

	token, err := s.tokens.Generate(domain.Actor{Kind: domain.ActorKindClient, ID: client.ID})
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("client logged in", "client_id", client.ID)
	return token, client, nil
}

func (s *authService) StaffLogin(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	staff, err := s.store.Staff().GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}
	if !security.CheckPassword(staff.PasswordHash, password) {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}
	if !staff.IsActive {
		return "", nil, fmt.Errorf("account is inactive: %w", domain.ErrForbidden)
	}

	token, err := s.tokens.Generate(staff.Actor())
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("staff logged in", "staff_id", staff.ID, "kind", staff.Kind)
	return token, staff, nil
}

func (s *authService) RegisterClient(ctx context.Context, client *domain.Client, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	client.PasswordHash = hash
	client.Score = domain.ScoreBase
	if err := s.store.Clients().Create(ctx, client); err != nil {
		return err
	}
	s.logger.Info("client registered", "client_id", client.ID, "email", client.Email)
	return nil
}
