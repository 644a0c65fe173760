package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

type AuthService struct {
	gateway ports.AuthGateway
	logger  *zap.Logger
}

func NewAuthService(gateway ports.AuthGateway, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		gateway: gateway,
		logger:  logger.Named("auth"),
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	if err := s.gateway.Login(ctx, username, password); err != nil {
		return fmt.Errorf("failed to log in as %s: %w", username, err)
	}

	s.logger.Info("logged in", zap.String("username", username))
	return nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.gateway.Logout(ctx); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}
