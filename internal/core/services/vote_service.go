package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

type voteService struct {
	gateway ports.VoteGateway
	logger  *zap.Logger
}

func NewVoteService(gateway ports.VoteGateway, logger *zap.Logger) ports.VoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &voteService{
		gateway: gateway,
		logger:  logger.Named("votes"),
	}
}

func (s *voteService) Cast(ctx context.Context, widget domain.VoteWidget, direction domain.Direction) (*domain.Confirmation, error) {
	intent, err := direction.Intent()
	if err != nil {
		return nil, err
	}
	if err := widget.Validate(); err != nil {
		return nil, err
	}

	result, err := s.gateway.CastVote(ctx, ports.VoteRequest{
		TargetID:   widget.TargetID,
		TargetType: widget.TargetType,
		Intent:     intent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	if result.Error != nil {
		s.logger.Info("vote rejected",
			zap.String("widget", widget.Key()),
			zap.String("reason", *result.Error),
		)
		return nil, &domain.RejectedError{Message: *result.Error}
	}

	recorded := intent
	if result.RecordedIntent != nil {
		if !result.RecordedIntent.Valid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrInvalidIntent, *result.RecordedIntent)
		}
		recorded = *result.RecordedIntent
	}

	s.logger.Debug("vote confirmed",
		zap.String("widget", widget.Key()),
		zap.Int("intent", int(recorded)),
		zap.Int("delta", int(result.Delta)),
	)

	return &domain.Confirmation{Intent: recorded, Delta: result.Delta}, nil
}

func (s *voteService) ApplyVote(ctx context.Context, widget domain.VoteWidget, direction domain.Direction) (domain.VoteWidget, domain.ScoreDelta, error) {
	confirmation, err := s.Cast(ctx, widget, direction)
	if err != nil {
		return widget, 0, err
	}
	return confirmation.Apply(widget), confirmation.Delta, nil
}
