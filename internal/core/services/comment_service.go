package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

type commentService struct {
	gateway ports.CommentGateway
	logger  *zap.Logger
}

func NewCommentService(gateway ports.CommentGateway, logger *zap.Logger) ports.CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &commentService{
		gateway: gateway,
		logger:  logger.Named("comments"),
	}
}

// Submit posts the comment and re-fetches the thread it belongs to, so the
// caller can render the new state without navigating away.
func (s *commentService) Submit(ctx context.Context, input ports.CommentInput) (*domain.Thread, string, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, "", domain.ErrEmptyComment
	}
	if _, err := domain.ParseTargetType(string(input.ParentType)); err != nil {
		return nil, "", err
	}
	if _, err := strconv.ParseUint(input.ParentID, 10, 64); err != nil {
		return nil, "", fmt.Errorf("%w: %q", domain.ErrInvalidTargetID, input.ParentID)
	}
	if input.ThreadID == "" {
		return nil, "", fmt.Errorf("%w: missing thread id", domain.ErrInvalidTargetID)
	}

	msg, err := s.gateway.PostComment(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to post comment: %w", err)
	}
	s.logger.Info("comment posted",
		zap.String("thread", input.ThreadID),
		zap.String("parent", string(input.ParentType)+":"+input.ParentID),
		zap.String("msg", msg),
	)

	thread, err := s.gateway.FetchThread(ctx, input.ThreadID)
	if err != nil {
		return nil, msg, fmt.Errorf("failed to refresh thread: %w", err)
	}

	return thread, msg, nil
}
