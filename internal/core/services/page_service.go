package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

type pageService struct {
	threads  ports.CommentGateway
	votes    ports.VoteService
	comments ports.CommentService
	store    ports.PageStore
	logger   *zap.Logger
}

func NewPageService(threads ports.CommentGateway, votes ports.VoteService, comments ports.CommentService, store ports.PageStore, logger *zap.Logger) ports.PageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pageService{
		threads:  threads,
		votes:    votes,
		comments: comments,
		store:    store,
		logger:   logger.Named("pages"),
	}
}

// Open loads the thread and hydrates a fresh page from its server-rendered
// widget state.
func (s *pageService) Open(ctx context.Context, threadID string) (*ports.Page, error) {
	thread, err := s.threads.FetchThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	page, err := s.store.Create(*thread)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	s.logger.Debug("page opened",
		zap.String("page", page.ID.String()),
		zap.String("thread", threadID),
		zap.Int("widgets", len(page.Widgets)),
	)
	return page, nil
}

// Vote sends the vote for the widget as currently displayed. The transition
// is applied to whatever state the widget has once the backend answers, so
// overlapping votes on one widget are neither serialized nor de-duplicated.
func (s *pageService) Vote(ctx context.Context, pageID uuid.UUID, key string, direction domain.Direction) (*ports.VoteOutcome, error) {
	widget, err := s.store.Widget(pageID, key)
	if err != nil {
		return nil, err
	}

	confirmation, err := s.votes.Cast(ctx, widget, direction)
	if err != nil {
		return &ports.VoteOutcome{Widget: widget}, err
	}

	updated, err := s.store.Update(pageID, key, confirmation.Apply)
	if err != nil {
		return nil, err
	}

	return &ports.VoteOutcome{Widget: updated, Delta: confirmation.Delta}, nil
}

// Comment submits a comment from the page and swaps the page content for the
// re-fetched thread.
func (s *pageService) Comment(ctx context.Context, pageID uuid.UUID, input ports.CommentInput) (*ports.Page, string, error) {
	page, err := s.store.Get(pageID)
	if err != nil {
		return nil, "", err
	}
	input.ThreadID = page.Thread.ID

	thread, msg, err := s.comments.Submit(ctx, input)
	if err != nil {
		return nil, msg, err
	}

	page, err = s.store.Replace(pageID, *thread)
	if err != nil {
		return nil, msg, err
	}
	return page, msg, nil
}

func (s *pageService) Close(pageID uuid.UUID) error {
	return s.store.Delete(pageID)
}
