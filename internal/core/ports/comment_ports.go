package ports

import (
	"context"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

type CommentInput struct {
	ThreadID   string
	ParentType domain.ParentType
	ParentID   string
	Content    string
}

type CommentGateway interface {
	PostComment(ctx context.Context, input CommentInput) (string, error) // returns the backend message
	FetchThread(ctx context.Context, threadID string) (*domain.Thread, error)
}

type CommentService interface {
	Submit(ctx context.Context, input CommentInput) (*domain.Thread, string, error)
}
