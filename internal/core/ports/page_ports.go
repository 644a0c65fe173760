package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

// Page is the client-side state of one rendered thread. It lives until the
// page is left or evicted.
type Page struct {
	ID      uuid.UUID
	Thread  domain.Thread
	Widgets map[string]domain.VoteWidget
}

type PageStore interface {
	Create(thread domain.Thread) (*Page, error)
	Get(id uuid.UUID) (*Page, error)
	Widget(id uuid.UUID, key string) (domain.VoteWidget, error)
	// Update runs fn on the current widget value and stores the result.
	Update(id uuid.UUID, key string, fn func(domain.VoteWidget) domain.VoteWidget) (domain.VoteWidget, error)
	Replace(id uuid.UUID, thread domain.Thread) (*Page, error)
	Delete(id uuid.UUID) error
}

type VoteOutcome struct {
	Widget domain.VoteWidget
	Delta  domain.ScoreDelta
}

type PageService interface {
	Open(ctx context.Context, threadID string) (*Page, error)
	Vote(ctx context.Context, pageID uuid.UUID, key string, direction domain.Direction) (*VoteOutcome, error)
	Comment(ctx context.Context, pageID uuid.UUID, input CommentInput) (*Page, string, error)
	Close(pageID uuid.UUID) error
}
