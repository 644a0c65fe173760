package ports

import (
	"context"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

type VoteRequest struct {
	TargetID   string
	TargetType domain.TargetType // optional, left empty for backends that only take an id
	Intent     domain.Intent
}

// VoteResult is the decoded backend reply. Error is nil on success.
// RecordedIntent is set when the backend reports the value it actually
// stored, which may differ from the requested one (zero on self-votes).
type VoteResult struct {
	Error          *string
	Delta          domain.ScoreDelta
	RecordedIntent *domain.Intent
}

type VoteGateway interface {
	CastVote(ctx context.Context, req VoteRequest) (*VoteResult, error)
}

type VoteService interface {
	// Cast sends the vote and returns the confirmation without touching any
	// widget state.
	Cast(ctx context.Context, widget domain.VoteWidget, direction domain.Direction) (*domain.Confirmation, error)
	ApplyVote(ctx context.Context, widget domain.VoteWidget, direction domain.Direction) (domain.VoteWidget, domain.ScoreDelta, error)
}
