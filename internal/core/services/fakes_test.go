package services

import (
	"context"
	"sync"
	"time"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

type fakeGateway struct {
	mu       sync.Mutex
	requests []ports.VoteRequest
	result   *ports.VoteResult
	err      error
	// release, when set, blocks CastVote until a value is received
	release chan *ports.VoteResult

	thread   *domain.Thread
	posted   []ports.CommentInput
	msg      string
	fetchErr error
	postErr  error
	fetches  int
}

func (g *fakeGateway) CastVote(ctx context.Context, req ports.VoteRequest) (*ports.VoteResult, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	release := g.release
	result, err := g.result, g.err
	g.mu.Unlock()

	if release != nil {
		select {
		case r := <-release:
			return r, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return result, err
}

func (g *fakeGateway) PostComment(ctx context.Context, input ports.CommentInput) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.postErr != nil {
		return "", g.postErr
	}
	g.posted = append(g.posted, input)
	return g.msg, nil
}

func (g *fakeGateway) FetchThread(ctx context.Context, threadID string) (*domain.Thread, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetches++
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	th := *g.thread
	return &th, nil
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

func ok(delta int) *ports.VoteResult {
	return &ports.VoteResult{Delta: domain.ScoreDelta(delta)}
}

func strPtr(s string) *string { return &s }
