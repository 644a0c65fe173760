package forum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

const votePath = "/blog/vote/"

type voteResponse struct {
	Error     *string `json:"error"`
	VoteDiff  int     `json:"voteDiff"`
	VoteValue *int    `json:"voteValue,omitempty"`
}

func (c *Client) CastVote(ctx context.Context, req ports.VoteRequest) (*ports.VoteResult, error) {
	form := url.Values{}
	form.Set("what_id", req.TargetID)
	form.Set("vote_value", strconv.Itoa(int(req.Intent)))
	if req.TargetType != "" {
		form.Set("what_type", string(req.TargetType))
	}

	resp, err := c.postForm(ctx, votePath, form)
	if err != nil {
		return nil, fmt.Errorf("vote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var body voteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode vote response: %w", err)
	}

	c.logger.Debug("vote answered",
		zap.String("what_id", req.TargetID),
		zap.Int("vote_value", int(req.Intent)),
		zap.Int("vote_diff", body.VoteDiff),
	)

	result := &ports.VoteResult{
		Error: body.Error,
		Delta: domain.ScoreDelta(body.VoteDiff),
	}
	if body.VoteValue != nil {
		intent := domain.Intent(*body.VoteValue)
		result.RecordedIntent = &intent
	}
	return result, nil
}
