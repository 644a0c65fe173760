package main

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/forumvote/internal/adapters/forum"
	"github.com/vncsmyrnk/forumvote/internal/adapters/forum/forumtest"
	"github.com/vncsmyrnk/forumvote/internal/adapters/memory"
	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/services"
)

func newCLI(t *testing.T, username, password string) (*cli, *bytes.Buffer, *forumtest.Server) {
	t.Helper()

	srv := forumtest.NewServer(t)
	srv.AddUser("ana", "secret")
	srv.AddThread(domain.Thread{
		ID:     "3",
		Title:  "Pigeonhole",
		Widget: domain.VoteWidget{Score: 7},
		Comments: []domain.Comment{
			{ID: "30", Author: "bo", Content: "nice", Widget: domain.VoteWidget{Score: 1}},
		},
	}, "bo")

	client, err := forum.NewClient(srv.URL, forum.WithHTTPClient(&http.Client{}))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	votes := services.NewVoteService(client, nil)
	comments := services.NewCommentService(client, nil)
	return &cli{
		auth:     services.NewAuthService(client, nil),
		pages:    services.NewPageService(client, votes, comments, memory.NewPageStore(4), nil),
		out:      out,
		username: username,
		password: password,
	}, out, srv
}

func TestCLIThread(t *testing.T) {
	app, out, _ := newCLI(t, "ana", "secret")

	require.NoError(t, app.run(context.Background(), []string{"thread", "3"}))
	assert.Equal(t, "# Pigeonhole\nsubmission:3 none 7\ncomment:30 none 1\n", out.String())
}

func TestCLIVote(t *testing.T) {
	app, out, srv := newCLI(t, "ana", "secret")

	require.NoError(t, app.run(context.Background(), []string{"vote", "3", "comment", "30", "down"}))
	assert.Equal(t, "comment:30 downvoted 0\n", out.String())
	assert.Equal(t, 0, srv.Score("comment:30"))
}

func TestCLIComment(t *testing.T) {
	app, out, srv := newCLI(t, "ana", "secret")

	require.NoError(t, app.run(context.Background(), []string{"comment", "3", "submission", "3", "so", "true"}))
	assert.Contains(t, out.String(), "Your comment has been posted.\n")
	comments := srv.Comments("3")
	require.Len(t, comments, 2)
	assert.Equal(t, "so true", comments[1].Content)
}

func TestCLIErrors(t *testing.T) {
	app, _, _ := newCLI(t, "ana", "secret")
	ctx := context.Background()

	assert.ErrorIs(t, app.run(ctx, nil), errUsage)
	assert.ErrorIs(t, app.run(ctx, []string{"thread"}), errUsage)
	assert.ErrorIs(t, app.run(ctx, []string{"dance"}), errUsage)
	assert.ErrorIs(t, app.run(ctx, []string{"vote", "3", "comment", "30", "left"}), domain.ErrInvalidDirection)

	anon, _, _ := newCLI(t, "", "")
	assert.ErrorIs(t, anon.run(ctx, []string{"thread", "3"}), domain.ErrUnauthorized)

	wrong, _, _ := newCLI(t, "ana", "nope")
	assert.ErrorIs(t, wrong.run(ctx, []string{"thread", "3"}), domain.ErrInvalidCredentials)
}
