package integration

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/forumvote/internal/adapters/htmlpage"
	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

func TestCommentRefetchKeepsVotes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	backend := setupBackend(t)
	app := setupTestApp(t, backend, "ana", "secret")
	page, _ := app.Open(t, "42")

	status, _ := app.Vote(t, page, domain.TargetSubmission, "42", "up")
	require.Equal(t, http.StatusOK, status)

	resp, err := app.Client.PostForm(app.Server.URL+"/pages/"+page+"/comments", url.Values{
		"parentType":     {"comment"},
		"parentId":       {"420"},
		"commentContent": {"Solved it with Vieta jumping"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Your comment has been posted.")
	assert.Contains(t, string(body), `data-page-id="`+page+`"`)

	thread, err := htmlpage.ParseThread(strings.NewReader(string(body)))
	require.NoError(t, err)
	assert.Equal(t, domain.StateUpvoted, thread.Widget.State.Kind())
	assert.Equal(t, 6, thread.Widget.Score)
	require.Len(t, thread.Comments, 3)

	added := thread.Comments[2]
	assert.Equal(t, "ana", added.Author)
	assert.Equal(t, "420", added.ParentID)

	// the fresh comment has a widget on the same page
	status, w := app.Vote(t, page, domain.TargetComment, added.ID, "down")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.StateNone, w.State.Kind())
}

func TestEmptyCommentNeverReachesBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	backend := setupBackend(t)
	app := setupTestApp(t, backend, "ana", "secret")
	page, _ := app.Open(t, "42")

	resp, err := app.Client.PostForm(app.Server.URL+"/pages/"+page+"/comments", url.Values{
		"parentType":     {"submission"},
		"parentId":       {"42"},
		"commentContent": {"\n  "},
	})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, backend.Comments("42"), 2)
}
