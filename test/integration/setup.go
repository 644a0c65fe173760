package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vncsmyrnk/forumvote/internal/adapters/forum"
	"github.com/vncsmyrnk/forumvote/internal/adapters/forum/forumtest"
	handler "github.com/vncsmyrnk/forumvote/internal/adapters/handler/http"
	"github.com/vncsmyrnk/forumvote/internal/adapters/htmlpage"
	"github.com/vncsmyrnk/forumvote/internal/adapters/memory"
	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/services"
)

// TestApp is one UI server logged in to the forum as a single user.
type TestApp struct {
	Backend *forumtest.Server
	Forum   *forum.Client
	Server  *httptest.Server
	Client  *http.Client
	Store   *memory.PageStore
}

func setupBackend(t *testing.T) *forumtest.Server {
	t.Helper()

	backend := forumtest.NewServer(t)
	backend.AddUser("ana", "secret")
	backend.AddUser("bo", "hunter2")
	backend.AddThread(domain.Thread{
		ID:      "42",
		Title:   "Olympiad prep",
		Content: "Post your favourite problems.",
		Widget:  domain.VoteWidget{Score: 5},
		Comments: []domain.Comment{
			{ID: "420", Author: "bo", Content: "Try IMO 1988/6", Widget: domain.VoteWidget{Score: 3}},
			{ID: "421", Author: "ana", Content: "Seen it", Widget: domain.VoteWidget{Score: 1}},
		},
	}, "bo")
	return backend
}

func setupTestApp(t *testing.T, backend *forumtest.Server, username, password string) *TestApp {
	t.Helper()
	logger := zaptest.NewLogger(t)

	client, err := forum.NewClient(backend.URL, forum.WithHTTPClient(&http.Client{}), forum.WithLogger(logger))
	require.NoError(t, err)

	authSvc := services.NewAuthService(client, logger)
	require.NoError(t, authSvc.Login(context.Background(), username, password))

	store := memory.NewPageStore(16)
	voteSvc := services.NewVoteService(client, logger)
	commentSvc := services.NewCommentService(client, logger)
	pageSvc := services.NewPageService(client, voteSvc, commentSvc, store, logger)

	router := handler.NewHandler(logger,
		handler.NewPageHandler(pageSvc, logger),
		handler.NewVoteHandler(pageSvc, logger),
		handler.NewCommentHandler(pageSvc, logger),
		handler.NewSessionHandler(authSvc, logger),
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestApp{
		Backend: backend,
		Forum:   client,
		Server:  server,
		Client:  server.Client(),
		Store:   store,
	}
}

// Open loads the thread page and returns its page id and parsed content.
func (app *TestApp) Open(t *testing.T, threadID string) (string, *domain.Thread) {
	t.Helper()

	resp, err := app.Client.Get(app.Server.URL + "/threads/" + threadID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	doc, err := htmlquery.Parse(strings.NewReader(string(body)))
	require.NoError(t, err)
	node := htmlquery.FindOne(doc, "//*[@data-page-id]")
	require.NotNil(t, node)

	thread, err := htmlpage.ParseThread(strings.NewReader(string(body)))
	require.NoError(t, err)

	return htmlquery.SelectAttr(node, "data-page-id"), thread
}

// Vote clicks an arrow and returns the status and the re-rendered widget.
func (app *TestApp) Vote(t *testing.T, page string, targetType domain.TargetType, id string, direction string) (int, domain.VoteWidget) {
	t.Helper()

	resp, err := app.Client.PostForm(app.Server.URL+"/pages/"+page+"/widgets/"+string(targetType)+"/"+id+"/votes",
		url.Values{"direction": {direction}})
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusConflict {
		return resp.StatusCode, domain.VoteWidget{}
	}

	w, err := htmlpage.ParseWidget(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, w
}
