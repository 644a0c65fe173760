package render

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/forumvote/internal/adapters/htmlpage"
	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

func TestWidgetAttributes(t *testing.T) {
	tests := []struct {
		state    domain.VoteState
		contains []string
		missing  []string
	}{
		{
			state:    domain.VoteState{},
			contains: []string{`data-vote-state="none"`, `class="fa fa-chevron-up"`, `class="fa fa-chevron-down"`},
			missing:  []string{"upvoted\"", "downvoted\""},
		},
		{
			state:    domain.VoteState{Upvoted: true},
			contains: []string{`data-vote-state="upvoted"`, `class="fa fa-chevron-up upvoted"`, `class="fa fa-chevron-down"`},
		},
		{
			state:    domain.VoteState{Downvoted: true},
			contains: []string{`data-vote-state="downvoted"`, `class="fa fa-chevron-up"`, `class="fa fa-chevron-down downvoted"`},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.state.Kind()), func(t *testing.T) {
			var buf bytes.Buffer
			err := Widget(&buf, WidgetView{Widget: domain.VoteWidget{
				TargetID: "5", TargetType: domain.TargetComment, State: tt.state, Score: 12,
			}})
			require.NoError(t, err)

			out := buf.String()
			assert.Contains(t, out, `<a class="score">12</a>`)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, out, s)
			}
			assert.NotContains(t, out, "data-vote-error")
		})
	}
}

func TestWidgetError(t *testing.T) {
	var buf bytes.Buffer
	err := Widget(&buf, WidgetView{
		Widget: domain.VoteWidget{TargetID: "5", TargetType: domain.TargetComment},
		Error:  `can't vote <twice>`,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `data-vote-error="can&#39;t vote &lt;twice&gt;"`)
}

func TestThreadRoundTrip(t *testing.T) {
	thread := domain.Thread{
		ID:      "3",
		Title:   "Geometry",
		Content: "Angles & circles",
		Widget:  domain.VoteWidget{TargetID: "3", TargetType: domain.TargetSubmission, Score: 9, State: domain.VoteState{Downvoted: true}},
		Comments: []domain.Comment{
			{ID: "1", Author: "ana", Content: "first", Widget: domain.VoteWidget{TargetID: "1", TargetType: domain.TargetComment, Score: 2, State: domain.VoteState{Upvoted: true}}},
			{ID: "2", ParentID: "1", Author: "bo", Content: "second", Widget: domain.VoteWidget{TargetID: "2", TargetType: domain.TargetComment, Score: -1}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, ThreadView{PageID: uuid.New(), Thread: thread}))

	parsed, err := htmlpage.ParseThread(&buf)
	require.NoError(t, err)
	assert.Equal(t, thread.ID, parsed.ID)
	assert.Equal(t, thread.Title, parsed.Title)
	assert.Equal(t, thread.Content, parsed.Content)
	assert.Equal(t, thread.Widgets(), parsed.Widgets())
	assert.Equal(t, "1", parsed.Comments[1].ParentID)
}
