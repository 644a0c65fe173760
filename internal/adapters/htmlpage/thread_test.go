package htmlpage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

const threadPage = `<!DOCTYPE html>
<html><body>
<div class="media submission" data-submission-id="42">
  <div class="vote" data-what-id="42" data-what-type="submission">
    <div><i class="fa fa-chevron-up upvoted" title="upvote"></i></div>
    <a class="score">17</a>
    <div><i class="fa fa-chevron-down" title="downvote"></i></div>
  </div>
  <h3 class="submission-title">Problem 3 discussion</h3>
  <p class="submission-content">Post your solutions here.</p>
</div>
<div class="media comment" data-comment-id="7" data-parent-id="">
  <div class="vote" data-what-id="7">
    <div><i class="fa fa-chevron-up" title="upvote"></i></div>
    <a class="score"> -2 </a>
    <div><i class="fa fa-chevron-down downvoted" title="downvote"></i></div>
  </div>
  <div class="media-body">
    <span class="comment-author">ana</span>
    <p class="comment-content">Induction on n works.</p>
    <div class="media comment" data-comment-id="8" data-parent-id="7">
      <div class="vote" data-what-id="8">
        <div><i class="fa fa-chevron-up" title="upvote"></i></div>
        <a class="score">0</a>
        <div><i class="fa fa-chevron-down" title="downvote"></i></div>
      </div>
      <span class="comment-author">bo</span>
      <p class="comment-content">Agreed.</p>
    </div>
  </div>
</div>
</body></html>`

func TestParseThread(t *testing.T) {
	thread, err := ParseThread(strings.NewReader(threadPage))
	require.NoError(t, err)

	assert.Equal(t, "42", thread.ID)
	assert.Equal(t, "Problem 3 discussion", thread.Title)
	assert.Equal(t, "Post your solutions here.", thread.Content)
	assert.Equal(t, domain.VoteWidget{
		TargetID:   "42",
		TargetType: domain.TargetSubmission,
		State:      domain.VoteState{Upvoted: true},
		Score:      17,
	}, thread.Widget)

	require.Len(t, thread.Comments, 2)

	first := thread.Comments[0]
	assert.Equal(t, "7", first.ID)
	assert.Equal(t, "ana", first.Author)
	assert.Equal(t, "Induction on n works.", first.Content)
	assert.Equal(t, domain.TargetComment, first.Widget.TargetType)
	assert.Equal(t, domain.StateDownvoted, first.Widget.State.Kind())
	assert.Equal(t, -2, first.Widget.Score)

	reply := thread.Comments[1]
	assert.Equal(t, "8", reply.ID)
	assert.Equal(t, "7", reply.ParentID)
	assert.Equal(t, "8", reply.Widget.TargetID)
	assert.Equal(t, domain.StateNone, reply.Widget.State.Kind())
}

func TestParseThreadErrors(t *testing.T) {
	_, err := ParseThread(strings.NewReader(`<html><body><p>login required</p></body></html>`))
	assert.ErrorIs(t, err, ErrNoSubmission)

	both := `<div class="submission" data-submission-id="1">
	  <div class="vote" data-what-id="1">
	    <i class="fa fa-chevron-up upvoted"></i><a class="score">1</a><i class="fa fa-chevron-down downvoted"></i>
	  </div></div>`
	_, err = ParseThread(strings.NewReader(both))
	assert.ErrorIs(t, err, domain.ErrInconsistentWidget)

	badScore := `<div class="submission" data-submission-id="1">
	  <div class="vote" data-what-id="1"><a class="score">many</a></div></div>`
	_, err = ParseThread(strings.NewReader(badScore))
	assert.Error(t, err)
}

func TestParseWidget(t *testing.T) {
	w, err := ParseWidget(strings.NewReader(`<div class="vote" data-what-id="9" data-what-type="comment">
	  <i class="fa fa-chevron-up upvoted"></i><a class="score">4</a><i class="fa fa-chevron-down"></i></div>`))
	require.NoError(t, err)
	assert.Equal(t, "comment:9", w.Key())
	assert.True(t, w.State.Upvoted)
	assert.Equal(t, 4, w.Score)

	_, err = ParseWidget(strings.NewReader(`<p>nothing</p>`))
	assert.ErrorIs(t, err, domain.ErrWidgetNotFound)
}
