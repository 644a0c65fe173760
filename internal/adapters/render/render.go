// Package render maps widget and thread state to HTML. Arrow classes and
// data attributes are derived from the state on every render.
package render

import (
	"html/template"
	"io"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

var funcs = template.FuncMap{
	"upClass": func(s domain.VoteState) string {
		if s.Upvoted {
			return "fa fa-chevron-up upvoted"
		}
		return "fa fa-chevron-up"
	},
	"downClass": func(s domain.VoteState) string {
		if s.Downvoted {
			return "fa fa-chevron-down downvoted"
		}
		return "fa fa-chevron-down"
	},
	"widgetView": func(w domain.VoteWidget) WidgetView {
		return WidgetView{Widget: w}
	},
}

var tmpl = template.Must(template.New("").Funcs(funcs).Parse(`
{{define "widget"}}
<div class="vote" data-what-id="{{.Widget.TargetID}}" data-what-type="{{.Widget.TargetType}}" data-vote-state="{{.Widget.State.Kind}}"{{if .Error}} data-vote-error="{{.Error}}"{{end}}>
  <div><i class="{{upClass .Widget.State}}" title="upvote"></i></div>
  <a class="score">{{.Widget.Score}}</a>
  <div><i class="{{downClass .Widget.State}}" title="downvote"></i></div>
</div>
{{end}}

{{define "thread"}}
<div class="thread" data-page-id="{{.PageID}}">
  {{if .Message}}<p class="text-success">{{.Message}}</p>{{end}}
  <div class="media submission" data-submission-id="{{.Thread.ID}}">
    {{template "widget" (widgetView .Thread.Widget)}}
    <h3 class="submission-title">{{.Thread.Title}}</h3>
    <p class="submission-content">{{.Thread.Content}}</p>
  </div>
  {{range .Thread.Comments}}
  <div class="media comment" data-comment-id="{{.ID}}" data-parent-id="{{.ParentID}}">
    {{template "widget" (widgetView .Widget)}}
    <div class="media-body">
      <span class="comment-author">{{.Author}}</span>
      <p class="comment-content">{{.Content}}</p>
    </div>
  </div>
  {{end}}
</div>
{{end}}

{{define "page"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Thread.Title}}</title></head>
<body>
{{template "thread" .}}
</body>
</html>
{{end}}
`))

type WidgetView struct {
	Widget domain.VoteWidget
	Error  string
}

type ThreadView struct {
	PageID  uuid.UUID
	Thread  domain.Thread
	Message string
}

func Widget(w io.Writer, view WidgetView) error {
	return tmpl.ExecuteTemplate(w, "widget", view)
}

func Thread(w io.Writer, view ThreadView) error {
	return tmpl.ExecuteTemplate(w, "thread", view)
}

func Page(w io.Writer, view ThreadView) error {
	return tmpl.ExecuteTemplate(w, "page", view)
}
