// Package htmlpage reads the vote widgets and comments out of a
// server-rendered thread page.
package htmlpage

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

var ErrNoSubmission = errors.New("page has no submission")

var (
	submissionXPath = "//*[" + hasClass("submission") + " and @data-submission-id]"
	commentXPath    = "//*[" + hasClass("comment") + " and @data-comment-id]"
	voteXPath       = ".//*[" + hasClass("vote") + " and @data-what-id]"
	upArrowXPath    = ".//i[" + hasClass("fa-chevron-up") + "]"
	downArrowXPath  = ".//i[" + hasClass("fa-chevron-down") + "]"
	scoreXPath      = ".//a[" + hasClass("score") + "]"
)

func hasClass(class string) string {
	return fmt.Sprintf("contains(concat(' ', normalize-space(@class), ' '), ' %s ')", class)
}

// ParseThread builds a thread from the page markup. Every comment's widget is
// the first vote container found inside the comment element, so replies
// nested in a comment must come after the comment's own widget.
func ParseThread(r io.Reader) (*domain.Thread, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse thread page: %w", err)
	}

	sub := htmlquery.FindOne(doc, submissionXPath)
	if sub == nil {
		return nil, ErrNoSubmission
	}

	thread := &domain.Thread{
		ID:      htmlquery.SelectAttr(sub, "data-submission-id"),
		Title:   textOf(sub, ".//*["+hasClass("submission-title")+"]"),
		Content: textOf(sub, ".//*["+hasClass("submission-content")+"]"),
	}

	if node := htmlquery.FindOne(sub, voteXPath); node != nil {
		w, err := parseWidget(node, domain.TargetSubmission)
		if err != nil {
			return nil, fmt.Errorf("submission %s: %w", thread.ID, err)
		}
		thread.Widget = w
	}

	for _, node := range htmlquery.Find(doc, commentXPath) {
		c := domain.Comment{
			ID:       htmlquery.SelectAttr(node, "data-comment-id"),
			ParentID: htmlquery.SelectAttr(node, "data-parent-id"),
			Author:   textOf(node, ".//*["+hasClass("comment-author")+"]"),
			Content:  textOf(node, ".//*["+hasClass("comment-content")+"]"),
		}
		if v := htmlquery.FindOne(node, voteXPath); v != nil {
			w, err := parseWidget(v, domain.TargetComment)
			if err != nil {
				return nil, fmt.Errorf("comment %s: %w", c.ID, err)
			}
			c.Widget = w
		}
		thread.Comments = append(thread.Comments, c)
	}

	return thread, nil
}

// ParseWidget reads a single vote container, e.g. a fragment returned after
// a vote.
func ParseWidget(r io.Reader) (domain.VoteWidget, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return domain.VoteWidget{}, fmt.Errorf("failed to parse widget: %w", err)
	}
	node := htmlquery.FindOne(doc, voteXPath)
	if node == nil {
		return domain.VoteWidget{}, domain.ErrWidgetNotFound
	}
	return parseWidget(node, domain.TargetComment)
}

func parseWidget(node *html.Node, fallback domain.TargetType) (domain.VoteWidget, error) {
	w := domain.VoteWidget{
		TargetID:   htmlquery.SelectAttr(node, "data-what-id"),
		TargetType: fallback,
	}
	if t := htmlquery.SelectAttr(node, "data-what-type"); t != "" {
		w.TargetType = domain.TargetType(t)
	}

	if up := htmlquery.FindOne(node, upArrowXPath); up != nil {
		w.State.Upvoted = classed(up, "upvoted")
	}
	if down := htmlquery.FindOne(node, downArrowXPath); down != nil {
		w.State.Downvoted = classed(down, "downvoted")
	}

	if score := htmlquery.FindOne(node, scoreXPath); score != nil {
		n, err := strconv.Atoi(strings.TrimSpace(htmlquery.InnerText(score)))
		if err != nil {
			return w, fmt.Errorf("invalid score: %w", err)
		}
		w.Score = n
	}

	if err := w.Validate(); err != nil {
		return w, err
	}
	return w, nil
}

func classed(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textOf(n *html.Node, xpath string) string {
	found := htmlquery.FindOne(n, xpath)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(htmlquery.InnerText(found))
}
