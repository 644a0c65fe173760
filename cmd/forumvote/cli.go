package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

var errUsage = errors.New("usage")

type cli struct {
	auth     ports.AuthService
	pages    ports.PageService
	out      io.Writer
	username string
	password string
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	if c.username != "" {
		if err := c.auth.Login(ctx, c.username, c.password); err != nil {
			return err
		}
	}

	switch args[0] {
	case "thread":
		if len(args) != 2 {
			return errUsage
		}
		return c.thread(ctx, args[1])
	case "vote":
		if len(args) != 5 {
			return errUsage
		}
		return c.vote(ctx, args[1], args[2], args[3], args[4])
	case "comment":
		if len(args) < 5 {
			return errUsage
		}
		return c.comment(ctx, args[1], args[2], args[3], strings.Join(args[4:], " "))
	default:
		return errUsage
	}
}

func (c *cli) thread(ctx context.Context, threadID string) error {
	page, err := c.pages.Open(ctx, threadID)
	if err != nil {
		return err
	}
	defer c.pages.Close(page.ID)

	c.printPage(page)
	return nil
}

func (c *cli) vote(ctx context.Context, threadID, targetType, targetID, direction string) error {
	tt, err := domain.ParseTargetType(targetType)
	if err != nil {
		return err
	}
	dir, err := domain.ParseDirection(direction)
	if err != nil {
		return err
	}

	page, err := c.pages.Open(ctx, threadID)
	if err != nil {
		return err
	}
	defer c.pages.Close(page.ID)

	outcome, err := c.pages.Vote(ctx, page.ID, domain.WidgetKey(tt, targetID), dir)
	if outcome != nil {
		c.printWidget(outcome.Widget)
	}
	return err
}

func (c *cli) comment(ctx context.Context, threadID, parentType, parentID, text string) error {
	page, err := c.pages.Open(ctx, threadID)
	if err != nil {
		return err
	}
	defer c.pages.Close(page.ID)

	page, msg, err := c.pages.Comment(ctx, page.ID, ports.CommentInput{
		ParentType: domain.ParentType(parentType),
		ParentID:   parentID,
		Content:    text,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, msg)
	c.printPage(page)
	return nil
}

func (c *cli) printPage(page *ports.Page) {
	thread := page.Thread.WithWidgets(page.Widgets)
	fmt.Fprintf(c.out, "# %s\n", thread.Title)
	c.printWidget(thread.Widget)
	for _, cm := range thread.Comments {
		c.printWidget(cm.Widget)
	}
}

func (c *cli) printWidget(w domain.VoteWidget) {
	fmt.Fprintf(c.out, "%s %s %d\n", w.Key(), w.State.Kind(), w.Score)
}
