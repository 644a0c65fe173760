package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/forumvote/internal/adapters/forum"
	"github.com/vncsmyrnk/forumvote/internal/adapters/memory"
	"github.com/vncsmyrnk/forumvote/internal/config"
	"github.com/vncsmyrnk/forumvote/internal/core/services"
)

const usage = `usage: forumvote [flags] <command>

commands:
  thread <thread-id>
  vote <thread-id> <submission|comment> <target-id> <up|down>
  comment <thread-id> <submission|comment> <parent-id> <text>
`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.ParseFlags("forumvote", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	client, err := forum.NewClient(cfg.ForumBaseURL, forum.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	store := memory.NewPageStore(cfg.PageCapacity)
	votes := services.NewVoteService(client, logger)
	comments := services.NewCommentService(client, logger)
	app := &cli{
		auth:     services.NewAuthService(client, logger),
		pages:    services.NewPageService(client, votes, comments, store, logger),
		out:      os.Stdout,
		username: cfg.Username,
		password: cfg.Password,
	}

	if err := app.run(ctx, cfg.Args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
