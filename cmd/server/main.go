package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/adapters/forum"
	"github.com/vncsmyrnk/forumvote/internal/adapters/handler/http"
	"github.com/vncsmyrnk/forumvote/internal/adapters/memory"
	"github.com/vncsmyrnk/forumvote/internal/config"
	"github.com/vncsmyrnk/forumvote/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.ParseFlags("server", os.Args[1:])
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

	client, err := forum.NewClient(cfg.ForumBaseURL, forum.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to create forum client", zap.Error(err))
	}

	authService := services.NewAuthService(client, logger)
	if cfg.HasCredentials() {
		if err := authService.Login(ctx, cfg.Username, cfg.Password); err != nil {
			logger.Fatal("failed to log in", zap.Error(err))
		}
	}

	voteService := services.NewVoteService(client, logger)
	commentService := services.NewCommentService(client, logger)
	pageService := services.NewPageService(client, voteService, commentService, memory.NewPageStore(cfg.PageCapacity), logger)

	handler := http.NewHandler(logger,
		http.NewPageHandler(pageService, logger),
		http.NewVoteHandler(pageService, logger),
		http.NewCommentHandler(pageService, logger),
		http.NewSessionHandler(authService, logger),
	)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("forum", cfg.ForumBaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown failed", zap.Error(err))
	}
}
