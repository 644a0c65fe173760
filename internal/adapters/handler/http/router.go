package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewHandler(logger *zap.Logger, pageHandler *PageHandler, voteHandler *VoteHandler, commentHandler *CommentHandler, sessionHandler *SessionHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Get("/threads/{id}", pageHandler.OpenThread)

	r.Route("/pages/{page}", func(r chi.Router) {
		r.Delete("/", pageHandler.ClosePage)
		r.Post("/widgets/{type}/{id}/votes", voteHandler.Vote)
		r.Post("/comments", commentHandler.Submit)
	})

	r.Route("/session", func(r chi.Router) {
		r.Post("/", sessionHandler.Login)
		r.Delete("/", sessionHandler.Logout)
	})

	return r
}
