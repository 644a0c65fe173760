package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/adapters/render"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

type PageHandler struct {
	service ports.PageService
	logger  *zap.Logger
}

func NewPageHandler(service ports.PageService, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{
		service: service,
		logger:  logger,
	}
}

// OpenThread starts a fresh page for the thread. Reloading the thread opens
// another page; the previous one is left to expire.
func (h *PageHandler) OpenThread(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing thread id", http.StatusBadRequest)
		return
	}

	page, err := h.service.Open(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Page(w, render.ThreadView{PageID: page.ID, Thread: page.Thread.WithWidgets(page.Widgets)}); err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
	}
}

func (h *PageHandler) ClosePage(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pageParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Close(pageID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pageParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pageID, err := uuid.Parse(chi.URLParam(r, "page"))
	if err != nil {
		http.Error(w, "invalid page id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return pageID, true
}
