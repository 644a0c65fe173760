package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/adapters/render"
	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

type CommentHandler struct {
	service ports.PageService
	logger  *zap.Logger
}

func NewCommentHandler(service ports.PageService, logger *zap.Logger) *CommentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentHandler{
		service: service,
		logger:  logger,
	}
}

// Submit posts a comment and answers with the re-fetched thread fragment,
// so the caller swaps it in instead of reloading.
func (h *CommentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pageParam(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	input := ports.CommentInput{
		ParentType: domain.ParentType(r.FormValue("parentType")),
		ParentID:   r.FormValue("parentId"),
		Content:    r.FormValue("commentContent"),
	}

	page, msg, err := h.service.Comment(r.Context(), pageID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view := render.ThreadView{PageID: page.ID, Thread: page.Thread.WithWidgets(page.Widgets), Message: msg}
	if err := render.Thread(w, view); err != nil {
		h.logger.Error("failed to render thread", zap.Error(err))
	}
}
