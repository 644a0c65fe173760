package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/forumvote/internal/adapters/render"
	"github.com/vncsmyrnk/forumvote/internal/core/domain"
	"github.com/vncsmyrnk/forumvote/internal/core/ports"
)

type VoteHandler struct {
	service ports.PageService
	logger  *zap.Logger
}

func NewVoteHandler(service ports.PageService, logger *zap.Logger) *VoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VoteHandler{
		service: service,
		logger:  logger,
	}
}

// Vote casts an up or down vote from a widget of an open page and answers
// with the widget fragment as it stands afterwards.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pageParam(w, r)
	if !ok {
		return
	}

	targetType, err := domain.ParseTargetType(chi.URLParam(r, "type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	direction, err := domain.ParseDirection(r.FormValue("direction"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := domain.WidgetKey(targetType, chi.URLParam(r, "id"))
	outcome, err := h.service.Vote(r.Context(), pageID, key, direction)

	var rejected *domain.RejectedError
	if errors.As(err, &rejected) && outcome != nil {
		h.writeWidget(w, http.StatusConflict, render.WidgetView{Widget: outcome.Widget, Error: rejected.Message})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeWidget(w, http.StatusOK, render.WidgetView{Widget: outcome.Widget})
}

func (h *VoteHandler) writeWidget(w http.ResponseWriter, status int, view render.WidgetView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := render.Widget(w, view); err != nil {
		h.logger.Error("failed to render widget", zap.Error(err))
	}
}
