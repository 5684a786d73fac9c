package handlers

import (
	"net/http"

	"talentdesk/internal/http/response"
	"talentdesk/internal/pipeline"
)

type NotificationHandler struct {
	feed *pipeline.Feed
}

func NewNotificationHandler(feed *pipeline.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.feed.List())
}
