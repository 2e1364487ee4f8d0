package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/manjunathhanchinal/BackendAppStore/internal/middleware"
	"github.com/manjunathhanchinal/BackendAppStore/internal/service"
)

// CommentHandler exposes the discussion endpoints.
type CommentHandler struct {
	discussionService *service.DiscussionService
}

func NewCommentHandler(discussionService *service.DiscussionService) *CommentHandler {
	return &CommentHandler{discussionService: discussionService}
}

type AddCommentRequest struct {
	AppID   uint   `json:"appId" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// Create handles POST /api/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.AddComment: invalid input")
		ErrorResponse(c, http.StatusBadRequest, "invalid input: appId and comment required")
		return
	}

	comment, err := h.discussionService.Add(c.Request.Context(), req.AppID, req.Comment, caller)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, gin.H{"message": "comment added", "comment": comment})
}

// ListByApp handles GET /api/comments/:appId.
func (h *CommentHandler) ListByApp(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	appID, err := parseID(c.Param("appId"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid app id")
		return
	}

	views, err := h.discussionService.ListByApp(c.Request.Context(), appID, caller)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, views)
}

// Delete handles DELETE /api/comments/:id (admin only at the routing layer).
func (h *CommentHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.discussionService.DeleteByID(c.Request.Context(), id, caller); err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"message": "comment deleted successfully"})
}
