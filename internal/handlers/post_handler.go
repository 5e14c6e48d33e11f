package handlers

import (
	"github.com/gin-gonic/gin"

	"clipaja/internal/middleware"
	"clipaja/internal/services"
	"clipaja/pkg/common"
)

type PostHandler struct {
	Posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{Posts: posts}
}

func (h *PostHandler) Submit(c *gin.Context) {
	var dto services.SubmitPostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Invalid request", err.Error()))
		return
	}

	resp := h.Posts.Submit(middleware.UserID(c), dto)
	c.JSON(resp.Code, resp)
}

func (h *PostHandler) ListMine(c *gin.Context) {
	resp := h.Posts.ListMine(middleware.UserID(c))
	c.JSON(resp.Code, resp)
}

// ListForReview lists a contest's pending submissions for its owner.
func (h *PostHandler) ListForReview(c *gin.Context) {
	contestId := c.Query("contestId")
	if contestId == "" {
		c.JSON(400, common.NewErrorResponse(400, "contestId query parameter is required"))
		return
	}

	resp := h.Posts.ListForReview(contestId, middleware.UserID(c))
	c.JSON(resp.Code, resp)
}

func (h *PostHandler) Review(c *gin.Context) {
	var dto services.ReviewPostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Invalid request", err.Error()))
		return
	}

	resp := h.Posts.Review(middleware.UserID(c), dto)
	c.JSON(resp.Code, resp)
}
