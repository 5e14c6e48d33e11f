package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"clipaja/internal/middleware"
	"clipaja/internal/services"
	"clipaja/pkg/common"
)

type ContestHandler struct {
	Contests *services.ContestService
	Storage  *services.StorageService
}

func NewContestHandler(contests *services.ContestService, storage *services.StorageService) *ContestHandler {
	return &ContestHandler{Contests: contests, Storage: storage}
}

func (h *ContestHandler) Create(c *gin.Context) {
	var dto services.CreateContestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Invalid request", err.Error()))
		return
	}

	resp := h.Contests.Create(middleware.UserID(c), dto)
	c.JSON(resp.Code, resp)
}

func (h *ContestHandler) List(c *gin.Context) {
	dto := services.ListContestsDTO{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Page:   common.ParseInt(c.Query("page"), 1),
		Limit:  common.ParseInt(c.Query("limit"), 20),
	}
	if c.Query("mine") == "true" {
		dto.UserId = middleware.UserID(c)
	}

	resp := h.Contests.List(dto)
	c.JSON(resp.Code, resp)
}

func (h *ContestHandler) Get(c *gin.Context) {
	resp := h.Contests.Get(c.Param("id"))
	c.JSON(resp.Code, resp)
}

func (h *ContestHandler) Update(c *gin.Context) {
	var dto services.UpdateContestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Invalid request", err.Error()))
		return
	}

	resp := h.Contests.Update(c.Param("id"), middleware.UserID(c), dto)
	c.JSON(resp.Code, resp)
}

func (h *ContestHandler) Delete(c *gin.Context) {
	resp := h.Contests.Delete(c.Param("id"), middleware.UserID(c))
	c.JSON(resp.Code, resp)
}

type contestActionRequest struct {
	Action string `json:"action" binding:"required"`
}

// Action dispatches the lifecycle verbs: activate, complete, duplicate,
// delete.
func (h *ContestHandler) Action(c *gin.Context) {
	var req contestActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Invalid request", err.Error()))
		return
	}

	contestId := c.Param("id")
	userId := middleware.UserID(c)

	var resp common.Response
	switch req.Action {
	case "activate":
		resp = h.Contests.Activate(contestId, userId)
	case "complete":
		resp = h.Contests.Complete(contestId, userId)
	case "duplicate":
		resp = h.Contests.Duplicate(contestId, userId)
	case "delete":
		resp = h.Contests.Delete(contestId, userId)
	default:
		resp = common.NewErrorResponse(400, "Invalid action",
			"action must be one of 'activate', 'complete', 'duplicate', 'delete'")
	}
	c.JSON(resp.Code, resp)
}

// UploadThumbnail accepts a multipart image and returns its public url.
func (h *ContestHandler) UploadThumbnail(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(503, common.NewErrorResponse(503, "Thumbnail storage is not configured"))
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Missing file upload"))
		return
	}
	defer file.Close()

	if header.Size > 5<<20 {
		c.JSON(400, common.NewErrorResponse(400, "File too large, max 5MB"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(500, common.NewErrorResponse(500, "Failed to read upload"))
		return
	}

	url, err := h.Storage.UploadThumbnail(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		c.JSON(502, common.NewErrorResponse(502, "Failed to store thumbnail"))
		return
	}

	c.JSON(201, common.NewSuccessResponse(201, "Thumbnail uploaded", gin.H{"url": url}))
}
