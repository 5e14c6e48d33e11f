package handlers

import (
	"github.com/gin-gonic/gin"

	"clipaja/internal/middleware"
	"clipaja/internal/services"
	"clipaja/pkg/common"
)

type PayoutHandler struct {
	Payouts *services.PayoutService
}

func NewPayoutHandler(payouts *services.PayoutService) *PayoutHandler {
	return &PayoutHandler{Payouts: payouts}
}

func (h *PayoutHandler) Claim(c *gin.Context) {
	var dto services.ClaimPayoutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Invalid request", err.Error()))
		return
	}

	resp := h.Payouts.Claim(middleware.UserID(c), dto)
	c.JSON(resp.Code, resp)
}

func (h *PayoutHandler) ListMine(c *gin.Context) {
	resp := h.Payouts.ListMine(middleware.UserID(c))
	c.JSON(resp.Code, resp)
}
