package handlers

import (
	"github.com/gin-gonic/gin"

	"clipaja/internal/services"
	"clipaja/pkg/common"
)

type PaymentHandler struct {
	Reconcile *services.ReconcileService
	Payouts   *services.PayoutService
	Contests  *services.ContestService
}

func NewPaymentHandler(reconcile *services.ReconcileService, payouts *services.PayoutService, contests *services.ContestService) *PaymentHandler {
	return &PaymentHandler{Reconcile: reconcile, Payouts: payouts, Contests: contests}
}

type checkoutRequest struct {
	ContestId string `json:"contestId" binding:"required"`
}

// Checkout creates (or resumes) the funding checkout for a draft contest.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Invalid request", err.Error()))
		return
	}

	resp := h.Contests.Activate(req.ContestId, c.GetString("userId"))
	c.JSON(resp.Code, resp)
}

// Webhook receives gateway payment notifications. It is unauthenticated; the
// signature inside the payload is the only trust anchor.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var notification services.MidtransNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Invalid notification payload"))
		return
	}

	resp := h.Reconcile.HandleNotification(notification)
	c.JSON(resp.Code, resp)
}

// WebhookPing answers the gateway's endpoint validation pings.
func (h *PaymentHandler) WebhookPing(c *gin.Context) {
	c.JSON(200, common.NewSuccessResponse(200, "Webhook endpoint active", nil))
}

func (h *PaymentHandler) SavePaymentMethod(c *gin.Context) {
	var dto services.SavePaymentMethodDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(400, common.NewErrorResponse(400, "Invalid request", err.Error()))
		return
	}

	resp := h.Payouts.SavePaymentMethod(c.GetString("userId"), dto)
	c.JSON(resp.Code, resp)
}

func (h *PaymentHandler) ListPaymentMethods(c *gin.Context) {
	resp := h.Payouts.ListPaymentMethods(c.GetString("userId"))
	c.JSON(resp.Code, resp)
}
