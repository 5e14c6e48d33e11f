package services

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"clipaja/internal/models"
	"clipaja/pkg/common"
)

// MidtransNotification is the gateway's webhook payload. Amounts arrive as
// strings ("150000.00").
type MidtransNotification struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	SettlementTime    string `json:"settlement_time"`
}

type ReconcileService struct {
	DB      *gorm.DB
	Gateway SnapGateway
}

func NewReconcileService(db *gorm.DB, gateway SnapGateway) *ReconcileService {
	return &ReconcileService{DB: db, Gateway: gateway}
}

func (s *ReconcileService) logCallback(n MidtransNotification, valid bool) {
	raw, _ := json.Marshal(n)
	entry := models.CallbackLog{
		OrderId:           n.OrderId,
		TransactionStatus: n.TransactionStatus,
		StatusCode:        n.StatusCode,
		FraudStatus:       n.FraudStatus,
		SignatureValid:    valid,
		RawPayload:        string(raw),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("failed to log callback for order %s: %v", n.OrderId, err)
	}
}

// isPaid reports whether the notification represents confirmed money: a
// success status AND a clean fraud verdict. A settlement carrying
// fraud_status=deny or challenge is not money.
func isPaid(n MidtransNotification) bool {
	if n.TransactionStatus != "settlement" && n.TransactionStatus != "capture" {
		return false
	}
	return n.FraudStatus == "accept"
}

// HandleNotification reconciles one webhook delivery. Every delivery is
// logged, including rejected ones. Replays of an already-settled order are
// acknowledged without touching state.
func (s *ReconcileService) HandleNotification(n MidtransNotification) common.Response {
	valid := s.Gateway.VerifySignature(n.OrderId, n.StatusCode, n.GrossAmount, n.SignatureKey)
	s.logCallback(n, valid)

	if !valid {
		log.Printf("invalid webhook signature for order %s", n.OrderId)
		return common.NewErrorResponse(401, "Invalid signature")
	}

	var trx models.ContestTransaction
	if err := s.DB.Where("order_id = ?", n.OrderId).First(&trx).Error; err != nil {
		return common.NewErrorResponse(404, "Transaction not found")
	}

	if trx.Status == models.TransactionSettlement {
		return common.NewSuccessResponse(200, "Transaction already processed", nil)
	}

	raw, _ := json.Marshal(n)

	switch {
	case isPaid(n):
		now := time.Now()
		updates := map[string]interface{}{
			"status":         models.TransactionSettlement,
			"gateway_trx_id": n.TransactionId,
			"payment_type":   n.PaymentType,
			"raw_response":   string(raw),
			"settlement_at":  &now,
		}
		if err := s.DB.Model(&models.ContestTransaction{}).
			Where("order_id = ?", n.OrderId).Updates(updates).Error; err != nil {
			log.Printf("failed to settle transaction %s: %v", n.OrderId, err)
			return common.NewErrorResponse(500, "Failed to update transaction")
		}

		// Conditional update: an already-active contest (second funding
		// attempt settling late) is left alone.
		res := s.DB.Model(&models.Contest{}).
			Where("id = ? AND status = ?", trx.ContestId, models.ContestDraft).
			Update("status", models.ContestActive)
		if res.Error != nil {
			log.Printf("failed to activate contest %s: %v", trx.ContestId, res.Error)
			return common.NewErrorResponse(500, "Failed to activate contest")
		}
		if res.RowsAffected > 0 {
			log.Printf("contest %s activated via order %s", trx.ContestId, n.OrderId)
		}
		return common.NewSuccessResponse(200, "Payment settled", nil)

	case n.TransactionStatus == "pending":
		s.DB.Model(&models.ContestTransaction{}).Where("order_id = ?", n.OrderId).
			Updates(map[string]interface{}{
				"gateway_trx_id": n.TransactionId,
				"payment_type":   n.PaymentType,
				"raw_response":   string(raw),
			})
		return common.NewSuccessResponse(200, "Payment pending", nil)

	case n.TransactionStatus == "cancel" || n.TransactionStatus == "expire" ||
		n.TransactionStatus == "failure" || n.TransactionStatus == "deny":
		status := models.TransactionStatus(n.TransactionStatus)
		if n.TransactionStatus == "deny" {
			status = models.TransactionFailure
		}
		if err := s.DB.Model(&models.ContestTransaction{}).
			Where("order_id = ?", n.OrderId).Updates(map[string]interface{}{
			"status":         status,
			"gateway_trx_id": n.TransactionId,
			"payment_type":   n.PaymentType,
			"raw_response":   string(raw),
		}).Error; err != nil {
			return common.NewErrorResponse(500, "Failed to update transaction")
		}
		return common.NewSuccessResponse(200, "Payment "+n.TransactionStatus, nil)

	default:
		log.Printf("unhandled transaction status %q for order %s", n.TransactionStatus, n.OrderId)
		return common.NewSuccessResponse(200, "Notification received", nil)
	}
}
