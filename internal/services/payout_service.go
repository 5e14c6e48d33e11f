package services

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clipaja/internal/models"
	"clipaja/pkg/common"
)

var errAlreadyClaimed = errors.New("post already claimed")

type PayoutService struct {
	DB *gorm.DB
}

func NewPayoutService(db *gorm.DB) *PayoutService {
	return &PayoutService{DB: db}
}

type SavePaymentMethodDTO struct {
	Type          string `json:"type" binding:"required"`
	Provider      string `json:"provider" binding:"required"`
	AccountName   string `json:"accountName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
}

type ClaimPayoutDTO struct {
	PostId          string `json:"postId" binding:"required"`
	PaymentMethodId string `json:"paymentMethodId" binding:"required"`
}

// SavePaymentMethod upserts a disbursement destination, one per (user, type).
func (s *PayoutService) SavePaymentMethod(userId string, dto SavePaymentMethodDTO) common.Response {
	if dto.Type != models.PaymentMethodBankTransfer && dto.Type != models.PaymentMethodEwallet {
		return common.NewErrorResponse(400, "Invalid payment method type",
			"type must be either 'bank_transfer' or 'ewallet'")
	}

	var method models.UserPaymentMethod
	err := s.DB.Where("user_id = ? AND type = ?", userId, dto.Type).First(&method).Error
	if err == nil {
		updates := map[string]interface{}{
			"provider":       dto.Provider,
			"account_name":   dto.AccountName,
			"account_number": dto.AccountNumber,
		}
		if err := s.DB.Model(&method).Updates(updates).Error; err != nil {
			return common.NewErrorResponse(500, "Failed to update payment method")
		}
		s.DB.Where("id = ?", method.ID).First(&method)
		return common.NewSuccessResponse(200, "Payment method updated", method)
	}

	method = models.UserPaymentMethod{
		ID:            uuid.NewString(),
		UserId:        userId,
		Type:          dto.Type,
		Provider:      dto.Provider,
		AccountName:   dto.AccountName,
		AccountNumber: dto.AccountNumber,
	}
	if err := s.DB.Create(&method).Error; err != nil {
		log.Printf("failed to save payment method for user %s: %v", userId, err)
		return common.NewErrorResponse(500, "Failed to save payment method")
	}

	return common.NewSuccessResponse(201, "Payment method saved", method)
}

func (s *PayoutService) ListPaymentMethods(userId string) common.Response {
	var methods []models.UserPaymentMethod
	if err := s.DB.Where("user_id = ?", userId).Order("created_at ASC").Find(&methods).Error; err != nil {
		return common.NewErrorResponse(500, "Failed to fetch payment methods")
	}
	return common.NewSuccessResponse(200, "Payment methods fetched", methods)
}

// Claim turns one approved post's calculated amount into a payout request.
// The unique index on payouts.post_id plus the guarded claim_status update
// make double claims impossible even under concurrent requests.
func (s *PayoutService) Claim(userId string, dto ClaimPayoutDTO) common.Response {
	var post models.Post
	if err := s.DB.Where("id = ?", dto.PostId).First(&post).Error; err != nil {
		return common.NewErrorResponse(404, "Post not found")
	}
	if post.UserId != userId {
		return common.NewErrorResponse(403, "You do not own this post")
	}
	if post.Status != models.PostApproved {
		return common.NewErrorResponse(400, "Only approved posts can be claimed")
	}
	if post.ClaimStatus != models.ClaimPending {
		return common.NewErrorResponse(409, "Post has already been claimed")
	}
	if post.CalculatedAmount <= 0 {
		return common.NewErrorResponse(400, "Post has no payable amount")
	}

	var method models.UserPaymentMethod
	if err := s.DB.Where("id = ? AND user_id = ?", dto.PaymentMethodId, userId).First(&method).Error; err != nil {
		return common.NewErrorResponse(404, "Payment method not found")
	}

	payout := models.Payout{
		ID:              uuid.NewString(),
		UserId:          userId,
		PostId:          post.ID,
		PaymentMethodId: method.ID,
		Amount:          post.CalculatedAmount,
		Reference:       common.GeneratePayoutRef(post.ID),
		Status:          models.PayoutRequested,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ? AND claim_status = ?", post.ID, models.ClaimPending).
			Update("claim_status", models.ClaimApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyClaimed
		}
		return tx.Create(&payout).Error
	})

	switch {
	case err == nil:
		return common.NewSuccessResponse(201, "Payout requested", payout)
	case errors.Is(err, errAlreadyClaimed):
		return common.NewErrorResponse(409, "Post has already been claimed")
	default:
		log.Printf("claim payout for post %s: %v", post.ID, err)
		return common.NewErrorResponse(500, "Failed to request payout")
	}
}

func (s *PayoutService) ListMine(userId string) common.Response {
	var payouts []models.Payout
	if err := s.DB.Where("user_id = ?", userId).Order("created_at DESC").Find(&payouts).Error; err != nil {
		return common.NewErrorResponse(500, "Failed to fetch payouts")
	}
	return common.NewSuccessResponse(200, "Payouts fetched", payouts)
}
