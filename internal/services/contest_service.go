package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clipaja/internal/models"
	"clipaja/pkg/common"
)

const platformFeeRate = 0.05

var (
	errContestNotFound = errors.New("contest not found")
	errNotOwner        = errors.New("not contest owner")
	errNotDraft        = errors.New("contest is not in draft status")
	errNotActive       = errors.New("contest is not active")
	errGateway         = errors.New("payment gateway error")
)

type ContestService struct {
	DB      *gorm.DB
	Gateway SnapGateway
}

func NewContestService(db *gorm.DB, gateway SnapGateway) *ContestService {
	return &ContestService{DB: db, Gateway: gateway}
}

type CreateContestDTO struct {
	Title              string     `json:"title" binding:"required"`
	Description        string     `json:"description"`
	Type               string     `json:"type" binding:"required"`
	Link               string     `json:"link"`
	ThumbnailUrl       string     `json:"thumbnailUrl"`
	PayPerView         float64    `json:"payPerView" binding:"required,gt=0"`
	MaxPayout          float64    `json:"maxPayout" binding:"required,gt=0"`
	MinViews           int        `json:"minViews"`
	SubmissionDeadline *time.Time `json:"submissionDeadline"`
	Requirements       string     `json:"requirements"`
	TargetPlatforms    string     `json:"targetPlatforms"`
}

type UpdateContestDTO struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	Link               *string    `json:"link"`
	ThumbnailUrl       *string    `json:"thumbnailUrl"`
	PayPerView         *float64   `json:"payPerView"`
	MaxPayout          *float64   `json:"maxPayout"`
	MinViews           *int       `json:"minViews"`
	SubmissionDeadline *time.Time `json:"submissionDeadline"`
	Requirements       *string    `json:"requirements"`
	TargetPlatforms    *string    `json:"targetPlatforms"`
}

type ListContestsDTO struct {
	Status string
	Type   string
	UserId string
	Page   int
	Limit  int
}

// ActivationResult is returned by Activate. Reused is true when a pending
// checkout younger than 24h was returned instead of a new gateway session.
type ActivationResult struct {
	OrderId     string  `json:"orderId"`
	SnapToken   string  `json:"snapToken"`
	PaymentUrl  string  `json:"paymentUrl"`
	GrossAmount float64 `json:"grossAmount"`
	PlatformFee float64 `json:"platformFee"`
	Reused      bool    `json:"reused"`
}

// PlatformFee is charged on top of the payout pool, rounded to whole rupiah.
func PlatformFee(maxPayout float64) float64 {
	return math.Round(maxPayout * platformFeeRate)
}

func (s *ContestService) Create(userId string, dto CreateContestDTO) common.Response {
	switch models.ContestType(dto.Type) {
	case models.ContestTypeClip, models.ContestTypeUGC, models.ContestTypeSoftSelling:
	default:
		return common.NewErrorResponse(400, "Invalid contest type")
	}

	contest := models.Contest{
		ID:                 uuid.NewString(),
		UserId:             userId,
		Title:              dto.Title,
		Description:        dto.Description,
		Type:               models.ContestType(dto.Type),
		Status:             models.ContestDraft,
		Link:               dto.Link,
		ThumbnailUrl:       dto.ThumbnailUrl,
		PayPerView:         dto.PayPerView,
		MaxPayout:          dto.MaxPayout,
		MinViews:           dto.MinViews,
		SubmissionDeadline: dto.SubmissionDeadline,
		Requirements:       dto.Requirements,
		TargetPlatforms:    dto.TargetPlatforms,
	}
	if contest.MinViews <= 0 {
		contest.MinViews = 100
	}

	if err := s.DB.Create(&contest).Error; err != nil {
		log.Printf("failed to create contest: %v", err)
		return common.NewErrorResponse(500, "Failed to create contest")
	}

	return common.NewSuccessResponse(201, "Contest created", contest)
}

func (s *ContestService) List(dto ListContestsDTO) common.Response {
	if dto.Page < 1 {
		dto.Page = 1
	}
	if dto.Limit < 1 || dto.Limit > 100 {
		dto.Limit = 20
	}

	query := s.DB.Model(&models.Contest{})
	if dto.Status != "" {
		query = query.Where("status = ?", dto.Status)
	}
	if dto.Type != "" {
		query = query.Where("type = ?", dto.Type)
	}
	if dto.UserId != "" {
		query = query.Where("user_id = ?", dto.UserId)
	}

	var total int64
	query.Count(&total)

	var contests []models.Contest
	offset := (dto.Page - 1) * dto.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(dto.Limit).Find(&contests).Error; err != nil {
		return common.NewErrorResponse(500, "Failed to fetch contests")
	}

	return common.NewSuccessResponse(200, "Contests fetched",
		common.PaginateResponse(contests, total, dto.Page, dto.Limit))
}

func (s *ContestService) Get(contestId string) common.Response {
	var contest models.Contest
	if err := s.DB.Where("id = ?", contestId).First(&contest).Error; err != nil {
		return common.NewErrorResponse(404, "Contest not found")
	}
	return common.NewSuccessResponse(200, "Contest fetched", contest)
}

// Update edits contest metadata. Payout economics (payPerView, maxPayout) are
// frozen once the contest leaves draft; funding was priced against them.
func (s *ContestService) Update(contestId, userId string, dto UpdateContestDTO) common.Response {
	var contest models.Contest
	if err := s.DB.Where("id = ?", contestId).First(&contest).Error; err != nil {
		return common.NewErrorResponse(404, "Contest not found")
	}
	if contest.UserId != userId {
		return common.NewErrorResponse(403, "You do not own this contest")
	}

	if contest.Status != models.ContestDraft && (dto.PayPerView != nil || dto.MaxPayout != nil) {
		return common.NewErrorResponse(400, "Payout terms can only be changed while the contest is a draft")
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Link != nil {
		updates["link"] = *dto.Link
	}
	if dto.ThumbnailUrl != nil {
		updates["thumbnail_url"] = *dto.ThumbnailUrl
	}
	if dto.PayPerView != nil {
		updates["pay_per_view"] = *dto.PayPerView
	}
	if dto.MaxPayout != nil {
		updates["max_payout"] = *dto.MaxPayout
	}
	if dto.MinViews != nil {
		updates["min_views"] = *dto.MinViews
	}
	if dto.SubmissionDeadline != nil {
		updates["submission_deadline"] = *dto.SubmissionDeadline
	}
	if dto.Requirements != nil {
		updates["requirements"] = *dto.Requirements
	}
	if dto.TargetPlatforms != nil {
		updates["target_platforms"] = *dto.TargetPlatforms
	}

	if len(updates) == 0 {
		return common.NewSuccessResponse(200, "Nothing to update", contest)
	}

	if err := s.DB.Model(&contest).Updates(updates).Error; err != nil {
		return common.NewErrorResponse(500, "Failed to update contest")
	}

	s.DB.Where("id = ?", contestId).First(&contest)
	return common.NewSuccessResponse(200, "Contest updated", contest)
}

// Activate opens a funding checkout for a draft contest. The contest row is
// locked for the duration so concurrent activations serialize: the second
// caller finds the pending transaction the first one created and gets the
// same order id and snap token back. The contest stays in draft until the
// webhook confirms settlement.
func (s *ContestService) Activate(contestId, userId string) common.Response {
	var result ActivationResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var contest models.Contest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", contestId).First(&contest).Error; err != nil {
			return errContestNotFound
		}
		if contest.UserId != userId {
			return errNotOwner
		}
		if contest.Status != models.ContestDraft {
			return errNotDraft
		}

		fee := PlatformFee(contest.MaxPayout)
		gross := contest.MaxPayout + fee

		var pending models.ContestTransaction
		cutoff := time.Now().Add(-24 * time.Hour)
		err := tx.Where("contest_id = ? AND status = ? AND snap_token <> '' AND created_at > ?",
			contestId, models.TransactionPending, cutoff).
			Order("created_at DESC").First(&pending).Error
		if err == nil {
			result = ActivationResult{
				OrderId:     pending.OrderId,
				SnapToken:   pending.SnapToken,
				PaymentUrl:  s.Gateway.PaymentURL(pending.SnapToken),
				GrossAmount: pending.GrossAmount,
				PlatformFee: pending.PlatformFee,
				Reused:      true,
			}
			return nil
		}

		orderId := common.GenerateOrderID(contestId)
		snap, err := s.Gateway.CreateTransaction(SnapRequest{
			OrderId:     orderId,
			ContestId:   contestId,
			GrossAmount: gross,
			ItemName:    fmt.Sprintf("Contest funding: %s", contest.Title),
			CustomerId:  userId,
		})
		if err != nil {
			log.Printf("snap transaction failed for contest %s: %v", contestId, err)
			if errors.Is(err, ErrGatewayNotConfigured) {
				return err
			}
			return errGateway
		}

		trx := models.ContestTransaction{
			ID:          uuid.NewString(),
			ContestId:   contestId,
			UserId:      userId,
			GrossAmount: gross,
			NetAmount:   contest.MaxPayout,
			PlatformFee: fee,
			Status:      models.TransactionPending,
			SnapToken:   snap.Token,
			OrderId:     orderId,
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		result = ActivationResult{
			OrderId:     orderId,
			SnapToken:   snap.Token,
			PaymentUrl:  snap.RedirectUrl,
			GrossAmount: gross,
			PlatformFee: fee,
		}
		return nil
	})

	switch {
	case err == nil:
		return common.NewSuccessResponse(200, "Checkout ready", result)
	case errors.Is(err, errContestNotFound):
		return common.NewErrorResponse(404, "Contest not found")
	case errors.Is(err, errNotOwner):
		return common.NewErrorResponse(403, "You do not own this contest")
	case errors.Is(err, errNotDraft):
		return common.NewErrorResponse(400, "Only draft contests can be activated")
	case errors.Is(err, ErrGatewayNotConfigured):
		return common.NewErrorResponse(500, "Payment gateway is not configured")
	case errors.Is(err, errGateway):
		return common.NewErrorResponse(502, "Unable to create payment session")
	default:
		log.Printf("activate contest %s: %v", contestId, err)
		return common.NewErrorResponse(500, "Failed to activate contest")
	}
}

// Complete closes an active contest to new submissions. Approved posts keep
// their claims.
func (s *ContestService) Complete(contestId, userId string) common.Response {
	var contest models.Contest
	if err := s.DB.Where("id = ?", contestId).First(&contest).Error; err != nil {
		return common.NewErrorResponse(404, "Contest not found")
	}
	if contest.UserId != userId {
		return common.NewErrorResponse(403, "You do not own this contest")
	}
	if contest.Status != models.ContestActive {
		return common.NewErrorResponse(400, "Only active contests can be completed")
	}

	if err := s.DB.Model(&contest).Update("status", models.ContestCompleted).Error; err != nil {
		return common.NewErrorResponse(500, "Failed to complete contest")
	}

	contest.Status = models.ContestCompleted
	return common.NewSuccessResponse(200, "Contest completed", contest)
}

// Duplicate copies a contest into a fresh unfunded draft. Payout progress and
// submissions do not carry over.
func (s *ContestService) Duplicate(contestId, userId string) common.Response {
	var contest models.Contest
	if err := s.DB.Where("id = ?", contestId).First(&contest).Error; err != nil {
		return common.NewErrorResponse(404, "Contest not found")
	}
	if contest.UserId != userId {
		return common.NewErrorResponse(403, "You do not own this contest")
	}

	copy := contest
	copy.ID = uuid.NewString()
	copy.Title = contest.Title + " (Copy)"
	copy.Status = models.ContestDraft
	copy.CurrentPayout = 0
	copy.CreatedAt = time.Time{}
	copy.UpdatedAt = time.Time{}

	if err := s.DB.Create(&copy).Error; err != nil {
		return common.NewErrorResponse(500, "Failed to duplicate contest")
	}

	return common.NewSuccessResponse(201, "Contest duplicated", copy)
}

// Delete removes a contest together with its posts, view history and funding
// transactions in one database transaction.
func (s *ContestService) Delete(contestId, userId string) common.Response {
	var contest models.Contest
	if err := s.DB.Where("id = ?", contestId).First(&contest).Error; err != nil {
		return common.NewErrorResponse(404, "Contest not found")
	}
	if contest.UserId != userId {
		return common.NewErrorResponse(403, "You do not own this contest")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id IN (?)",
			tx.Model(&models.Post{}).Select("id").Where("contest_id = ?", contestId),
		).Delete(&models.PostViewHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contest_id = ?", contestId).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contest_id = ?", contestId).Delete(&models.ContestTransaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&contest).Error
	})
	if err != nil {
		log.Printf("delete contest %s: %v", contestId, err)
		return common.NewErrorResponse(500, "Failed to delete contest")
	}

	return common.NewSuccessResponse(200, "Contest deleted", nil)
}
