package services

import (
	"errors"
	"log"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clipaja/internal/models"
	"clipaja/pkg/common"
)

var (
	errPostNotFound = errors.New("post not found")
	errOverBudget   = errors.New("contest payout budget exhausted")
)

type PostService struct {
	DB      *gorm.DB
	Fetcher VideoFetcher

	// ReviewGate is "skip" (submissions go straight to published) or
	// "manual" (owner must approve before a post becomes claimable).
	ReviewGate string
}

func NewPostService(db *gorm.DB, fetcher VideoFetcher) *PostService {
	gate := os.Getenv("POST_REVIEW_GATE")
	if gate != "manual" {
		gate = "skip"
	}
	return &PostService{DB: db, Fetcher: fetcher, ReviewGate: gate}
}

type SubmitPostDTO struct {
	ContestId string `json:"contestId" binding:"required"`
	AccountId string `json:"accountId" binding:"required"`
	Url       string `json:"url" binding:"required"`
}

type ReviewPostDTO struct {
	PostId string `json:"postId" binding:"required"`
	Action string `json:"action" binding:"required"`
	Reason string `json:"rejectionReason"`
}

// MyPostRow is a clipper's submission joined with its contest's terms.
type MyPostRow struct {
	models.Post
	ContestTitle      string               `json:"contest_title"`
	ContestPayPerView float64              `json:"contest_pay_per_view"`
	ContestStatus     models.ContestStatus `json:"contest_status"`
}

// CalculatePostAmount prices a submission: floor((views / 1000) * payPerView),
// in whole rupiah.
func CalculatePostAmount(views int64, payPerView float64) float64 {
	return math.Floor(float64(views) / 1000.0 * payPerView)
}

// Submit validates a TikTok link against an active contest, fetches the
// video's current metrics with the clipper's own OAuth token, and freezes the
// payout amount at the view count seen now.
func (s *PostService) Submit(userId string, dto SubmitPostDTO) common.Response {
	if !IsTikTokURL(dto.Url) {
		return common.NewErrorResponse(400, "Only TikTok URLs are accepted")
	}
	videoId := ExtractVideoID(dto.Url)
	if videoId == "" {
		return common.NewErrorResponse(400, "Could not extract video id from URL, use the full video link")
	}

	var contest models.Contest
	if err := s.DB.Where("id = ?", dto.ContestId).First(&contest).Error; err != nil {
		return common.NewErrorResponse(404, "Contest not found")
	}
	if contest.Status != models.ContestActive {
		return common.NewErrorResponse(400, "Contest is not accepting submissions")
	}
	if contest.SubmissionDeadline != nil && time.Now().After(*contest.SubmissionDeadline) {
		return common.NewErrorResponse(400, "Submission deadline has passed")
	}

	var existing models.Post
	err := s.DB.Where("contest_id = ? AND url = ?", dto.ContestId, dto.Url).First(&existing).Error
	if err == nil {
		return common.NewErrorResponse(409, "This video was already submitted to this contest")
	}

	// The referenced account must be the submitter's own linked account.
	var account models.SocialAccount
	if err := s.DB.Where("id = ? AND user_id = ?", dto.AccountId, userId).First(&account).Error; err != nil {
		return common.NewErrorResponse(404, "Social account not found")
	}
	if account.Platform != "tiktok" {
		return common.NewErrorResponse(400, "Only TikTok accounts can submit to this contest")
	}

	info, err := s.Fetcher.FetchVideoInfo(account.AccessToken, videoId)
	if err != nil {
		log.Printf("video fetch failed for %s: %v", videoId, err)
		return common.NewErrorResponse(502, "Unable to fetch video metrics from TikTok")
	}

	amount := CalculatePostAmount(info.ViewCount, contest.PayPerView)

	status := models.PostPublished
	if s.ReviewGate == "manual" {
		status = models.PostSubmitted
	}

	now := time.Now()
	post := models.Post{
		ID:               uuid.NewString(),
		ContestId:        dto.ContestId,
		UserId:           userId,
		AccountId:        account.ID,
		Url:              dto.Url,
		VideoId:          videoId,
		Title:            info.Title,
		Views:            info.ViewCount,
		Likes:            info.LikeCount,
		Comments:         info.Comments,
		Shares:           info.Shares,
		CalculatedAmount: amount,
		Status:           status,
		ClaimStatus:      models.ClaimPending,
		LastViewCheck:    &now,
	}
	if status == models.PostPublished {
		post.PublishedAt = &now
	}

	if err := s.DB.Create(&post).Error; err != nil {
		// The unique index catches races the pre-check above missed.
		return common.NewErrorResponse(409, "This video was already submitted to this contest")
	}

	return common.NewSuccessResponse(201, "Post submitted", post)
}

// ListMine returns the clipper's submissions with contest terms joined in.
func (s *PostService) ListMine(userId string) common.Response {
	var rows []MyPostRow
	err := s.DB.Model(&models.Post{}).
		Select("posts.*, contests.title AS contest_title, contests.pay_per_view AS contest_pay_per_view, contests.status AS contest_status").
		Joins("INNER JOIN contests ON contests.id = posts.contest_id").
		Where("posts.user_id = ?", userId).
		Order("posts.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return common.NewErrorResponse(500, "Failed to fetch posts")
	}

	return common.NewSuccessResponse(200, "Posts fetched", rows)
}

// ListForReview returns a contest's reviewable posts to its owner, along with
// how much budget is still unclaimed.
func (s *PostService) ListForReview(contestId, userId string) common.Response {
	var contest models.Contest
	if err := s.DB.Where("id = ?", contestId).First(&contest).Error; err != nil {
		return common.NewErrorResponse(404, "Contest not found")
	}
	if contest.UserId != userId {
		return common.NewErrorResponse(403, "You do not own this contest")
	}

	var posts []models.Post
	err := s.DB.Where("contest_id = ? AND status IN (?)", contestId,
		models.ReviewablePostStatuses).
		Order("created_at ASC").Find(&posts).Error
	if err != nil {
		return common.NewErrorResponse(500, "Failed to fetch posts")
	}

	return common.NewSuccessResponse(200, "Posts fetched", map[string]interface{}{
		"posts":           posts,
		"remainingPayout": contest.RemainingPayout(),
	})
}

// Review approves or rejects a reviewable post. Approval reserves the post's
// calculated amount against the contest budget with a guarded atomic
// increment, so two concurrent approvals can never overspend max_payout.
func (s *PostService) Review(userId string, dto ReviewPostDTO) common.Response {
	if dto.Action != "approve" && dto.Action != "reject" {
		return common.NewErrorResponse(400, "Invalid action", "action must be either 'approve' or 'reject'")
	}

	var post models.Post
	if err := s.DB.Where("id = ?", dto.PostId).First(&post).Error; err != nil {
		return common.NewErrorResponse(404, "Post not found")
	}

	var contest models.Contest
	if err := s.DB.Where("id = ?", post.ContestId).First(&contest).Error; err != nil {
		return common.NewErrorResponse(404, "Contest not found")
	}
	if contest.UserId != userId {
		return common.NewErrorResponse(403, "You do not own this contest")
	}

	reviewable := false
	for _, st := range models.ReviewablePostStatuses {
		if post.Status == st {
			reviewable = true
			break
		}
	}
	if !reviewable {
		return common.NewErrorResponse(400, "Post has already been reviewed")
	}

	if dto.Action == "reject" {
		reason := dto.Reason
		if reason == "" {
			reason = "No reason provided"
		}
		if err := s.DB.Model(&post).Updates(map[string]interface{}{
			"status":           models.PostRejected,
			"rejection_reason": reason,
		}).Error; err != nil {
			return common.NewErrorResponse(500, "Failed to reject post")
		}
		post.Status = models.PostRejected
		post.RejectionReason = reason
		return common.NewSuccessResponse(200, "Post rejected", post)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Contest{}).
			Where("id = ? AND current_payout + ? <= max_payout", contest.ID, post.CalculatedAmount).
			UpdateColumn("current_payout", gorm.Expr("current_payout + ?", post.CalculatedAmount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errOverBudget
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":      models.PostApproved,
			"approved_at": &now,
		}
		if post.PublishedAt == nil {
			updates["published_at"] = &now
		}
		res = tx.Model(&models.Post{}).
			Where("id = ? AND status IN (?)", post.ID, models.ReviewablePostStatuses).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a race with another reviewer; roll back the reservation.
			return errPostNotFound
		}
		return nil
	})

	switch {
	case err == nil:
		s.DB.Where("id = ?", post.ID).First(&post)
		return common.NewSuccessResponse(200, "Post approved", post)
	case errors.Is(err, errOverBudget):
		return common.NewErrorResponse(400, "Approving this post would exceed the contest's max payout")
	case errors.Is(err, errPostNotFound):
		return common.NewErrorResponse(400, "Post has already been reviewed")
	default:
		log.Printf("approve post %s: %v", post.ID, err)
		return common.NewErrorResponse(500, "Failed to approve post")
	}
}
