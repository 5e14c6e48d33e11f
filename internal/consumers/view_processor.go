package consumers

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clipaja/internal/models"
	"clipaja/internal/services"
)

// ViewProcessor refreshes a post's TikTok metrics in the background. It
// records a history sample and updates the live counters, but never touches
// calculated_amount: payouts are priced at submission time.
type ViewProcessor struct {
	DB      *gorm.DB
	Fetcher services.VideoFetcher
}

func NewViewProcessor(db *gorm.DB, fetcher services.VideoFetcher) *ViewProcessor {
	return &ViewProcessor{DB: db, Fetcher: fetcher}
}

type RefreshViewsDTO struct {
	PostId string `json:"postId"`
}

func (p *ViewProcessor) ProcessViewRefresh(dto RefreshViewsDTO) {
	var post models.Post
	if err := p.DB.Where("id = ?", dto.PostId).First(&post).Error; err != nil {
		log.Printf("view refresh: post %s not found", dto.PostId)
		return
	}
	if post.Status == models.PostRejected || post.Status == models.PostRemoved {
		return
	}
	if post.VideoId == "" {
		return
	}

	var account models.SocialAccount
	if err := p.DB.Where("id = ?", post.AccountId).First(&account).Error; err != nil {
		log.Printf("view refresh: account %s not found for post %s", post.AccountId, post.ID)
		return
	}

	info, err := p.Fetcher.FetchVideoInfo(account.AccessToken, post.VideoId)
	if err != nil {
		log.Printf("view refresh: fetch failed for post %s: %v", post.ID, err)
		return
	}

	history := models.PostViewHistory{
		ID:       uuid.NewString(),
		PostId:   post.ID,
		Views:    info.ViewCount,
		Likes:    info.LikeCount,
		Comments: info.Comments,
		Shares:   info.Shares,
	}
	if err := p.DB.Create(&history).Error; err != nil {
		log.Printf("view refresh: failed to record history for post %s: %v", post.ID, err)
	}

	now := time.Now()
	err = p.DB.Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"views":           info.ViewCount,
		"likes":           info.LikeCount,
		"comments":        info.Comments,
		"shares":          info.Shares,
		"last_view_check": &now,
	}).Error
	if err != nil {
		log.Printf("view refresh: failed to update post %s: %v", post.ID, err)
	}
}
