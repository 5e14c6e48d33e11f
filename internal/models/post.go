package models

import (
	"time"
)

type PostStatus string

const (
	PostSubmitted PostStatus = "submitted"
	PostReviewing PostStatus = "reviewing"
	PostPublished PostStatus = "published"
	PostApproved  PostStatus = "approved"
	PostRejected  PostStatus = "rejected"
	PostRemoved   PostStatus = "removed"
)

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// ReviewablePostStatuses are the pre-publish and published states an owner
// may still approve or reject.
var ReviewablePostStatuses = []PostStatus{PostSubmitted, PostReviewing, PostPublished}

// Post is a clipper's TikTok submission to a contest. CalculatedAmount is
// frozen at submission time from the view count then; the background view
// refresh never re-prices it.
type Post struct {
	ID               string      `gorm:"primaryKey;size:36" json:"id"`
	ContestId        string      `gorm:"column:contest_id;size:36;not null;uniqueIndex:idx_posts_contest_url" json:"contest_id"`
	UserId           string      `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	AccountId        string      `gorm:"column:account_id;size:36;not null;index" json:"account_id"`
	Url              string      `gorm:"column:url;size:500;not null;uniqueIndex:idx_posts_contest_url,length:191" json:"url"`
	VideoId          string      `gorm:"column:video_id;size:50" json:"video_id"`
	Title            string      `gorm:"column:title;size:255" json:"title"`
	Views            int64       `gorm:"column:views;default:0" json:"views"`
	Likes            int64       `gorm:"column:likes;default:0" json:"likes"`
	Comments         int64       `gorm:"column:comments;default:0" json:"comments"`
	Shares           int64       `gorm:"column:shares;default:0" json:"shares"`
	CalculatedAmount float64     `gorm:"column:calculated_amount;type:decimal(10,2);default:0.00" json:"calculated_amount"`
	PaidAmount       float64     `gorm:"column:paid_amount;type:decimal(10,2);default:0.00" json:"paid_amount"`
	Status           PostStatus  `gorm:"column:status;size:20;not null;index" json:"status"`
	ClaimStatus      ClaimStatus `gorm:"column:claim_status;size:20;default:pending" json:"claim_status"`
	RejectionReason  string      `gorm:"column:rejection_reason;size:500" json:"rejection_reason"`
	PublishedAt      *time.Time  `gorm:"column:published_at" json:"published_at"`
	ApprovedAt       *time.Time  `gorm:"column:approved_at" json:"approved_at"`
	LastViewCheck    *time.Time  `gorm:"column:last_view_check" json:"last_view_check"`
	CreatedAt        time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
