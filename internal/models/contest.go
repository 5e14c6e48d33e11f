package models

import (
	"time"
)

type ContestStatus string

const (
	ContestDraft     ContestStatus = "draft"
	ContestActive    ContestStatus = "active"
	ContestPaused    ContestStatus = "paused"
	ContestCompleted ContestStatus = "completed"
	ContestCancelled ContestStatus = "cancelled"
)

type ContestType string

const (
	ContestTypeClip        ContestType = "clip"
	ContestTypeUGC         ContestType = "ugc"
	ContestTypeSoftSelling ContestType = "softSelling"
)

// Contest is a funded challenge paying per 1000 views. Status transitions are
// owned by ContestService, except draft->active which only the webhook
// reconciliation path performs.
type Contest struct {
	ID                 string        `gorm:"primaryKey;size:36" json:"id"`
	UserId             string        `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	Title              string        `gorm:"column:title;size:255;not null" json:"title"`
	Description        string        `gorm:"column:description;type:text" json:"description"`
	Type               ContestType   `gorm:"column:type;size:20;not null" json:"type"`
	Status             ContestStatus `gorm:"column:status;size:20;default:draft;index" json:"status"`
	Link               string        `gorm:"column:link;size:500" json:"link"`
	ThumbnailUrl       string        `gorm:"column:thumbnail_url;size:500" json:"thumbnail_url"`
	PayPerView         float64       `gorm:"column:pay_per_view;type:decimal(10,4);not null" json:"pay_per_view"`
	MaxPayout          float64       `gorm:"column:max_payout;type:decimal(10,2);not null" json:"max_payout"`
	CurrentPayout      float64       `gorm:"column:current_payout;type:decimal(10,2);default:0.00" json:"current_payout"`
	MinViews           int           `gorm:"column:min_views;default:100" json:"min_views"`
	SubmissionDeadline *time.Time    `gorm:"column:submission_deadline" json:"submission_deadline"`
	Requirements       string        `gorm:"column:requirements;type:text" json:"requirements"`
	TargetPlatforms    string        `gorm:"column:target_platforms;size:255" json:"target_platforms"`
	CreatedAt          time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Contest) TableName() string {
	return "contests"
}

// RemainingPayout is the budget still unclaimed by approved posts.
func (c Contest) RemainingPayout() float64 {
	return c.MaxPayout - c.CurrentPayout
}
