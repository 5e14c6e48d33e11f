package models

import (
	"time"
)

// PostViewHistory is an append-only sample of a post's metrics, written by the
// background view refresh worker.
type PostViewHistory struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PostId    string    `gorm:"column:post_id;size:36;not null;index" json:"post_id"`
	Views     int64     `gorm:"column:views;default:0" json:"views"`
	Likes     int64     `gorm:"column:likes;default:0" json:"likes"`
	Comments  int64     `gorm:"column:comments;default:0" json:"comments"`
	Shares    int64     `gorm:"column:shares;default:0" json:"shares"`
	CheckedAt time.Time `gorm:"column:checked_at;autoCreateTime" json:"checked_at"`
}

func (PostViewHistory) TableName() string {
	return "post_view_history"
}
