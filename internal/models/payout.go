package models

import (
	"time"
)

type PayoutStatus string

const (
	PayoutRequested  PayoutStatus = "requested"
	PayoutProcessing PayoutStatus = "processing"
	PayoutCompleted  PayoutStatus = "completed"
	PayoutFailed     PayoutStatus = "failed"
)

// Payout is a clipper's claim over one approved post's calculated amount,
// disbursed to a saved payment method.
type Payout struct {
	ID              string       `gorm:"primaryKey;size:36" json:"id"`
	UserId          string       `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	PostId          string       `gorm:"column:post_id;size:36;not null;uniqueIndex" json:"post_id"`
	PaymentMethodId string       `gorm:"column:payment_method_id;size:36;not null" json:"payment_method_id"`
	Amount          float64      `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Reference       string       `gorm:"column:reference;size:100;uniqueIndex" json:"reference"`
	Status          PayoutStatus `gorm:"column:status;size:20;default:requested;index" json:"status"`
	FailureReason   string       `gorm:"column:failure_reason;size:500" json:"failure_reason"`
	ProcessedAt     *time.Time   `gorm:"column:processed_at" json:"processed_at"`
	CreatedAt       time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Payout) TableName() string {
	return "payouts"
}
