package models

import (
	"time"
)

// Transaction statuses mirror the gateway vocabulary. Pending is the only
// status ever written outside the reconciliation path; capture is normalized
// to settlement when the contest is activated.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionSettlement TransactionStatus = "settlement"
	TransactionCapture    TransactionStatus = "capture"
	TransactionCancel     TransactionStatus = "cancel"
	TransactionExpire     TransactionStatus = "expire"
	TransactionFailure    TransactionStatus = "failure"
)

// ContestTransaction is one funding attempt for a contest's activation.
// OrderId is the idempotency key for webhook reconciliation.
type ContestTransaction struct {
	ID            string            `gorm:"primaryKey;size:36" json:"id"`
	ContestId     string            `gorm:"column:contest_id;size:36;not null;index:idx_ctx_contest_user" json:"contest_id"`
	UserId        string            `gorm:"column:user_id;size:36;not null;index:idx_ctx_contest_user" json:"user_id"`
	GrossAmount   float64           `gorm:"column:gross_amount;type:decimal(10,2);not null" json:"gross_amount"`
	NetAmount     float64           `gorm:"column:net_amount;type:decimal(10,2);not null" json:"net_amount"`
	PlatformFee   float64           `gorm:"column:platform_fee;type:decimal(10,2);default:0.00" json:"platform_fee"`
	Status        TransactionStatus `gorm:"column:status;size:20;not null;index" json:"status"`
	SnapToken     string            `gorm:"column:snap_token;size:255" json:"snap_token"`
	OrderId       string            `gorm:"column:order_id;size:100;uniqueIndex" json:"order_id"`
	GatewayTrxId  string            `gorm:"column:gateway_trx_id;size:100" json:"gateway_trx_id"`
	PaymentType   string            `gorm:"column:payment_type;size:50" json:"payment_type"`
	RawResponse   string            `gorm:"column:raw_response;type:longtext" json:"raw_response"`
	SettlementAt  *time.Time        `gorm:"column:settlement_at" json:"settlement_at"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContestTransaction) TableName() string {
	return "contest_transactions"
}
