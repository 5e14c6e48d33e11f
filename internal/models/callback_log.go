package models

import (
	"time"
)

// CallbackLog records every webhook delivery, including rejected ones, for
// reconciliation audits.
type CallbackLog struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderId           string    `gorm:"column:order_id;size:100;index" json:"order_id"`
	TransactionStatus string    `gorm:"column:transaction_status;size:30" json:"transaction_status"`
	StatusCode        string    `gorm:"column:status_code;size:10" json:"status_code"`
	FraudStatus       string    `gorm:"column:fraud_status;size:20" json:"fraud_status"`
	SignatureValid    bool      `gorm:"column:signature_valid" json:"signature_valid"`
	RawPayload        string    `gorm:"column:raw_payload;type:longtext" json:"raw_payload"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CallbackLog) TableName() string {
	return "callback_logs"
}
