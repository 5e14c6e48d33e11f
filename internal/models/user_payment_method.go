package models

import (
	"time"
)

const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodEwallet      = "ewallet"
)

// UserPaymentMethod is a clipper's saved disbursement destination. One row per
// (user, type); saving again replaces the details in place.
type UserPaymentMethod struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserId        string    `gorm:"column:user_id;size:36;not null;uniqueIndex:idx_upm_user_type" json:"user_id"`
	Type          string    `gorm:"column:type;size:20;not null;uniqueIndex:idx_upm_user_type" json:"type"`
	Provider      string    `gorm:"column:provider;size:50;not null" json:"provider"`
	AccountName   string    `gorm:"column:account_name;size:100;not null" json:"account_name"`
	AccountNumber string    `gorm:"column:account_number;size:50;not null" json:"account_number"`
	IsDefault     bool      `gorm:"column:is_default;default:false" json:"is_default"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserPaymentMethod) TableName() string {
	return "user_payment_methods"
}
