package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType 账户类型
type AccountType string

const (
	AccountCash       AccountType = "CASH"
	AccountBank       AccountType = "BANK"
	AccountCredit     AccountType = "CREDIT"
	AccountSavings    AccountType = "SAVINGS"
	AccountInvestment AccountType = "INVESTMENT"
)

// Valid 是否为合法账户类型
func (t AccountType) Valid() bool {
	switch t {
	case AccountCash, AccountBank, AccountCredit, AccountSavings, AccountInvestment:
		return true
	}
	return false
}

// Account 资金账户（现金、银行卡、信用卡等）
// Balance 是缓存值，恒等于 OpeningBalance 加上所有未取消交易的带符号金额之和
type Account struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"index;not null"`
	Name           string          `json:"name" gorm:"size:100;not null"`
	AccountType    AccountType     `json:"account_type" gorm:"size:20;not null"`
	OpeningBalance decimal.Decimal `json:"opening_balance" gorm:"type:decimal(15,2);not null;default:0"`
	Balance        decimal.Decimal `json:"balance" gorm:"type:decimal(15,2);not null;default:0"`
	Currency       string          `json:"currency" gorm:"size:3;not null;default:USD"`
	IsDefault      bool            `json:"is_default" gorm:"not null;default:false"`
	Icon           string          `json:"icon" gorm:"size:50"`
	Color          string          `json:"color" gorm:"size:7"`
	IsArchived     bool            `json:"is_archived" gorm:"not null;default:false;index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName 设置表名
func (Account) TableName() string {
	return "accounts"
}
