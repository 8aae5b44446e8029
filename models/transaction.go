package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType 交易类型，金额恒为正，方向由类型决定
type TransactionType string

const (
	TypeExpense  TransactionType = "EXPENSE"
	TypeIncome   TransactionType = "INCOME"
	TypeTransfer TransactionType = "TRANSFER"
)

// Valid 是否为合法交易类型
func (t TransactionType) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeTransfer:
		return true
	}
	return false
}

// TransactionStatus 交易状态
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Valid 是否为合法交易状态
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Transaction 交易记录
type Transaction struct {
	ID                uint              `json:"id" gorm:"primaryKey"`
	UserID            uint              `json:"user_id" gorm:"index;not null"`
	AccountID         uint              `json:"account_id" gorm:"index;not null"`
	CategoryID        *uint             `json:"category_id" gorm:"index"`
	TransferAccountID *uint             `json:"transfer_account_id" gorm:"index"` // 转账的入账账户
	Amount            decimal.Decimal   `json:"amount" gorm:"type:decimal(15,2);not null"`
	TransactionType   TransactionType   `json:"transaction_type" gorm:"size:20;not null;index"`
	Description       string            `json:"description" gorm:"size:200"`
	Date              time.Time         `json:"date" gorm:"type:date;not null;index"`
	Status            TransactionStatus `json:"status" gorm:"size:20;not null;default:COMPLETED"`
	Attachments       []string          `json:"attachments" gorm:"serializer:json"`
	Location          map[string]any    `json:"location" gorm:"serializer:json"`
	Tags              []string          `json:"tags" gorm:"serializer:json"`
	IsRecurring       bool              `json:"is_recurring" gorm:"not null;default:false"`
	RecurringID       *uint             `json:"recurring_id" gorm:"index"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Account  *Account  `json:"account,omitempty" gorm:"foreignKey:AccountID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// BalanceEffect 一笔交易对单个账户余额的影响
type BalanceEffect struct {
	AccountID uint
	Delta     decimal.Decimal
}

// Effects 返回交易对账户余额的带符号影响
// 支出扣减账户，收入增加账户，转账从转出账户扣减并记入转入账户；已取消的交易不影响余额
func (t *Transaction) Effects() []BalanceEffect {
	if t == nil || t.Status == StatusCancelled {
		return nil
	}
	switch t.TransactionType {
	case TypeExpense:
		return []BalanceEffect{{AccountID: t.AccountID, Delta: t.Amount.Neg()}}
	case TypeIncome:
		return []BalanceEffect{{AccountID: t.AccountID, Delta: t.Amount}}
	case TypeTransfer:
		if t.TransferAccountID == nil {
			return nil
		}
		return []BalanceEffect{
			{AccountID: t.AccountID, Delta: t.Amount.Neg()},
			{AccountID: *t.TransferAccountID, Delta: t.Amount},
		}
	}
	return nil
}
