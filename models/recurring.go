package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency 周期交易频率
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

// RecurringStatus 周期交易状态
type RecurringStatus string

const (
	RecurringActive    RecurringStatus = "ACTIVE"
	RecurringPaused    RecurringStatus = "PAUSED"
	RecurringCancelled RecurringStatus = "CANCELLED"
	RecurringCompleted RecurringStatus = "COMPLETED" // 已过结束日期
)

// RecurringTransaction 周期交易模板，到期后由调度任务生成实际交易
type RecurringTransaction struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	UserID            uint            `json:"user_id" gorm:"index;not null"`
	AccountID         uint            `json:"account_id" gorm:"index;not null"`
	CategoryID        *uint           `json:"category_id" gorm:"index"`
	TransferAccountID *uint           `json:"transfer_account_id"`
	TransactionType   TransactionType `json:"transaction_type" gorm:"size:20;not null;default:EXPENSE"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Description       string          `json:"description" gorm:"size:200;not null"`
	Frequency         Frequency       `json:"frequency" gorm:"size:20;not null"`
	StartDate         time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate           *time.Time      `json:"end_date" gorm:"type:date"`
	LastProcessed     *time.Time      `json:"last_processed" gorm:"type:date"`
	NextDue           time.Time       `json:"next_due" gorm:"type:date;not null;index"`
	Status            RecurringStatus `json:"status" gorm:"size:20;not null;default:ACTIVE;index"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName 设置表名
func (RecurringTransaction) TableName() string {
	return "recurring_transactions"
}

// Ended 给定的到期日是否已超过结束日期
func (r *RecurringTransaction) Ended(due time.Time) bool {
	return r.EndDate != nil && DateOf(due).After(DateOf(*r.EndDate))
}
