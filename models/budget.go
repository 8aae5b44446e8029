package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod 预算周期
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "WEEKLY"
	PeriodMonthly BudgetPeriod = "MONTHLY"
	PeriodYearly  BudgetPeriod = "YEARLY"
)

// Valid 是否为合法预算周期
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget 预算，CategoryID 为空表示针对全部支出
type Budget struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"index;not null"`
	CategoryID *uint           `json:"category_id" gorm:"index"`
	Name       string          `json:"name" gorm:"size:100;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Period     BudgetPeriod    `json:"period" gorm:"size:20;not null;default:MONTHLY"`
	StartDate  time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate    *time.Time      `json:"end_date" gorm:"type:date"`
	Rollover   bool            `json:"rollover" gorm:"not null;default:false"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// TableName 设置表名
func (Budget) TableName() string {
	return "budgets"
}

// ActiveOn 预算在指定日期是否生效：start_date <= day 且 end_date 为空或 >= day
func (b *Budget) ActiveOn(day time.Time) bool {
	d := DateOf(day)
	if DateOf(b.StartDate).After(d) {
		return false
	}
	return b.EndDate == nil || !DateOf(*b.EndDate).Before(d)
}
