package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType 目标类型
type GoalType string

const (
	GoalSavings     GoalType = "SAVINGS"
	GoalDebtPayment GoalType = "DEBT_PAYMENT"
	GoalInvestment  GoalType = "INVESTMENT"
)

// GoalPriority 目标优先级
type GoalPriority string

const (
	PriorityLow    GoalPriority = "LOW"
	PriorityMedium GoalPriority = "MEDIUM"
	PriorityHigh   GoalPriority = "HIGH"
)

// GoalStatus 目标状态
type GoalStatus string

const (
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalAchieved   GoalStatus = "ACHIEVED"
	GoalFailed     GoalStatus = "FAILED"
)

// Goal 理财目标
type Goal struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"user_id" gorm:"index;not null"`
	Name          string          `json:"name" gorm:"size:100;not null"`
	Description   string          `json:"description" gorm:"size:100"`
	TargetAmount  decimal.Decimal `json:"target_amount" gorm:"type:decimal(15,2);not null"`
	CurrentAmount decimal.Decimal `json:"current_amount" gorm:"type:decimal(15,2);not null;default:0"`
	Deadline      *time.Time      `json:"deadline" gorm:"type:date"`
	GoalType      GoalType        `json:"goal_type" gorm:"size:20;not null"`
	Priority      GoalPriority    `json:"priority" gorm:"size:20;not null;default:MEDIUM"`
	Status        GoalStatus      `json:"status" gorm:"size:20;not null;default:IN_PROGRESS;index"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName 设置表名
func (Goal) TableName() string {
	return "goals"
}

// Reached 当前金额是否已达到目标金额
func (g *Goal) Reached() bool {
	return g.TargetAmount.IsPositive() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Progress 完成百分比，目标金额为 0 时返回 0
func (g *Goal) Progress() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

func (t GoalType) Valid() bool {
	switch t {
	case GoalSavings, GoalDebtPayment, GoalInvestment:
		return true
	}
	return false
}

func (p GoalPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
