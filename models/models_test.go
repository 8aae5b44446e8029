package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestTransaction_Effects(t *testing.T) {
	amount := decimal.RequireFromString("30.50")

	// 支出扣减账户
	expense := &Transaction{AccountID: 1, Amount: amount, TransactionType: TypeExpense, Status: StatusCompleted}
	effects := expense.Effects()
	require.Len(t, effects, 1)
	assert.Equal(t, uint(1), effects[0].AccountID)
	assert.Equal(t, "-30.50", effects[0].Delta.StringFixed(2))

	// 收入增加账户，待处理状态同样生效
	income := &Transaction{AccountID: 1, Amount: amount, TransactionType: TypeIncome, Status: StatusPending}
	effects = income.Effects()
	require.Len(t, effects, 1)
	assert.Equal(t, "30.50", effects[0].Delta.StringFixed(2))

	// 转账：转出账户扣减，转入账户增加
	transfer := &Transaction{AccountID: 1, TransferAccountID: uintPtr(2), Amount: amount, TransactionType: TypeTransfer, Status: StatusCompleted}
	effects = transfer.Effects()
	require.Len(t, effects, 2)
	assert.Equal(t, uint(1), effects[0].AccountID)
	assert.Equal(t, "-30.50", effects[0].Delta.StringFixed(2))
	assert.Equal(t, uint(2), effects[1].AccountID)
	assert.Equal(t, "30.50", effects[1].Delta.StringFixed(2))

	// 已取消的交易不影响余额
	cancelled := &Transaction{AccountID: 1, Amount: amount, TransactionType: TypeExpense, Status: StatusCancelled}
	assert.Empty(t, cancelled.Effects())

	var nilTx *Transaction
	assert.Empty(t, nilTx.Effects())
}

func TestBudget_ActiveOn(t *testing.T) {
	end := NewDate(2024, 3, 31)
	b := &Budget{StartDate: NewDate(2024, 1, 1), EndDate: &end}

	assert.False(t, b.ActiveOn(NewDate(2023, 12, 31)))
	assert.True(t, b.ActiveOn(NewDate(2024, 1, 1)))
	assert.True(t, b.ActiveOn(NewDate(2024, 3, 31)))
	assert.False(t, b.ActiveOn(NewDate(2024, 4, 1)))

	// 无结束日期表示长期有效
	open := &Budget{StartDate: NewDate(2024, 1, 1)}
	assert.True(t, open.ActiveOn(NewDate(2030, 1, 1)))
}

func TestGoal_ReachedAndProgress(t *testing.T) {
	g := &Goal{TargetAmount: decimal.NewFromInt(200), CurrentAmount: decimal.NewFromInt(50)}
	assert.False(t, g.Reached())
	assert.Equal(t, "25.00", g.Progress().StringFixed(2))

	g.CurrentAmount = decimal.NewFromInt(200)
	assert.True(t, g.Reached())

	zero := &Goal{}
	assert.False(t, zero.Reached())
	assert.True(t, zero.Progress().IsZero())
}

func TestDateHelpers(t *testing.T) {
	local := time.Date(2024, 2, 10, 23, 30, 0, 0, time.FixedZone("X", 8*3600))
	assert.Equal(t, NewDate(2024, 2, 10), DateOf(local))

	assert.Equal(t, NewDate(2024, 2, 1), MonthStart(local))
	assert.Equal(t, NewDate(2024, 2, 29), MonthEnd(local))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))

	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, 1, 15), d)
	_, err = ParseDate("2024/01/15")
	assert.Error(t, err)

	r := NewDateRange(NewDate(2024, 1, 1), NewDate(2024, 1, 31))
	assert.True(t, r.Valid())
	assert.True(t, r.Contains(NewDate(2024, 1, 31)))
	assert.False(t, r.Contains(NewDate(2024, 2, 1)))
	assert.False(t, NewDateRange(NewDate(2024, 2, 1), NewDate(2024, 1, 1)).Valid())
}

func TestRecurringTransaction_Ended(t *testing.T) {
	end := NewDate(2024, 6, 30)
	r := &RecurringTransaction{EndDate: &end}
	assert.False(t, r.Ended(NewDate(2024, 6, 30)))
	assert.True(t, r.Ended(NewDate(2024, 7, 1)))

	open := &RecurringTransaction{}
	assert.False(t, open.Ended(NewDate(2099, 1, 1)))
}
