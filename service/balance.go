package service

import (
	"errors"
	"sort"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceMaintainer 维护账户缓存余额
// 不挂在模型钩子上，由交易写入的工作单元显式调用，与交易写入处于同一个数据库事务
type BalanceMaintainer struct{}

// NewBalanceMaintainer 创建余额维护器
func NewBalanceMaintainer() *BalanceMaintainer {
	return &BalanceMaintainer{}
}

// Apply 先回滚 previous 已产生的影响，再应用 next 的影响，返回受影响账户的最新状态
// 新建交易 previous 为 nil，删除交易 next 为 nil；tx 必须是调用方开启的事务
func (m *BalanceMaintainer) Apply(tx *gorm.DB, userID uint, previous, next *models.Transaction) ([]models.Account, error) {
	deltas := make(map[uint]decimal.Decimal)
	for _, e := range previous.Effects() {
		deltas[e.AccountID] = deltas[e.AccountID].Sub(e.Delta)
	}
	for _, e := range next.Effects() {
		deltas[e.AccountID] = deltas[e.AccountID].Add(e.Delta)
	}

	// 按 ID 顺序加锁，避免并发转账互相等待
	ids := make([]uint, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts := make([]models.Account, 0, len(ids))
	for _, id := range ids {
		var account models.Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&account).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, consistency("账户 %d 不存在，无法更新余额", id)
			}
			return nil, err
		}

		delta := deltas[id]
		if !delta.IsZero() {
			account.Balance = account.Balance.Add(delta)
			if err := tx.Model(&models.Account{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("balance", account.Balance).Error; err != nil {
				return nil, err
			}
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// typeTotal 按交易类型汇总的金额
type typeTotal struct {
	TransactionType string
	Total           decimal.Decimal
}

// sumRow 单列汇总结果
type sumRow struct {
	Total decimal.Decimal
}

// ExpectedBalance 根据流水重新计算账户应有余额：期初余额 + 所有未取消交易的带符号金额
func (m *BalanceMaintainer) ExpectedBalance(tx *gorm.DB, account *models.Account) (decimal.Decimal, error) {
	var outgoing []typeTotal
	if err := tx.Model(&models.Transaction{}).
		Select("transaction_type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND account_id = ? AND status <> ?", account.UserID, account.ID, models.StatusCancelled).
		Group("transaction_type").
		Scan(&outgoing).Error; err != nil {
		return decimal.Zero, err
	}

	var incoming sumRow
	if err := tx.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND transfer_account_id = ? AND transaction_type = ? AND status <> ?",
			account.UserID, account.ID, models.TypeTransfer, models.StatusCancelled).
		Scan(&incoming).Error; err != nil {
		return decimal.Zero, err
	}

	expected := account.OpeningBalance.Add(incoming.Total)
	for _, t := range outgoing {
		switch models.TransactionType(t.TransactionType) {
		case models.TypeIncome:
			expected = expected.Add(t.Total)
		case models.TypeExpense, models.TypeTransfer:
			expected = expected.Sub(t.Total)
		}
	}
	return expected.Round(2), nil
}
