package service

import (
	"path/filepath"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB 临时目录下的 sqlite 数据库，测试结束自动关闭
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "fintrack_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func fixedClock(day time.Time) func() time.Time {
	return func() time.Time { return day.Add(10 * time.Hour) }
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

// newTestLedger 带用户的账本，时钟固定在 today
func newTestLedger(t *testing.T, db *gorm.DB, userID uint, today time.Time) *LedgerService {
	t.Helper()
	ledger := NewLedgerService(db).WithClock(fixedClock(today))
	_, err := ledger.EnsureUser(userID, "user")
	require.NoError(t, err)
	return ledger
}

func mustAccount(t *testing.T, ledger *LedgerService, userID uint, name, opening string) *models.Account {
	t.Helper()
	account := &models.Account{
		Name:           name,
		AccountType:    models.AccountBank,
		OpeningBalance: dec(opening),
	}
	require.NoError(t, ledger.CreateAccount(userID, account))
	return account
}

func mustCategory(t *testing.T, ledger *LedgerService, userID uint, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, ledger.CreateCategory(userID, category))
	return category
}

func mustTransaction(t *testing.T, ledger *LedgerService, userID uint, tx *models.Transaction) *models.Transaction {
	t.Helper()
	require.NoError(t, ledger.CreateTransaction(userID, tx))
	return tx
}

func balanceOf(t *testing.T, ledger *LedgerService, userID, accountID uint) string {
	t.Helper()
	account, err := ledger.GetAccount(userID, accountID)
	require.NoError(t, err)
	return account.Balance.StringFixed(2)
}

// requireConsistent 缓存余额必须等于按流水重算的余额
func requireConsistent(t *testing.T, ledger *LedgerService, userID, accountID uint) {
	t.Helper()
	result, err := ledger.ReconcileAccount(userID, accountID)
	require.NoError(t, err)
	require.True(t, result.Drift.IsZero(), "账户 %d 余额漂移 %s", accountID, result.Drift)
}
