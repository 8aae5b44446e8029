package service

import (
	"fmt"
	"strings"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountReconciliation 账户对账结果
type AccountReconciliation struct {
	Account  models.Account  `json:"account"`
	Previous decimal.Decimal `json:"previous"`
	Expected decimal.Decimal `json:"expected"`
	Drift    decimal.Decimal `json:"drift"`
}

func validateAccount(a *models.Account) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return invalid("账户名称不能为空")
	}
	if len(a.Name) > 100 {
		return invalid("账户名称过长（最多 100 个字符）")
	}
	if !a.AccountType.Valid() {
		return invalid("无效的账户类型: %s", a.AccountType)
	}
	if a.Currency == "" {
		a.Currency = "USD"
	}
	a.Currency = strings.ToUpper(a.Currency)
	if len(a.Currency) != 3 {
		return invalid("币种必须为 3 位代码")
	}
	return nil
}

// lockAccount 加行锁读取账户，余额写回前必须经过这里
func lockAccount(tx *gorm.DB, userID, id uint) (*models.Account, error) {
	var account models.Account
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&account).Error; err != nil {
		return nil, notFound(err, "账户")
	}
	return &account, nil
}

// clearDefault 取消该用户其他账户的默认标记
func clearDefault(tx *gorm.DB, userID, exceptID uint) error {
	return tx.Model(&models.Account{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, exceptID, true).
		Update("is_default", false).Error
}

// CreateAccount 创建账户，初始余额等于期初余额
func (s *LedgerService) CreateAccount(userID uint, account *models.Account) error {
	if err := validateAccount(account); err != nil {
		return err
	}
	account.ID = 0
	account.UserID = userID
	account.Balance = account.OpeningBalance
	account.IsArchived = false

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("创建账户失败: %w", err)
		}
		if account.IsDefault {
			return clearDefault(tx, userID, account.ID)
		}
		return nil
	})
}

// GetAccount 获取账户
func (s *LedgerService) GetAccount(userID, id uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		return nil, notFound(err, "账户")
	}
	return &account, nil
}

// ListAccounts 列出账户，默认账户在前，其余按名称排序
func (s *LedgerService) ListAccounts(userID uint, includeArchived bool) ([]models.Account, error) {
	query := s.db.Where("user_id = ?", userID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	var list []models.Account
	if err := query.Order("is_default DESC, name ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询账户失败: %w", err)
	}
	return list, nil
}

// UpdateAccount 更新账户基本信息
// 余额不能直接修改；修改期初余额时按差额同步调整缓存余额
func (s *LedgerService) UpdateAccount(userID, id uint, in *models.Account) (*models.Account, error) {
	if err := validateAccount(in); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := lockAccount(tx, userID, id)
		if err != nil {
			return err
		}
		if in.IsDefault && current.IsArchived {
			return invalid("已归档的账户不能设为默认")
		}
		updates := map[string]interface{}{
			"name":            in.Name,
			"account_type":    in.AccountType,
			"currency":        in.Currency,
			"icon":            in.Icon,
			"color":           in.Color,
			"is_default":      in.IsDefault,
			"opening_balance": in.OpeningBalance,
		}
		if diff := in.OpeningBalance.Sub(current.OpeningBalance); !diff.IsZero() {
			updates["balance"] = gorm.Expr("balance + ?", diff)
		}
		if err := tx.Model(current).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新账户失败: %w", err)
		}
		if in.IsDefault {
			return clearDefault(tx, userID, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetAccount(userID, id)
}

// SetDefaultAccount 设为默认账户，同一用户只保留一个默认账户
func (s *LedgerService) SetDefaultAccount(userID, id uint) (*models.Account, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
			return notFound(err, "账户")
		}
		if account.IsArchived {
			return invalid("已归档的账户不能设为默认")
		}
		if err := clearDefault(tx, userID, id); err != nil {
			return err
		}
		return tx.Model(&account).Update("is_default", true).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetAccount(userID, id)
}

// ArchiveAccount 归档账户（软删除），同时取消默认标记
// 引用该账户的进行中周期交易一并暂停，改绑账户后才能恢复
func (s *LedgerService) ArchiveAccount(userID, id uint) (*models.Account, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := lockAccount(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Model(account).Updates(map[string]interface{}{
			"is_archived": true,
			"is_default":  false,
		}).Error; err != nil {
			return fmt.Errorf("归档账户失败: %w", err)
		}
		if err := tx.Model(&models.RecurringTransaction{}).
			Where("user_id = ? AND status = ? AND (account_id = ? OR transfer_account_id = ?)",
				userID, models.RecurringActive, id, id).
			Update("status", models.RecurringPaused).Error; err != nil {
			return fmt.Errorf("暂停周期交易失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetAccount(userID, id)
}

// DeleteAccount 删除账户
// 有交易历史的账户只归档不删除，返回 archived=true；无历史的账户连同其周期交易模板一并删除
func (s *LedgerService) DeleteAccount(userID, id uint) (archived bool, err error) {
	account, err := s.GetAccount(userID, id)
	if err != nil {
		return false, err
	}

	var history int64
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND (account_id = ? OR transfer_account_id = ?)", userID, id, id).
		Count(&history).Error; err != nil {
		return false, fmt.Errorf("查询交易历史失败: %w", err)
	}
	if history > 0 {
		if _, err := s.ArchiveAccount(userID, id); err != nil {
			return false, err
		}
		return true, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND (account_id = ? OR transfer_account_id = ?)", userID, id, id).
			Delete(&models.RecurringTransaction{}).Error; err != nil {
			return fmt.Errorf("删除周期交易失败: %w", err)
		}
		return tx.Delete(account).Error
	})
	if err != nil {
		return false, err
	}
	return false, nil
}

// ReconcileAccount 按流水重算账户余额并写回，返回漂移量
func (s *LedgerService) ReconcileAccount(userID, id uint) (*AccountReconciliation, error) {
	var result AccountReconciliation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := lockAccount(tx, userID, id)
		if err != nil {
			return err
		}
		expected, err := s.balance.ExpectedBalance(tx, account)
		if err != nil {
			return fmt.Errorf("计算余额失败: %w", err)
		}
		result.Previous = account.Balance
		result.Expected = expected
		result.Drift = account.Balance.Sub(expected)
		if !result.Drift.IsZero() {
			if err := tx.Model(account).Update("balance", expected).Error; err != nil {
				return fmt.Errorf("更新余额失败: %w", err)
			}
			account.Balance = expected
		}
		result.Account = *account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
