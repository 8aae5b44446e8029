package service

import (
	"fmt"
	"strings"

	"fintrack/models"

	"gorm.io/gorm"
)

func (s *LedgerService) validateRecurring(tx *gorm.DB, userID uint, r *models.RecurringTransaction) error {
	if !r.Amount.IsPositive() {
		return invalid("金额必须大于 0")
	}
	r.Amount = r.Amount.Round(2)
	if r.TransactionType == "" {
		r.TransactionType = models.TypeExpense
	}
	if !r.TransactionType.Valid() {
		return invalid("无效的交易类型: %s", r.TransactionType)
	}
	if _, err := GetFrequencyStepper(r.Frequency); err != nil {
		return invalid("无效的周期频率: %s", r.Frequency)
	}
	r.Description = strings.TrimSpace(r.Description)
	if r.Description == "" {
		return invalid("描述不能为空")
	}
	if r.StartDate.IsZero() {
		r.StartDate = s.today()
	}
	r.StartDate = models.DateOf(r.StartDate)
	if r.EndDate != nil {
		end := models.DateOf(*r.EndDate)
		if end.Before(r.StartDate) {
			return invalid("结束日期不能早于开始日期")
		}
		r.EndDate = &end
	}

	if err := checkAccount(tx, userID, r.AccountID); err != nil {
		return err
	}
	if r.TransactionType == models.TypeTransfer {
		if r.TransferAccountID == nil || *r.TransferAccountID == r.AccountID {
			return invalid("转账必须指定不同的转入账户")
		}
		if err := checkAccount(tx, userID, *r.TransferAccountID); err != nil {
			return err
		}
	} else {
		r.TransferAccountID = nil
	}
	return checkCategory(tx, userID, r.CategoryID)
}

// CreateRecurring 创建周期交易，首次到期日为开始日期
func (s *LedgerService) CreateRecurring(userID uint, r *models.RecurringTransaction) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validateRecurring(tx, userID, r); err != nil {
			return err
		}
		r.ID = 0
		r.UserID = userID
		r.NextDue = r.StartDate
		r.LastProcessed = nil
		r.Status = models.RecurringActive
		if err := tx.Create(r).Error; err != nil {
			return fmt.Errorf("创建周期交易失败: %w", err)
		}
		return nil
	})
}

// GetRecurring 获取周期交易
func (s *LedgerService) GetRecurring(userID, id uint) (*models.RecurringTransaction, error) {
	var r models.RecurringTransaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&r).Error; err != nil {
		return nil, notFound(err, "周期交易")
	}
	return &r, nil
}

// ListRecurring 列出周期交易，按下次到期日排序
func (s *LedgerService) ListRecurring(userID uint, status models.RecurringStatus) ([]models.RecurringTransaction, error) {
	query := s.db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var list []models.RecurringTransaction
	if err := query.Order("next_due ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询周期交易失败: %w", err)
	}
	return list, nil
}

// UpdateRecurring 更新周期交易
// 从未执行过的模板按新的开始日期重置到期日；已执行过的保持当前到期日
func (s *LedgerService) UpdateRecurring(userID, id uint, in *models.RecurringTransaction) (*models.RecurringTransaction, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current models.RecurringTransaction
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&current).Error; err != nil {
			return notFound(err, "周期交易")
		}
		if current.Status == models.RecurringCancelled {
			return invalid("已取消的周期交易不能修改")
		}
		if err := s.validateRecurring(tx, userID, in); err != nil {
			return err
		}

		nextDue := current.NextDue
		if current.LastProcessed == nil {
			nextDue = in.StartDate
		}
		status := current.Status
		if status == models.RecurringCompleted && !in.Ended(nextDue) {
			status = models.RecurringActive
		}
		return tx.Model(&current).Updates(map[string]interface{}{
			"account_id":          in.AccountID,
			"category_id":         in.CategoryID,
			"transfer_account_id": in.TransferAccountID,
			"transaction_type":    in.TransactionType,
			"amount":              in.Amount,
			"description":         in.Description,
			"frequency":           in.Frequency,
			"start_date":          in.StartDate,
			"end_date":            in.EndDate,
			"next_due":            nextDue,
			"status":              status,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecurring(userID, id)
}

func (s *LedgerService) transitionRecurring(userID, id uint, fn func(tx *gorm.DB, r *models.RecurringTransaction) (map[string]interface{}, error)) (*models.RecurringTransaction, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var r models.RecurringTransaction
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&r).Error; err != nil {
			return notFound(err, "周期交易")
		}
		updates, err := fn(tx, &r)
		if err != nil {
			return err
		}
		return tx.Model(&r).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecurring(userID, id)
}

// PauseRecurring 暂停，到期日冻结
func (s *LedgerService) PauseRecurring(userID, id uint) (*models.RecurringTransaction, error) {
	return s.transitionRecurring(userID, id, func(_ *gorm.DB, r *models.RecurringTransaction) (map[string]interface{}, error) {
		if r.Status != models.RecurringActive {
			return nil, invalid("只有进行中的周期交易可以暂停")
		}
		return map[string]interface{}{"status": models.RecurringPaused}, nil
	})
}

// ResumeRecurring 恢复，暂停期间错过的周期直接跳过
func (s *LedgerService) ResumeRecurring(userID, id uint) (*models.RecurringTransaction, error) {
	today := s.today()
	return s.transitionRecurring(userID, id, func(tx *gorm.DB, r *models.RecurringTransaction) (map[string]interface{}, error) {
		if r.Status != models.RecurringPaused {
			return nil, invalid("只有已暂停的周期交易可以恢复")
		}
		if err := checkAccount(tx, r.UserID, r.AccountID); err != nil {
			return nil, err
		}
		if r.TransferAccountID != nil {
			if err := checkAccount(tx, r.UserID, *r.TransferAccountID); err != nil {
				return nil, err
			}
		}
		next := models.DateOf(r.NextDue)
		for next.Before(today) {
			stepped, err := NextDue(r, next)
			if err != nil {
				return nil, err
			}
			next = stepped
		}
		status := models.RecurringActive
		if r.Ended(next) {
			status = models.RecurringCompleted
		}
		return map[string]interface{}{"status": status, "next_due": next}, nil
	})
}

// CancelRecurring 取消，不可恢复
func (s *LedgerService) CancelRecurring(userID, id uint) (*models.RecurringTransaction, error) {
	return s.transitionRecurring(userID, id, func(_ *gorm.DB, r *models.RecurringTransaction) (map[string]interface{}, error) {
		if r.Status == models.RecurringCancelled {
			return nil, invalid("周期交易已取消")
		}
		return map[string]interface{}{"status": models.RecurringCancelled}, nil
	})
}

// DeleteRecurring 删除周期交易，已生成的交易保留，仅断开关联
func (s *LedgerService) DeleteRecurring(userID, id uint) error {
	if _, err := s.GetRecurring(userID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND recurring_id = ?", userID, id).
			Update("recurring_id", nil).Error; err != nil {
			return fmt.Errorf("清除周期交易引用失败: %w", err)
		}
		if err := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.RecurringTransaction{}).Error; err != nil {
			return fmt.Errorf("删除周期交易失败: %w", err)
		}
		return nil
	})
}
