package service

import (
	"fmt"
	"strings"

	"fintrack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *LedgerService) validateBudget(tx *gorm.DB, userID uint, b *models.Budget) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return invalid("预算名称不能为空")
	}
	if b.Amount.IsNegative() {
		return invalid("预算金额不能为负数")
	}
	b.Amount = b.Amount.Round(2)
	if b.Period == "" {
		b.Period = models.PeriodMonthly
	}
	if !b.Period.Valid() {
		return invalid("无效的预算周期: %s", b.Period)
	}
	if b.StartDate.IsZero() {
		b.StartDate = models.MonthStart(s.today())
	}
	b.StartDate = models.DateOf(b.StartDate)
	if b.EndDate != nil {
		end := models.DateOf(*b.EndDate)
		if end.Before(b.StartDate) {
			return invalid("结束日期不能早于开始日期")
		}
		b.EndDate = &end
	}
	return checkCategory(tx, userID, b.CategoryID)
}

// CreateBudget 创建预算
func (s *LedgerService) CreateBudget(userID uint, b *models.Budget) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.validateBudget(tx, userID, b); err != nil {
			return err
		}
		b.ID = 0
		b.UserID = userID
		b.Category = nil
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return fmt.Errorf("创建预算失败: %w", err)
		}
		return nil
	})
}

// GetBudget 获取预算
func (s *LedgerService) GetBudget(userID, id uint) (*models.Budget, error) {
	var b models.Budget
	if err := s.db.Preload("Category").Where("id = ? AND user_id = ?", id, userID).First(&b).Error; err != nil {
		return nil, notFound(err, "预算")
	}
	return &b, nil
}

// ListBudgets 列出预算；activeOnly 时只返回今天处于有效期内的预算
func (s *LedgerService) ListBudgets(userID uint, activeOnly bool) ([]models.Budget, error) {
	query := s.db.Preload("Category").Where("user_id = ?", userID)
	if activeOnly {
		today := s.today()
		query = query.Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)", today, today)
	}
	var list []models.Budget
	if err := query.Order("start_date DESC, id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询预算失败: %w", err)
	}
	return list, nil
}

// UpdateBudget 更新预算
func (s *LedgerService) UpdateBudget(userID, id uint, in *models.Budget) (*models.Budget, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current models.Budget
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&current).Error; err != nil {
			return notFound(err, "预算")
		}
		if err := s.validateBudget(tx, userID, in); err != nil {
			return err
		}
		return tx.Model(&current).Updates(map[string]interface{}{
			"category_id": in.CategoryID,
			"name":        in.Name,
			"amount":      in.Amount,
			"period":      in.Period,
			"start_date":  in.StartDate,
			"end_date":    in.EndDate,
			"rollover":    in.Rollover,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetBudget(userID, id)
}

// DeleteBudget 删除预算
func (s *LedgerService) DeleteBudget(userID, id uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Budget{})
	if result.Error != nil {
		return fmt.Errorf("删除预算失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("预算%w", ErrNotFound)
	}
	return nil
}
