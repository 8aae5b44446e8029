package service

import (
	"fmt"
	"strings"

	"fintrack/models"

	"gorm.io/gorm"
)

const defaultCategoryColor = "#64748b" // 默认灰色

func validateCategory(c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return invalid("类别名称不能为空")
	}
	if len(c.Name) > 100 {
		return invalid("类别名称过长（最多 100 个字符）")
	}
	if c.Color == "" {
		c.Color = defaultCategoryColor
	}
	if len(c.Color) > 7 {
		return invalid("颜色代码格式错误")
	}
	return nil
}

// checkParent 父类别必须属于同一用户，且不能形成环
func checkParent(tx *gorm.DB, userID, selfID uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	seen := map[uint]bool{}
	next := parentID
	for next != nil {
		if selfID != 0 && *next == selfID {
			return invalid("父类别不能是自身或其子类别")
		}
		if seen[*next] {
			return invalid("类别层级存在循环")
		}
		seen[*next] = true

		var parent models.Category
		if err := tx.Select("id", "parent_id").
			Where("id = ? AND user_id = ?", *next, userID).
			First(&parent).Error; err != nil {
			if *next == *parentID {
				return invalid("父类别不存在")
			}
			return notFound(err, "类别")
		}
		next = parent.ParentID
	}
	return nil
}

// CreateCategory 创建类别，同一用户下名称唯一
func (s *LedgerService) CreateCategory(userID uint, category *models.Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	category.ID = 0
	category.UserID = userID

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkParent(tx, userID, 0, category.ParentID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("user_id = ? AND name = ?", userID, category.Name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("查询类别失败: %w", err)
		}
		if count > 0 {
			return invalid("类别名称已存在")
		}
		if err := tx.Create(category).Error; err != nil {
			return fmt.Errorf("创建类别失败: %w", err)
		}
		return nil
	})
}

// GetCategory 获取类别
func (s *LedgerService) GetCategory(userID, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		return nil, notFound(err, "类别")
	}
	return &category, nil
}

// ListCategories 列出类别，可按名称模糊匹配
func (s *LedgerService) ListCategories(userID uint, name string) ([]models.Category, error) {
	query := s.db.Where("user_id = ?", userID)
	if name = strings.TrimSpace(name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	var list []models.Category
	if err := query.Order("name ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询类别失败: %w", err)
	}
	return list, nil
}

// UpdateCategory 更新类别
func (s *LedgerService) UpdateCategory(userID, id uint, in *models.Category) (*models.Category, error) {
	if err := validateCategory(in); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current models.Category
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&current).Error; err != nil {
			return notFound(err, "类别")
		}
		if err := checkParent(tx, userID, id, in.ParentID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, in.Name, id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("查询类别失败: %w", err)
		}
		if count > 0 {
			return invalid("类别名称已存在")
		}
		return tx.Model(&current).Updates(map[string]interface{}{
			"parent_id":     in.ParentID,
			"name":          in.Name,
			"description":   in.Description,
			"category_type": in.CategoryType,
			"color":         in.Color,
			"icon":          in.Icon,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetCategory(userID, id)
}

// DeleteCategory 删除类别，引用它的交易、周期交易、预算和子类别置空而不级联删除
func (s *LedgerService) DeleteCategory(userID, id uint) error {
	if _, err := s.GetCategory(userID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Transaction{},
			&models.RecurringTransaction{},
			&models.Budget{},
		} {
			if err := tx.Model(model).
				Where("user_id = ? AND category_id = ?", userID, id).
				Update("category_id", nil).Error; err != nil {
				return fmt.Errorf("清除类别引用失败: %w", err)
			}
		}
		if err := tx.Model(&models.Category{}).
			Where("user_id = ? AND parent_id = ?", userID, id).
			Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("清除父类别引用失败: %w", err)
		}
		if err := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{}).Error; err != nil {
			return fmt.Errorf("删除类别失败: %w", err)
		}
		return nil
	})
}

// checkCategory 校验类别归属，nil 表示未分类
func checkCategory(tx *gorm.DB, userID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", *categoryID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("查询类别失败: %w", err)
	}
	if count == 0 {
		return invalid("类别不存在")
	}
	return nil
}
