package service

import (
	"fmt"
	"strings"
	"time"

	"fintrack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionFilter 交易列表过滤条件，零值字段不参与过滤
type TransactionFilter struct {
	AccountID  *uint
	CategoryID *uint
	Type       models.TransactionType
	Status     models.TransactionStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Keyword    string
}

// Page 分页参数
type Page struct {
	Page     int
	PageSize int
}

// Normalize 页码从 1 开始，每页默认 20 条、最多 100 条
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.PageSize
}

// validateTransaction 校验交易并规范字段，账户与类别必须属于同一用户
// validateTransaction 校验交易；prior 为库中原记录（新建时为 nil）
// 原记录已引用的账户即使归档也允许继续编辑
func (s *LedgerService) validateTransaction(tx *gorm.DB, userID uint, t, prior *models.Transaction) error {
	if !t.Amount.IsPositive() {
		return invalid("金额必须大于 0")
	}
	t.Amount = t.Amount.Round(2)
	if !t.TransactionType.Valid() {
		return invalid("无效的交易类型: %s", t.TransactionType)
	}
	if t.Status == "" {
		t.Status = models.StatusCompleted
	}
	if !t.Status.Valid() {
		return invalid("无效的交易状态: %s", t.Status)
	}
	if t.Date.IsZero() {
		t.Date = s.today()
	}
	t.Date = models.DateOf(t.Date)
	t.Description = strings.TrimSpace(t.Description)
	if len(t.Description) > 200 {
		return invalid("描述过长（最多 200 个字符）")
	}

	if err := checkUsableAccount(tx, userID, t.AccountID, prior); err != nil {
		return err
	}
	if t.TransactionType == models.TypeTransfer {
		if t.TransferAccountID == nil {
			return invalid("转账必须指定转入账户")
		}
		if *t.TransferAccountID == t.AccountID {
			return invalid("转入账户不能与转出账户相同")
		}
		if err := checkUsableAccount(tx, userID, *t.TransferAccountID, prior); err != nil {
			return err
		}
	} else {
		t.TransferAccountID = nil
	}
	return checkCategory(tx, userID, t.CategoryID)
}

func checkAccount(tx *gorm.DB, userID, accountID uint) error {
	var account models.Account
	if err := tx.Select("id", "is_archived").
		Where("id = ? AND user_id = ?", accountID, userID).
		First(&account).Error; err != nil {
		return invalid("账户 %d 不存在", accountID)
	}
	if account.IsArchived {
		return invalid("账户 %d 已归档", accountID)
	}
	return nil
}

func checkUsableAccount(tx *gorm.DB, userID, accountID uint, prior *models.Transaction) error {
	if prior != nil && (prior.AccountID == accountID ||
		(prior.TransferAccountID != nil && *prior.TransferAccountID == accountID)) {
		var count int64
		if err := tx.Model(&models.Account{}).
			Where("id = ? AND user_id = ?", accountID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalid("账户 %d 不存在", accountID)
		}
		return nil
	}
	return checkAccount(tx, userID, accountID)
}

// createInTx 在调用方事务中写入交易并维护余额
func (s *LedgerService) createInTx(tx *gorm.DB, userID uint, t *models.Transaction) error {
	if err := s.validateTransaction(tx, userID, t, nil); err != nil {
		return err
	}
	t.ID = 0
	t.UserID = userID
	if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
		return fmt.Errorf("创建交易失败: %w", err)
	}
	if _, err := s.balance.Apply(tx, userID, nil, t); err != nil {
		return err
	}
	return nil
}

// CreateTransaction 创建交易，交易写入与余额更新处于同一事务
func (s *LedgerService) CreateTransaction(userID uint, t *models.Transaction) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.createInTx(tx, userID, t)
	})
}

// GetTransaction 获取交易，附带类别和账户
func (s *LedgerService) GetTransaction(userID, id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.db.Preload("Category").Preload("Account").
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error; err != nil {
		return nil, notFound(err, "交易")
	}
	return &t, nil
}

func (s *LedgerService) filterTransactions(userID uint, f TransactionFilter) *gorm.DB {
	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if f.AccountID != nil {
		query = query.Where("(account_id = ? OR transfer_account_id = ?)", *f.AccountID, *f.AccountID)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if f.Type != "" {
		query = query.Where("transaction_type = ?", f.Type)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		query = query.Where("date >= ?", models.DateOf(*f.StartDate))
	}
	if f.EndDate != nil {
		query = query.Where("date <= ?", models.DateOf(*f.EndDate))
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		query = query.Where("description LIKE ?", "%"+kw+"%")
	}
	return query
}

// ListTransactions 分页查询交易，按日期、创建时间倒序，同日交易顺序稳定
func (s *LedgerService) ListTransactions(userID uint, f TransactionFilter, p Page) ([]models.Transaction, int64, error) {
	p = p.Normalize()
	var total int64
	if err := s.filterTransactions(userID, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("查询交易总数失败: %w", err)
	}

	var list []models.Transaction
	if err := s.filterTransactions(userID, f).
		Preload("Category").Preload("Account").
		Order("date DESC, created_at DESC, id DESC").
		Offset(p.offset()).Limit(p.PageSize).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("查询交易失败: %w", err)
	}
	return list, total, nil
}

// AllTransactions 不分页查询，供导出使用
func (s *LedgerService) AllTransactions(userID uint, f TransactionFilter) ([]models.Transaction, error) {
	var list []models.Transaction
	if err := s.filterTransactions(userID, f).
		Preload("Category").Preload("Account").
		Order("date DESC, created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询交易失败: %w", err)
	}
	return list, nil
}

// lockTransaction 在事务内加锁读取交易的已存状态
func lockTransaction(tx *gorm.DB, userID, id uint) (*models.Transaction, error) {
	var prior models.Transaction
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&prior).Error; err != nil {
		return nil, notFound(err, "交易")
	}
	return &prior, nil
}

// UpdateTransaction 更新交易：先按已存状态回滚余额影响，再应用新状态
func (s *LedgerService) UpdateTransaction(userID, id uint, next *models.Transaction) (*models.Transaction, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		prior, err := lockTransaction(tx, userID, id)
		if err != nil {
			return err
		}
		if err := s.validateTransaction(tx, userID, next, prior); err != nil {
			return err
		}

		next.ID = prior.ID
		next.UserID = userID
		next.CreatedAt = prior.CreatedAt
		next.IsRecurring = prior.IsRecurring
		next.RecurringID = prior.RecurringID
		next.Category = nil
		next.Account = nil
		if err := tx.Omit(clause.Associations).Save(next).Error; err != nil {
			return fmt.Errorf("更新交易失败: %w", err)
		}
		_, err = s.balance.Apply(tx, userID, prior, next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetTransaction(userID, id)
}

// DeleteTransaction 删除交易并回滚其余额影响
func (s *LedgerService) DeleteTransaction(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		prior, err := lockTransaction(tx, userID, id)
		if err != nil {
			return err
		}
		if _, err := s.balance.Apply(tx, userID, prior, nil); err != nil {
			return err
		}
		if err := tx.Delete(prior).Error; err != nil {
			return fmt.Errorf("删除交易失败: %w", err)
		}
		return nil
	})
}
