package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

// LedgerService 账本存储：账户、类别、交易、周期交易、预算的增删改查
// 所有操作都显式接收 userID，只读写该用户自己的数据
type LedgerService struct {
	db      *gorm.DB
	balance *BalanceMaintainer
	now     func() time.Time
}

// NewLedgerService 创建账本服务
func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{
		db:      db,
		balance: NewBalanceMaintainer(),
		now:     time.Now,
	}
}

// WithClock 替换时钟，便于测试
func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

func (s *LedgerService) today() time.Time {
	return models.DateOf(s.now())
}

// ========== 用户 ==========

// EnsureUser 按令牌中的身份建档，已存在时直接返回
func (s *LedgerService) EnsureUser(userID uint, username string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	user = models.User{
		ID:                   userID,
		Username:             username,
		Currency:             "USD",
		Language:             "en",
		Theme:                models.ThemeLight,
		NotificationsEnabled: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	return &user, nil
}

// GetSettings 获取用户偏好设置
func (s *LedgerService) GetSettings(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, notFound(err, "用户")
	}
	return &user, nil
}

// SettingsUpdate 偏好设置更新，nil 字段保持不变
type SettingsUpdate struct {
	Email                *string
	Currency             *string
	Language             *string
	Theme                *string
	NotificationsEnabled *bool
}

// UpdateSettings 更新用户偏好设置
func (s *LedgerService) UpdateSettings(userID uint, in SettingsUpdate) (*models.User, error) {
	user, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Email != nil {
		updates["email"] = strings.TrimSpace(*in.Email)
	}
	if in.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if len(c) != 3 {
			return nil, invalid("币种必须为 3 位代码")
		}
		updates["currency"] = c
	}
	if in.Language != nil {
		l := strings.ToLower(strings.TrimSpace(*in.Language))
		if len(l) != 2 {
			return nil, invalid("语言必须为 2 位代码")
		}
		updates["language"] = l
	}
	if in.Theme != nil {
		if *in.Theme != models.ThemeLight && *in.Theme != models.ThemeDark {
			return nil, invalid("主题只能为 light 或 dark")
		}
		updates["theme"] = *in.Theme
	}
	if in.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *in.NotificationsEnabled
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("更新设置失败: %w", err)
	}
	return s.GetSettings(userID)
}
