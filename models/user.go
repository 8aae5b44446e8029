package models

import (
	"time"
)

// User 用户模型
// 用户由外部身份服务注册，本服务首次见到令牌中的用户时建档，只维护偏好设置
type User struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	Username             string    `json:"username" gorm:"size:50;not null;index"`
	Email                string    `json:"email" gorm:"size:100"`
	Currency             string    `json:"currency" gorm:"size:3;not null;default:USD"`
	Language             string    `json:"language" gorm:"size:2;not null;default:en"`
	Theme                string    `json:"theme" gorm:"size:10;not null;default:light"`
	NotificationsEnabled bool      `json:"notifications_enabled" gorm:"not null;default:true"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// 主题
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
