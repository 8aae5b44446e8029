package models

import (
	"time"
)

// UncategorizedName 未分类交易在汇总中的名称
const UncategorizedName = "Uncategorized"

// Category 收支类别，按用户隔离，可通过 ParentID 组成树
type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	ParentID     *uint     `json:"parent_id" gorm:"index"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	CategoryType string    `json:"category_type" gorm:"size:50"`
	Color        string    `json:"color" gorm:"size:7"`
	Icon         string    `json:"icon" gorm:"size:50"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
