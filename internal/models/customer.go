package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 客户参考数据
type Customer struct {
	ID        uint           `gorm:"primarykey" json:"-"`                       // 主键
	Code      string         `gorm:"uniqueIndex;not null" json:"id"`            // 客户编号（表单中使用）
	Name      string         `gorm:"type:varchar(200);not null" json:"name"`    // 展示名称
	Address   string         `gorm:"type:varchar(500);not null" json:"address"` // 地址
	SortOrder int            `gorm:"default:0;index" json:"-"`                  // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"-"`                            // 创建时间
	UpdatedAt time.Time      `json:"-"`                                         // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                            // 软删除时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
