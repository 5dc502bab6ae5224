package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品参考数据
type Product struct {
	ID        uint           `gorm:"primarykey" json:"-"`                        // 主键
	Code      string         `gorm:"uniqueIndex;not null" json:"id"`             // 商品编号
	Name      string         `gorm:"type:varchar(200);not null" json:"name"`     // 展示名称
	Category  string         `gorm:"type:varchar(100);not null" json:"category"` // 品类
	SortOrder int            `gorm:"default:0;index" json:"-"`                   // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"-"`                             // 创建时间
	UpdatedAt time.Time      `json:"-"`                                          // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
