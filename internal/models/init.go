package models

import (
	"github.com/salesorder-next/internal/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCustomers 默认客户列表
func DefaultCustomers() []Customer {
	return []Customer{
		{Code: "1", Name: "PT ABC Corporation", Address: "Jl. Sudirman No. 123, Jakarta", SortOrder: 1},
		{Code: "2", Name: "CV XYZ Trading", Address: "Jl. Gatot Subroto No. 456, Bandung", SortOrder: 2},
		{Code: "3", Name: "UD Maju Jaya", Address: "Jl. Ahmad Yani No. 789, Surabaya", SortOrder: 3},
	}
}

// DefaultProducts 默认商品列表
func DefaultProducts() []Product {
	return []Product{
		{Code: "1", Name: "T-Shirt Premium", Category: "Apparel", SortOrder: 1},
		{Code: "2", Name: "Polo Shirt", Category: "Apparel", SortOrder: 2},
		{Code: "3", Name: "Hoodie", Category: "Apparel", SortOrder: 3},
	}
}

// InitDefaultReferenceData 参考数据为空时写入默认客户与商品
func InitDefaultReferenceData() error {
	return SeedReferenceData(DB, false)
}

// SeedReferenceData 写入默认参考数据，overwrite 为 true 时按编号覆盖已有记录
func SeedReferenceData(db *gorm.DB, overwrite bool) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	var customerCount, productCount int64
	if err := db.Model(&Customer{}).Count(&customerCount).Error; err != nil {
		return err
	}
	if err := db.Model(&Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if !overwrite && customerCount > 0 && productCount > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if overwrite || customerCount == 0 {
			customers := DefaultCustomers()
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "address", "sort_order", "updated_at"}),
			}).Create(&customers).Error; err != nil {
				return err
			}
			logger.Infow("reference_customers_seeded", "count", len(customers))
		}
		if overwrite || productCount == 0 {
			products := DefaultProducts()
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "category", "sort_order", "updated_at"}),
			}).Create(&products).Error; err != nil {
				return err
			}
			logger.Infow("reference_products_seeded", "count", len(products))
		}
		return nil
	})
}
