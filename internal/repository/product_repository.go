package repository

import (
	"errors"
	"strings"

	"github.com/salesorder-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ReferenceListFilter) ([]models.Product, error)
	GetByCode(code string) (*models.Product, error)
	Upsert(product *models.Product) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表
func (r *GormProductRepository) List(filter ReferenceListFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	query = applySearch(query, filter.Search, "name", "category")
	query = filter.paginate(query)

	products := make([]models.Product, 0)
	if err := query.Order("sort_order ASC, id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByCode 按商品编号查询，不存在时返回 nil
func (r *GormProductRepository) GetByCode(code string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("code = ?", strings.TrimSpace(code)).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Upsert 按编号新增或覆盖商品
func (r *GormProductRepository) Upsert(product *models.Product) error {
	if product == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category", "sort_order", "updated_at"}),
	}).Create(product).Error
}
