package repository

import (
	"errors"
	"strings"

	"github.com/salesorder-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerRepository 客户数据访问接口
type CustomerRepository interface {
	List(filter ReferenceListFilter) ([]models.Customer, error)
	GetByCode(code string) (*models.Customer, error)
	Upsert(customer *models.Customer) error
	WithTx(tx *gorm.DB) CustomerRepository
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) CustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// List 客户列表，按排序权重升序
func (r *GormCustomerRepository) List(filter ReferenceListFilter) ([]models.Customer, error) {
	query := r.db.Model(&models.Customer{})
	query = applySearch(query, filter.Search, "name", "code")
	query = filter.paginate(query)

	customers := make([]models.Customer, 0)
	if err := query.Order("sort_order ASC, id ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// GetByCode 按客户编号查询，不存在时返回 nil
func (r *GormCustomerRepository) GetByCode(code string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("code = ?", strings.TrimSpace(code)).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Upsert 按编号新增或覆盖客户
func (r *GormCustomerRepository) Upsert(customer *models.Customer) error {
	if customer == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "sort_order", "updated_at"}),
	}).Create(customer).Error
}
