package service

import (
	"context"
	"strings"
	"time"

	"github.com/salesorder-next/internal/cache"
	"github.com/salesorder-next/internal/constants"
	"github.com/salesorder-next/internal/models"
	"github.com/salesorder-next/internal/repository"
)

const referenceCatalogCacheKey = "reference:catalog"

// ReferenceData 客户查找表（只读）
type ReferenceData interface {
	FindCustomer(id string) (models.Customer, bool)
}

// ReferenceCatalog 表单下拉选项
type ReferenceCatalog struct {
	Customers []models.Customer `json:"customers"`
	Products  []models.Product  `json:"products"`
	Segments  []string          `json:"segments"`
	Wallets   []string          `json:"wallets"`
	Sizes     []string          `json:"sizes"`
}

// StaticReferenceData 内存中的不可变客户表
type StaticReferenceData struct {
	customers map[string]models.Customer
}

// NewStaticReferenceData 按客户编号建立查找表
func NewStaticReferenceData(customers []models.Customer) *StaticReferenceData {
	index := make(map[string]models.Customer, len(customers))
	for _, customer := range customers {
		code := strings.TrimSpace(customer.Code)
		if code == "" {
			continue
		}
		index[code] = customer
	}
	return &StaticReferenceData{customers: index}
}

// DefaultReferenceData 内置的默认客户表
func DefaultReferenceData() *StaticReferenceData {
	return NewStaticReferenceData(models.DefaultCustomers())
}

// FindCustomer 按编号查找客户
func (d *StaticReferenceData) FindCustomer(id string) (models.Customer, bool) {
	if d == nil {
		return models.Customer{}, false
	}
	customer, ok := d.customers[strings.TrimSpace(id)]
	return customer, ok
}

// ReferenceService 参考数据服务（数据库 + Redis 缓存）
type ReferenceService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	ttl          time.Duration
}

// NewReferenceService 创建参考数据服务
func NewReferenceService(customerRepo repository.CustomerRepository, productRepo repository.ProductRepository, ttl time.Duration) *ReferenceService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReferenceService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		ttl:          ttl,
	}
}

// Catalog 获取表单下拉选项，优先读取缓存
func (s *ReferenceService) Catalog(ctx context.Context) (*ReferenceCatalog, error) {
	return cache.Remember(ctx, referenceCatalogCacheKey, s.ttl, s.loadCatalog)
}

func (s *ReferenceService) loadCatalog(_ context.Context) (*ReferenceCatalog, error) {
	customers, err := s.customerRepo.List(repository.ReferenceListFilter{})
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List(repository.ReferenceListFilter{})
	if err != nil {
		return nil, err
	}
	return &ReferenceCatalog{
		Customers: customers,
		Products:  products,
		Segments:  append([]string(nil), constants.Segments...),
		Wallets:   append([]string(nil), constants.WalletMethods...),
		Sizes:     append([]string(nil), constants.SizeLabels...),
	}, nil
}

// Snapshot 返回当前客户表的不可变快照
func (s *ReferenceService) Snapshot(ctx context.Context) (*StaticReferenceData, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return NewStaticReferenceData(catalog.Customers), nil
}

// Invalidate 清除参考数据缓存
func (s *ReferenceService) Invalidate(ctx context.Context) error {
	return cache.Del(ctx, referenceCatalogCacheKey)
}
