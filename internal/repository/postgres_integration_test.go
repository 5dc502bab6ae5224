//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/salesorder-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{&models.Customer{}, &models.Product{}}
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := db.AutoMigrate(cleanupModels...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresReferenceSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	if err := models.SeedReferenceData(db, false); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	customers, err := NewCustomerRepository(db).List(ReferenceListFilter{Search: "xyz trading"})
	if err != nil {
		t.Fatalf("customer search failed: %v", err)
	}
	if len(customers) != 1 || customers[0].Code != "2" {
		t.Fatalf("customer search want code 2 got %+v", customers)
	}

	products, err := NewProductRepository(db).List(ReferenceListFilter{Search: "POLO"})
	if err != nil {
		t.Fatalf("product search failed: %v", err)
	}
	if len(products) == 0 {
		t.Fatalf("product search should match case-insensitively")
	}
}

func TestPostgresSeedOverwriteIsIdempotent(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	for i := 0; i < 2; i++ {
		if err := models.SeedReferenceData(db, true); err != nil {
			t.Fatalf("seed round %d failed: %v", i, err)
		}
	}
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != int64(len(models.DefaultCustomers())) {
		t.Fatalf("overwrite seeding should not duplicate rows, got %d", count)
	}
}
