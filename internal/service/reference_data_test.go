package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/salesorder-next/internal/models"
	"github.com/salesorder-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReferenceService(t *testing.T) (*ReferenceService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := models.SeedReferenceData(db, false); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	svc := NewReferenceService(
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		time.Minute,
	)
	return svc, db
}

func TestReferenceServiceCatalog(t *testing.T) {
	svc, _ := setupReferenceService(t)
	catalog, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog failed: %v", err)
	}
	if len(catalog.Customers) != 3 || len(catalog.Products) != 3 {
		t.Fatalf("unexpected catalog sizes: %d customers, %d products", len(catalog.Customers), len(catalog.Products))
	}
	if len(catalog.Sizes) != 9 || catalog.Sizes[0] != "XS" || catalog.Sizes[8] != "5XL" {
		t.Fatalf("unexpected sizes: %v", catalog.Sizes)
	}
	if len(catalog.Segments) == 0 || len(catalog.Wallets) == 0 {
		t.Fatalf("expected segments and wallets")
	}
}

func TestReferenceServiceSnapshotFollowsDatabase(t *testing.T) {
	svc, db := setupReferenceService(t)
	repo := repository.NewCustomerRepository(db)
	if err := repo.Upsert(&models.Customer{Code: "7", Name: "PT Tujuh", Address: "Jl. Tujuh", SortOrder: 7}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	m := NewFormModel(snapshot, nil)
	m.SetCustomer("7")
	if got := m.Snapshot().Address; got != "Jl. Tujuh" {
		t.Fatalf("expected database customer address, got %q", got)
	}
	if err := svc.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate with disabled cache failed: %v", err)
	}
}

func TestStaticReferenceData(t *testing.T) {
	data := NewStaticReferenceData([]models.Customer{
		{Code: " 10 ", Name: "Trimmed", Address: "A"},
		{Code: "", Name: "Skipped"},
	})
	if customer, ok := data.FindCustomer("10"); !ok || customer.Name != "Trimmed" {
		t.Fatalf("expected trimmed code lookup, got %+v ok=%v", customer, ok)
	}
	if _, ok := data.FindCustomer(""); ok {
		t.Fatalf("empty code must not match")
	}
	var nilData *StaticReferenceData
	if _, ok := nilData.FindCustomer("1"); ok {
		t.Fatalf("nil data must not match")
	}
}
