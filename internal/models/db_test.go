package models

import (
	"fmt"
	"testing"
)

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenDB("oracle", "dsn", DBPoolConfig{}); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}

func TestSeedReferenceDataIsIdempotent(t *testing.T) {
	db, err := OpenDB("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(ReferenceModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := SeedReferenceData(db, false); err != nil {
			t.Fatalf("seed round %d failed: %v", i, err)
		}
	}
	var count int64
	db.Model(&Customer{}).Count(&count)
	if count != int64(len(DefaultCustomers())) {
		t.Fatalf("customers want %d got %d", len(DefaultCustomers()), count)
	}

	if err := db.Model(&Customer{}).Where("code = ?", "1").Update("name", "Renamed").Error; err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := SeedReferenceData(db, false); err != nil {
		t.Fatalf("seed without overwrite failed: %v", err)
	}
	var customer Customer
	db.Where("code = ?", "1").First(&customer)
	if customer.Name != "Renamed" {
		t.Fatalf("seed without overwrite must keep edits, got %s", customer.Name)
	}

	if err := SeedReferenceData(db, true); err != nil {
		t.Fatalf("seed with overwrite failed: %v", err)
	}
	db.Where("code = ?", "1").First(&customer)
	if customer.Name != "PT ABC Corporation" {
		t.Fatalf("overwrite should restore default name, got %s", customer.Name)
	}
}
