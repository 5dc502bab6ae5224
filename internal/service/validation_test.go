package service

import (
	"errors"
	"testing"

	"github.com/salesorder-next/internal/i18n"
	"github.com/salesorder-next/internal/models"
)

func completeRecord() models.OrderRecord {
	record := models.DefaultOrderRecord()
	record.Customer = "PT ABC Corporation"
	record.Address = "Jl. Sudirman No. 123, Jakarta"
	record.OrderName = "Seragam"
	record.Product = "1"
	record.Segment = "Corporate"
	record.Date = "2026-01-02"
	record.DuePayment = "2026-01-10"
	record.SPKDate = "2026-01-03"
	record.ProductNote = "Logo dada kiri"
	for _, group := range []*models.DetailGroup{&record.MaterialDetail, &record.PrintingDetail, &record.EmbroideryDetail} {
		group.Category = "A"
		group.Material = "Cotton"
		group.InputColor = "Navy"
		group.ExpandableInput = "-"
	}
	return record
}

func TestValidateOrderComplete(t *testing.T) {
	if err := ValidateOrder(completeRecord(), i18n.LocaleEnUS); err != nil {
		t.Fatalf("complete record should pass, got %v", err)
	}
}

func TestValidateOrderMissingFields(t *testing.T) {
	record := completeRecord()
	record.Customer = ""
	record.EmbroideryDetail.InputColor = ""

	err := ValidateOrder(record, i18n.LocaleIDID)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	got := map[string]string{}
	for _, field := range validationErr.Fields {
		got[field.Field] = field.Message
	}
	if got["customer"] != "Customer harus dipilih" {
		t.Fatalf("unexpected customer message: %q", got["customer"])
	}
	if got["embroidery_detail.input_color"] != "embroidery_detail.input_color wajib diisi" {
		t.Fatalf("unexpected detail message: %q", got["embroidery_detail.input_color"])
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", validationErr.Fields)
	}
}

func TestValidateOrderIgnoresOptionalFields(t *testing.T) {
	record := completeRecord()
	record.Wallet = ""
	record.DesignNote = ""
	record.Shipping = models.ShippingInfo{}
	if err := ValidateOrder(record, i18n.LocaleEnUS); err != nil {
		t.Fatalf("optional fields must not block submission: %v", err)
	}
}
