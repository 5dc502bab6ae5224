package service

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/salesorder-next/internal/constants"
	"github.com/salesorder-next/internal/models"

	"github.com/olekukonko/tablewriter"
)

// RenderReceipt 输出已提交订单的文本回执
func RenderReceipt(w io.Writer, order SubmittedOrder, formatter *DisplayFormatter) error {
	if formatter == nil {
		formatter = NewDisplayFormatter(constants.DefaultCurrencyPrefix, constants.DefaultDisplayLocale)
	}
	record := order.Record

	priority := "No"
	if record.Priority {
		priority = "Yes"
	}
	if _, err := fmt.Fprintf(w, "Order: %s\nCustomer: %s\nAddress: %s\nProduct: %s\nSegment: %s\nDate: %s  Due: %s  SPK: %s  Priority: %s\n\n",
		record.OrderName, record.Customer, record.Address, record.Product, record.Segment,
		record.Date, record.DuePayment, record.SPKDate, priority); err != nil {
		return err
	}

	variants := tablewriter.NewWriter(w)
	variants.Header("Variant", "Sub Variant", "Sizes", "Qty", "Price", "Amount")
	for _, variant := range record.Variants {
		qty := variant.Quantity()
		amount := models.NewMoneyFromDecimal(variant.Price.Decimal.Mul(models.NewMoneyFromInt(int64(qty)).Decimal))
		if err := variants.Append([]string{
			variant.Variant,
			variant.SubVariant,
			formatSizes(variant.Sizes),
			formatter.Quantity(qty),
			formatter.Amount(variant.Price),
			formatter.Amount(amount),
		}); err != nil {
			return err
		}
	}
	if err := variants.Render(); err != nil {
		return err
	}

	if len(record.Additions)+len(record.Deductions) > 0 {
		items := tablewriter.NewWriter(w)
		items.Header("Type", "Category", "Description", "Price")
		for _, item := range record.Additions {
			if err := items.Append([]string{"+", item.Category, item.Description, formatter.Amount(item.Price)}); err != nil {
				return err
			}
		}
		for _, item := range record.Deductions {
			if err := items.Append([]string{"-", item.Category, item.Description, formatter.Amount(item.Price)}); err != nil {
				return err
			}
		}
		if err := items.Render(); err != nil {
			return err
		}
	}

	totals := tablewriter.NewWriter(w)
	totals.Header("Summary", "Value")
	rows := [][]string{
		{"Total Quantity", formatter.Quantity(order.Totals.TotalQuantity)},
		{"Product Amount", formatter.Amount(order.Totals.ProductAmount)},
		{"Shipping", formatter.Amount(order.Totals.ShippingPrice)},
		{"Additions", formatter.Amount(order.Totals.AdditionsTotal)},
		{"Deductions", formatter.Amount(order.Totals.DeductionsTotal)},
		{"Total Bill", formatter.Amount(order.Totals.TotalBill)},
		{"Payment", formatter.Amount(order.Totals.PaymentAmount)},
		{"Remaining", formatter.Amount(order.Totals.RemainingPayment)},
	}
	for _, row := range rows {
		if err := totals.Append(row); err != nil {
			return err
		}
	}
	return totals.Render()
}

// ReceiptText 返回文本回执
func ReceiptText(order SubmittedOrder, formatter *DisplayFormatter) (string, error) {
	var b strings.Builder
	if err := RenderReceipt(&b, order, formatter); err != nil {
		return "", err
	}
	return b.String(), nil
}

// formatSizes 按尺码顺序输出非零数量，如 "M:2 L:3"
func formatSizes(sizes map[string]int) string {
	parts := make([]string, 0, len(sizes))
	for _, label := range constants.SizeLabels {
		if qty := sizes[label]; qty != 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", label, qty))
		}
	}
	var extra []string
	for label, qty := range sizes {
		if !constants.IsSizeLabel(label) && qty != 0 {
			extra = append(extra, fmt.Sprintf("%s:%d", label, qty))
		}
	}
	sort.Strings(extra)
	return strings.Join(append(parts, extra...), " ")
}
