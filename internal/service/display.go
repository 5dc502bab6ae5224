package service

import (
	"strings"

	"github.com/salesorder-next/internal/constants"
	"github.com/salesorder-next/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DisplayFormatter 金额展示格式（仅做千分位分组）
type DisplayFormatter struct {
	prefix  string
	printer *message.Printer
	group   string
	decimal string
}

// NewDisplayFormatter 创建金额格式化器，如 Rp + id-ID -> "Rp 1.234.567"
func NewDisplayFormatter(prefix, locale string) *DisplayFormatter {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = constants.DefaultCurrencyPrefix
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.Indonesian
	}
	f := &DisplayFormatter{
		prefix:  prefix,
		printer: message.NewPrinter(tag),
	}
	f.group, f.decimal = localeSeparators(f.printer)
	return f
}

// localeSeparators 通过格式化样例数值取得当前语言的分组符与小数点
func localeSeparators(p *message.Printer) (string, string) {
	sample := p.Sprint(number.Decimal(1234.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	rest := strings.TrimPrefix(sample, "1")
	idx := strings.Index(rest, "234")
	if rest == sample || idx < 0 || !strings.HasSuffix(rest, "5") {
		return ",", "."
	}
	return rest[:idx], strings.TrimSuffix(rest[idx+3:], "5")
}

// Amount 格式化金额，保留最多 2 位小数
func (f *DisplayFormatter) Amount(m models.Money) string {
	return f.prefix + " " + f.Number(m)
}

// Number 仅格式化数值部分，直接基于 decimal 文本分组，不经过 float64
func (f *DisplayFormatter) Number(m models.Money) string {
	rounded := m.Decimal.Round(2)
	digits := rounded.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(digits, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(f.decimal)
		b.WriteString(frac)
	}
	return b.String()
}

// Quantity 格式化数量
func (f *DisplayFormatter) Quantity(qty int) string {
	return f.printer.Sprint(number.Decimal(qty))
}
