package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/salesorder-next/internal/models"

	"github.com/shopspring/decimal"
)

// 编辑边界的取值转换：空串视为零值，非数字输入直接拒绝

func coerceString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("%w: expected text, got %T", ErrInvalidValue, value)
	}
}

func coerceMoney(value interface{}) (models.Money, error) {
	switch v := value.(type) {
	case nil:
		return models.Money{}, nil
	case models.Money:
		return v, nil
	case decimal.Decimal:
		return models.NewMoneyFromDecimal(v), nil
	case string:
		m, err := models.ParseMoney(v)
		if err != nil {
			return models.Money{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return m, nil
	case json.Number:
		return coerceMoney(v.String())
	case float64:
		m, err := models.NewMoneyFromFloat(v)
		if err != nil {
			return models.Money{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return m, nil
	case int:
		return models.NewMoneyFromInt(int64(v)), nil
	case int64:
		return models.NewMoneyFromInt(v), nil
	default:
		return models.Money{}, fmt.Errorf("%w: expected number, got %T", ErrInvalidValue, value)
	}
}

func coerceQuantity(value interface{}) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return coerceQuantity(int64(v))
	case int64:
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("%w: quantity out of range", ErrInvalidValue)
		}
		return int(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: quantity must be an integer", ErrInvalidValue)
		}
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("%w: quantity out of range", ErrInvalidValue)
		}
		return int(v), nil
	case json.Number:
		return coerceQuantity(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: quantity %q", ErrInvalidValue, v)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", ErrInvalidValue, value)
	}
}

func coerceBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return false, fmt.Errorf("%w: flag %q", ErrInvalidValue, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: expected boolean, got %T", ErrInvalidValue, value)
	}
}
