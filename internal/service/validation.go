package service

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/salesorder-next/internal/i18n"
	"github.com/salesorder-next/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	orderValidatorOnce sync.Once
	orderValidator     *validator.Validate
)

func getOrderValidator() *validator.Validate {
	orderValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		orderValidator = v
	})
	return orderValidator
}

// ValidateOrder 提交前的必填校验，返回 nil 表示可提交
func ValidateOrder(record models.OrderRecord, locale string) error {
	err := getOrderValidator().Struct(record)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	fields := make([]FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		path := fieldPathFromNamespace(fieldErr.Namespace())
		fields = append(fields, FieldError{
			Field:   path,
			Message: validationMessage(locale, path, fieldErr.Tag()),
		})
	}
	return &ValidationError{Fields: fields}
}

// fieldPathFromNamespace OrderRecord.material_detail.category -> material_detail.category
func fieldPathFromNamespace(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func validationMessage(locale, path, tag string) string {
	if tag == "required" {
		key := "validation." + path
		if i18n.Has(key) {
			return i18n.T(locale, key)
		}
	}
	return i18n.Sprintf(locale, "validation.required", path)
}
