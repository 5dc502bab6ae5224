package service

import "errors"

var (
	ErrFormNotFound      = errors.New("sales order form not found")
	ErrFormLimitReached  = errors.New("sales order form limit reached")
	ErrFieldUnknown      = errors.New("unknown form field")
	ErrFieldReadOnly     = errors.New("form field is read-only")
	ErrInvalidValue      = errors.New("invalid field value")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrLineItemNotFound  = errors.New("line item not found")
	ErrSizeInvalid       = errors.New("size label not supported")
	ErrCollectionInvalid = errors.New("line item collection not supported")
	ErrValidationFailed  = errors.New("required fields missing")
	ErrUploadInvalid     = errors.New("upload rejected")
	ErrReferenceNotFound = errors.New("reference record not found")
)

// ValidationError 提交校验失败，携带字段级错误
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
