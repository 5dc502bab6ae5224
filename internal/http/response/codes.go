package response

const (
	CodeOK               = 0
	CodeBadRequest       = 400
	CodeNotFound         = 404
	CodeUnprocessable    = 422
	CodeTooManyRequests  = 429
	CodeInternal         = 500
	CodeServiceExhausted = 503
)
