package public

import (
	handlershared "github.com/salesorder-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getFormID(c *gin.Context) (string, bool) {
	return handlershared.RequireParam(c, "id")
}

func getVariantID(c *gin.Context) (string, bool) {
	return handlershared.RequireParam(c, "variant_id")
}

func getItemID(c *gin.Context) (string, bool) {
	return handlershared.RequireParam(c, "item_id")
}
