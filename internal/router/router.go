package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/salesorder-next/internal/cache"
	"github.com/salesorder-next/internal/config"
	publichandlers "github.com/salesorder-next/internal/http/handlers/public"
	"github.com/salesorder-next/internal/http/response"
	"github.com/salesorder-next/internal/logger"
	"github.com/salesorder-next/internal/provider"
	"github.com/salesorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "so"
	}
	redisClient := cache.Client()
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:submit", redisPrefix),
		WindowSeconds: cfg.Security.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SubmitRateLimit.MaxRequests,
	}
	uploadRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:upload", redisPrefix),
		WindowSeconds: cfg.Security.UploadRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.UploadRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", uploadDir)

	apiV1 := r.Group(apiPrefix)
	{
		apiV1.GET("/reference", h.GetReference)
		apiV1.GET("/reference/customers", h.GetCustomers)
		apiV1.POST("/forms", h.CreateForm)

		form := apiV1.Group("/forms/:id")
		{
			form.GET("", h.GetForm)
			form.DELETE("", h.DeleteForm)
			form.PATCH("/fields", h.UpdateFormFields)
			form.PUT("/customer", h.SetFormCustomer)
			form.POST("/reset", h.ResetForm)
			form.POST("/submit", RateLimitMiddleware(redisClient, submitRule, KeyByIPAndParam("id")), h.SubmitForm)
			form.GET("/result", h.GetFormResult)

			form.POST("/variants", h.AddVariant)
			form.PATCH("/variants/:variant_id", h.UpdateVariant)
			form.PUT("/variants/:variant_id/sizes/:size", h.SetVariantSize)
			form.DELETE("/variants/:variant_id", h.RemoveVariant)

			// 附加费用与扣减使用相同的处理器
			for _, collection := range []service.Collection{service.CollectionAdditions, service.CollectionDeductions} {
				path := "/" + string(collection)
				form.POST(path, h.AddLineItem(collection))
				form.PATCH(path+"/:item_id", h.UpdateLineItem(collection))
				form.DELETE(path+"/:item_id", h.RemoveLineItem(collection))
			}

			uploadLimit := RateLimitMiddleware(redisClient, uploadRule, KeyByIPAndParam("id"))
			form.POST("/attachment", uploadLimit, h.UploadAttachment)
			form.POST("/design-file", uploadLimit, h.UploadDesignFile)
		}

		apiV1.GET("/routes", func(ctx *gin.Context) {
			response.Success(ctx, buildRouteCatalog(r))
		})
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		redisStatus := "disabled"
		if cache.Enabled() {
			redisStatus = "ok"
			if err := cache.Ping(ctx.Request.Context()); err != nil {
				redisStatus = "unavailable"
			}
		}
		ctx.JSON(200, gin.H{
			"status":        "ok",
			"redis":         redisStatus,
			"form_sessions": c.FormService.Count(),
		})
	})

	return r
}

type routeCatalogItem struct {
	Module string `json:"module"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// buildRouteCatalog 列出 API 路由，供前端联调
func buildRouteCatalog(engine *gin.Engine) []routeCatalogItem {
	if engine == nil {
		return []routeCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]routeCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, apiPrefix+"/") {
			continue
		}
		key := method + ":" + item.Path
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, routeCatalogItem{
			Module: deriveRouteModule(item.Path),
			Method: method,
			Path:   item.Path,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Path == items[j].Path {
				return items[i].Method < items[j].Method
			}
			return items[i].Path < items[j].Path
		}
		return items[i].Module < items[j].Module
	})

	return items
}

// deriveRouteModule /api/v1/forms/:id/variants -> variants
func deriveRouteModule(path string) string {
	normalized := strings.Trim(strings.TrimPrefix(path, apiPrefix), "/")
	if normalized == "" {
		return "system"
	}
	parts := strings.Split(normalized, "/")
	if parts[0] == "forms" && len(parts) >= 3 {
		return parts[2]
	}
	return parts[0]
}
