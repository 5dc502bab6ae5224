package provider

import (
	"time"

	"github.com/salesorder-next/internal/cache"
	"github.com/salesorder-next/internal/config"
	"github.com/salesorder-next/internal/logger"
	"github.com/salesorder-next/internal/models"
	"github.com/salesorder-next/internal/queue"
	"github.com/salesorder-next/internal/repository"
	"github.com/salesorder-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CustomerRepo repository.CustomerRepository
	ProductRepo  repository.ProductRepository

	// Services
	ReferenceService *service.ReferenceService
	FormService      *service.FormService
	UploadService    *service.UploadService
	Formatter        *service.DisplayFormatter
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	return NewContainerWithDB(cfg, models.DB, queueClient)
}

// NewContainerWithDB 使用指定数据库与队列客户端初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories(db)
	c.initServices()
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
}

func (c *Container) initServices() {
	formCfg := c.Config.Form
	c.ReferenceService = service.NewReferenceService(
		c.CustomerRepo,
		c.ProductRepo,
		time.Duration(c.Config.Redis.ReferenceTTLSeconds)*time.Second,
	)
	c.FormService = service.NewFormService(
		c.ReferenceService,
		service.NewQueueSubmissionNotifier(c.QueueClient),
		service.FormServiceOptions{
			IDStrategy:  formCfg.IDStrategy,
			SessionTTL:  time.Duration(formCfg.SessionTTLMinutes) * time.Minute,
			MaxSessions: formCfg.MaxSessions,
		},
	)
	c.UploadService = service.NewUploadService(c.Config.Upload)
	c.Formatter = service.NewDisplayFormatter(formCfg.CurrencyPrefix, formCfg.DisplayLocale)
}
