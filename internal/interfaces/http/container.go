package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/config"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/database"
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/http/middleware"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases and
// handlers of the intake service, wires them together, and releases the
// external connections in Shutdown.
type Container struct {
	// Core infrastructure
	engine    *gin.Engine
	db        *gorm.DB
	cfg       *config.Config
	log       logger.Interface
	redis     *redis.Client
	documents *database.MongoStore

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// nil when rate limiting is disabled
	rateLimiter *middleware.RateLimiter
}

// NewContainer creates a Container with all dependencies wired together.
// Classifier artifacts and the document store are loaded eagerly so a broken
// deployment fails at startup rather than on the first ticket.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Shutdown(context.Background())
		return nil, err
	}

	if err := c.initUseCases(); err != nil {
		c.Shutdown(context.Background())
		return nil, err
	}

	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	if strings.EqualFold(c.cfg.DocumentStore.Driver, "mongo") {
		store, err := database.ConnectMongo(ctx, &c.cfg.DocumentStore)
		if err != nil {
			return fmt.Errorf("failed to initialize document store: %w", err)
		}
		c.documents = store
	}

	c.repos = newRepositories(c.db, c.documents)

	if c.cfg.RateLimit.Enabled {
		c.redis = initRedis(ctx, c.cfg, c.log)
		c.rateLimiter = newRateLimiter(c.redis, c.cfg, c.log)
	}

	return nil
}

// Engine returns the Gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases the document store and Redis connections. The relational
// pool is owned by the database package.
func (c *Container) Shutdown(ctx context.Context) {
	if c.documents != nil {
		if err := c.documents.Close(ctx); err != nil {
			c.log.Errorw("failed to close document store", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close Redis client", "error", err)
		}
	}
}
