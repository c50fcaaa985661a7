package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/classifier"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/config"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/email"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/genai"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/ocr"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/ratelimit"
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/http/middleware"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
	"github.com/helpdesk-ai/helpdesk/internal/shared/services/markdown"
)

// allUseCases holds the use case instances used by the handlers.
type allUseCases struct {
	submitTicketUC      *usecases.SubmitTicketUseCase
	submitImageTicketUC *usecases.SubmitImageTicketUseCase
	listTicketsUC       *usecases.ListTicketsUseCase
	getTicketImageUC    *usecases.GetTicketImageUseCase
}

func (c *Container) initUseCases() error {
	cfg := c.cfg
	log := c.log

	clf, err := classifier.Load(cfg.Classifier, log.Named("classifier"))
	if err != nil {
		return fmt.Errorf("failed to load classifier: %w", err)
	}

	generator, err := genai.NewFromConfig(cfg.Generator, log.Named("genai"))
	if err != nil {
		return fmt.Errorf("failed to initialize resolution generator: %w", err)
	}

	extractor, err := ocr.NewFromConfig(cfg.OCR, log.Named("ocr"))
	if err != nil {
		return fmt.Errorf("failed to initialize OCR engine: %w", err)
	}

	pipeline := usecases.NewIntakePipeline(clf, generator, extractor, pipelineConfigFrom(cfg), log.Named("pipeline"))
	notifier := newEscalationNotifier(cfg, log)

	c.ucs = &allUseCases{
		submitTicketUC:      usecases.NewSubmitTicketUseCase(pipeline, c.repos.ticketRepo, notifier, log),
		submitImageTicketUC: usecases.NewSubmitImageTicketUseCase(pipeline, c.repos.ocrTicketRepo, notifier, log),
		listTicketsUC: usecases.NewListTicketsUseCase(
			c.repos.ticketRepo,
			c.repos.ocrTicketRepo,
			markdown.NewMarkdownService(),
			cfg.Server.BaseURL,
			log,
		),
		getTicketImageUC: usecases.NewGetTicketImageUseCase(c.repos.ocrTicketRepo, log),
	}

	return nil
}

// pipelineConfigFrom maps the pipeline and generator settings onto the
// intake pipeline's stage bounds.
func pipelineConfigFrom(cfg *config.Config) usecases.PipelineConfig {
	return usecases.PipelineConfig{
		OCRTimeout:         cfg.Pipeline.OCRTimeout,
		ClassifyTimeout:    cfg.Pipeline.ClassifyTimeout,
		GenerateTimeout:    cfg.Generator.Timeout,
		PersistTimeout:     cfg.Pipeline.PersistTimeout,
		StoreNullOnFailure: cfg.Generator.FailureMode == config.FailureModeNull,
	}
}

// newEscalationNotifier returns an untyped nil when notifications are off so
// the use cases can skip dispatch with a plain nil check.
func newEscalationNotifier(cfg *config.Config, log logger.Interface) usecases.EscalationNotifier {
	mailer := email.NewFromConfig(cfg.Notify, cfg.Server.BaseURL, log.Named("notify"))
	if mailer == nil {
		return nil
	}
	return mailer
}

// initRedis creates the Redis client backing the submit rate limiter. An
// unreachable Redis is logged; the limiter then lets requests through.
func initRedis(ctx context.Context, cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, rate limiting will fail open", "addr", cfg.Redis.GetAddr(), "error", err)
		return redisClient
	}
	log.Infow("Redis connection established successfully")

	return redisClient
}

func newRateLimiter(client *redis.Client, cfg *config.Config, log logger.Interface) *middleware.RateLimiter {
	return middleware.NewRateLimiter(
		ratelimit.NewRedisRateLimiter(client),
		ratelimit.Limit{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window},
		log.Named("ratelimit"),
	)
}
