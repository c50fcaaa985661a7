// Package genai drafts ticket resolutions with a hosted chat model.
package genai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/shared/config"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	defaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
)

type providerDefaults struct {
	baseURL string
	model   string
}

// An empty anthropic baseURL keeps the SDK's own endpoint.
var defaultsByProvider = map[string]providerDefaults{
	ProviderGroq:      {baseURL: defaultGroqBaseURL, model: "llama3-70b-8192"},
	ProviderOpenAI:    {baseURL: defaultOpenAIBaseURL, model: "gpt-4o-mini"},
	ProviderAnthropic: {baseURL: "", model: "claude-sonnet-4-5-20250929"},
}

// resolveProvider fills a blank base URL and model from the provider's
// defaults. Explicit settings are kept as they are.
func resolveProvider(cfg config.GeneratorConfig) (config.GeneratorConfig, error) {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	defaults, ok := defaultsByProvider[cfg.Provider]
	if !ok {
		return cfg, fmt.Errorf("unsupported generator provider %q", cfg.Provider)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaults.baseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaults.model
	}
	return cfg, nil
}

// Generator turns a classified ticket into a resolution. It never returns an
// error: every failure becomes a failed ticket.Resolution.
type Generator struct {
	client  CompletionClient
	prompt  Prompt
	timeout time.Duration
	logger  logger.Interface
}

// NewGenerator accepts a nil client, in which case every call fails with a
// configuration reason.
func NewGenerator(client CompletionClient, prompt Prompt, timeout time.Duration, logger logger.Interface) *Generator {
	return &Generator{
		client:  client,
		prompt:  prompt,
		timeout: timeout,
		logger:  logger,
	}
}

// NewFromConfig builds the configured provider. A missing API key is not an
// error here; it surfaces as failed resolutions at request time.
func NewFromConfig(cfg config.GeneratorConfig, log logger.Interface) (*Generator, error) {
	cfg, err := resolveProvider(cfg)
	if err != nil {
		return nil, err
	}

	prompt, err := LoadPrompt(cfg.PromptFile)
	if err != nil {
		return nil, err
	}

	sampling := Sampling{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		MaxTokens:   cfg.MaxTokens,
	}

	var client CompletionClient
	if strings.TrimSpace(cfg.APIKey) == "" {
		log.Warnw("generator API key not configured, resolutions will be marked failed", "provider", cfg.Provider)
	} else {
		switch cfg.Provider {
		case ProviderGroq, ProviderOpenAI:
			client = NewOpenAIClient(cfg.Provider, cfg.BaseURL, cfg.APIKey, sampling, &http.Client{Timeout: cfg.Timeout})
		case ProviderAnthropic:
			client = NewAnthropicClient(cfg.APIKey, cfg.BaseURL, sampling)
		}
	}

	log.Infow("resolution generator configured",
		"provider", cfg.Provider,
		"base_url", cfg.BaseURL,
		"model", cfg.Model,
		"timeout", cfg.Timeout,
	)

	return NewGenerator(client, prompt, cfg.Timeout, log), nil
}

func (g *Generator) Generate(ctx context.Context, req ticket.ResolutionRequest) ticket.Resolution {
	if g.client == nil {
		return ticket.FailedResolution("API key not configured")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := g.client.Complete(ctx, g.prompt.System, g.prompt.Render(req))
	if err != nil {
		g.logger.Warnw("resolution generation failed",
			"provider", g.client.Name(),
			"duration", time.Since(start),
			"error", err,
		)
		return ticket.FailedResolution(err.Error())
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ticket.FailedResolution("empty response from model")
	}

	g.logger.Debugw("resolution generated",
		"provider", g.client.Name(),
		"duration", time.Since(start),
		"length", len(reply),
	)
	return ticket.GeneratedResolution(reply)
}
