package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/johnquangdev/legalmind/pkg/config"
	"github.com/johnquangdev/legalmind/pkg/metrics"
)

// SystemPrompt frames every completion request
const SystemPrompt = "You are a specialized legal AI assistant for corporate legal departments."

const (
	defaultModel       = "gpt-4"
	defaultTemperature = 0.2
	defaultMaxTokens   = 1000
	defaultRateLimit   = 3.0
	defaultBurst       = 1
	defaultTimeout     = 60 * time.Second
)

// contentGenerator is the slice of llms.Model the client needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// OpenAIClient issues chat completions through langchaingo's OpenAI provider
type OpenAIClient struct {
	llm         contentGenerator
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	limiter     *rate.Limiter
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewOpenAIClient creates a completion client from cfg
func NewOpenAIClient(cfg *config.OpenAIConfig, m *metrics.Metrics, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("openai config is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithToken(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}

	return newOpenAIClient(llm, cfg, model, m, logger), nil
}

func newOpenAIClient(llm contentGenerator, cfg *config.OpenAIConfig, model string, m *metrics.Metrics, logger *zap.Logger) *OpenAIClient {
	c := &OpenAIClient{
		llm:         llm,
		model:       model,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		timeout:     defaultTimeout,
		limiter:     rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		metrics:     m,
		logger:      logger,
	}
	if cfg.Temperature > 0 {
		c.temperature = cfg.Temperature
	}
	if cfg.MaxTokens > 0 {
		c.maxTokens = cfg.MaxTokens
	}
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = defaultBurst
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// Model returns the configured model name
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends prompt as the user message and returns the trimmed answer
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, SystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	start := time.Now()
	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err == nil && (resp == nil || len(resp.Choices) == 0) {
		err = fmt.Errorf("empty response from openai")
	}
	c.metrics.ObserveCompletion(c.model, time.Since(start), err)

	if err != nil {
		if c.logger != nil {
			c.logger.Warn("⚠️ OpenAI completion failed",
				zap.String("model", c.model),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
		}
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug("✅ OpenAI completion received",
			zap.String("model", c.model),
			zap.Duration("duration", time.Since(start)),
			zap.Int("length", len(resp.Choices[0].Content)),
		)
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
