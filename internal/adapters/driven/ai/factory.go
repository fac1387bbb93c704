// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/documind/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/documind/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/custodia-labs/documind/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/documind/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/documind/internal/adapters/driven/llm/openai"
	llmner "github.com/custodia-labs/documind/internal/adapters/driven/ner/llm"
	"github.com/custodia-labs/documind/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult holds the AI services wired for one process.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	SummaryLLM       driven.LLMService      // Nil when the summarizer is unreachable.
	EntityExtractor  driven.EntityExtractor // Nil unless NER is enabled.
	Limiter          *ratelimit.Limiter     // Shared by every provider client.
	Warnings         []string               // Non-fatal issues that disabled optional services.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
	if r.SummaryLLM != nil && r.SummaryLLM != r.LLMService {
		r.SummaryLLM.Close()
	}
}

// NewLimiter builds the shared provider limiter from settings.
func NewLimiter(settings domain.RateLimitSettings) *ratelimit.Limiter {
	return ratelimit.New(ratelimit.Config{
		RequestsPerSecond: settings.RequestsPerSecond,
		Burst:             settings.Burst,
	})
}

// Init creates and validates every AI service the settings describe.
// Embedding and answer LLM are required. The summarizer and the entity
// extractor are optional: their failures become warnings.
func Init(settings *domain.AppSettings) (*InitResult, error) {
	result := &InitResult{Limiter: NewLimiter(settings.RateLimit)}

	embedder, err := CreateAndValidateEmbeddingService(&settings.Embedding, result.Limiter)
	if err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedding provider %q is not configured",
			domain.ErrEmbeddingUnavailable, settings.Embedding.Provider)
	}
	result.EmbeddingService = embedder

	llm, err := CreateAndValidateLLMService(&settings.LLM, result.Limiter)
	if err != nil {
		result.Close()
		return nil, err
	}
	if llm == nil {
		result.Close()
		return nil, fmt.Errorf("%w: LLM provider %q is not configured",
			domain.ErrLLMUnavailable, settings.LLM.Provider)
	}
	result.LLMService = llm

	summary, err := CreateAndValidateLLMService(&settings.Summarizer, result.Limiter)
	switch {
	case err != nil:
		result.warn("summaries disabled: %v", err)
	case summary == nil:
		result.warn("summaries disabled: summarizer provider %q is not configured", settings.Summarizer.Provider)
	default:
		result.SummaryLLM = summary
	}

	if settings.NER.Enabled {
		extractor, err := llmner.New(result.LLMService)
		if err != nil {
			result.warn("entity extraction disabled: %v", err)
		} else {
			result.EntityExtractor = extractor
		}
	}

	return result, nil
}

func (r *InitResult) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	logger.Warn("%s", msg)
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(
	settings *domain.EmbeddingSettings,
	limiter *ratelimit.Limiter,
) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateEmbeddingService(settings, limiter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Check the [embedding] section of your config",
			domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Check the [embedding] section of your config",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings, limiter *ratelimit.Limiter) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(settings, limiter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %s unreachable (%w)", domain.ErrLLMUnavailable, settings.Model, err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateEmbeddingService(settings, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(settings, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured. A nil limiter disables throttling.
func CreateEmbeddingService(settings *domain.EmbeddingSettings, limiter *ratelimit.Limiter) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: domain.EmbeddingDimensions()[settings.Model],
			Limiter:    limiter,
		}), nil

	case domain.AIProviderOpenAI:
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: domain.EmbeddingDimensions()[settings.Model],
			Limiter:    limiter,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderAnthropic:
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured. A nil limiter disables throttling.
func CreateLLMService(settings *domain.LLMSettings, limiter *ratelimit.Limiter) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Limiter: limiter,
		}), nil

	case domain.AIProviderOpenAI:
		svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Limiter: limiter,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderAnthropic:
		svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Limiter: limiter,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
