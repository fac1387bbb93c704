package services

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyStoreBackend     = "store.backend"
	keyStorePath        = "store.path"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMTemperature   = "llm.temperature"
	keySumProvider      = "summarizer.provider"
	keySumModel         = "summarizer.model"
	keySumBaseURL       = "summarizer.base_url"
	keySumAPIKey        = "summarizer.api_key"
	keySumTemperature   = "summarizer.temperature"
	keyChunkSize        = "chunking.chunk_size"
	keyChunkOverlap     = "chunking.chunk_overlap"
	keyNEREnabled       = "ner.enabled"
	keyOCRLanguages     = "ocr.languages"
	keyOCRMinConfidence = "ocr.min_confidence"
	keyQATopK           = "qa.top_k"
	keyRateRPS          = "rate_limit.requests_per_second"
	keyRateBurst        = "rate_limit.burst"
)

// defaultOllamaURL is set for local providers that have no base URL yet.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend: s.getBackend(defaults.Store.Backend),
			Path:    s.configStore.GetString(keyStorePath),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider:    s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:       s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL),
			APIKey:      s.configStore.GetString(keyLLMAPIKey),
			Temperature: s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
		},
		Summarizer: domain.LLMSettings{
			Provider:    s.getProvider(keySumProvider, defaults.Summarizer.Provider),
			Model:       s.getString(keySumModel, defaults.Summarizer.Model),
			BaseURL:     s.configStore.GetString(keySumBaseURL),
			APIKey:      s.configStore.GetString(keySumAPIKey),
			Temperature: s.getFloat(keySumTemperature, defaults.Summarizer.Temperature),
		},
		Chunking: domain.ChunkingSettings{
			ChunkSize:    s.getInt(keyChunkSize, defaults.Chunking.ChunkSize),
			ChunkOverlap: s.getInt(keyChunkOverlap, defaults.Chunking.ChunkOverlap),
		},
		NER: domain.NERSettings{
			Enabled: s.getBool(keyNEREnabled, defaults.NER.Enabled),
		},
		OCR: domain.OCRSettings{
			Languages:     s.getStringSlice(keyOCRLanguages, defaults.OCR.Languages),
			MinConfidence: s.getFloat(keyOCRMinConfidence, defaults.OCR.MinConfidence),
		},
		QA: domain.QASettings{
			TopK: s.getInt(keyQATopK, defaults.QA.TopK),
		},
		RateLimit: domain.RateLimitSettings{
			RequestsPerSecond: s.getFloat(keyRateRPS, defaults.RateLimit.RequestsPerSecond),
			Burst:             s.getInt(keyRateBurst, defaults.RateLimit.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
// API keys are only written when set so that saving never erases them.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyStoreBackend, string(settings.Store.Backend)},
		{keyStorePath, settings.Store.Path},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedAPIKey, settings.Embedding.APIKey},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMAPIKey, settings.LLM.APIKey},
		{keyLLMTemperature, settings.LLM.Temperature},
		{keySumProvider, settings.Summarizer.Provider.String()},
		{keySumModel, settings.Summarizer.Model},
		{keySumBaseURL, settings.Summarizer.BaseURL},
		{keySumAPIKey, settings.Summarizer.APIKey},
		{keySumTemperature, settings.Summarizer.Temperature},
		{keyChunkSize, settings.Chunking.ChunkSize},
		{keyChunkOverlap, settings.Chunking.ChunkOverlap},
		{keyNEREnabled, settings.NER.Enabled},
		{keyOCRLanguages, settings.OCR.Languages},
		{keyOCRMinConfidence, settings.OCR.MinConfidence},
		{keyQATopK, settings.QA.TopK},
		{keyRateRPS, settings.RateLimit.RequestsPerSecond},
		{keyRateBurst, settings.RateLimit.Burst},
	}

	for _, v := range values {
		if isAPIKey(v.key) && v.value == "" {
			continue
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

func isAPIKey(key string) bool {
	return key == keyEmbedAPIKey || key == keyLLMAPIKey || key == keySumAPIKey
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}

	// Local providers need a base URL; cloud providers use their own.
	if provider.IsLocal() {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = defaultOllamaURL
		}
	} else {
		settings.Embedding.BaseURL = ""
	}
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that current settings are usable for ingestion and QA.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider %q is not configured",
			domain.ErrInvalidInput, settings.Embedding.Provider)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: LLM provider %q is not configured",
			domain.ErrInvalidInput, settings.LLM.Provider)
	}
	if !settings.Summarizer.IsConfigured() {
		return fmt.Errorf("%w: summarizer provider %q is not configured",
			domain.ErrInvalidInput, settings.Summarizer.Provider)
	}
	if settings.Chunking.ChunkOverlap >= settings.Chunking.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidInput, settings.Chunking.ChunkOverlap, settings.Chunking.ChunkSize)
	}
	if settings.OCR.MinConfidence < 0 || settings.OCR.MinConfidence > 1 {
		return fmt.Errorf("%w: OCR min confidence %.2f outside [0,1]",
			domain.ErrInvalidInput, settings.OCR.MinConfidence)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	backend := domain.StoreBackend(s.configStore.GetString(keyStoreBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
