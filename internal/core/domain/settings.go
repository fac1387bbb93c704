package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API or any compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// StoreBackend selects the vector store implementation.
type StoreBackend string

// Available store backends.
const (
	StoreBackendSQLite StoreBackend = "sqlite"
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	return b == StoreBackendSQLite || b == StoreBackendMemory
}

// StoreSettings holds vector store configuration.
type StoreSettings struct {
	// Backend is the store implementation.
	Backend StoreBackend

	// Path is the data directory for persistent backends.
	Path string
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint. Empty uses the provider default.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.Provider.IsValid() && !missingKey(e.Provider, e.BaseURL, e.APIKey)
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint. Empty uses the provider default.
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Temperature is the sampling temperature.
	Temperature float64
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	return l.Provider.IsValid() && !missingKey(l.Provider, l.BaseURL, l.APIKey)
}

// missingKey reports whether a required API key is absent. An OpenAI
// provider pointed at a custom base URL is a compatible server and may
// run without one.
func missingKey(p AIProvider, baseURL, apiKey string) bool {
	if !p.RequiresAPIKey() || apiKey != "" {
		return false
	}
	return p != AIProviderOpenAI || baseURL == ""
}

// ChunkingSettings bounds the size of stored chunks.
type ChunkingSettings struct {
	ChunkSize    int
	ChunkOverlap int
}

// NERSettings toggles entity enrichment of chunks.
type NERSettings struct {
	Enabled bool
}

// OCRSettings configures image text extraction.
type OCRSettings struct {
	// Languages are tesseract language codes, e.g. "eng", "rus".
	Languages []string

	// MinConfidence drops spans at or below this confidence.
	MinConfidence float64
}

// QASettings configures question answering.
type QASettings struct {
	// TopK is the number of chunks retrieved per question.
	TopK int
}

// RateLimitSettings throttles calls to AI providers.
type RateLimitSettings struct {
	RequestsPerSecond float64
	Burst             int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Store      StoreSettings
	Embedding  EmbeddingSettings
	LLM        LLMSettings
	Summarizer LLMSettings
	Chunking   ChunkingSettings
	NER        NERSettings
	OCR        OCRSettings
	QA         QASettings
	RateLimit  RateLimitSettings
}

// Defaults shared by adapters and services.
const (
	DefaultTopK              = 5
	DefaultChunkSize         = 1000
	DefaultChunkOverlap      = 200
	DefaultOCRMinConfidence  = 0.3
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 5
	DefaultSummaryTemp       = 0.2
)

// DefaultAppSettings returns settings with sensible defaults.
// Both AI providers default to a local Ollama instance.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Backend: StoreBackendSQLite,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    DefaultEmbeddingModels()[AIProviderOllama],
		},
		LLM: LLMSettings{
			Provider: AIProviderOllama,
			Model:    DefaultLLMModels()[AIProviderOllama],
		},
		Summarizer: LLMSettings{
			Provider:    AIProviderOllama,
			Model:       "gemma3:4b",
			Temperature: DefaultSummaryTemp,
		},
		Chunking: ChunkingSettings{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
		},
		OCR: OCRSettings{
			Languages:     []string{"eng", "rus"},
			MinConfidence: DefaultOCRMinConfidence,
		},
		QA: QASettings{
			TopK: DefaultTopK,
		},
		RateLimit: RateLimitSettings{
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
// The defaults follow the query/passage prefix convention.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "jeffh/intfloat-multilingual-e5-large:f16",
		AIProviderOpenAI: "intfloat/multilingual-e5-large",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"jeffh/intfloat-multilingual-e5-large:f16": 1024,
		"intfloat/multilingual-e5-large":           1024,
		"intfloat/multilingual-e5-base":            768,
		"nomic-embed-text":                         768,
		"text-embedding-3-small":                   1536,
	}
}
