// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - VectorStore: Parent/child persistence and similarity search
//   - DocumentLoader: Turns a file into positioned text fragments
//   - Extractor: Per-format text extraction used by the loader
//   - EmbeddingService: Generates query and passage vectors
//   - LLMService: Answers questions and writes summaries
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EntityExtractor: Named-entity tagging of chunks. Without it, chunks carry no entities.
//   - PromptStore: Editable prompt templates. Without it, built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or postprocessor package
package driven
