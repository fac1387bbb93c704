// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML configuration with .env and environment overrides
//   - PromptStore: user-editable prompt templates with embedded defaults
package file
