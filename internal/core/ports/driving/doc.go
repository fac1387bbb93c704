// Package driving defines the interfaces the CLI, the MCP server and the
// chat TUI use to ingest documents, ask questions and manage settings.
// Implementations live in internal/core/services.
package driving
