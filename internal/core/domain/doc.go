// Package domain defines the core business entities for DocuMind.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentObject: The stored parent record for an ingested file
//   - DocumentChunk: A stored, embedded fragment linked to its parent
//   - LoadedDocument: The transient result of loading a file
//   - ExtractionResult: Named entities found in a piece of text
//   - Answer: A generated answer with its source attribution
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
