// Package sqlite provides a SQLite-based implementation of driven.VectorStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Two tables hold the data:
//
//   - document_objects: One parent row per distinct content hash (UNIQUE)
//   - document_chunks: Chunk rows with their embedding, referencing a parent
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Search
//
// Similarity search is exact: every chunk vector is compared with the query
// using cosine distance and the closest chunks are returned.
//
// # Data Location
//
// By default, the database is stored at ~/.documind/data/documind.db
package sqlite
