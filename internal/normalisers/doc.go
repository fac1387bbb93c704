// Package normalisers provides the per-format text extractors used by the
// document loader. Each extractor knows how to pull positioned fragments
// out of one file format.
//
// Extractors are registered with the loader at startup. This package holds
// the helpers they share: page and paragraph splitting for plain text, and
// the command runner used by the extractors that shell out.
package normalisers
