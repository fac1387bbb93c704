// Package html provides an Extractor for HTML documents.
// It extracts readable text content from HTML, stripping tags, scripts,
// styles, and decoding entities. Headings and list items keep their
// element type.
package html
