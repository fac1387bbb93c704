// Package filesystem resolves local document paths and watches
// directories for files to ingest.
package filesystem
