// Package services implements the driving port interfaces.
//
// IngestService turns a file into a parent document with embedded chunks
// and QAService answers questions from the nearest of those chunks. Both
// reach storage and AI providers only through driven ports.
package services
