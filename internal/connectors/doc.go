// Package connectors holds adapters for the places documents come from.
// Only the local filesystem is supported.
package connectors
