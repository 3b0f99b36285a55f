// Package services holds the shared error classification used across the
// processing pipeline.
package services
