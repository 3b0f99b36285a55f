// Package organizer places classified assets into library directories using
// the naming convention of the configured media server. Movie and show
// posters rename by aspect ratio, season and episode art follow per-service
// layouts, and anything that cannot be placed reports an error so the caller
// can route the file to the failed directory.
package organizer
