// Package logging configures slog output for the CLI: a console handler for
// interactive runs, a JSON handler for machine consumption, and shared
// attribute helpers.
package logging
