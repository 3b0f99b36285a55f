// Package notifications delivers run summaries via pluggable notifiers.
//
// The default implementation posts an embed to a Discord webhook and
// gracefully degrades to a no-op when no webhook is configured. Delivery
// failures are reported to the caller for logging but never abort a run.
package notifications
