// Package report tallies the outcome of a processing run and renders it for
// the console and for notification delivery.
package report
