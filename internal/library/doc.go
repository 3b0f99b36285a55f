// Package library indexes a media-library root directory and resolves asset
// titles to directory names using progressively looser matching: exact
// title/year, title variants, fold-key equality, substring, then fingerprint
// similarity.
package library
