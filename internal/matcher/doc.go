// Package matcher classifies asset filenames into media categories by
// combining filename patterns with library directory lookups.
package matcher
