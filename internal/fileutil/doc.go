// Package fileutil provides the filesystem primitives used by the processing
// pass: streamed copies, cross-device-safe moves, zip extraction, and
// directory flattening.
package fileutil
