// Package textutil provides string normalization helpers shared by the
// matching pipeline: title variants, fold keys, similarity fingerprints,
// and filename sanitizing.
package textutil
