// Package testsupport provides shared fixtures for package tests: configs
// seeded with per-test temp directories, library directory scaffolding, and
// real image files for orientation probing.
package testsupport
