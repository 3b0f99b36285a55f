// Package main hosts the assetassist CLI entrypoint and command graph.
//
// The Cobra-based command tree runs a single processing pass by default and
// surfaces configuration scaffolding and notification testing as
// subcommands. Configuration resolution and logger setup are centralized so
// subcommands stay declarative; the processing logic lives in the internal
// packages.
package main
