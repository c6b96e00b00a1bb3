// Package tui implements the interactive timeline editor. It wires
// terminal mouse and key events into the interaction state machine and
// paints the computed layout as styled text rows.
package tui

import (
	"github.com/framecut/framecut/internal/core/config"
	"github.com/framecut/framecut/internal/store/jsonfile"
)

// Deps are the services the editor needs.
type Deps struct {
	Config *config.Config
	Store  *jsonfile.ProjectStore
	// Reload delivers external-change events for the project file.
	// Optional; nil disables live reload.
	Reload <-chan jsonfile.ReloadEvent
}

// Opts configures editor behavior.
type Opts struct {
	// Warnings are startup notices shown in the status bar.
	Warnings []string
}
