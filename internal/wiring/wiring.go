// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/aarcache/internal/adapters/aar"
	_ "go.trai.ch/aarcache/internal/adapters/cas"
	_ "go.trai.ch/aarcache/internal/adapters/config"
	_ "go.trai.ch/aarcache/internal/adapters/fs"
	_ "go.trai.ch/aarcache/internal/adapters/logger"
	_ "go.trai.ch/aarcache/internal/adapters/shell"
	_ "go.trai.ch/aarcache/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/aarcache/internal/app"
)
