// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/haul/internal/adapters/archive"
	_ "go.trai.ch/haul/internal/adapters/config"
	_ "go.trai.ch/haul/internal/adapters/lockfile"
	_ "go.trai.ch/haul/internal/adapters/logger"
	_ "go.trai.ch/haul/internal/adapters/manifest"
	_ "go.trai.ch/haul/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/haul/internal/app"
)
