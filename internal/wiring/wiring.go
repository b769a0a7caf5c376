// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/retarget/internal/adapters/cas"
	_ "go.trai.ch/retarget/internal/adapters/config"
	_ "go.trai.ch/retarget/internal/adapters/fs"
	_ "go.trai.ch/retarget/internal/adapters/logger"
	_ "go.trai.ch/retarget/internal/adapters/report"
	_ "go.trai.ch/retarget/internal/adapters/repository"
	_ "go.trai.ch/retarget/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/retarget/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/retarget/internal/app"
	_ "go.trai.ch/retarget/internal/engine/retarget"
)
