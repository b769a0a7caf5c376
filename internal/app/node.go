package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/retarget/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/adapters/report"             //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/adapters/repository"         //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/retarget/internal/core/ports"
	"go.trai.ch/retarget/internal/engine/retarget"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			retarget.NodeID,
			repository.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			progrock.NodeID,
			report.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	decider, err := graft.Dep[*retarget.Decider](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.RepositoryOpener](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ReportStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.ReportRenderer](ctx)
	if err != nil {
		return nil, err
	}

	fileWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, decider, opener, store, hasher, telemetry, renderer, fileWatcher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
