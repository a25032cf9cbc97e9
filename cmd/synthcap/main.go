// Package main is the entry point for the synthcap dataset generator.
// It runs the capture loop over a small demo scene on the configured
// viewport backend: the built-in software renderer by default, or the
// offscreen OpenGL target with viewport.backend "gl" (flag -viewport gl). Engine
// integrations supply their own scene graph and viewport and invoke the
// capture core directly.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/synthcap/internal/capture"
	"github.com/Faultbox/synthcap/internal/config"
	"github.com/Faultbox/synthcap/internal/logger"
	"github.com/Faultbox/synthcap/internal/persist"
	"github.com/Faultbox/synthcap/internal/render/glview"
	"github.com/Faultbox/synthcap/internal/render/soft"
	"github.com/Faultbox/synthcap/internal/scene"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Synthcap ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	world, err := scene.Discover(demoGraph())
	if err != nil {
		logger.Error("failed to build scene", zap.Error(err))
		os.Exit(1)
	}

	view, mats, closeView, err := buildViewport(cfg, world)
	if err != nil {
		logger.Error("failed to create viewport", zap.Error(err))
		os.Exit(1)
	}
	defer closeView()

	ctrl, err := capture.NewController(cfg, world, view, mats, persist.NewFSStore(), logger.Log)
	if err != nil {
		logger.Error("failed to prepare capture run", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Run(ctx); err != nil {
		logger.Error("capture run failed", zap.Error(err), zap.Int("completed_frames", ctrl.Frame()))
		os.Exit(1)
	}

	logger.Info("dataset written", zap.String("dir", cfg.Output.Dir), zap.Int("frames", ctrl.Frame()))
}

// buildViewport creates the configured viewport backend. The software
// renderer doubles as the material system; the GL viewport pairs with a
// standalone override set and the launcher's clear-only draw callback,
// which engine integrations replace with their own drawing.
func buildViewport(cfg *config.Config, world *scene.World) (scene.Viewport, scene.MaterialSystem, func(), error) {
	switch cfg.Viewport.Backend {
	case "gl":
		view, err := glview.New("synthcap", glview.ClearDraw(24, 26, 32))
		if err != nil {
			return nil, nil, nil, err
		}
		return view, scene.NewOverrideSet(), view.Close, nil
	default:
		renderer := soft.New(world)
		return renderer, renderer, func() {}, nil
	}
}

// demoGraph builds the default scene: a ground backdrop plus three
// trackable primitives.
func demoGraph() scene.Graph {
	return scene.NewStaticGraph(
		&scene.Object{Name: "Ground", BaseColor: [3]uint8{70, 72, 75}},
		&scene.Object{Name: "Cube", Trackable: true, BaseColor: [3]uint8{200, 160, 40}},
		&scene.Object{Name: "Cylinder", Trackable: true, BaseColor: [3]uint8{80, 140, 220}},
		&scene.Object{Name: "Sphere", Trackable: true, BaseColor: [3]uint8{190, 70, 120}},
	)
}
