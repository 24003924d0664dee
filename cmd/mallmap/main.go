// Package main is the entry point for the mall map viewer.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/mallmap/internal/app"
	"github.com/Faultbox/mallmap/internal/config"
	"github.com/Faultbox/mallmap/internal/engine/renderer"
	"github.com/Faultbox/mallmap/internal/engine/ui2d"
	"github.com/Faultbox/mallmap/internal/engine/window"
	"github.com/Faultbox/mallmap/internal/logger"
	"github.com/Faultbox/mallmap/internal/mall"
)

const windowTitle = "Mall Map"

func init() {
	// SDL and GL calls must stay on the main OS thread
	runtime.LockOSThread()
}

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("config written to", config.ConfigDir())
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Mall Map ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	scene, err := mall.BuildDefault()
	if err != nil {
		logger.Fatal("invalid scene tables", zap.Error(err))
	}

	if err := run(cfg, scene); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config, scene *mall.Scene) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	// Fullscreen windows and window managers may not honor the requested size
	cfg.Graphics.Width, cfg.Graphics.Height = win.GetSize()

	font := ui2d.NewFont()

	// Renderer AFTER window, since OpenGL context must exist
	r, err := renderer.New(renderer.Config{
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		MSAA:         cfg.Graphics.MSAA > 0,
		DrawableSize: win.DrawableSize,
	}, scene, font)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Close()

	viewer, err := app.New(cfg, scene, r, font)
	if err != nil {
		return err
	}
	viewer.Run(win)
	return nil
}
