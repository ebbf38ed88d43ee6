// main.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/towerview3d/towerview/pkg/camera"
	"github.com/towerview3d/towerview/pkg/event"
	"github.com/towerview3d/towerview/pkg/log"
	"github.com/towerview3d/towerview/pkg/scene"
	"github.com/towerview3d/towerview/pkg/settings"
	"github.com/towerview3d/towerview/pkg/terrain"
)

var (
	logLevel  = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir    = flag.String("logdir", "", "log file directory (default: platform config dir)")
	configDir = flag.String("configdir", "", "config file directory (default: platform config dir)")
	hostURL   = flag.String("host", "", "base URL of the shared settings host (default: local file store)")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)
	lg.Infof("launched: %q", os.Args)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventStream := event.NewStream(lg)
	store := camera.NewStore(eventStream, nil /* aircraft */, nil /* airports */, lg)

	var host settings.HostStore
	if *hostURL != "" {
		hs := settings.NewHTTPHostStore(*hostURL, lg)
		hs.Start(ctx)
		host = hs
	}

	manager := settings.NewManager(store, host, eventStream, *configDir, lg)

	offsets := terrain.NewOffsetResolver(nil /* sampler: wired by the engine bridge */, lg)
	syncer := scene.NewSyncer(nil, nil, offsets, lg)

	// Flush pending saves on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	runFrameLoop(ctx, syncer, manager, lg)

	manager.Shutdown()
	lg.Info("exiting")
}
