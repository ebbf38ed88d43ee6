// renderloop.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"time"

	"github.com/towerview3d/towerview/pkg/log"
	"github.com/towerview3d/towerview/pkg/scene"
	"github.com/towerview3d/towerview/pkg/settings"
)

const targetFrameRate = 60

// runFrameLoop drives the per-frame work: camera synchronization between
// the two engines and the persistence layer's event drain.  When running
// inside the desktop shell the shell's render loop calls these directly;
// this ticker-based loop serves headless operation.
func runFrameLoop(ctx context.Context, syncer *scene.Syncer, manager *settings.Manager, lg *log.Logger) {
	ticker := time.NewTicker(time.Second / targetFrameRate)
	defer ticker.Stop()

	lastReport := time.Now()
	frames := 0

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			syncer.SyncFrame()
			manager.Update()

			frames++
			if time.Since(lastReport) > time.Minute {
				lg.Debugf("%d frames in the last minute", frames)
				frames = 0
				lastReport = time.Now()
			}
		}
	}
}
