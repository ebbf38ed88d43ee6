// pkg/settings/manager.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package settings

import (
	"sync"
	"time"

	"github.com/towerview3d/towerview/pkg/camera"
	"github.com/towerview3d/towerview/pkg/event"
	"github.com/towerview3d/towerview/pkg/log"
	"github.com/towerview3d/towerview/pkg/util"
)

const (
	// hostSyncDelay debounces camera commits before pushing to the host;
	// continuous adjustments (scroll zoom, drag pan) produce one write per
	// burst instead of one per frame.
	hostSyncDelay = 500 * time.Millisecond
	// localSaveDelay debounces viewport layout changes before the local
	// auto-save.
	localSaveDelay = 2 * time.Second
)

// Manager owns the persistence and sync layer: it hydrates the camera
// store from the local record at startup, runs the one-time migrations,
// and keeps both the local record and the shared host record up to date
// as the store posts mutation events.  Update must be called regularly
// (normally once per frame) to drain the event subscription; the actual
// writes happen on debounce-timer goroutines.
type Manager struct {
	store *camera.Store
	host  HostStore
	dir   string
	lg    *log.Logger

	mu    sync.Mutex
	local *LocalState

	sub          *event.Subscription
	syncDebounce *util.Debouncer
	saveDebounce *util.Debouncer
}

func NewManager(store *camera.Store, host HostStore, es *event.Stream, dir string, lg *log.Logger) *Manager {
	m := &Manager{
		store: store,
		host:  host,
		dir:   dir,
		lg:    lg,
		local: LoadLocalState(dir, lg),
		sub:   es.Subscribe(),
	}
	m.syncDebounce = util.NewDebouncer(hostSyncDelay, m.flushHost)
	m.saveDebounce = util.NewDebouncer(localSaveDelay, m.flushLocal)

	store.Hydrate(m.local.AirportConfigs, m.local.CurrentAirport, m.local.Orbit)
	migrateLegacyBookmarks(m.local, store, dir, lg)

	if host != nil {
		// The host store may not be reachable yet (the HTTP store polls
		// until the host process answers); defer the startup exchange
		// until it is.
		host.OnInitialized(m.hostStartup)
	}
	return m
}

// Update drains the event subscription and kicks the debounce timers.
// It runs on the frame goroutine and returns immediately.
func (m *Manager) Update() {
	for _, ev := range m.sub.Get() {
		switch ev.Type {
		case event.CameraCommittedEvent:
			m.saveDebounce.Kick()
			if m.host != nil {
				m.syncDebounce.Kick()
			}

		case event.ViewportsChangedEvent, event.AirportChangedEvent:
			m.saveDebounce.Kick()
		}
	}
}

// Shutdown flushes any pending debounced writes so the last burst of
// changes isn't lost.
func (m *Manager) Shutdown() {
	m.sub.Unsubscribe()
	m.saveDebounce.Cancel()
	m.syncDebounce.Cancel()

	m.flushLocal()
	if m.host != nil && m.host.Initialized() {
		m.flushHost()
	}
}

// hostStartup runs the one-time startup exchange with the host store:
// if the host has no viewport settings yet, the full local state is
// pushed up once; otherwise the host's per-airport fields are merged
// into the local store.
func (m *Manager) hostStartup() {
	hs, err := m.host.Read()
	if err != nil {
		m.lg.Errorf("unable to read host settings: %v", err)
		return
	}

	m.mu.Lock()
	pushed := m.local.HostPushCompleted
	m.mu.Unlock()

	if hs.Viewports == nil || len(hs.Viewports.AirportConfigs) == 0 {
		if pushed {
			return
		}
		// Fresh host: seed it with everything we have locally.
		m.flushHost()

		m.mu.Lock()
		m.local.HostPushCompleted = true
		m.mu.Unlock()
		m.flushLocal()
		return
	}

	for icao, cfg := range hs.Viewports.AirportConfigs {
		m.store.MergeAirportFields(icao, cfg)
	}

	if !pushed {
		m.mu.Lock()
		m.local.HostPushCompleted = true
		m.mu.Unlock()
	}
	m.flushLocal()
}

// flushLocal snapshots the store into the local record and writes it.
func (m *Manager) flushLocal() {
	configs, current, orbit := m.store.Snapshot()

	m.mu.Lock()
	m.local.AirportConfigs = configs
	m.local.CurrentAirport = current
	m.local.Orbit = orbit
	ls := *m.local
	m.mu.Unlock()

	if err := ls.Save(m.dir, m.lg); err != nil {
		m.lg.Errorf("unable to save viewport state: %v", err)
	}
}

// flushHost rewrites the viewports sub-document of the host settings,
// leaving the host's other sub-documents untouched.
func (m *Manager) flushHost() {
	if m.host == nil || !m.host.Initialized() {
		return
	}

	hs, err := m.host.Read()
	if err != nil {
		m.lg.Errorf("unable to read host settings: %v", err)
		return
	}

	configs, current, orbit := m.store.Snapshot()
	hs.Viewports = &HostViewportSettings{
		AirportConfigs:  configs,
		OrbitSettings:   orbit,
		LastAirportICAO: current,
	}

	if err := m.host.Write(hs); err != nil {
		m.lg.Errorf("unable to write host settings: %v", err)
	}
}
