// pkg/camera/store.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package camera

import (
	"sync"

	"github.com/towerview3d/towerview/pkg/event"
	"github.com/towerview3d/towerview/pkg/log"
	"github.com/towerview3d/towerview/pkg/math"

	"github.com/brunoga/deep"
)

// AircraftProvider is the lookup contract to the traffic-feed component:
// geographic state of an aircraft by callsign.
type AircraftProvider interface {
	AircraftPosition(callsign string) (lat, lon float64, ok bool)
}

// AirportDefaults supplies external per-airport override data (tower
// heading, sensible top-down altitude) used when synthesizing a fresh
// viewport for an airport with no saved configuration.
type AirportDefaults interface {
	DefaultView(icao string) (heading, topdownAltitude float32, ok bool)
}

// Store is the viewport/camera state machine.  It owns all mutation
// logic; every mutating operation applies to the currently active
// viewport unless stated otherwise, commits synchronously, and posts to
// the event stream so the persistence layer and traffic feed can react
// from the frame loop.
//
// The viewports slice is replaced wholesale on every update (never
// mutated in place) so equality-based change detection stays correct.
type Store struct {
	mu sync.Mutex

	viewports      []Viewport
	activeID       string
	nextInsetID    int
	currentAirport string
	airportConfigs map[string]*AirportConfig
	orbit          OrbitSettings

	aircraft AircraftProvider // may be nil
	airports AirportDefaults  // may be nil
	events   *event.Stream
	lg       *log.Logger
}

func NewStore(events *event.Stream, aircraft AircraftProvider, airports AirportDefaults, lg *log.Logger) *Store {
	s := &Store{
		viewports:      []Viewport{{ID: MainViewportID, Layout: fullFrameLayout(), Camera: DefaultCameraState()}},
		activeID:       MainViewportID,
		nextInsetID:    1,
		airportConfigs: make(map[string]*AirportConfig),
		orbit:          DefaultOrbitSettings(),
		aircraft:       aircraft,
		airports:       airports,
		events:         events,
		lg:             lg,
	}
	return s
}

///////////////////////////////////////////////////////////////////////////
// selectors

// Viewports returns a copy of the live viewport list.
func (s *Store) Viewports() []Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deep.MustCopy(s.viewports)
}

func (s *Store) ActiveViewportID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// ActiveCamera returns the active viewport's camera state, or a freshly
// constructed default if there is no active viewport; callers never see a
// nil/zero camera.
func (s *Store) ActiveCamera() CameraState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.activeIndexLocked(); i >= 0 {
		return deep.MustCopy(s.viewports[i].Camera)
	}
	return DefaultCameraState()
}

// ViewportCamera returns the camera state for a specific viewport.
func (s *Store) ViewportCamera(id string) (CameraState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, vp := range s.viewports {
		if vp.ID == id {
			return deep.MustCopy(vp.Camera), true
		}
	}
	return DefaultCameraState(), false
}

func (s *Store) CurrentAirport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentAirport
}

func (s *Store) OrbitSettings() OrbitSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orbit
}

///////////////////////////////////////////////////////////////////////////
// internal plumbing

func (s *Store) activeIndexLocked() int {
	for i, vp := range s.viewports {
		if vp.ID == s.activeID {
			return i
		}
	}
	return -1
}

// updateActive rebuilds the viewport slice with fn applied to the active
// viewport's camera.  A missing active viewport makes the operation a
// silent no-op.
func (s *Store) updateActive(fn func(*CameraState)) {
	s.mu.Lock()

	i := s.activeIndexLocked()
	if i < 0 {
		s.mu.Unlock()
		s.lg.Debug("camera mutation with no active viewport; ignoring")
		return
	}

	vps := make([]Viewport, len(s.viewports))
	copy(vps, s.viewports)
	cam := deep.MustCopy(vps[i].Camera)
	fn(&cam)
	enforceModeInvariant(&cam)
	vps[i].Camera = cam
	s.viewports = vps

	s.mu.Unlock()
	s.committed(true)
}

// committed posts the post-mutation events; viewports reports whether the
// live viewport list (contents, membership or active id) changed.
func (s *Store) committed(viewports bool) {
	s.events.Post(event.Event{Type: event.CameraCommittedEvent})
	if viewports {
		s.events.Post(event.Event{Type: event.ViewportsChangedEvent})
	}
}

// enforceModeInvariant redirects the one unreachable state: tower-follow
// while top-down always coerces the follow mode to orbit.
func enforceModeInvariant(c *CameraState) {
	if c.ViewMode == ViewTopdown && c.FollowMode == FollowTower {
		c.FollowMode = FollowOrbit
	}
	if c.FollowingCallsign == "" {
		c.PreFollow = nil
	}

	// All range normalization happens here, once per committed mutation,
	// so setters and delta-adjusters can't disagree about clamping.
	c.Heading = math.NormalizeHeading(c.Heading)
	c.Pitch = math.Clamp(c.Pitch, PitchMin, PitchMax)
	c.FOV = math.Clamp(c.FOV, FOVMin, FOVMax)
	c.TopdownAltitude = math.Clamp(c.TopdownAltitude, TopdownAltitudeMin, TopdownAltitudeMax)
	c.FollowZoom = math.Clamp(c.FollowZoom, FollowZoomMin, FollowZoomMax)
	c.OrbitDistance = math.Clamp(c.OrbitDistance, OrbitDistanceMin, OrbitDistanceMax)
	c.OrbitHeading = math.NormalizeHeading(c.OrbitHeading)
	c.OrbitPitch = math.Clamp(c.OrbitPitch, OrbitPitchMin, OrbitPitchMax)
	if c.LookAt != nil {
		c.LookAt.Heading = math.NormalizeHeading(c.LookAt.Heading)
		c.LookAt.Pitch = math.Clamp(c.LookAt.Pitch, PitchMin, PitchMax)
	}
}
