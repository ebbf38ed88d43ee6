// pkg/scene/sync_test.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"context"
	gomath "math"
	"testing"
)

type testPrimary struct {
	pos      [3]float64
	dir, up  [3]float64
	heading  float64
	pitch    float64
	fov      float64
	lat, lon float64
	height   float64
}

func (c *testPrimary) PositionECEF() [3]float64    { return c.pos }
func (c *testPrimary) Direction() [3]float64       { return c.dir }
func (c *testPrimary) Up() [3]float64              { return c.up }
func (c *testPrimary) HeadingDegrees() float64     { return c.heading }
func (c *testPrimary) PitchDegrees() float64       { return c.pitch }
func (c *testPrimary) VerticalFOVDegrees() float64 { return c.fov }
func (c *testPrimary) Frustum() FrustumType        { return FrustumPerspective }
func (c *testPrimary) Geodetic() (float64, float64, float64) {
	return c.lat, c.lon, c.height
}

type testSecondary struct {
	pos              [3]float64
	pitch, yaw, roll float64
	fov              float64
	sets             int
}

func (c *testSecondary) SetPosition(p [3]float64) { c.pos = p; c.sets++ }
func (c *testSecondary) SetRotation(pitch, yaw, roll float64) {
	c.pitch, c.yaw, c.roll = pitch, yaw, roll
}
func (c *testSecondary) SetVerticalFOV(deg float64) { c.fov = deg }

type testMarker struct {
	pos [3]float64
}

func (m *testMarker) SetPosition(p [3]float64) { m.pos = p }

type testHideable struct {
	visible bool
}

func (h *testHideable) SetVisible(v bool) { h.visible = v }

func near(a, b float64) bool { return gomath.Abs(a-b) < 1e-6 }

func newTestSyncer(primary *testPrimary, secondary *testSecondary) *Syncer {
	s := NewSyncer(primary, secondary, nil, nil)
	s.SetBasePosition(context.Background(), 37.6188, -122.3756, 100)
	return s
}

func TestSyncFrameNoOpWhenUnwired(t *testing.T) {
	// Missing collaborators must be tolerated silently.
	s := NewSyncer(nil, nil, nil, nil)
	s.SyncFrame()

	s = NewSyncer(&testPrimary{}, &testSecondary{}, nil, nil)
	s.SyncFrame() // no base position yet
}

func Test3DBranch(t *testing.T) {
	primary := &testPrimary{pitch: -70, fov: 55}
	secondary := &testSecondary{}
	s := newTestSyncer(primary, secondary)
	frame := s.ReferenceFrame()

	// Camera 50m above the base, looking local east.
	primary.pos = frame.ToGlobalPoint([3]float64{0, 0, 50})
	primary.dir = frame.ToGlobalDirection([3]float64{1, 0, 0})
	primary.up = frame.ToGlobalDirection([3]float64{0, 0, 1})

	s.SyncFrame()

	// Render frame: x east, y up, z north.
	if !near(secondary.pos[0], 0) || !near(secondary.pos[1], 50) || !near(secondary.pos[2], 0) {
		t.Errorf("position %v, expected (0, 50, 0)", secondary.pos)
	}
	if !near(secondary.pitch, 0) || !near(secondary.yaw, gomath.Pi/2) || !near(secondary.roll, 0) {
		t.Errorf("rotation (%v, %v, %v), expected (0, pi/2, 0)",
			secondary.pitch, secondary.yaw, secondary.roll)
	}
	if secondary.fov != 55 {
		t.Errorf("fov %v, expected copied 55", secondary.fov)
	}
	if s.TopdownCamera().Active {
		t.Error("3D frame left the top-down camera active")
	}
}

func TestTopdownBranch(t *testing.T) {
	primary := &testPrimary{
		pitch:   -85, // at or below the threshold
		fov:     45,
		heading: 270,
		lat:     37.62,
		lon:     -122.38,
		height:  3000,
	}
	secondary := &testSecondary{}
	s := newTestSyncer(primary, secondary)

	decorative := &testHideable{visible: true}
	s.AddDecorativeMesh(decorative)
	fog := &testMarker{}
	s.SetFogMarker(fog)

	s.SyncFrame()

	td := s.TopdownCamera()
	if !td.Active {
		t.Fatal("top-down camera not active at pitch -85")
	}
	if td.Lat != 37.62 || td.Lon != -122.38 || td.Heading != 270 {
		t.Errorf("top-down state %+v", td)
	}

	if !near(secondary.pos[0], 0) || !near(secondary.pos[1], 3000) || !near(secondary.pos[2], 0) {
		t.Errorf("position %v, expected (0, 3000, 0)", secondary.pos)
	}
	if !near(secondary.pitch, gomath.Pi/2) || !near(secondary.yaw, 0) || !near(secondary.roll, 0) {
		t.Errorf("rotation (%v, %v, %v), expected straight down",
			secondary.pitch, secondary.yaw, secondary.roll)
	}
	if fog.pos != secondary.pos {
		t.Errorf("fog marker at %v, camera at %v", fog.pos, secondary.pos)
	}
	if decorative.visible {
		t.Error("decorative mesh still visible in top-down")
	}
}

func TestBranchDispatchThreshold(t *testing.T) {
	primary := &testPrimary{fov: 60}
	secondary := &testSecondary{}
	s := newTestSyncer(primary, secondary)
	frame := s.ReferenceFrame()
	primary.pos = frame.ToGlobalPoint([3]float64{0, 0, 50})
	primary.dir = frame.ToGlobalDirection([3]float64{0, 1, 0})
	primary.up = frame.ToGlobalDirection([3]float64{0, 0, 1})

	for _, c := range []struct {
		pitch   float64
		topdown bool
	}{
		{-70, false},
		{-79.99, false},
		{TopdownPitchThreshold, true}, // boundary is inclusive
		{-85, true},
		{-90, true},
		{0, false},
	} {
		primary.pitch = c.pitch
		s.SyncFrame()
		if got := s.TopdownCamera().Active; got != c.topdown {
			t.Errorf("pitch %v: topdown %v, expected %v", c.pitch, got, c.topdown)
		}
	}
}

func TestDecorativeRestoredOnBranchExit(t *testing.T) {
	primary := &testPrimary{fov: 60}
	secondary := &testSecondary{}
	s := newTestSyncer(primary, secondary)
	frame := s.ReferenceFrame()
	primary.pos = frame.ToGlobalPoint([3]float64{0, 0, 50})
	primary.dir = frame.ToGlobalDirection([3]float64{0, 1, 0})
	primary.up = frame.ToGlobalDirection([3]float64{0, 0, 1})

	decorative := &testHideable{visible: true}
	s.AddDecorativeMesh(decorative)

	primary.pitch = -85
	s.SyncFrame()
	if decorative.visible {
		t.Fatal("not hidden in top-down")
	}

	primary.pitch = -45
	s.SyncFrame()
	if !decorative.visible {
		t.Error("not re-shown on leaving top-down")
	}
	if s.TopdownCamera().Active {
		t.Error("top-down camera still active after leaving the branch")
	}
}

func TestSetBasePositionReplacesFrame(t *testing.T) {
	s := NewSyncer(&testPrimary{}, &testSecondary{}, nil, nil)
	if s.ReferenceFrame() != nil {
		t.Fatal("frame before any base position")
	}

	s.SetBasePosition(context.Background(), 37.6188, -122.3756, 100)
	f1 := s.ReferenceFrame()
	if f1 == nil {
		t.Fatal("no frame after SetBasePosition")
	}

	s.SetBasePosition(context.Background(), 33.9425, -118.4081, 38)
	f2 := s.ReferenceFrame()
	if f2 == f1 {
		t.Error("base position change didn't replace the frame")
	}
	if f2.Lat != 33.9425 {
		t.Errorf("new frame latitude %v", f2.Lat)
	}
}
