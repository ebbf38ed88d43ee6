// pkg/camera/viewport.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package camera

import (
	"fmt"

	"github.com/brunoga/deep"
)

// insetLayoutCandidates are the auto-placement positions tried in order
// for new inset viewports; once all are occupied the first one cascades
// down-right by cascadeStep per extra inset.
var insetLayoutCandidates = []Layout{
	{X: 0.70, Y: 0.02, Width: 0.28, Height: 0.28},
	{X: 0.02, Y: 0.02, Width: 0.28, Height: 0.28},
	{X: 0.70, Y: 0.70, Width: 0.28, Height: 0.28},
	{X: 0.02, Y: 0.70, Width: 0.28, Height: 0.28},
}

const cascadeStep = 0.04

// AddViewport creates an inset viewport and makes it active, returning
// its id.  The camera is copied from the source viewport (main if
// unspecified) with follow state stripped; the layout is auto-placed
// unless fully specified by the caller.
func (s *Store) AddViewport(layout *Layout, copySourceID string) string {
	s.mu.Lock()

	if copySourceID == "" {
		copySourceID = MainViewportID
	}
	cam := DefaultCameraState()
	for _, vp := range s.viewports {
		if vp.ID == copySourceID {
			cam = deep.MustCopy(vp.Camera).stripFollow()
			break
		}
	}

	var l Layout
	if layout != nil && layout.Width > 0 && layout.Height > 0 {
		l = *layout
	} else {
		l = s.placeInsetLocked()
	}
	l.Z = s.maxZLocked() + 1

	id := fmt.Sprintf("inset-%d", s.nextInsetID)
	s.nextInsetID++

	vps := make([]Viewport, len(s.viewports), len(s.viewports)+1)
	copy(vps, s.viewports)
	vps = append(vps, Viewport{ID: id, Layout: l, Camera: cam})
	s.viewports = vps
	s.activeID = id

	s.mu.Unlock()
	s.committed(true)
	return id
}

// RemoveViewport destroys an inset.  Removing the main viewport or the
// last remaining viewport is a no-op.  If the removed viewport was
// active, the first remaining one becomes active.
func (s *Store) RemoveViewport(id string) {
	s.mu.Lock()

	if id == MainViewportID || len(s.viewports) <= 1 {
		s.mu.Unlock()
		s.lg.Debugf("%s: refusing to remove viewport", id)
		return
	}

	vps := make([]Viewport, 0, len(s.viewports))
	found := false
	for _, vp := range s.viewports {
		if vp.ID == id {
			found = true
		} else {
			vps = append(vps, vp)
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}

	s.viewports = vps
	if s.activeID == id {
		s.activeID = vps[0].ID
	}

	s.mu.Unlock()
	s.committed(true)
}

// SetActiveViewport designates the viewport that receives all camera
// mutation calls; unknown ids are ignored.
func (s *Store) SetActiveViewport(id string) {
	s.mu.Lock()

	for _, vp := range s.viewports {
		if vp.ID == id {
			if s.activeID != id {
				s.activeID = id
				s.mu.Unlock()
				s.committed(true)
				return
			}
			break
		}
	}
	s.mu.Unlock()
}

// SetViewportLayout repositions an inset; the main viewport stays
// full-frame.
func (s *Store) SetViewportLayout(id string, l Layout) {
	if id == MainViewportID {
		return
	}
	s.mu.Lock()

	changed := false
	vps := make([]Viewport, len(s.viewports))
	copy(vps, s.viewports)
	for i := range vps {
		if vps[i].ID == id {
			vps[i].Layout = l
			changed = true
		}
	}
	s.viewports = vps

	s.mu.Unlock()
	if changed {
		s.committed(true)
	}
}

func (s *Store) SetViewportLabel(id, label string) {
	s.mu.Lock()

	changed := false
	vps := make([]Viewport, len(s.viewports))
	copy(vps, s.viewports)
	for i := range vps {
		if vps[i].ID == id && vps[i].Label != label {
			vps[i].Label = label
			changed = true
		}
	}
	s.viewports = vps

	s.mu.Unlock()
	if changed {
		s.committed(true)
	}
}

func (s *Store) maxZLocked() int {
	z := 0
	for _, vp := range s.viewports {
		if vp.Layout.Z > z {
			z = vp.Layout.Z
		}
	}
	return z
}

func (s *Store) placeInsetLocked() Layout {
	occupied := func(l Layout) bool {
		for _, vp := range s.viewports {
			if vp.ID == MainViewportID {
				continue
			}
			o := vp.Layout
			if l.X < o.X+o.Width && o.X < l.X+l.Width &&
				l.Y < o.Y+o.Height && o.Y < l.Y+l.Height {
				return true
			}
		}
		return false
	}

	for _, cand := range insetLayoutCandidates {
		if !occupied(cand) {
			return cand
		}
	}

	// All candidates taken; cascade from the first one.
	l := insetLayoutCandidates[0]
	n := len(s.viewports) - len(insetLayoutCandidates) // insets beyond the candidates, plus main
	for i := 0; i < n; i++ {
		l.X -= cascadeStep
		l.Y += cascadeStep
		if l.X < 0 || l.Y+l.Height > 1 {
			l.X, l.Y = insetLayoutCandidates[0].X, insetLayoutCandidates[0].Y
		}
	}
	return l
}
