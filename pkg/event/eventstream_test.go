// pkg/event/eventstream_test.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package event

import "testing"

func TestEventStream(t *testing.T) {
	es := NewStream(nil)
	sub := es.Subscribe()

	es.Post(Event{Type: CameraCommittedEvent})
	es.Post(Event{Type: AirportChangedEvent, ICAO: "KSFO"})

	evs := sub.Get()
	if len(evs) != 2 {
		t.Fatalf("got %d events, expected 2", len(evs))
	}
	if evs[0].Type != CameraCommittedEvent || evs[1].Type != AirportChangedEvent {
		t.Errorf("event types %v, %v", evs[0].Type, evs[1].Type)
	}
	if evs[1].ICAO != "KSFO" {
		t.Errorf("ICAO %q", evs[1].ICAO)
	}

	// Nothing new: empty.
	if evs := sub.Get(); len(evs) != 0 {
		t.Errorf("got %d events, expected none", len(evs))
	}
}

func TestEventStreamLateSubscriber(t *testing.T) {
	es := NewStream(nil)
	sub0 := es.Subscribe()
	es.Post(Event{Type: CameraCommittedEvent})

	// Events posted before Subscribe are never reported.
	sub1 := es.Subscribe()
	if evs := sub1.Get(); len(evs) != 0 {
		t.Errorf("late subscriber got %d events", len(evs))
	}
	if evs := sub0.Get(); len(evs) != 1 {
		t.Errorf("original subscriber got %d events", len(evs))
	}
}

func TestEventStreamNoSubscribers(t *testing.T) {
	es := NewStream(nil)
	// Posts with no subscribers are discarded rather than accumulated.
	for i := 0; i < 100; i++ {
		es.Post(Event{Type: CameraCommittedEvent})
	}

	sub := es.Subscribe()
	if evs := sub.Get(); len(evs) != 0 {
		t.Errorf("got %d events posted pre-subscription", len(evs))
	}
}
