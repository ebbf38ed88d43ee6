// pkg/event/eventstream.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package event

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/towerview3d/towerview/pkg/log"
)

// Stream provides a basic pub/sub event interface that allows any part of
// the system to post an event to the stream and other parts to subscribe
// and receive messages from it.  The camera store posts here whenever it
// commits a mutation; the persistence layer and the traffic feed poll
// their subscriptions from the frame loop.  There is no callback
// machinery: subscribers pull, which keeps everything on the frame
// goroutine.
type Stream struct {
	mu            sync.Mutex
	events        []Event
	lastCompact   time.Time
	subscriptions map[*Subscription]interface{}
	lg            *log.Logger
}

type Subscription struct {
	stream *Stream
	// offset is the offset in the Stream events array up to which the
	// subscriber has consumed events so far.
	offset int
	source string
}

func (s *Subscription) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("offset", s.offset),
		slog.String("source", s.source))
}

func NewStream(lg *log.Logger) *Stream {
	return &Stream{
		subscriptions: make(map[*Subscription]interface{}),
		lg:            lg,
	}
}

// Subscribe registers a new subscriber to the stream and returns a
// Subscription whose Get method reports the events posted since the
// previous Get.
func (s *Stream) Subscribe() *Subscription {
	// Record the subscriber's callsite, so that we can more easily debug
	// subscribers that aren't consuming events.
	_, fn, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", fn, line)

	sub := &Subscription{
		stream: s,
		offset: len(s.events),
		source: source,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscriptions[sub] = nil
	return sub
}

// Unsubscribe removes a subscriber from the subscriber list.
func (s *Subscription) Unsubscribe() {
	s.stream.mu.Lock()
	defer s.stream.mu.Unlock()

	if _, ok := s.stream.subscriptions[s]; !ok {
		s.stream.lg.Errorf("Attempted to unsubscribe invalid subscription: %+v", s)
	}
	delete(s.stream.subscriptions, s)
	s.stream = nil
}

// Post adds an event to the event stream.
func (s *Stream) Post(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lg.Debug("posted event", slog.Any("event", event))

	// Ignore the event if no one's paying attention.
	if len(s.subscriptions) > 0 {
		s.events = append(s.events, event)
	}
}

// Get returns all of the events from the stream since the last time Get
// was called for this subscription.  Events posted before Subscribe was
// called are never reported.
func (s *Subscription) Get() []Event {
	s.stream.mu.Lock()
	defer s.stream.mu.Unlock()

	if _, ok := s.stream.subscriptions[s]; !ok {
		s.stream.lg.Errorf("Attempted to get with unregistered subscription: %+v", s)
		return nil
	}

	events := s.stream.events[s.offset:]
	s.offset = len(s.stream.events)

	if time.Since(s.stream.lastCompact) > 1*time.Second {
		s.stream.compact()
		s.stream.lastCompact = time.Now()
	}

	return events
}

// compact reclaims storage for events that all subscribers have seen; it
// is called periodically so that Stream memory usage doesn't grow without
// bound.
func (s *Stream) compact() {
	minOffset := len(s.events)
	for sub := range s.subscriptions {
		if sub.offset < minOffset {
			minOffset = sub.offset
		}
	}

	if len(s.events) > 1000 {
		s.lg.Warnf("event stream length %d", len(s.events))
	}

	if minOffset > cap(s.events)/2 {
		n := len(s.events) - minOffset

		copy(s.events, s.events[minOffset:])
		s.events = s.events[:n]

		for sub := range s.subscriptions {
			sub.offset -= minOffset
		}
	}
}

// implements slog.LogValuer
func (s *Stream) LogValue() slog.Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []slog.Attr{slog.Int("len", len(s.events)), slog.Int("cap", cap(s.events))}
	if len(s.events) > 0 {
		items = append(items, slog.Any("last_element", s.events[len(s.events)-1]))
	}
	for sub := range s.subscriptions {
		items = append(items, slog.Any(fmt.Sprintf("subscriber_%p", sub), sub))
	}
	return slog.GroupValue(items...)
}

///////////////////////////////////////////////////////////////////////////

type EventType int

const (
	// CameraCommittedEvent is posted after any camera-state mutation is
	// committed to the store.
	CameraCommittedEvent EventType = iota
	// ViewportsChangedEvent is posted when the live viewport list or the
	// active viewport changes; the auto-save debounce keys off of it.
	ViewportsChangedEvent
	// ReferencePositionEvent carries a new geographic reference position
	// for the traffic feed to re-scope which aircraft are loaded.
	ReferencePositionEvent
	// AirportChangedEvent is posted after the current airport switches.
	AirportChangedEvent
	NumEventTypes
)

func (t EventType) String() string {
	return []string{"CameraCommitted", "ViewportsChanged", "ReferencePosition",
		"AirportChanged"}[t]
}

type Event struct {
	Type     EventType
	Callsign string  // ReferencePositionEvent: followed aircraft, if any
	ICAO     string  // AirportChangedEvent
	Lat, Lon float64 // ReferencePositionEvent
}

func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("type", e.Type.String())}
	if e.Callsign != "" {
		attrs = append(attrs, slog.String("callsign", e.Callsign))
	}
	if e.ICAO != "" {
		attrs = append(attrs, slog.String("icao", e.ICAO))
	}
	if e.Type == ReferencePositionEvent {
		attrs = append(attrs, slog.Float64("lat", e.Lat), slog.Float64("lon", e.Lon))
	}
	return slog.GroupValue(attrs...)
}
