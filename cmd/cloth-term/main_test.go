package main

import (
	"testing"
	"time"

	"verlet-cloth/internal/render"

	"github.com/gdamore/tcell/v2"
)

func TestHalfBlock(t *testing.T) {
	cases := []struct {
		top, bottom uint8
		glyph       rune
		level       uint8
	}{
		{0, 0, ' ', 0},
		{render.StickSlow, 0, '▀', render.StickSlow},
		{0, render.StickFast, '▄', render.StickFast},
		{render.StickSlow, render.PinCell, '█', render.PinCell},
	}
	for _, c := range cases {
		glyph, level := halfBlock(c.top, c.bottom)
		if glyph != c.glyph || level != c.level {
			t.Fatalf("halfBlock(%d, %d) = %q/%d, want %q/%d", c.top, c.bottom, glyph, level, c.glyph, c.level)
		}
	}
}

func TestLevelColorsCoverRasterValues(t *testing.T) {
	for lvl := render.StickSlow; lvl <= render.StickFast; lvl++ {
		if _, ok := levelColors[lvl]; !ok {
			t.Fatalf("no colour for stick level %d", lvl)
		}
	}
	if _, ok := levelColors[render.PinCell]; !ok {
		t.Fatal("no colour for pins")
	}
}

func TestPumpEventsStopsWhenDone(t *testing.T) {
	poll := func() tcell.Event { return tcell.NewEventInterrupt(nil) }
	events := make(chan tcell.Event)
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		pumpEvents(poll, events, done)
		close(stopped)
	}()

	<-events
	close(done)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("pumpEvents kept blocking after done was closed")
	}
}

func TestPumpEventsStopsOnNil(t *testing.T) {
	calls := 0
	poll := func() tcell.Event {
		calls++
		if calls > 2 {
			return nil
		}
		return tcell.NewEventInterrupt(nil)
	}
	events := make(chan tcell.Event, 4)
	pumpEvents(poll, events, make(chan struct{}))
	if len(events) != 2 {
		t.Fatalf("forwarded %d events, want 2", len(events))
	}
}
