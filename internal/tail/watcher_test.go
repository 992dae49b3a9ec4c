package tail

import (
	"context"
	"testing"
	"time"

	"github.com/tessro/verse/internal/clock"
	"github.com/tessro/verse/internal/core"
	"github.com/tessro/verse/internal/lyrics"
)

var testLines = lyrics.Parse("[00:00] one\n[00:02] two\n[00:05] three", lyrics.ModePlayback)

func state(ms int, playing bool) *core.PlaybackState {
	return &core.PlaybackState{
		Track:     &core.Track{ID: "song", Duration: 10 * time.Second},
		IsPlaying: playing,
		Progress:  time.Duration(ms) * time.Millisecond,
	}
}

func snap(ms int, playing bool) *snapshot {
	return newSnapshot(state(ms, playing), testLines, 0)
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestDiffSnapshots(t *testing.T) {
	interval := 100 * time.Millisecond

	tests := []struct {
		name      string
		prev      *snapshot
		curr      *snapshot
		want      []EventType
		wantIndex int
	}{
		{
			name:      "first poll reports active line",
			prev:      nil,
			curr:      snap(2500, true),
			want:      []EventType{EventLine},
			wantIndex: 1,
		},
		{
			name: "no change within a line",
			prev: snap(2100, true),
			curr: snap(2200, true),
			want: nil,
		},
		{
			name:      "line advances",
			prev:      snap(1950, true),
			curr:      snap(2050, true),
			want:      []EventType{EventLine},
			wantIndex: 1,
		},
		{
			name:      "backward seek",
			prev:      snap(5500, true),
			curr:      snap(500, true),
			want:      []EventType{EventSeek, EventLine},
			wantIndex: 0,
		},
		{
			name:      "forward seek within the same line",
			prev:      snap(5100, true),
			curr:      snap(9000, true),
			want:      []EventType{EventSeek},
			wantIndex: 2,
		},
		{
			name:      "pause",
			prev:      snap(3000, true),
			curr:      snap(3050, false),
			want:      []EventType{EventPause},
			wantIndex: 1,
		},
		{
			name:      "resume",
			prev:      snap(3000, false),
			curr:      snap(3000, true),
			want:      []EventType{EventResume},
			wantIndex: 1,
		},
		{
			name:      "end of track",
			prev:      snap(9950, true),
			curr:      snap(10000, false),
			want:      []EventType{EventEnd},
			wantIndex: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := diffSnapshots(tt.prev, tt.curr, interval)
			got := eventTypes(events)
			if len(got) != len(tt.want) {
				t.Fatalf("events = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("events[%d] = %v, want %v", i, got[i], tt.want[i])
				}
				if events[i].Index != tt.wantIndex {
					t.Errorf("events[%d].Index = %d, want %d", i, events[i].Index, tt.wantIndex)
				}
			}
		})
	}
}

func TestDiffSnapshotsBeforeFirstLine(t *testing.T) {
	lines := lyrics.Parse("[00:03] late", lyrics.ModePlayback)
	prev := newSnapshot(state(1000, true), lines, 0)
	curr := newSnapshot(state(1100, true), lines, 0)

	if events := diffSnapshots(prev, curr, 100*time.Millisecond); len(events) != 0 {
		t.Errorf("events = %v, want none before the first line", eventTypes(events))
	}
	if events := initialEvents(curr); len(events) != 0 {
		t.Errorf("initialEvents = %v, want none before the first line", eventTypes(events))
	}
}

func TestDiffSnapshotsCarriesLine(t *testing.T) {
	events := diffSnapshots(snap(1900, true), snap(2000, true), 100*time.Millisecond)
	if len(events) != 1 || events[0].Line == nil {
		t.Fatalf("events = %+v, want one line event", events)
	}
	if events[0].Line.Text != "two" {
		t.Errorf("Line.Text = %q, want %q", events[0].Line.Text, "two")
	}
	if events[0].Previous == nil || events[0].Previous.PositionMs() != 1900 {
		t.Errorf("Previous = %+v, want position 1900", events[0].Previous)
	}
}

func TestDiffSnapshotsReportsReplacedLine(t *testing.T) {
	before := lyrics.Parse("[00:01] old", lyrics.ModePlayback)
	after := lyrics.Parse("[00:01] new text", lyrics.ModePlayback)
	prev := newSnapshot(state(5000, true), before, 0)
	curr := newSnapshot(state(5100, true), after, 0)

	events := diffSnapshots(prev, curr, 100*time.Millisecond)
	if len(events) != 1 || events[0].Type != EventLine {
		t.Fatalf("events = %v, want one line event", eventTypes(events))
	}
	if events[0].Index != 0 || events[0].Line.Text != "new text" {
		t.Errorf("event = %d %+v, want index 0 with new text", events[0].Index, events[0].Line)
	}

	// An equal sequence reports nothing.
	same := newSnapshot(state(5200, true), lyrics.Parse("[00:01] new text", lyrics.ModePlayback), 0)
	if events := diffSnapshots(curr, same, 100*time.Millisecond); len(events) != 0 {
		t.Errorf("events = %v, want none for an unchanged line", eventTypes(events))
	}
}

func TestSnapshotAppliesOffset(t *testing.T) {
	s := newSnapshot(state(1500, true), testLines, 600)
	if s.index != 1 || s.line == nil || s.line.Text != "two" {
		t.Errorf("snapshot = %d %+v, want index 1 (two)", s.index, s.line)
	}
}

func TestOffsetPosition(t *testing.T) {
	if got := OffsetPosition(1000, 250); got != 1250 {
		t.Errorf("OffsetPosition(1000, 250) = %d, want 1250", got)
	}
	if got := OffsetPosition(100, -500); got != 0 {
		t.Errorf("OffsetPosition(100, -500) = %d, want 0", got)
	}
}

func TestWatcherFollowsClock(t *testing.T) {
	lines := lyrics.Parse("[00:00.000] a\n[00:00.080] b\n[00:00.160] c", lyrics.ModePlayback)
	player := clock.New(&core.Track{ID: "short", Duration: 240 * time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = player.Play(ctx)
	w := NewWatcher(player, lines, 10*time.Millisecond)

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	var texts []string
	var sawEnd bool
	for e := range w.Events() {
		switch e.Type {
		case EventLine:
			texts = append(texts, e.Line.Text)
		case EventEnd:
			sawEnd = true
		}
	}

	if err := <-errCh; err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !sawEnd {
		t.Error("no EventEnd received")
	}
	want := []string{"a", "b", "c"}
	if len(texts) != len(want) {
		t.Fatalf("line events = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("line[%d] = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestWatcherSetLines(t *testing.T) {
	player := clock.New(&core.Track{ID: "song", Duration: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = player.Seek(ctx, 5000)

	w := NewWatcher(player, lyrics.Parse("[00:01] old", lyrics.ModePlayback), 10*time.Millisecond)
	go func() { _ = w.Start(ctx) }()
	defer w.Stop()

	next := func() Event {
		t.Helper()
		select {
		case e := <-w.Events():
			return e
		case <-ctx.Done():
			t.Fatal("timed out waiting for an event")
		}
		return Event{}
	}

	if e := next(); e.Type != EventLine || e.Line.Text != "old" {
		t.Fatalf("first event = %v %+v, want line old", e.Type, e.Line)
	}

	w.SetLines(lyrics.Parse("[00:01] new text", lyrics.ModePlayback))
	if e := next(); e.Type != EventLine || e.Line.Text != "new text" {
		t.Errorf("event after SetLines = %v %+v, want line new text", e.Type, e.Line)
	}
}

func TestWatcherStartsAtEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	player := clock.New(&core.Track{ID: "song", Duration: 8 * time.Second})
	_ = player.Seek(ctx, 60000)
	_ = player.Play(ctx)

	w := NewWatcher(player, testLines, 10*time.Millisecond)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	var got []EventType
	for e := range w.Events() {
		got = append(got, e.Type)
	}
	want := []EventType{EventLine, EventEnd}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestWatcherStop(t *testing.T) {
	player := clock.New(&core.Track{ID: "song"})
	w := NewWatcher(player, testLines, 10*time.Millisecond)

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(context.Background()) }()

	w.Stop()
	w.Stop()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start() error = %v, want nil after Stop", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
