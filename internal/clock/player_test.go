package clock

import (
	"context"
	"testing"
	"time"

	"github.com/tessro/verse/internal/core"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPlayer(duration time.Duration) (*Player, *fakeClock) {
	fc := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	track := &core.Track{ID: "song", Duration: duration}
	return New(track, WithNow(fc.Now)), fc
}

func mustState(t *testing.T, p *Player) *core.PlaybackState {
	t.Helper()
	state, err := p.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	return state
}

func TestPlayerStartsPaused(t *testing.T) {
	p, fc := newTestPlayer(time.Minute)
	fc.Advance(5 * time.Second)

	state := mustState(t, p)
	if state.IsPlaying {
		t.Error("IsPlaying = true, want false")
	}
	if state.Progress != 0 {
		t.Errorf("Progress = %v, want 0", state.Progress)
	}
}

func TestPlayerAdvancesWhilePlaying(t *testing.T) {
	ctx := context.Background()
	p, fc := newTestPlayer(time.Minute)

	_ = p.Play(ctx)
	fc.Advance(1500 * time.Millisecond)
	if got := mustState(t, p).PositionMs(); got != 1500 {
		t.Errorf("PositionMs() = %d, want 1500", got)
	}

	_ = p.Pause(ctx)
	fc.Advance(10 * time.Second)
	if got := mustState(t, p).PositionMs(); got != 1500 {
		t.Errorf("PositionMs() after pause = %d, want 1500", got)
	}

	_ = p.Play(ctx)
	fc.Advance(500 * time.Millisecond)
	if got := mustState(t, p).PositionMs(); got != 2000 {
		t.Errorf("PositionMs() after resume = %d, want 2000", got)
	}
}

func TestPlayerSeek(t *testing.T) {
	ctx := context.Background()
	p, fc := newTestPlayer(time.Minute)
	_ = p.Play(ctx)
	fc.Advance(30 * time.Second)

	if err := p.Seek(ctx, 5000); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	state := mustState(t, p)
	if state.PositionMs() != 5000 {
		t.Errorf("PositionMs() after backward seek = %d, want 5000", state.PositionMs())
	}
	if !state.IsPlaying {
		t.Error("Seek() changed play state")
	}

	fc.Advance(time.Second)
	if got := mustState(t, p).PositionMs(); got != 6000 {
		t.Errorf("PositionMs() = %d, want 6000", got)
	}

	_ = p.Seek(ctx, -100)
	if got := mustState(t, p).PositionMs(); got != 0 {
		t.Errorf("PositionMs() after negative seek = %d, want 0", got)
	}

	_ = p.Seek(ctx, 10*60*1000)
	if got := mustState(t, p).Progress; got != time.Minute {
		t.Errorf("Progress after seek past end = %v, want %v", got, time.Minute)
	}
}

func TestPlayerStopsAtEnd(t *testing.T) {
	ctx := context.Background()
	p, fc := newTestPlayer(10 * time.Second)
	_ = p.Play(ctx)
	fc.Advance(12 * time.Second)

	state := mustState(t, p)
	if state.IsPlaying {
		t.Error("IsPlaying = true past the end, want false")
	}
	if !state.AtEnd() {
		t.Errorf("AtEnd() = false, progress %v", state.Progress)
	}

	// Playing again restarts from the top.
	_ = p.Play(ctx)
	fc.Advance(time.Second)
	if got := mustState(t, p).PositionMs(); got != 1000 {
		t.Errorf("PositionMs() after restart = %d, want 1000", got)
	}
}

func TestPlayerUnboundedDuration(t *testing.T) {
	p, fc := newTestPlayer(0)
	_ = p.Play(context.Background())
	fc.Advance(time.Hour)

	state := mustState(t, p)
	if !state.IsPlaying {
		t.Error("IsPlaying = false, want true for unbounded track")
	}
	if state.Progress != time.Hour {
		t.Errorf("Progress = %v, want %v", state.Progress, time.Hour)
	}
}

func TestPlayerCancelledContext(t *testing.T) {
	p, _ := newTestPlayer(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.GetState(ctx); err == nil {
		t.Error("GetState() error = nil, want context error")
	}
}

func TestPlayerSeekPastEndDoesNotRestart(t *testing.T) {
	ctx := context.Background()
	p, fc := newTestPlayer(10 * time.Second)

	_ = p.Seek(ctx, 99*60*1000)
	_ = p.Play(ctx)
	fc.Advance(time.Second)

	state := mustState(t, p)
	if state.Progress != 10*time.Second {
		t.Errorf("Progress = %v, want %v", state.Progress, 10*time.Second)
	}
	if state.IsPlaying {
		t.Error("IsPlaying = true at the end, want false")
	}

	// Once it has finished, playing again restarts.
	_ = p.Play(ctx)
	fc.Advance(time.Second)
	if got := mustState(t, p).PositionMs(); got != 1000 {
		t.Errorf("PositionMs() after restart = %d, want 1000", got)
	}
}

func TestPlayerPauseAtEndRestarts(t *testing.T) {
	ctx := context.Background()
	p, fc := newTestPlayer(10 * time.Second)

	_ = p.Play(ctx)
	fc.Advance(11 * time.Second)
	_ = p.Pause(ctx)

	_ = p.Play(ctx)
	fc.Advance(2 * time.Second)
	if got := mustState(t, p).PositionMs(); got != 2000 {
		t.Errorf("PositionMs() = %d, want 2000", got)
	}
}
