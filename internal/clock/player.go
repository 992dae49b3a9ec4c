// Package clock provides a local playback position source that advances
// with wall-clock time.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/tessro/verse/internal/core"
)

// Player is an in-process core.Player. It starts paused at position 0.
// Seeks are clamped to the track duration, and playback pauses once the
// duration is reached. A zero duration means the clock runs unbounded.
type Player struct {
	mu        sync.Mutex
	track     *core.Track
	playing   bool
	finished  bool          // playback ran to the end; cleared by Seek
	base      time.Duration // position when playback last started or seeked
	startedAt time.Time
	now       func() time.Time
}

// Option configures a Player.
type Option func(*Player)

// WithNow sets the time source. Tests use it to drive the clock by hand.
func WithNow(now func() time.Time) Option {
	return func(p *Player) {
		p.now = now
	}
}

// New creates a player for the given track.
func New(track *core.Track, opts ...Option) *Player {
	p := &Player{
		track: track,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play resumes playback from the current position. Playing again after the
// track played to its end restarts it from the beginning. A seek to the end
// stays there, so playback finishes straight away.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		return nil
	}
	if p.finished {
		p.base = 0
		p.finished = false
	}
	p.playing = true
	p.startedAt = p.now()
	return nil
}

// Pause freezes the current position.
func (p *Player) Pause(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		p.base = p.position()
		p.finished = p.atEnd(p.base)
	}
	p.playing = false
	return nil
}

// Seek jumps to positionMs, keeping the play/pause state.
func (p *Player) Seek(ctx context.Context, positionMs int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.base = p.clamp(time.Duration(positionMs) * time.Millisecond)
	p.startedAt = p.now()
	p.finished = false
	return nil
}

// GetState returns a snapshot of the playback state.
func (p *Player) GetState(ctx context.Context) (*core.PlaybackState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pos := p.position()
	if p.playing && p.atEnd(pos) {
		p.playing = false
		p.finished = true
		p.base = pos
	}

	return &core.PlaybackState{
		Track:     p.track,
		IsPlaying: p.playing,
		Progress:  pos,
	}, nil
}

// position returns the current position. Callers must hold p.mu.
func (p *Player) position() time.Duration {
	if !p.playing {
		return p.base
	}
	return p.clamp(p.base + p.now().Sub(p.startedAt))
}

func (p *Player) clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if p.track != nil && p.track.Duration > 0 && d > p.track.Duration {
		return p.track.Duration
	}
	return d
}

func (p *Player) atEnd(d time.Duration) bool {
	return p.track != nil && p.track.Duration > 0 && d >= p.track.Duration
}

var _ core.Player = (*Player)(nil)
