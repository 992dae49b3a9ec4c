package tail

import (
	"context"
	"sync"
	"time"

	"github.com/tessro/verse/internal/core"
	"github.com/tessro/verse/internal/lyrics"
)

// EventType represents the type of follow event.
type EventType int

const (
	EventLine EventType = iota
	EventSeek
	EventPause
	EventResume
	EventEnd
)

// Event represents a change observed between two polls.
type Event struct {
	Type      EventType
	Timestamp time.Time
	// Index is the active line after the change, or -1.
	Index int
	// Line is the active line, or nil when nothing is active.
	Line     *lyrics.Line
	Previous *core.PlaybackState
	Current  *core.PlaybackState
}

// snapshot is one poll: the player state and the line active at it.
type snapshot struct {
	state *core.PlaybackState
	index int
	line  *lyrics.Line
}

// Watcher polls a player and emits events when the active line or the
// playback state changes. The previous active index is tracked here; the
// lyrics engine itself keeps no state.
type Watcher struct {
	player   core.Player
	interval time.Duration
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.RWMutex
	lines    []lyrics.Line
	offsetMs int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithOffset shifts every position by offsetMs before locating a line.
// Positive offsets show lines earlier.
func WithOffset(offsetMs int) Option {
	return func(w *Watcher) {
		w.offsetMs = offsetMs
	}
}

// NewWatcher creates a new watcher over a parsed line sequence.
func NewWatcher(player core.Player, lines []lyrics.Line, interval time.Duration, opts ...Option) *Watcher {
	if interval == 0 {
		interval = 100 * time.Millisecond
	}
	w := &Watcher{
		player:   player,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
		lines:    lines,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Events returns the channel of follow events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// SetLines replaces the line sequence after a reparse. The next poll
// reports an EventLine if the active line differs from the one last
// reported, even when its index is unchanged.
func (w *Watcher) SetLines(lines []lyrics.Line) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lines = lines
}

// Start begins polling. It returns when ctx is done, Stop is called, or the
// track ends.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	var prev *snapshot

	// Get initial state
	if state, err := w.player.GetState(ctx); err == nil {
		prev = w.snapshot(state)
		events := initialEvents(prev)
		w.emit(events)
		if hasEnd(events) {
			return nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			state, err := w.player.GetState(ctx)
			if err != nil {
				continue
			}

			curr := w.snapshot(state)
			events := diffSnapshots(prev, curr, w.interval)
			w.emit(events)
			prev = curr

			if hasEnd(events) {
				return nil
			}
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

func (w *Watcher) emit(events []Event) {
	for _, e := range events {
		select {
		case w.events <- e:
		default:
			// Drop event if channel is full
		}
	}
}

func (w *Watcher) snapshot(state *core.PlaybackState) *snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return newSnapshot(state, w.lines, w.offsetMs)
}

// newSnapshot locates the active line and copies it, so a later SetLines
// cannot change what an earlier poll saw.
func newSnapshot(state *core.PlaybackState, lines []lyrics.Line, offsetMs int) *snapshot {
	s := &snapshot{
		state: state,
		index: lyrics.Locate(lines, OffsetPosition(state.PositionMs(), offsetMs)),
	}
	if s.index >= 0 {
		line := lines[s.index]
		s.line = &line
	}
	return s
}

// OffsetPosition applies a sync offset to a position, never going below 0.
func OffsetPosition(positionMs, offsetMs int) int {
	pos := positionMs + offsetMs
	if pos < 0 {
		return 0
	}
	return pos
}

// initialEvents reports the line active when watching starts, and the end
// of the track if playback already stopped there.
func initialEvents(curr *snapshot) []Event {
	if curr == nil || curr.state == nil {
		return nil
	}
	now := time.Now()
	var events []Event
	if curr.index >= 0 {
		events = append(events, lineEvent(EventLine, now, nil, curr))
	}
	if !curr.state.IsPlaying && curr.state.AtEnd() {
		events = append(events, lineEvent(EventEnd, now, nil, curr))
	}
	return events
}

func hasEnd(events []Event) bool {
	for _, e := range events {
		if e.Type == EventEnd {
			return true
		}
	}
	return false
}

// diffSnapshots compares two polls and returns detected events. interval is
// the poll interval, used to tell a seek from ordinary drift.
func diffSnapshots(prev, curr *snapshot, interval time.Duration) []Event {
	if curr == nil || curr.state == nil {
		return nil
	}
	if prev == nil || prev.state == nil {
		return initialEvents(curr)
	}

	now := time.Now()
	var events []Event

	// Seek detection
	if wasSeek(prev.state, curr.state, interval) {
		events = append(events, lineEvent(EventSeek, now, prev, curr))
	}

	// Active line change, or the same index holding a new line after SetLines
	if curr.index >= 0 && (prev.index != curr.index || !sameLine(prev.line, curr.line)) {
		events = append(events, lineEvent(EventLine, now, prev, curr))
	}

	// Pause/Resume/End detection
	if prev.state.IsPlaying && !curr.state.IsPlaying {
		typ := EventPause
		if curr.state.AtEnd() {
			typ = EventEnd
		}
		events = append(events, lineEvent(typ, now, prev, curr))
	} else if !prev.state.IsPlaying && curr.state.IsPlaying {
		events = append(events, lineEvent(EventResume, now, prev, curr))
	}

	return events
}

func lineEvent(typ EventType, now time.Time, prev, curr *snapshot) Event {
	e := Event{
		Type:      typ,
		Timestamp: now,
		Index:     curr.index,
		Line:      curr.line,
		Current:   curr.state,
	}
	if prev != nil {
		e.Previous = prev.state
	}
	return e
}

func sameLine(a, b *lyrics.Line) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// wasSeek returns true if the position moved backwards, or forwards by
// more than playback could account for.
func wasSeek(prev, curr *core.PlaybackState, interval time.Duration) bool {
	delta := curr.Progress - prev.Progress
	if delta < -seekTolerance {
		return true
	}
	allowed := seekTolerance
	if prev.IsPlaying || curr.IsPlaying {
		allowed += 2 * interval
	}
	return delta > allowed
}

// seekTolerance absorbs polling jitter.
const seekTolerance = 750 * time.Millisecond
