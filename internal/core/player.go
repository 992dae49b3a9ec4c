package core

import "context"

// Player is a playback position source that can also be told to seek.
type Player interface {
	// Playback control
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Seek(ctx context.Context, positionMs int) error

	// State queries
	GetState(ctx context.Context) (*PlaybackState, error)
}
