package core

import "time"

// PlaybackState represents the current playback state.
type PlaybackState struct {
	Track     *Track        `json:"track"`
	IsPlaying bool          `json:"is_playing"`
	Progress  time.Duration `json:"progress"`
}

// HasTrack returns true if there is an active track.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && s.Track != nil
}

// PositionMs returns the playback position in whole milliseconds.
func (s *PlaybackState) PositionMs() int {
	if s == nil {
		return 0
	}
	return int(s.Progress / time.Millisecond)
}

// AtEnd returns true if playback has reached the end of a track with a
// known duration.
func (s *PlaybackState) AtEnd() bool {
	return s.HasTrack() && s.Track.Duration > 0 && s.Progress >= s.Track.Duration
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil || s.Track == nil || s.Track.Duration == 0 {
		return 0
	}
	return float64(s.Progress) / float64(s.Track.Duration) * 100
}
