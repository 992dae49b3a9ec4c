package lyrics

import (
	"strconv"
	"strings"
)

// Metadata holds LRC ID tags found in lyrics text.
type Metadata struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	// LengthMs is the track length from [length:mm:ss], or 0.
	LengthMs int `json:"length_ms,omitempty"`
	// OffsetMs is the [offset:] adjustment. Positive values make lines
	// appear earlier.
	OffsetMs int `json:"offset_ms,omitempty"`
}

// ParseMetadata extracts ID tags like [ti:Title] and [offset:+250]. It is
// independent of Parse, which treats these records as plain content.
func ParseMetadata(text string) Metadata {
	var md Metadata
	for _, record := range splitRecords(text) {
		m := metaTagPattern.FindStringSubmatch(strings.TrimSpace(record))
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[2])
		switch strings.ToLower(m[1]) {
		case "ti":
			md.Title = value
		case "ar":
			md.Artist = value
		case "al":
			md.Album = value
		case "length":
			if ms, err := ParsePosition(value); err == nil {
				md.LengthMs = ms
			}
		case "offset":
			if ms, err := strconv.Atoi(strings.TrimPrefix(value, "+")); err == nil {
				md.OffsetMs = ms
			}
		}
	}
	return md
}
