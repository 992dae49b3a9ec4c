package lyrics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPosition is returned by ParsePosition for unparseable input.
var ErrInvalidPosition = errors.New("invalid position")

// ErrUnsorted is returned by Validate for a sequence out of timestamp order.
var ErrUnsorted = errors.New("lines not sorted by timestamp")

// ErrUntaggable is returned when a timestamp is too large for a time tag.
var ErrUntaggable = errors.New("timestamp does not fit a time tag")

// MaxTagMs is the largest timestamp a time tag can carry, [99:99.999].
const MaxTagMs = (99*60+99)*1000 + 999

var positionPattern = regexp.MustCompile(`^(\d+):(\d{2})(?:\.(\d{1,3}))?$`)

// FormatTimestamp renders milliseconds as mm:ss.fff for display. Minutes
// keep counting past 59 and past 99; ParsePosition reads the result back.
func FormatTimestamp(ms int) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// FormatTag renders milliseconds as a time tag that Parse reads back to the
// same value. Tags hold at most two minute digits, so from 100 minutes on
// the seconds field carries the overflow: 6039000 becomes [99:99.000].
// Timestamps above MaxTagMs return ErrUntaggable.
func FormatTag(ms int) (string, error) {
	if ms < 0 {
		ms = 0
	}
	if ms > MaxTagMs {
		return "", fmt.Errorf("%w: %s is past %s", ErrUntaggable, FormatTimestamp(ms), "99:99.999")
	}
	mm, rest := ms/60000, ms%60000
	if mm > 99 {
		mm, rest = 99, ms-99*60000
	}
	return fmt.Sprintf("[%02d:%02d.%03d]", mm, rest/1000, rest%1000), nil
}

// Format serializes lines back to tagged lyrics text, one line per record.
// Every line is tagged, including lines whose timestamp was synthesized, so
// parsing the output reproduces the same timing. Lines that cannot be
// tagged are all reported, and no text is returned.
func Format(lines []Line) (string, error) {
	var sb strings.Builder
	var errs []error
	for i, l := range lines {
		tag, err := FormatTag(l.TimestampMs)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", i, err))
			continue
		}
		sb.WriteString(tag)
		if l.Text != "" {
			sb.WriteByte(' ')
			sb.WriteString(l.Text)
		}
		sb.WriteByte('\n')
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	return sb.String(), nil
}

// ParsePosition parses a playback position given as mm:ss, mm:ss.fff or a
// plain number of milliseconds.
func ParsePosition(s string) (int, error) {
	s = strings.TrimSpace(s)
	if m := positionPattern.FindStringSubmatch(s); m != nil {
		if ms, ok := tagMillis(m[1], m[2], m[3]); ok {
			return ms, nil
		}
	}
	ms, err := strconv.Atoi(s)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%w: %q (use mm:ss, mm:ss.fff or milliseconds)", ErrInvalidPosition, s)
	}
	return ms, nil
}

// Validate reports the first pair of adjacent lines that are out of
// timestamp order, or a negative timestamp.
func Validate(lines []Line) error {
	for i, l := range lines {
		if l.TimestampMs < 0 {
			return fmt.Errorf("%w: line %d has negative timestamp %d", ErrUnsorted, i, l.TimestampMs)
		}
		if i > 0 && l.TimestampMs < lines[i-1].TimestampMs {
			return fmt.Errorf("%w: line %d (%s) precedes line %d (%s)",
				ErrUnsorted, i, FormatTimestamp(l.TimestampMs), i-1, FormatTimestamp(lines[i-1].TimestampMs))
		}
	}
	return nil
}
