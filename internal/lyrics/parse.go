package lyrics

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// tagPattern matches a leading [mm:ss] or [mm:ss.fff] time tag.
var tagPattern = regexp.MustCompile(`^\[(\d{1,2}):(\d{2})(?:\.(\d{1,3}))?\]`)

// Parse converts raw lyrics text into a sequence of lines sorted by
// timestamp. Lines with equal timestamps keep their input order.
//
// Parse never fails. Records it cannot timestamp fall back to the previous
// line's timestamp plus FallbackSpacingMs, or 0 for the first line. Empty or
// whitespace-only input yields an empty sequence.
func Parse(text string, mode Mode) []Line {
	lines := make([]Line, 0)

	for _, record := range splitRecords(text) {
		record = strings.TrimSpace(record)

		ms, rest, ok := splitTag(record)
		if ok {
			lines = append(lines, Line{
				TimestampMs: ms,
				Text:        rest,
				Explicit:    true,
			})
			continue
		}

		if record == "" && mode == ModeEditorPreview {
			continue
		}

		lines = append(lines, Line{
			TimestampMs: fallbackTimestamp(lines),
			Text:        record,
		})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].TimestampMs < lines[j].TimestampMs
	})
	return lines
}

// splitRecords normalizes line endings and splits text into records. A final
// line terminator does not open another record, and whitespace-only text has
// no records at all.
func splitRecords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func fallbackTimestamp(parsed []Line) int {
	if len(parsed) == 0 {
		return 0
	}
	return parsed[len(parsed)-1].TimestampMs + FallbackSpacingMs
}

// splitTag extracts the leading time tag of a trimmed record. It returns the
// timestamp, the trimmed remainder and whether a tag was found.
func splitTag(record string) (int, string, bool) {
	m := tagPattern.FindStringSubmatch(record)
	if m == nil {
		return 0, record, false
	}
	ms, ok := tagMillis(m[1], m[2], m[3])
	if !ok {
		return 0, record, false
	}
	return ms, strings.TrimSpace(record[len(m[0]):]), true
}

// tagMillis computes (minutes*60 + seconds)*1000 + fraction. Fields are taken
// literally: seconds of 60 or more are not clamped.
func tagMillis(minutes, seconds, fraction string) (int, bool) {
	mm, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, false
	}
	ss, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, false
	}
	fff := 0
	if fraction != "" {
		fff, err = strconv.Atoi(fraction + strings.Repeat("0", 3-len(fraction)))
		if err != nil {
			return 0, false
		}
	}
	return (mm*60+ss)*1000 + fff, true
}
