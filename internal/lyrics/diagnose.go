package lyrics

import (
	"fmt"
	"regexp"
	"strings"
)

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind int

const (
	// DiagUntagged is a content line without a time tag.
	DiagUntagged DiagnosticKind = iota
	// DiagOutOfRange is a tag whose seconds field is 60 or more.
	DiagOutOfRange
	// DiagMalformedTag is a bracketed prefix that resembles a time tag but
	// does not match the tag grammar.
	DiagMalformedTag
	// DiagBackwards is a tag earlier than the tag before it.
	DiagBackwards
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagUntagged:
		return "untagged"
	case DiagOutOfRange:
		return "out-of-range"
	case DiagMalformedTag:
		return "malformed-tag"
	case DiagBackwards:
		return "backwards"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic describes something questionable about one source record.
// Diagnostics never change what Parse produces.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`
	// Record is the 1-based source line number.
	Record  int    `json:"record"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Record, d.Kind, d.Message)
}

var (
	looseTagPattern = regexp.MustCompile(`^\[\d*:[\d.:]*\]`)
	metaTagPattern  = regexp.MustCompile(`^\[([A-Za-z]+):(.*)\]$`)
)

// Diagnose reports untagged content, literal out-of-range fields, near-miss
// tags and tags that run backwards. Blank records and LRC ID tags such as
// [ar:Artist] are not reported.
func Diagnose(text string) []Diagnostic {
	var diags []Diagnostic
	lastTag := -1

	for i, record := range splitRecords(text) {
		record = strings.TrimSpace(record)
		n := i + 1
		if record == "" {
			continue
		}

		m := tagPattern.FindStringSubmatch(record)
		if m == nil {
			switch {
			case looseTagPattern.MatchString(record):
				tag := looseTagPattern.FindString(record)
				diags = append(diags, Diagnostic{
					Kind:    DiagMalformedTag,
					Record:  n,
					Message: fmt.Sprintf("%s is not a valid [mm:ss.fff] tag; line will be auto-spaced", tag),
				})
			case metaTagPattern.MatchString(record):
			default:
				diags = append(diags, Diagnostic{
					Kind:    DiagUntagged,
					Record:  n,
					Message: "no time tag; line will be auto-spaced",
				})
			}
			continue
		}

		ms, _ := tagMillis(m[1], m[2], m[3])
		if m[2] >= "60" {
			diags = append(diags, Diagnostic{
				Kind:    DiagOutOfRange,
				Record:  n,
				Message: fmt.Sprintf("seconds field %s is 60 or more; taken literally as %s", m[2], FormatTimestamp(ms)),
			})
		}
		if ms < lastTag {
			diags = append(diags, Diagnostic{
				Kind:    DiagBackwards,
				Record:  n,
				Message: fmt.Sprintf("%s is earlier than the previous tag %s; line will be reordered", FormatTimestamp(ms), FormatTimestamp(lastTag)),
			})
		}
		lastTag = ms
	}
	return diags
}
