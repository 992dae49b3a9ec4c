package lyrics

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{0, "00:00.000"},
		{15500, "00:15.500"},
		{61001, "01:01.001"},
		{6039000, "100:39.000"},
		{-5, "00:00.000"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.ms); got != tt.want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}

}

func TestFormatTag(t *testing.T) {
	tests := []struct {
		ms      int
		want    string
		wantErr bool
	}{
		{1500, "[00:01.500]", false},
		{5999999, "[99:59.999]", false},
		{6000000, "[99:60.000]", false},
		{6039000, "[99:99.000]", false},
		{MaxTagMs, "[99:99.999]", false},
		{MaxTagMs + 1, "", true},
	}

	for _, tt := range tests {
		got, err := FormatTag(tt.ms)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatTag(%d) error = %v, wantErr %v", tt.ms, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrUntaggable) {
				t.Errorf("FormatTag(%d) error = %v, want ErrUntaggable", tt.ms, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("FormatTag(%d) = %q, want %q", tt.ms, got, tt.want)
		}
		if lines := Parse(got+" x", ModePlayback); len(lines) != 1 || lines[0].TimestampMs != tt.ms || !lines[0].Explicit {
			t.Errorf("Parse(FormatTag(%d)) = %+v", tt.ms, lines)
		}
	}
}

func TestFormatFreezesTiming(t *testing.T) {
	src := "[00:05] tagged\nuntagged\n\n[00:01] early"
	lines := Parse(src, ModePlayback)

	out, err := Format(lines)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "[00:01.000] early\n[00:05.000] tagged\n[00:06.000] untagged\n[00:07.000]\n"
	if out != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}

	reparsed := Parse(out, ModePlayback)
	if len(reparsed) != len(lines) {
		t.Fatalf("reparsed len = %d, want %d", len(reparsed), len(lines))
	}
	for i := range lines {
		frozen := lines[i]
		frozen.Explicit = true
		if !reflect.DeepEqual(reparsed[i], frozen) {
			t.Errorf("reparsed[%d] = %+v, want %+v", i, reparsed[i], frozen)
		}
	}
}

func TestFormatRoundTripsLargeTags(t *testing.T) {
	lines := Parse("[99:99] Odd\n[00:01] a\n[99:59.5] late", ModePlayback)

	out, err := Format(lines)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	reparsed := Parse(out, ModePlayback)
	if !reflect.DeepEqual(reparsed, lines) {
		t.Errorf("Parse(Format()) = %+v, want %+v", reparsed, lines)
	}
	if reparsed[2].TimestampMs != 6039000 || reparsed[2].Text != "Odd" {
		t.Errorf("reparsed[2] = %+v, want {6039000 Odd true}", reparsed[2])
	}
}

func TestFormatUntaggable(t *testing.T) {
	lines := []Line{
		{TimestampMs: 1000, Text: "ok", Explicit: true},
		{TimestampMs: MaxTagMs + 1, Text: "too late", Explicit: true},
		{TimestampMs: 2 * MaxTagMs, Text: "later", Explicit: true},
	}

	out, err := Format(lines)
	if !errors.Is(err, ErrUntaggable) {
		t.Fatalf("Format() error = %v, want ErrUntaggable", err)
	}
	if out != "" {
		t.Errorf("Format() = %q, want empty on error", out)
	}
	for _, want := range []string{"line 1", "line 2"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Format() error = %q, want it to name %s", err, want)
		}
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"15500", 15500, false},
		{"00:15.5", 15500, false},
		{"1:02", 62000, false},
		{"125:00.250", 7500250, false},
		{" 00:01 ", 1000, false},
		{"-1", 0, true},
		{"1:2", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePosition(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePosition(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("ParsePosition(%q) error = %v, want ErrInvalidPosition", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePosition(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Parse("[00:10] b\n[00:05] a\nc", ModePlayback)); err != nil {
		t.Errorf("Validate(parsed) error = %v", err)
	}
	if err := Validate(nil); err != nil {
		t.Errorf("Validate(nil) error = %v", err)
	}

	unsorted := []Line{{TimestampMs: 2000}, {TimestampMs: 1000}}
	if err := Validate(unsorted); !errors.Is(err, ErrUnsorted) {
		t.Errorf("Validate(unsorted) error = %v, want ErrUnsorted", err)
	}

	negative := []Line{{TimestampMs: -1}}
	if err := Validate(negative); !errors.Is(err, ErrUnsorted) {
		t.Errorf("Validate(negative) error = %v, want ErrUnsorted", err)
	}
}

func TestWindow(t *testing.T) {
	lines := make([]Line, 10)
	for i := range lines {
		lines[i].TimestampMs = i * 1000
	}

	tests := []struct {
		name          string
		lines         []Line
		active        int
		before, after int
		wantStart     int
		wantEnd       int
	}{
		{"middle", lines, 5, 2, 2, 3, 8},
		{"top", lines, 0, 3, 2, 0, 3},
		{"bottom", lines, 9, 2, 4, 7, 10},
		{"nothing active", lines, -1, 2, 3, 0, 3},
		{"past end clamps", lines, 42, 1, 1, 8, 10},
		{"negative context", lines, 4, -1, -1, 4, 5},
		{"empty", nil, 0, 2, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.lines, tt.active, tt.before, tt.after)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Window() = [%d, %d), want [%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFingerprintDetectsChanges(t *testing.T) {
	a, err := Fingerprint(Parse("[00:01] a\n[00:02] b", ModePlayback))
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	b, err := Fingerprint(Parse("[00:01] a\n[00:02.001] b", ModePlayback))
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if a == b {
		t.Error("Fingerprint() equal for different sequences")
	}
}
